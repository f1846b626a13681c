package platform

// Package platform contains OS/platform integration and external tooling glue:
// filesystem helpers, opening folders in the file manager, and playlist lookup.
