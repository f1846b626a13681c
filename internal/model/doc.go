package model

// Package model defines domain data structures used across the app: audio codecs,
// status events reported by the downloader, job and phase enums, and playlist
// metadata. Structures are plain values so they can cross goroutines safely.
