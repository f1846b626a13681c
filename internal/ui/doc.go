package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires user intents to the download runner and the preferences store and
// renders job progress. All UI strings are localized via Localization.
