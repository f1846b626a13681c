package download

// Package download implements the download pipeline built on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp): request validation, dependency checks,
// audio-extraction options, and a runner that executes each download on its
// own goroutine behind an explicit job handle.
