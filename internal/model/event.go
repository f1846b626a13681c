package model

// StatusEvent is a single notification from the external downloader describing
// the current phase and its counters. Zero values mean "unknown".
type StatusEvent struct {
	Phase           Phase
	DownloadedBytes int64
	TotalBytes      int64   // 0 when neither exact nor estimated size is known
	Speed           float64 // bytes per second
	ItemsTotal      int     // playlist size when known, 0 otherwise
	Title           string  // current track
	Playlist        string  // playlist title, set once for list= URLs
}

// Playlist describes the playlist behind a URL, as far as it could be resolved
type Playlist struct {
	ID        string
	Title     string
	URL       string
	ItemCount int
}
