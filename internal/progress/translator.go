// Package progress converts raw downloader status events into display-ready
// snapshots: percent, transfer rate, size and the playlist item counter.
// A Translator belongs to exactly one download invocation.
package progress

import (
	"github.com/ytget/yt-audio-downloader/internal/model"
)

// Unit conversion constants
const (
	BytesPerKiB = 1024
	BytesPerMiB = 1024 * 1024
	MaxPercent  = 100
)

// Snapshot is the derived state after the latest event
type Snapshot struct {
	Phase           model.Phase
	Percent         int
	DownloadedBytes int64
	TotalBytes      int64
	RateKiB         float64
	SizeMiB         float64
	ItemsCompleted  int
	ItemsTotal      int
	Title           string
	Playlist        string
}

// Translator holds the per-invocation counters
type Translator struct {
	current Snapshot
}

// New creates a translator for a download of itemsTotal items (1 when unknown)
func New(itemsTotal int) *Translator {
	if itemsTotal <= 0 {
		itemsTotal = 1
	}
	return &Translator{
		current: Snapshot{
			Phase:      model.PhaseIdle,
			ItemsTotal: itemsTotal,
		},
	}
}

// Snapshot returns the current state without applying an event
func (t *Translator) Snapshot() Snapshot {
	return t.current
}

// Apply folds one status event into the state and returns the new snapshot
func (t *Translator) Apply(ev model.StatusEvent) Snapshot {
	if ev.ItemsTotal > 0 {
		t.current.ItemsTotal = ev.ItemsTotal
	}
	if ev.Title != "" {
		t.current.Title = ev.Title
	}
	if ev.Playlist != "" {
		t.current.Playlist = ev.Playlist
	}

	switch ev.Phase {
	case model.PhaseDownloading:
		t.current.Phase = model.PhaseDownloading
		t.current.DownloadedBytes = ev.DownloadedBytes
		t.current.TotalBytes = max(ev.TotalBytes, 0)
		t.current.Percent = Percent(ev.DownloadedBytes, ev.TotalBytes)
		t.current.RateKiB = RateKiB(ev.Speed)
		t.current.SizeMiB = SizeMiB(ev.TotalBytes)
	case model.PhaseFinished:
		t.current.Phase = model.PhaseFinished
		t.current.Percent = MaxPercent
		t.current.ItemsCompleted++
	case model.PhaseProcessing:
		t.current.Phase = model.PhaseProcessing
	case model.PhaseFailed:
		t.current.Phase = model.PhaseFailed
	}

	if t.current.ItemsCompleted > t.current.ItemsTotal {
		t.current.ItemsTotal = t.current.ItemsCompleted
	}

	return t.current
}

// Percent returns floor(downloaded/total*100), or 0 when total is unknown
func Percent(downloaded, total int64) int {
	if total <= 0 || downloaded <= 0 {
		return 0
	}
	p := downloaded * MaxPercent / total
	if p > MaxPercent {
		return MaxPercent
	}
	return int(p)
}

// RateKiB converts bytes per second to KiB/s
func RateKiB(bytesPerSecond float64) float64 {
	if bytesPerSecond <= 0 {
		return 0
	}
	return bytesPerSecond / BytesPerKiB
}

// SizeMiB converts a byte count to MiB
func SizeMiB(bytes int64) float64 {
	if bytes <= 0 {
		return 0
	}
	return float64(bytes) / BytesPerMiB
}
