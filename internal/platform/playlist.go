package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-audio-downloader/internal/model"
)

// Timeout constants
const (
	DefaultParseTimeout = 60 * time.Second
)

// URL parameters
const (
	PlaylistParam = "list"
)

// Playlist title constants
const (
	DefaultPlaylistName = "Unknown Playlist"
	MinPrefixLength     = 10
	PlaylistSuffix      = " Playlist"
)

// playlistItem is the subset of an upstream playlist entry used here
type playlistItem struct {
	VideoID string
	Title   string
}

type itemsFetcher func(ctx context.Context, playlistID string) ([]playlistItem, error)

// PlaylistResolver looks up playlist metadata (notably the item count) before a download
type PlaylistResolver struct {
	timeout time.Duration
	fetch   itemsFetcher
}

// NewPlaylistResolver creates a resolver backed by github.com/ytget/ytdlp/v2
func NewPlaylistResolver() *PlaylistResolver {
	return &PlaylistResolver{
		timeout: DefaultParseTimeout,
		fetch:   fetchWithYTDLP,
	}
}

// SetTimeout sets the timeout for lookups
func (p *PlaylistResolver) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

func fetchWithYTDLP(ctx context.Context, playlistID string) ([]playlistItem, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	out := make([]playlistItem, 0, len(items))
	for _, it := range items {
		out = append(out, playlistItem{VideoID: it.VideoID, Title: it.Title})
	}
	return out, nil
}

// Resolve returns the playlist behind rawURL. Implements download.PlaylistLookup.
func (p *PlaylistResolver) Resolve(ctx context.Context, rawURL string) (*model.Playlist, error) {
	playlistID := ExtractPlaylistID(rawURL)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", rawURL)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	items, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	return &model.Playlist{
		ID:        playlistID,
		Title:     playlistTitle(items),
		URL:       rawURL,
		ItemCount: len(items),
	}, nil
}

// IsPlaylistURL reports whether the URL carries a non-empty list= parameter
func IsPlaylistURL(rawURL string) bool {
	return ExtractPlaylistID(rawURL) != ""
}

// ExtractPlaylistID returns the first list= value of the URL, or "" if absent
func ExtractPlaylistID(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return parsed.Query().Get(PlaylistParam)
}

// playlistTitle derives a display title from the first entries
func playlistTitle(items []playlistItem) string {
	if len(items) == 0 {
		return DefaultPlaylistName
	}
	if len(items) > 1 {
		prefix := commonPrefix(items[0].Title, items[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return items[0].Title + PlaylistSuffix
}

func commonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
