package download

import (
	"context"

	"github.com/ytget/yt-audio-downloader/internal/model"
)

// Extractor is the external downloader: it fetches url, post-processes it
// according to opts and reports progress through sink. It blocks until done.
type Extractor interface {
	Extract(ctx context.Context, url string, opts Options, sink func(model.StatusEvent)) error
}

// PlaylistLookup resolves the playlist behind a list= URL before the download starts.
type PlaylistLookup interface {
	Resolve(ctx context.Context, url string) (*model.Playlist, error)
}

// Downloader defines the interface for the download service.
type Downloader interface {
	Validate(req Request) error
	CheckDependencies() error
	Download(ctx context.Context, req Request, sink func(model.StatusEvent)) Outcome
	Work(req Request) WorkFunc
}
