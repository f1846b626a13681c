package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ytget/yt-audio-downloader/internal/model"
	"github.com/ytget/yt-audio-downloader/internal/platform"
	"github.com/ytget/yt-audio-downloader/internal/progress"
	"github.com/ytget/yt-audio-downloader/internal/transcode"
)

// yt-dlp option constants
const (
	BestAudioFormat        = "bestaudio/best"
	AudioQuality           = "192"
	SingleOutputTemplate   = "%(title)s.%(ext)s"
	PlaylistOutputTemplate = "%(playlist_title)s/%(title)s.%(ext)s"
)

var (
	ErrMissingURL        = errors.New("missing video URL")
	ErrMissingFolder     = errors.New("missing destination folder")
	ErrUnsupportedCodec  = errors.New("unsupported audio codec")
	ErrMissingDependency = errors.New("missing dependency")
)

// Request is a single user-initiated download
type Request struct {
	URL    string
	Folder string
	Codec  model.Codec
}

// Options is what the extractor is configured with
type Options struct {
	Format         string
	OutputTemplate string
	Codec          model.Codec
	Quality        string
	FFmpegLocation string
	Playlist       bool
}

// Outcome is the terminal result of one download invocation
type Outcome struct {
	Codec model.Codec
	Err   error
}

// Succeeded returns true if the download completed without error
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Service orchestrates one download: validation, ffmpeg lookup, extractor call
type Service struct {
	extractor Extractor
	locator   transcode.BinaryLocator
	playlists PlaylistLookup
	logger    zerolog.Logger
}

// NewService creates a new download service. playlists may be nil, in which
// case playlist item counts are learned only from completed items.
func NewService(extractor Extractor, locator transcode.BinaryLocator, playlists PlaylistLookup, logger zerolog.Logger) *Service {
	return &Service{
		extractor: extractor,
		locator:   locator,
		playlists: playlists,
		logger:    logger.With().Str("component", "download").Logger(),
	}
}

// Validate checks the request fields in the order the user fills them in
func (s *Service) Validate(req Request) error {
	if strings.TrimSpace(req.URL) == "" {
		return ErrMissingURL
	}
	if strings.TrimSpace(req.Folder) == "" {
		return ErrMissingFolder
	}
	if !req.Codec.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedCodec, req.Codec)
	}
	return nil
}

// CheckDependencies verifies that the ffmpeg toolchain is present
func (s *Service) CheckDependencies() error {
	_, err := s.binaries()
	return err
}

func (s *Service) binaries() (transcode.Binaries, error) {
	bins, err := s.locator.Locate()
	if err != nil {
		return bins, fmt.Errorf("%w: %w", ErrMissingDependency, err)
	}
	return bins, nil
}

// BuildOptions returns the extractor options for req
func BuildOptions(req Request, ffmpegDir string) Options {
	playlist := platform.IsPlaylistURL(req.URL)
	template := SingleOutputTemplate
	if playlist {
		template = PlaylistOutputTemplate
	}

	return Options{
		Format:         BestAudioFormat,
		OutputTemplate: filepath.Join(req.Folder, template),
		Codec:          req.Codec,
		Quality:        AudioQuality,
		FFmpegLocation: ffmpegDir,
		Playlist:       playlist,
	}
}

// Download runs the extractor synchronously. It must not be called on the UI goroutine.
func (s *Service) Download(ctx context.Context, req Request, sink func(model.StatusEvent)) Outcome {
	req.URL = strings.TrimSpace(req.URL)
	if err := s.Validate(req); err != nil {
		return Outcome{Codec: req.Codec, Err: err}
	}

	bins, err := s.binaries()
	if err != nil {
		s.logger.Error().Err(err).Msg("transcoder not available")
		return Outcome{Codec: req.Codec, Err: err}
	}

	opts := BuildOptions(req, bins.Dir)
	log := s.logger.With().Str("url", req.URL).Str("codec", req.Codec.String()).Bool("playlist", opts.Playlist).Logger()

	if opts.Playlist && s.playlists != nil {
		if pl, err := s.playlists.Resolve(ctx, req.URL); err != nil {
			log.Warn().Err(err).Msg("could not resolve playlist")
		} else if pl != nil && pl.ItemCount > 0 {
			log.Debug().Str("playlist_id", pl.ID).Str("playlist", pl.Title).Int("items", pl.ItemCount).Msg("playlist resolved")
			sink(model.StatusEvent{Phase: model.PhaseIdle, ItemsTotal: pl.ItemCount, Playlist: pl.Title})
		}
	}

	log.Info().Str("output", opts.OutputTemplate).Msg("download started")

	if err := s.extractor.Extract(ctx, req.URL, opts, sink); err != nil {
		log.Error().Err(err).Msg("download failed")
		return Outcome{Codec: req.Codec, Err: err}
	}

	log.Info().Msg("download completed")
	return Outcome{Codec: req.Codec}
}

// Work binds req into a unit of work for the Runner. Each call owns a fresh
// translator, so concurrent jobs never share counters.
func (s *Service) Work(req Request) WorkFunc {
	return func(ctx context.Context, job *Job) error {
		tr := progress.New(1)
		job.Publish(tr.Snapshot())

		outcome := s.Download(ctx, req, func(ev model.StatusEvent) {
			job.Publish(tr.Apply(ev))
		})
		if !outcome.Succeeded() {
			job.Publish(tr.Apply(model.StatusEvent{Phase: model.PhaseFailed}))
		}
		return outcome.Err
	}
}
