package download

import (
	"context"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/yt-audio-downloader/internal/model"
)

// DefaultProgressInterval is how often yt-dlp progress is sampled
const DefaultProgressInterval = 250 * time.Millisecond

// YTDLPExtractor drives the yt-dlp executable through go-ytdlp
type YTDLPExtractor struct {
	interval time.Duration
}

// NewYTDLPExtractor creates a new yt-dlp backed extractor
func NewYTDLPExtractor() *YTDLPExtractor {
	return &YTDLPExtractor{interval: DefaultProgressInterval}
}

// Extract downloads url as audio and post-processes it with ffmpeg
func (e *YTDLPExtractor) Extract(ctx context.Context, url string, opts Options, sink func(model.StatusEvent)) error {
	dl := ytdlp.New().
		Format(opts.Format).
		ExtractAudio().
		AudioFormat(audioFormatArg(opts.Codec)).
		AudioQuality(opts.Quality).
		FFmpegLocation(opts.FFmpegLocation).
		Output(opts.OutputTemplate)

	if opts.Playlist {
		dl = dl.YesPlaylist()
	} else {
		dl = dl.NoPlaylist()
	}

	dl.ProgressFunc(e.interval, func(update ytdlp.ProgressUpdate) {
		for _, ev := range eventsFromUpdate(update) {
			sink(ev)
		}
	})

	_, err := dl.Run(ctx, url)
	return err
}

// audioFormatArg maps a codec to yt-dlp's --audio-format vocabulary
func audioFormatArg(codec model.Codec) string {
	if codec == model.CodecOGG {
		return "vorbis"
	}
	return string(codec)
}

// eventsFromUpdate expands a progress update into status events. The progress
// template only reports download progress, so a finished download is followed
// by a processing event that covers the ffmpeg conversion.
func eventsFromUpdate(update ytdlp.ProgressUpdate) []model.StatusEvent {
	ev := eventFromUpdate(update)
	if ev.Phase != model.PhaseFinished {
		return []model.StatusEvent{ev}
	}
	return []model.StatusEvent{ev, {Phase: model.PhaseProcessing, Title: ev.Title}}
}

func eventFromUpdate(update ytdlp.ProgressUpdate) model.StatusEvent {
	ev := model.StatusEvent{
		Phase:           phaseFromStatus(update.Status),
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		Speed:           bytesPerSecond(int64(update.DownloadedBytes), update.Started, time.Now()),
	}

	if update.Info != nil && update.Info.Title != nil {
		ev.Title = *update.Info.Title
	}

	return ev
}

func phaseFromStatus(status ytdlp.ProgressStatus) model.Phase {
	switch status {
	case ytdlp.ProgressStatusDownloading:
		return model.PhaseDownloading
	case ytdlp.ProgressStatusPostProcessing:
		return model.PhaseProcessing
	case ytdlp.ProgressStatusFinished:
		return model.PhaseFinished
	case ytdlp.ProgressStatusError:
		return model.PhaseFailed
	default:
		return model.PhaseIdle
	}
}

// bytesPerSecond derives the average transfer rate since started
func bytesPerSecond(downloaded int64, started, now time.Time) float64 {
	if started.IsZero() || downloaded <= 0 {
		return 0
	}
	elapsed := now.Sub(started).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(downloaded) / elapsed
}
