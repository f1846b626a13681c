package main

import (
	"context"
	"os"
	"time"

	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-audio-downloader/internal/config"
	"github.com/ytget/yt-audio-downloader/internal/download"
	"github.com/ytget/yt-audio-downloader/internal/platform"
	"github.com/ytget/yt-audio-downloader/internal/transcode"
	"github.com/ytget/yt-audio-downloader/internal/ui"
)

const (
	AppID = "com.ytget.yt-audio-downloader"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Str("app", config.AppDirName).Logger()

	env, err := config.LoadEnvironment()
	if err != nil {
		logger.Warn().Err(err).Msg("ignoring unreadable .env file")
	}
	logger = logger.Level(env.LogLevel)
	logger.Info().Str("version", ui.AppVersion).Str("config", env.ConfigFile).Msg("starting")

	baseDir, err := transcode.ApplicationDir()
	if err != nil {
		logger.Warn().Err(err).Msg("cannot resolve application directory")
	}
	locator := transcode.NewLocator(baseDir, env.FFmpegDir)
	logTranscoder(logger, locator)

	store := config.NewStore(env.ConfigFile)
	downloadSvc := download.NewService(download.NewYTDLPExtractor(), locator, platform.NewPlaylistResolver(), logger)
	runner := download.NewRunner(logger)

	myApp := app.NewWithID(AppID)
	myWindow := myApp.NewWindow(ui.AppName)
	if icon, err := ui.LoadLogoResource(); err == nil {
		myWindow.SetIcon(icon)
	}

	ui.NewRootUI(myWindow, myApp, downloadSvc, runner, store, logger)

	myWindow.ShowAndRun()
}

// logTranscoder reports the ffmpeg build found at startup. A missing binary is
// surfaced to the user only when a download is attempted.
func logTranscoder(logger zerolog.Logger, locator *transcode.Locator) {
	bins, err := locator.Locate()
	if err != nil {
		logger.Warn().Err(err).Str("dir", locator.Dir()).Msg("ffmpeg not found")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), transcode.DefaultProbeTimeout)
	defer cancel()

	version, err := transcode.ProbeVersion(ctx, bins.FFmpeg)
	if err != nil {
		logger.Warn().Err(err).Str("ffmpeg", bins.FFmpeg).Msg("ffmpeg probe failed")
		return
	}
	logger.Info().Str("ffmpeg", bins.FFmpeg).Str("ffmpeg_version", version).Msg("transcoder ready")
}
