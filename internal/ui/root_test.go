package ui

import (
	"context"
	"errors"
	"image/color"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-audio-downloader/internal/config"
	"github.com/ytget/yt-audio-downloader/internal/download"
	"github.com/ytget/yt-audio-downloader/internal/model"
	"github.com/ytget/yt-audio-downloader/internal/progress"
	"github.com/ytget/yt-audio-downloader/internal/transcode"
)

type fakeExtractor struct {
	mu     sync.Mutex
	calls  int
	opts   download.Options
	events []model.StatusEvent
	err    error
}

func (f *fakeExtractor) Extract(ctx context.Context, url string, opts download.Options, sink func(model.StatusEvent)) error {
	f.mu.Lock()
	f.calls++
	f.opts = opts
	events := f.events
	f.mu.Unlock()

	for _, ev := range events {
		sink(ev)
	}
	return f.err
}

func (f *fakeExtractor) snapshot() (int, download.Options) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, f.opts
}

type fakeLocator struct {
	err error
}

func (f fakeLocator) Locate() (transcode.Binaries, error) {
	if f.err != nil {
		return transcode.Binaries{}, f.err
	}
	return transcode.Binaries{Dir: "/opt/app/ffmpeg", FFmpeg: "/opt/app/ffmpeg/ffmpeg", FFprobe: "/opt/app/ffmpeg/ffprobe"}, nil
}

type notice struct {
	kind    string
	title   string
	message string
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []notice
}

func (r *recordingNotifier) add(kind, title, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice{kind: kind, title: title, message: message})
}

func (r *recordingNotifier) Info(title, message string)  { r.add("info", title, message) }
func (r *recordingNotifier) Warn(title, message string)  { r.add("warn", title, message) }
func (r *recordingNotifier) Error(title, message string) { r.add("error", title, message) }
func (r *recordingNotifier) Completed(title, message string, _ func()) {
	r.add("completed", title, message)
}

func (r *recordingNotifier) all() []notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notice(nil), r.notices...)
}

// waitFor polls until cond holds or the deadline passes
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

type fixture struct {
	ui        *RootUI
	app       fyne.App
	window    fyne.Window
	store     *config.Store
	extractor *fakeExtractor
	notifier  *recordingNotifier
}

func newFixture(t *testing.T, ex *fakeExtractor, loc fakeLocator) *fixture {
	t.Helper()

	a := test.NewApp()
	t.Cleanup(a.Quit)
	w := test.NewWindow(nil)
	t.Cleanup(w.Close)

	store := config.NewStore(filepath.Join(t.TempDir(), "config.json"))
	svc := download.NewService(ex, loc, nil, zerolog.Nop())
	runner := download.NewRunner(zerolog.Nop())

	ui := NewRootUI(w, a, svc, runner, store, zerolog.Nop())
	rec := &recordingNotifier{}
	ui.notifier = rec

	return &fixture{ui: ui, app: a, window: w, store: store, extractor: ex, notifier: rec}
}

func TestNewRootUI_InitialTexts(t *testing.T) {
	f := newFixture(t, &fakeExtractor{}, fakeLocator{})

	if f.ui.statusLabel.Text != "Waiting..." {
		t.Fatalf("status = %q", f.ui.statusLabel.Text)
	}
	if f.ui.selectBtn.Text != "Select" {
		t.Fatalf("select button = %q", f.ui.selectBtn.Text)
	}
	if f.ui.progressBar.Value != 0 {
		t.Fatalf("progress = %v", f.ui.progressBar.Value)
	}
	if len(f.ui.codecButtons) != len(model.AllCodecs()) {
		t.Fatalf("codec buttons = %d", len(f.ui.codecButtons))
	}
	if !strings.Contains(f.ui.themeBtn.Text, "Dark Mode") {
		t.Fatalf("theme button = %q", f.ui.themeBtn.Text)
	}
	if !strings.Contains(f.window.Title(), "YouTube Audio Downloader") {
		t.Fatalf("title = %q", f.window.Title())
	}
}

func TestStartDownload_ValidationWarnings(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		folder  string
		message string
	}{
		{name: "missing url", url: "", folder: "/music", message: "Please enter the video link."},
		{name: "blank url", url: "   ", folder: "/music", message: "Please enter the video link."},
		{name: "missing folder", url: "https://youtu.be/abc", folder: "", message: "Please choose the destination folder."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &fakeExtractor{}
			f := newFixture(t, ex, fakeLocator{})
			f.ui.urlEntry.SetText(tt.url)
			f.ui.folderEntry.SetText(tt.folder)

			if job := f.ui.startDownload(model.CodecMP3); job != nil {
				t.Fatal("expected no job")
			}

			notices := f.notifier.all()
			if len(notices) != 1 || notices[0].kind != "warn" || notices[0].message != tt.message {
				t.Fatalf("notices = %+v", notices)
			}
			if calls, _ := ex.snapshot(); calls != 0 {
				t.Fatalf("extractor called %d times", calls)
			}
		})
	}
}

func TestStartDownload_MissingDependency(t *testing.T) {
	ex := &fakeExtractor{}
	f := newFixture(t, ex, fakeLocator{err: transcode.ErrNotFound})
	f.ui.urlEntry.SetText("https://youtu.be/abc")
	f.ui.folderEntry.SetText(t.TempDir())

	if job := f.ui.startDownload(model.CodecFLAC); job != nil {
		t.Fatal("expected no job")
	}

	notices := f.notifier.all()
	if len(notices) != 1 || notices[0].kind != "error" || !strings.Contains(notices[0].message, "FFmpeg") {
		t.Fatalf("notices = %+v", notices)
	}
	if calls, _ := ex.snapshot(); calls != 0 {
		t.Fatalf("extractor called %d times", calls)
	}
}

func TestStartDownload_Success(t *testing.T) {
	ex := &fakeExtractor{events: []model.StatusEvent{
		{Phase: model.PhaseDownloading, DownloadedBytes: 512, TotalBytes: 1024},
		{Phase: model.PhaseFinished, DownloadedBytes: 1024, TotalBytes: 1024},
	}}
	f := newFixture(t, ex, fakeLocator{})
	folder := t.TempDir()
	f.ui.urlEntry.SetText("https://youtu.be/abc")
	f.ui.folderEntry.SetText(folder)

	job := f.ui.startDownload(model.CodecOGG)
	if job == nil {
		t.Fatal("expected a job")
	}

	waitFor(t, func() bool {
		for _, n := range f.notifier.all() {
			if n.kind == "completed" {
				return strings.Contains(n.message, "OGG")
			}
		}
		return false
	})

	if _, opts := ex.snapshot(); opts.Codec != model.CodecOGG {
		t.Fatalf("codec = %q", opts.Codec)
	}

	prefs, err := f.store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if prefs.DestinationFolder != folder || prefs.Format != model.CodecOGG {
		t.Fatalf("persisted = %+v", prefs)
	}
}

func TestStartDownload_FailureShowsMessage(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("HTTP Error 403: Forbidden")}
	f := newFixture(t, ex, fakeLocator{})
	f.ui.urlEntry.SetText("https://youtu.be/abc")
	f.ui.folderEntry.SetText(t.TempDir())

	if job := f.ui.startDownload(model.CodecMP3); job == nil {
		t.Fatal("expected a job")
	}

	waitFor(t, func() bool {
		for _, n := range f.notifier.all() {
			if n.kind == "error" {
				return strings.Contains(n.message, "HTTP Error 403: Forbidden")
			}
		}
		return false
	})
}

func TestURLSubmit_UsesPreferredFormat(t *testing.T) {
	ex := &fakeExtractor{}
	f := newFixture(t, ex, fakeLocator{})
	f.ui.prefs.Format = model.CodecFLAC
	f.ui.urlEntry.SetText("https://youtu.be/abc")
	f.ui.folderEntry.SetText(t.TempDir())

	f.ui.urlEntry.OnSubmitted(f.ui.urlEntry.Text)

	waitFor(t, func() bool {
		calls, opts := ex.snapshot()
		return calls == 1 && opts.Codec == model.CodecFLAC
	})
}

func TestApplySnapshot_RendersProgress(t *testing.T) {
	f := newFixture(t, &fakeExtractor{}, fakeLocator{})

	f.ui.applySnapshot(progress.Snapshot{
		Phase:          model.PhaseDownloading,
		Percent:        50,
		RateKiB:        1.5,
		SizeMiB:        2,
		ItemsCompleted: 1,
		ItemsTotal:     3,
	}, model.CodecMP3)

	if f.ui.progressBar.Value != 0.5 {
		t.Fatalf("progress = %v", f.ui.progressBar.Value)
	}
	want := "Downloading: 50% - Speed: 1.50 KiB/s - Size: 2.00 MiB"
	if f.ui.statusLabel.Text != want {
		t.Fatalf("status = %q, want %q", f.ui.statusLabel.Text, want)
	}
	if f.ui.itemsLabel.Text != "1 of 3" {
		t.Fatalf("items = %q", f.ui.itemsLabel.Text)
	}

	f.ui.applySnapshot(progress.Snapshot{Phase: model.PhaseFinished, Percent: 100, ItemsCompleted: 1, ItemsTotal: 1}, model.CodecWAV)
	if f.ui.statusLabel.Text != "Conversion to WAV completed" {
		t.Fatalf("status = %q", f.ui.statusLabel.Text)
	}
}

func TestLanguageChange_ReRendersAndPersists(t *testing.T) {
	f := newFixture(t, &fakeExtractor{}, fakeLocator{})

	f.ui.onLanguageChange("fr")

	if f.ui.selectBtn.Text != translations["fr"][KeySelect] {
		t.Fatalf("select button = %q", f.ui.selectBtn.Text)
	}
	if f.ui.urlLabel.Text != translations["fr"][KeyVideoLink] {
		t.Fatalf("url label = %q", f.ui.urlLabel.Text)
	}
	if f.ui.statusLabel.Text != translations["fr"][KeyStatusWaiting] {
		t.Fatalf("status = %q", f.ui.statusLabel.Text)
	}
	if !strings.Contains(f.window.Title(), translations["fr"][KeyAppTitle]) {
		t.Fatalf("title = %q", f.window.Title())
	}

	prefs, err := f.store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if prefs.Language != "fr" {
		t.Fatalf("persisted language = %q", prefs.Language)
	}
}

func TestLanguageChange_UnsupportedFallsBackToEnglish(t *testing.T) {
	f := newFixture(t, &fakeExtractor{}, fakeLocator{})

	f.ui.onLanguageChange("xx")

	if f.ui.localization.GetCurrentLanguage() != "en" {
		t.Fatalf("language = %q", f.ui.localization.GetCurrentLanguage())
	}
	if f.ui.selectBtn.Text != "Select" {
		t.Fatalf("select button = %q", f.ui.selectBtn.Text)
	}
}

func TestToggleTheme_TwiceRestoresColors(t *testing.T) {
	f := newFixture(t, &fakeExtractor{}, fakeLocator{})

	names := []fyne.ThemeColorName{
		theme.ColorNameBackground,
		theme.ColorNameForeground,
		theme.ColorNameInputBackground,
		theme.ColorNameButton,
		theme.ColorNamePrimary,
	}
	current := func() []color.Color {
		th := f.app.Settings().Theme()
		out := []color.Color{}
		for _, name := range names {
			out = append(out, th.Color(name, theme.VariantLight))
		}
		return out
	}

	before := current()

	f.ui.onToggleTheme()
	if !f.ui.theme.IsDark() {
		t.Fatal("expected dark theme")
	}
	if !strings.Contains(f.ui.themeBtn.Text, "Light Mode") {
		t.Fatalf("theme button = %q", f.ui.themeBtn.Text)
	}
	prefs, err := f.store.Load()
	if err != nil || !prefs.DarkMode {
		t.Fatalf("persisted = %+v, err = %v", prefs, err)
	}

	f.ui.onToggleTheme()
	after := current()
	for i := range before {
		if !sameColor(before[i], after[i]) {
			t.Fatalf("color %s changed after two toggles", names[i])
		}
	}
}

func TestShowOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind string
		want string
	}{
		{name: "success", err: nil, kind: "completed", want: "MP3"},
		{name: "missing dependency", err: download.ErrMissingDependency, kind: "error", want: "FFmpeg"},
		{name: "extractor failure", err: errors.New("unsupported URL"), kind: "error", want: "unsupported URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, &fakeExtractor{}, fakeLocator{})
			f.ui.showOutcome(model.CodecMP3, t.TempDir(), tt.err)

			notices := f.notifier.all()
			if len(notices) != 1 || notices[0].kind != tt.kind || !strings.Contains(notices[0].message, tt.want) {
				t.Fatalf("notices = %+v", notices)
			}
		})
	}
}

func TestShowOutcome_CancelledIsSilent(t *testing.T) {
	f := newFixture(t, &fakeExtractor{}, fakeLocator{})
	f.ui.showOutcome(model.CodecMP3, t.TempDir(), context.Canceled)

	if notices := f.notifier.all(); len(notices) != 0 {
		t.Fatalf("notices = %+v", notices)
	}
}

func TestApplyPreferences(t *testing.T) {
	f := newFixture(t, &fakeExtractor{}, fakeLocator{})

	prefs := f.ui.prefs
	prefs.DestinationFolder = "/music"
	prefs.Format = model.CodecM4A
	prefs.Language = "pt"
	f.ui.applyPreferences(prefs)

	if f.ui.folderEntry.Text != "/music" {
		t.Fatalf("folder = %q", f.ui.folderEntry.Text)
	}
	if f.ui.selectBtn.Text != translations["pt"][KeySelect] {
		t.Fatalf("select button = %q", f.ui.selectBtn.Text)
	}

	loaded, err := f.store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.DestinationFolder != "/music" || loaded.Format != model.CodecM4A || loaded.Language != "pt" {
		t.Fatalf("persisted = %+v", loaded)
	}
}

func TestOnShowAbout(t *testing.T) {
	f := newFixture(t, &fakeExtractor{}, fakeLocator{})
	f.ui.onShowAbout()

	notices := f.notifier.all()
	if len(notices) != 1 || notices[0].kind != "info" || !strings.Contains(notices[0].message, AppVersion) {
		t.Fatalf("notices = %+v", notices)
	}
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func TestApplySnapshot_RendersTrackAndPlaylistTitles(t *testing.T) {
	f := newFixture(t, &fakeExtractor{}, fakeLocator{})

	f.ui.applySnapshot(progress.Snapshot{
		Phase:          model.PhaseDownloading,
		Title:          "Track two",
		Playlist:       "Road Trip Playlist",
		ItemsCompleted: 1,
		ItemsTotal:     2,
	}, model.CodecMP3)

	if f.ui.titleLabel.Text != "Track two" {
		t.Fatalf("title = %q", f.ui.titleLabel.Text)
	}
	if f.ui.itemsLabel.Text != "Road Trip Playlist: 1 of 2" {
		t.Fatalf("items = %q", f.ui.itemsLabel.Text)
	}

	f.ui.onLanguageChange("ru")
	if f.ui.itemsLabel.Text != "Road Trip Playlist: 1 из 2" {
		t.Fatalf("ru items = %q", f.ui.itemsLabel.Text)
	}
}

func TestShowOutcome_SettlesProgress(t *testing.T) {
	f := newFixture(t, &fakeExtractor{}, fakeLocator{})

	f.ui.applySnapshot(progress.Snapshot{Phase: model.PhaseProcessing, Percent: 100, ItemsCompleted: 1, ItemsTotal: 1}, model.CodecFLAC)
	if f.ui.statusLabel.Text != "Converting to FLAC..." {
		t.Fatalf("status = %q", f.ui.statusLabel.Text)
	}

	f.ui.showOutcome(model.CodecFLAC, t.TempDir(), nil)
	if f.ui.statusLabel.Text != "Conversion to FLAC completed" {
		t.Fatalf("status after success = %q", f.ui.statusLabel.Text)
	}
	if f.ui.progressBar.Value != 1 {
		t.Fatalf("progress = %v", f.ui.progressBar.Value)
	}

	f.ui.applySnapshot(progress.Snapshot{Phase: model.PhaseDownloading, Percent: 40, ItemsTotal: 1}, model.CodecMP3)
	f.ui.showOutcome(model.CodecMP3, t.TempDir(), errors.New("connection reset"))
	if f.ui.statusLabel.Text != "Download failed" {
		t.Fatalf("status after failure = %q", f.ui.statusLabel.Text)
	}
	if f.ui.progressBar.Value != 0.4 {
		t.Fatalf("progress after failure = %v", f.ui.progressBar.Value)
	}
}
