package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-audio-downloader/internal/config"
	"github.com/ytget/yt-audio-downloader/internal/download"
	"github.com/ytget/yt-audio-downloader/internal/model"
	"github.com/ytget/yt-audio-downloader/internal/platform"
	"github.com/ytget/yt-audio-downloader/internal/progress"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	downloadSvc  download.Downloader
	runner       *download.Runner
	store        *config.Store
	prefs        config.Preferences
	localization *Localization
	theme        *AppTheme
	notifier     Notifier
	logger       zerolog.Logger

	// Widgets
	urlLabel      *widget.Label
	urlEntry      *widget.Entry
	folderLabel   *widget.Label
	folderEntry   *widget.Entry
	selectBtn     *widget.Button
	progressLabel *widget.Label
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label
	titleLabel    *widget.Label
	itemsLabel    *widget.Label
	formatLabel   *widget.Label
	codecButtons  map[model.Codec]*widget.Button
	themeBtn      *widget.Button

	// Last rendered progress, re-rendered on language change
	lastSnapshot progress.Snapshot
	lastCodec    model.Codec
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloadSvc download.Downloader, runner *download.Runner, store *config.Store, logger zerolog.Logger) *RootUI {
	prefs, err := store.Load()
	if err != nil {
		logger.Warn().Err(err).Str("path", store.Path()).Msg("using default preferences")
	}

	localization := NewLocalization()
	localization.SetLanguage(prefs.Language)

	ui := &RootUI{
		window:       window,
		app:          app,
		downloadSvc:  downloadSvc,
		runner:       runner,
		store:        store,
		prefs:        prefs,
		localization: localization,
		theme:        NewAppTheme(prefs.DarkMode),
		logger:       logger.With().Str("component", "ui").Logger(),
		codecButtons: make(map[model.Codec]*widget.Button),
		lastSnapshot: progress.New(1).Snapshot(),
		lastCodec:    prefs.Format,
	}
	ui.notifier = NewDialogNotifier(window, localization)

	app.Settings().SetTheme(ui.theme)

	ui.setupUI()
	ui.refreshUITexts()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlLabel = widget.NewLabel("")
	ui.urlEntry = widget.NewEntry()
	// Enter downloads with the preferred format
	ui.urlEntry.OnSubmitted = func(string) {
		ui.startDownload(ui.prefs.Format)
	}

	ui.folderLabel = widget.NewLabel("")
	ui.folderEntry = widget.NewEntry()
	ui.folderEntry.SetText(ui.prefs.DestinationFolder)
	ui.selectBtn = widget.NewButton("", ui.onSelectFolder)
	folderRow := container.NewBorder(nil, nil, nil, ui.selectBtn, ui.folderEntry)

	ui.progressLabel = widget.NewLabel("")
	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Alignment = fyne.TextAlignCenter
	ui.titleLabel = widget.NewLabel("")
	ui.titleLabel.Alignment = fyne.TextAlignCenter
	ui.titleLabel.Truncation = fyne.TextTruncateEllipsis
	ui.itemsLabel = widget.NewLabel("")
	ui.itemsLabel.Alignment = fyne.TextAlignCenter

	ui.formatLabel = widget.NewLabel("")
	buttons := []fyne.CanvasObject{}
	for _, codec := range model.AllCodecs() {
		c := codec
		btn := widget.NewButton(c.Label(), func() {
			ui.startDownload(c)
		})
		ui.codecButtons[c] = btn
		buttons = append(buttons, btn)
	}
	codecRow := container.NewGridWithColumns(len(buttons), buttons...)

	ui.themeBtn = widget.NewButton("", ui.onToggleTheme)
	ui.themeBtn.Importance = widget.LowImportance
	header := container.NewBorder(nil, nil, nil, ui.themeBtn, ui.urlLabel)

	content := container.NewVBox(
		header,
		ui.urlEntry,
		ui.folderLabel,
		folderRow,
		ui.progressLabel,
		ui.progressBar,
		ui.statusLabel,
		ui.titleLabel,
		ui.itemsLabel,
		ui.formatLabel,
		codecRow,
	)

	ui.window.SetContent(container.NewPadded(content))
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	l := ui.localization

	preferencesItem := fyne.NewMenuItem(l.GetText(KeyPreferences), ui.onShowPreferences)

	languageMenu := fyne.NewMenu(l.GetText(KeyLanguage))
	names := l.GetAvailableLanguages()
	for _, code := range config.SupportedLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(names[code], func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if l.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	aboutItem := fyne.NewMenuItem(l.GetText(KeyAbout), ui.onShowAbout)

	// Fyne appends Quit to the first menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(l.GetText(KeyFile), preferencesItem),
		languageMenu,
		fyne.NewMenu(l.GetText(KeyHelp), aboutItem),
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)

	ui.prefs.Language = ui.localization.GetCurrentLanguage()
	ui.persist()

	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization

	ui.window.SetTitle(fmt.Sprintf(WindowTitleFormat, l.GetText(KeyAppTitle), AppVersion))

	ui.urlLabel.SetText(l.GetText(KeyVideoLink))
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyURLPlaceholder))
	ui.folderLabel.SetText(l.GetText(KeyDestinationFolder))
	ui.selectBtn.SetText(l.GetText(KeySelect))
	ui.progressLabel.SetText(l.GetText(KeyProgress))
	ui.formatLabel.SetText(l.GetText(KeyDownloadAs))

	ui.refreshThemeButton()
	ui.applySnapshot(ui.lastSnapshot, ui.lastCodec)
}

// refreshThemeButton labels the toggle with the mode it switches to
func (ui *RootUI) refreshThemeButton() {
	if ui.theme.IsDark() {
		ui.themeBtn.SetText(IconSun + " " + ui.localization.GetText(KeyLightMode))
		return
	}
	ui.themeBtn.SetText(IconMoon + " " + ui.localization.GetText(KeyDarkMode))
}

// onToggleTheme swaps the light and dark palettes
func (ui *RootUI) onToggleTheme() {
	ui.theme = ui.theme.Toggled()
	ui.app.Settings().SetTheme(ui.theme)

	ui.prefs.DarkMode = ui.theme.IsDark()
	ui.persist()

	ui.refreshThemeButton()
}

// onSelectFolder shows the folder picker starting at the current or suggested folder
func (ui *RootUI) onSelectFolder() {
	picker := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			ui.logger.Warn().Err(err).Msg("folder picker failed")
			return
		}
		if uri == nil {
			return
		}
		ui.setFolder(uri.Path())
	}, ui.window)

	start := strings.TrimSpace(ui.folderEntry.Text)
	if start == "" {
		start = config.SuggestedFolder()
	}
	if start != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
			picker.SetLocation(lister)
		}
	}

	picker.Resize(fyne.NewSize(FolderPickerWidth, FolderPickerHeight))
	picker.Show()
}

// setFolder updates the destination folder field and persists it
func (ui *RootUI) setFolder(path string) {
	ui.folderEntry.SetText(path)
	ui.prefs.DestinationFolder = path
	ui.persist()
}

// startDownload validates the form and hands the request to the runner.
// It returns nil when the request was rejected before a job was started.
func (ui *RootUI) startDownload(codec model.Codec) *download.Job {
	req := download.Request{
		URL:    strings.TrimSpace(ui.urlEntry.Text),
		Folder: strings.TrimSpace(ui.folderEntry.Text),
		Codec:  codec,
	}

	if err := ui.downloadSvc.Validate(req); err != nil {
		ui.showValidationError(err)
		return nil
	}

	ui.prefs.DestinationFolder = req.Folder
	ui.prefs.Format = codec
	ui.persist()

	if err := ui.downloadSvc.CheckDependencies(); err != nil {
		ui.logger.Error().Err(err).Msg("transcoder missing")
		ui.notifier.Error(
			ui.localization.GetText(KeyErrorTitle),
			ui.localization.Format(KeyMissingDependency, map[string]any{"Message": err.Error()}),
		)
		return nil
	}

	if err := platform.CreateDirectoryIfNotExists(req.Folder); err != nil {
		ui.logger.Error().Err(err).Str("folder", req.Folder).Msg("cannot create destination folder")
		ui.notifier.Error(
			ui.localization.GetText(KeyErrorTitle),
			ui.localization.Format(KeyErrorOccurred, map[string]any{"Message": err.Error()}),
		)
		return nil
	}

	ui.lastCodec = codec
	ui.applySnapshot(progress.New(1).Snapshot(), codec)

	job := ui.runner.Start(ui.downloadSvc.Work(req))
	ui.logger.Info().Str("job", job.ID()).Str("codec", codec.String()).Msg("download queued")

	go ui.watchJob(job, codec, req.Folder)
	return job
}

func (ui *RootUI) showValidationError(err error) {
	l := ui.localization
	switch {
	case errors.Is(err, download.ErrMissingURL):
		ui.notifier.Warn(l.GetText(KeyWarningTitle), l.GetText(KeyPleaseEnterURL))
	case errors.Is(err, download.ErrMissingFolder):
		ui.notifier.Warn(l.GetText(KeyWarningTitle), l.GetText(KeyPleaseChooseFolder))
	case errors.Is(err, download.ErrUnsupportedCodec):
		ui.notifier.Warn(l.GetText(KeyWarningTitle), l.GetText(KeyUnsupportedFormat))
	default:
		ui.notifier.Error(l.GetText(KeyErrorTitle), l.Format(KeyErrorOccurred, map[string]any{"Message": err.Error()}))
	}
}

// watchJob drains the job's updates onto the UI goroutine and reports the outcome
func (ui *RootUI) watchJob(job *download.Job, codec model.Codec, folder string) {
	for snap := range job.Updates() {
		s := snap
		fyne.Do(func() {
			ui.applySnapshot(s, codec)
		})
	}

	<-job.Done()
	err := job.Err()
	fyne.Do(func() {
		ui.showOutcome(codec, folder, err)
	})
}

// applySnapshot renders a progress snapshot. Must run on the UI goroutine.
func (ui *RootUI) applySnapshot(s progress.Snapshot, codec model.Codec) {
	ui.lastSnapshot = s
	ui.lastCodec = codec

	ui.progressBar.SetValue(float64(s.Percent) / progress.MaxPercent)
	ui.statusLabel.SetText(ui.statusText(s, codec))
	ui.titleLabel.SetText(s.Title)
	ui.itemsLabel.SetText(ui.itemsText(s))
}

func (ui *RootUI) itemsText(s progress.Snapshot) string {
	data := map[string]any{
		"Completed": s.ItemsCompleted,
		"Total":     s.ItemsTotal,
	}
	if s.Playlist == "" {
		return ui.localization.Format(KeyItemsCounter, data)
	}
	data["Playlist"] = s.Playlist
	return ui.localization.Format(KeyPlaylistItemsCounter, data)
}

func (ui *RootUI) statusText(s progress.Snapshot, codec model.Codec) string {
	l := ui.localization
	switch s.Phase {
	case model.PhaseDownloading:
		return l.Format(KeyStatusDownloading, map[string]any{
			"Percent": s.Percent,
			"Rate":    fmt.Sprintf(DecimalFormat, s.RateKiB),
			"Size":    fmt.Sprintf(DecimalFormat, s.SizeMiB),
		})
	case model.PhaseProcessing:
		return l.Format(KeyStatusProcessing, map[string]any{"Codec": codec.Label()})
	case model.PhaseFinished:
		return l.Format(KeyStatusFinished, map[string]any{"Codec": codec.Label()})
	case model.PhaseFailed:
		return l.GetText(KeyStatusFailed)
	default:
		return l.GetText(KeyStatusWaiting)
	}
}

// showOutcome reports the end of a job. Must run on the UI goroutine.
func (ui *RootUI) showOutcome(codec model.Codec, folder string, err error) {
	ui.settleSnapshot(codec, err)

	l := ui.localization
	switch {
	case err == nil:
		ui.notifier.Completed(
			l.GetText(KeyDownloadCompleteTitle),
			l.Format(KeyDownloadComplete, map[string]any{"Codec": codec.Label()}),
			func() { ui.openFolder(folder) },
		)
	case errors.Is(err, context.Canceled):
		ui.logger.Info().Msg("download cancelled")
	case errors.Is(err, download.ErrMissingDependency):
		ui.notifier.Error(l.GetText(KeyErrorTitle), l.Format(KeyMissingDependency, map[string]any{"Message": err.Error()}))
	default:
		ui.notifier.Error(l.GetText(KeyErrorTitle), l.Format(KeyErrorOccurred, map[string]any{"Message": err.Error()}))
	}
}

// settleSnapshot moves the rendered progress to its final phase once the job has
// ended, since the last event of a successful job is the conversion step.
func (ui *RootUI) settleSnapshot(codec model.Codec, err error) {
	s := ui.lastSnapshot
	if s.Phase.IsTerminal() || errors.Is(err, context.Canceled) {
		return
	}

	if err != nil {
		s.Phase = model.PhaseFailed
	} else {
		s.Phase = model.PhaseFinished
		s.Percent = progress.MaxPercent
	}
	ui.applySnapshot(s, codec)
}

func (ui *RootUI) openFolder(folder string) {
	if err := platform.OpenFolder(folder); err != nil {
		ui.logger.Warn().Err(err).Str("folder", folder).Msg("failed to open folder")
		ui.notifier.Error(
			ui.localization.GetText(KeyErrorTitle),
			ui.localization.Format(KeyErrorOccurred, map[string]any{"Message": err.Error()}),
		)
	}
}

// onShowPreferences shows the preferences dialog
func (ui *RootUI) onShowPreferences() {
	NewPreferencesDialog(ui.prefs, ui.window, ui.localization, ui.applyPreferences).Show()
}

// applyPreferences takes edited preferences from the dialog
func (ui *RootUI) applyPreferences(prefs config.Preferences) {
	languageChanged := prefs.Language != ui.prefs.Language

	ui.prefs = prefs
	ui.folderEntry.SetText(prefs.DestinationFolder)

	if languageChanged {
		// Persists as well
		ui.onLanguageChange(prefs.Language)
		return
	}
	ui.persist()
}

func (ui *RootUI) onShowAbout() {
	ui.notifier.Info(
		ui.localization.GetText(KeyAbout),
		ui.localization.Format(KeyAboutMessage, map[string]any{"Name": AppName, "Version": AppVersion}),
	)
}

// persist saves preferences. Failures are logged and shown but never fatal.
func (ui *RootUI) persist() {
	if err := ui.store.Save(ui.prefs); err != nil {
		ui.logger.Error().Err(err).Str("path", ui.store.Path()).Msg("failed to save preferences")
		ui.notifier.Error(
			ui.localization.GetText(KeyErrorTitle),
			ui.localization.Format(KeyErrorSavingPreferences, map[string]any{"Message": err.Error()}),
		)
	}
}
