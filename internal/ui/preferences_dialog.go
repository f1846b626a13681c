package ui

import (
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-audio-downloader/internal/config"
	"github.com/ytget/yt-audio-downloader/internal/model"
)

// PreferencesDialog edits the destination folder, preferred format and language
type PreferencesDialog struct {
	prefs        config.Preferences
	window       fyne.Window
	localization *Localization
	onSave       func(config.Preferences)
	dialog       *dialog.ConfirmDialog

	// UI components
	folderEntry    *widget.Entry
	formatSelect   *widget.Select
	languageSelect *widget.Select

	// language display name -> code
	languageCodes map[string]string
}

// NewPreferencesDialog creates a new preferences dialog. onSave receives the edited
// preferences when the user confirms.
func NewPreferencesDialog(prefs config.Preferences, window fyne.Window, localization *Localization, onSave func(config.Preferences)) *PreferencesDialog {
	pd := &PreferencesDialog{
		prefs:         prefs,
		window:        window,
		localization:  localization,
		onSave:        onSave,
		languageCodes: make(map[string]string),
	}

	pd.createUI()
	return pd
}

// Show displays the preferences dialog
func (pd *PreferencesDialog) Show() {
	pd.loadCurrentPreferences()
	pd.dialog.Show()
}

func (pd *PreferencesDialog) createUI() {
	l := pd.localization

	pd.folderEntry = widget.NewEntry()
	browseBtn := widget.NewButton(IconFolder+" "+l.GetText(KeyBrowse), pd.onBrowseDirectory)
	folderRow := container.NewBorder(nil, nil, nil, browseBtn, pd.folderEntry)

	formatOptions := []string{}
	for _, codec := range config.GetCodecOptions() {
		formatOptions = append(formatOptions, codec.Label())
	}
	pd.formatSelect = widget.NewSelect(formatOptions, nil)

	languageOptions := []string{}
	for code, name := range config.GetLanguageOptions() {
		pd.languageCodes[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	pd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyDestinationFolder)),
		folderRow,

		widget.NewLabel(l.GetText(KeyPreferredFormat)),
		pd.formatSelect,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyLanguage)),
		pd.languageSelect,
	)

	pd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeyPreferences),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		pd.confirm,
		pd.window,
	)

	pd.dialog.Resize(fyne.NewSize(PreferencesDialogWidth, PreferencesDialogHeight))
}

func (pd *PreferencesDialog) loadCurrentPreferences() {
	pd.folderEntry.SetText(pd.prefs.DestinationFolder)
	pd.formatSelect.SetSelected(pd.prefs.Format.Label())
	pd.languageSelect.SetSelected(config.GetLanguageOptions()[pd.prefs.Language])
}

func (pd *PreferencesDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		pd.folderEntry.SetText(uri.Path())
	}, pd.window)
}

func (pd *PreferencesDialog) confirm(confirmed bool) {
	if !confirmed {
		return
	}
	if pd.onSave != nil {
		pd.onSave(pd.collect())
	}
}

// collect builds preferences from the form, keeping current values for empty fields
func (pd *PreferencesDialog) collect() config.Preferences {
	prefs := pd.prefs

	prefs.DestinationFolder = pd.folderEntry.Text

	if codec, ok := model.ParseCodec(pd.formatSelect.Selected); ok {
		prefs.Format = codec
	}

	if code, ok := pd.languageCodes[pd.languageSelect.Selected]; ok {
		prefs.Language = code
	}

	return prefs
}
