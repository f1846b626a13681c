package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/yt-audio-downloader/internal/config"
	"github.com/ytget/yt-audio-downloader/internal/model"
)

func TestPreferencesDialog_Confirm(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	w := test.NewWindow(nil)
	defer w.Close()

	var saved *config.Preferences
	pd := NewPreferencesDialog(config.DefaultPreferences(), w, NewLocalization(), func(p config.Preferences) {
		saved = &p
	})
	pd.loadCurrentPreferences()

	if pd.formatSelect.Selected != "WAV" {
		t.Fatalf("format = %q", pd.formatSelect.Selected)
	}

	pd.folderEntry.SetText("/music")
	pd.formatSelect.SetSelected("FLAC")
	pd.languageSelect.SetSelected(config.GetLanguageOptions()["ru"])

	pd.confirm(false)
	if saved != nil {
		t.Fatal("cancel must not save")
	}

	pd.confirm(true)
	if saved == nil {
		t.Fatal("expected preferences to be saved")
	}
	if saved.DestinationFolder != "/music" || saved.Format != model.CodecFLAC || saved.Language != "ru" {
		t.Fatalf("saved = %+v", *saved)
	}
}

func TestDialogNotifier_ShowsOverlay(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	w := test.NewWindow(nil)
	defer w.Close()

	n := NewDialogNotifier(w, NewLocalization())
	n.Warn("Warning", "Please enter the video link.")

	if w.Canvas().Overlays().Top() == nil {
		t.Fatal("expected a dialog overlay")
	}
}
