package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Notifier surfaces modal messages to the user. Calls must happen on the UI goroutine.
type Notifier interface {
	Info(title, message string)
	Warn(title, message string)
	Error(title, message string)
	// Completed reports a finished download; openFolder is invoked if the user asks for it.
	Completed(title, message string, openFolder func())
}

// dialogNotifier shows Fyne dialogs on the main window
type dialogNotifier struct {
	window       fyne.Window
	localization *Localization
}

// NewDialogNotifier creates a notifier backed by Fyne dialogs
func NewDialogNotifier(window fyne.Window, localization *Localization) Notifier {
	return &dialogNotifier{window: window, localization: localization}
}

func (n *dialogNotifier) Info(title, message string) {
	n.show(title, message, theme.InfoIcon())
}

func (n *dialogNotifier) Warn(title, message string) {
	n.show(title, message, theme.WarningIcon())
}

func (n *dialogNotifier) Error(title, message string) {
	n.show(title, message, theme.ErrorIcon())
}

func (n *dialogNotifier) Completed(title, message string, openFolder func()) {
	content := n.content(message, theme.ConfirmIcon())
	d := dialog.NewCustomConfirm(
		title,
		n.localization.GetText(KeyOpenFolder),
		n.localization.GetText(KeyOK),
		content,
		func(open bool) {
			if open && openFolder != nil {
				openFolder()
			}
		},
		n.window,
	)
	d.Show()
}

func (n *dialogNotifier) show(title, message string, icon fyne.Resource) {
	d := dialog.NewCustom(title, n.localization.GetText(KeyOK), n.content(message, icon), n.window)
	d.Show()
}

func (n *dialogNotifier) content(message string, icon fyne.Resource) fyne.CanvasObject {
	label := widget.NewLabel(message)
	label.Wrapping = fyne.TextWrapWord
	return container.NewBorder(nil, nil, widget.NewIcon(icon), nil, label)
}
