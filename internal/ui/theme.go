package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Palette is the fixed set of colors applied to every styled element
type Palette struct {
	Background      color.Color
	Foreground      color.Color
	InputBackground color.Color
	Button          color.Color
	Primary         color.Color
	Placeholder     color.Color
}

// Light and dark palettes
var (
	LightPalette = Palette{
		Background:      color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		Foreground:      color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
		InputBackground: color.RGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF},
		Button:          color.RGBA{R: 0xF0, G: 0xF0, B: 0xF0, A: 0xFF},
		Primary:         color.RGBA{R: 0x00, G: 0x78, B: 0xD4, A: 0xFF},
		Placeholder:     color.RGBA{R: 0x75, G: 0x75, B: 0x75, A: 0xFF},
	}
	DarkPalette = Palette{
		Background:      color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xFF},
		Foreground:      color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		InputBackground: color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
		Button:          color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF},
		Primary:         color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF},
		Placeholder:     color.RGBA{R: 0xAA, G: 0xAA, B: 0xAA, A: 0xFF},
	}
)

// AppTheme is a compact theme whose light/dark palette is chosen by the user,
// independent of the OS variant
type AppTheme struct {
	dark bool
}

// NewAppTheme creates a new theme in the given mode
func NewAppTheme(dark bool) *AppTheme {
	return &AppTheme{dark: dark}
}

// IsDark returns true if the dark palette is active
func (t *AppTheme) IsDark() bool {
	return t.dark
}

// Toggled returns a theme with the opposite palette
func (t *AppTheme) Toggled() *AppTheme {
	return &AppTheme{dark: !t.dark}
}

// Palette returns the active palette
func (t *AppTheme) Palette() Palette {
	if t.dark {
		return DarkPalette
	}
	return LightPalette
}

// Color returns theme colors
func (t *AppTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	p := t.Palette()

	switch name {
	case theme.ColorNameBackground, theme.ColorNameOverlayBackground, theme.ColorNameMenuBackground:
		return p.Background
	case theme.ColorNameForeground:
		return p.Foreground
	case theme.ColorNameInputBackground:
		return p.InputBackground
	case theme.ColorNameButton:
		return p.Button
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return p.Primary
	case theme.ColorNamePlaceHolder:
		return p.Placeholder
	case theme.ColorNameError:
		return color.RGBA{R: 183, G: 28, B: 28, A: 255}
	case theme.ColorNameSuccess:
		return color.RGBA{R: 46, G: 160, B: 67, A: 255}
	}

	return theme.DefaultTheme().Color(name, t.variant())
}

func (t *AppTheme) variant() fyne.ThemeVariant {
	if t.dark {
		return theme.VariantDark
	}
	return theme.VariantLight
}

// Font returns theme fonts
func (t *AppTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *AppTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *AppTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}
