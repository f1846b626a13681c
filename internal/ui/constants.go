package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconFolder = "📁"
	IconMoon   = "☾"
	IconSun    = "☀"
)

// Text fragments
const (
	DecimalFormat     = "%.2f"
	WindowTitleFormat = "%s v%s"
)

// Layout sizing
const (
	WindowWidth  float32 = 520
	WindowHeight float32 = 340

	FolderPickerWidth  float32 = 640
	FolderPickerHeight float32 = 480

	PreferencesDialogWidth  float32 = 460
	PreferencesDialogHeight float32 = 320
)

// AppName is shown in the About dialog
const AppName = "YT Audio Downloader"

// AppVersion is set during build via -ldflags "-X github.com/ytget/yt-audio-downloader/internal/ui.AppVersion=X.Y.Z"
var AppVersion = "dev"
