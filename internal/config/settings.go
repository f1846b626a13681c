package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ytget/yt-audio-downloader/internal/model"
)

// Settings keys of the persisted preferences file
const (
	KeyDestinationFolder = "destination_folder"
	KeyLanguage          = "language"
	KeyDarkMode          = "dark_mode"
	KeyFormat            = "format"
)

// Default values
const (
	DefaultDestinationFolder = ""
	DefaultLanguage          = "en"
	DefaultDarkMode          = false
	DefaultFormat            = model.DefaultCodec
)

// File permissions
const (
	DefaultFilePermissions = 0o644
	DefaultDirPermissions  = 0o755
)

// Preferences is the persisted user configuration
type Preferences struct {
	DestinationFolder string
	Language          string
	DarkMode          bool
	Format            model.Codec
}

// DefaultPreferences returns the preferences used when nothing was persisted
func DefaultPreferences() Preferences {
	return Preferences{
		DestinationFolder: DefaultDestinationFolder,
		Language:          DefaultLanguage,
		DarkMode:          DefaultDarkMode,
		Format:            DefaultFormat,
	}
}

// fileRecord mirrors the on-disk shape. Pointers distinguish absent keys from zero values.
type fileRecord struct {
	DestinationFolder *string `json:"destination_folder,omitempty"`
	Language          *string `json:"language,omitempty"`
	DarkMode          *bool   `json:"dark_mode,omitempty"`
	Format            *string `json:"format,omitempty"`
}

// Store reads and writes Preferences as a flat JSON file
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted preferences. A missing file yields the defaults;
// missing or unrecognized values fall back to their defaults individually.
func (s *Store) Load() (Preferences, error) {
	prefs := DefaultPreferences()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("failed to read preferences %s: %w", s.path, err)
	}

	var rec fileRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return prefs, fmt.Errorf("failed to parse preferences %s: %w", s.path, err)
	}

	if rec.DestinationFolder != nil {
		prefs.DestinationFolder = *rec.DestinationFolder
	}
	if rec.Language != nil && IsSupportedLanguage(*rec.Language) {
		prefs.Language = *rec.Language
	}
	if rec.DarkMode != nil {
		prefs.DarkMode = *rec.DarkMode
	}
	if rec.Format != nil {
		if codec, ok := model.ParseCodec(*rec.Format); ok {
			prefs.Format = codec
		}
	}

	return prefs, nil
}

// Save overwrites the backing file with all four keys
func (s *Store) Save(prefs Preferences) error {
	format := string(prefs.Format)
	rec := fileRecord{
		DestinationFolder: &prefs.DestinationFolder,
		Language:          &prefs.Language,
		DarkMode:          &prefs.DarkMode,
		Format:            &format,
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
			return fmt.Errorf("failed to create preferences directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(s.path, data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write preferences %s: %w", s.path, err)
	}
	return nil
}

// GetLanguageOptions returns available language options
func GetLanguageOptions() map[string]string {
	return map[string]string{
		"en": "English",
		"fr": "Français",
		"ru": "Русский",
		"pt": "Português",
	}
}

// SupportedLanguages returns the language tags in menu order
func SupportedLanguages() []string {
	return []string{"en", "fr", "ru", "pt"}
}

// IsSupportedLanguage reports whether tag is one of SupportedLanguages
func IsSupportedLanguage(tag string) bool {
	_, ok := GetLanguageOptions()[tag]
	return ok
}

// GetCodecOptions returns available codec options
func GetCodecOptions() []model.Codec {
	return model.AllCodecs()
}
