package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variable names
const (
	EnvConfigFile = "YTA_CONFIG_FILE"
	EnvFFmpegDir  = "YTA_FFMPEG_DIR"
	EnvLogLevel   = "YTA_LOG_LEVEL"
)

const (
	AppDirName         = "yt-audio-downloader"
	ConfigFileName     = "config.json"
	DotEnvFileName     = ".env"
	DefaultLogLevel    = zerolog.InfoLevel
	FallbackConfigPath = ConfigFileName
)

// Environment holds process-level overrides resolved at startup
type Environment struct {
	ConfigFile string
	FFmpegDir  string // empty means "next to the executable"
	LogLevel   zerolog.Level
}

// LoadEnvironment reads an optional .env file and resolves the overrides.
// A missing .env is not an error. An unreadable one is reported, but the
// returned Environment is still resolved from the process environment.
func LoadEnvironment() (Environment, error) {
	return loadEnvironmentFile(DotEnvFileName)
}

func loadEnvironmentFile(path string) (Environment, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return environmentFrom(os.Getenv), fmt.Errorf("failed to read %s: %w", path, err)
	}
	return environmentFrom(os.Getenv), nil
}

func environmentFrom(getenv func(string) string) Environment {
	env := Environment{
		ConfigFile: getenv(EnvConfigFile),
		FFmpegDir:  getenv(EnvFFmpegDir),
		LogLevel:   DefaultLogLevel,
	}

	if env.ConfigFile == "" {
		env.ConfigFile = DefaultConfigFile()
	}

	if raw := getenv(EnvLogLevel); raw != "" {
		if level, err := zerolog.ParseLevel(raw); err == nil {
			env.LogLevel = level
		}
	}

	return env
}

// DefaultConfigFile returns the preferences path under the XDG config home
func DefaultConfigFile() string {
	path, err := xdg.ConfigFile(filepath.Join(AppDirName, ConfigFileName))
	if err != nil {
		return FallbackConfigPath
	}
	return path
}

// SuggestedFolder returns the user's Downloads directory, used as the picker start location
func SuggestedFolder() string {
	return xdg.UserDirs.Download
}
