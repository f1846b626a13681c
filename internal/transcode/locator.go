// Package transcode resolves and probes the ffmpeg toolchain that yt-dlp uses
// for audio extraction. The binaries are expected at a fixed path relative to
// the application directory.
package transcode

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Executable and layout constants
const (
	FFmpegDirName       = "ffmpeg"
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	WindowsExeSuffix    = ".exe"
	VersionFlag         = "-version"
	VersionLinePrefix   = "ffmpeg version "
	DefaultProbeTimeout = 5 * time.Second
)

// ErrNotFound is returned when a required binary is absent
var ErrNotFound = errors.New("transcoding binary not found")

// Binaries holds resolved absolute paths of the ffmpeg toolchain
type Binaries struct {
	Dir     string
	FFmpeg  string
	FFprobe string
}

// Locator resolves binaries under <baseDir>/ffmpeg, or directly under an override dir
type Locator struct {
	baseDir  string
	override string
	goos     string
}

// NewLocator creates a locator. baseDir is the application directory; override,
// when non-empty, is used as the ffmpeg directory itself.
func NewLocator(baseDir, override string) *Locator {
	return &Locator{
		baseDir:  baseDir,
		override: override,
		goos:     runtime.GOOS,
	}
}

// ApplicationDir returns the directory that contains the running executable
func ApplicationDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

// Dir returns the directory the binaries are looked up in
func (l *Locator) Dir() string {
	if l.override != "" {
		return l.override
	}
	return filepath.Join(l.baseDir, FFmpegDirName)
}

// Locate checks that ffmpeg and ffprobe exist as regular files
func (l *Locator) Locate() (Binaries, error) {
	dir := l.Dir()
	bins := Binaries{
		Dir:     dir,
		FFmpeg:  filepath.Join(dir, l.executableName(FFmpegCommand)),
		FFprobe: filepath.Join(dir, l.executableName(FFprobeCommand)),
	}

	for _, path := range []string{bins.FFmpeg, bins.FFprobe} {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			return bins, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
	}

	return bins, nil
}

func (l *Locator) executableName(name string) string {
	if l.goos == "windows" {
		return name + WindowsExeSuffix
	}
	return name
}

// ProbeVersion runs "ffmpeg -version" and returns the reported version string
func ProbeVersion(ctx context.Context, ffmpegPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, ffmpegPath, VersionFlag)
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to run ffmpeg: %w", err)
	}

	return parseVersion(output)
}

// parseVersion extracts the version token from the first "ffmpeg version" line
func parseVersion(output []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, VersionLinePrefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(line, VersionLinePrefix))
		if len(fields) > 0 {
			return fields[0], nil
		}
	}
	return "", fmt.Errorf("unrecognized ffmpeg -version output")
}
