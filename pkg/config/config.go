// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/user/framestep/pkg/decodejob"
	"github.com/user/framestep/pkg/ports"
	"github.com/user/framestep/pkg/session"
)

// FileName is the name of the settings file inside the config directory.
const FileName = "config.yaml"

// Config represents the full configuration for framestep.
type Config struct {
	// Decoding
	MaxFrames              int     `yaml:"max_frames"`
	DefaultFrameRate       float64 `yaml:"default_frame_rate"`
	DefaultFrameDurationMs int     `yaml:"default_frame_duration_ms"`
	FFmpegPath             string  `yaml:"ffmpeg_path"`

	// Window
	Window WindowConfig `yaml:"window"`
	Theme  ThemeConfig  `yaml:"theme"`

	// Sound
	Sound SoundConfig `yaml:"sound"`

	// Export
	Export ExportConfig `yaml:"export"`

	// Logging
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// WindowConfig represents the viewer window geometry.
type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// SoundConfig represents audio cue settings.
type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// ExportConfig represents frame export settings.
type ExportConfig struct {
	// Dir is where PNG files are written. Empty means next to the source file.
	Dir string `yaml:"dir"`
}

// ThemeConfig represents theming options.
type ThemeConfig struct {
	BackgroundColor  string `yaml:"background_color"`
	TextColor        string `yaml:"text_color"`
	AccentColor      string `yaml:"accent_color"`
	ProgressBarColor string `yaml:"progress_bar_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Decoding
		MaxFrames:              decodejob.DefaultMaxFrames,
		DefaultFrameRate:       30.0,
		DefaultFrameDurationMs: 100,

		// Window
		Window: WindowConfig{Width: 800, Height: 600},
		Theme: ThemeConfig{
			BackgroundColor:  "#1a1a2e",
			TextColor:        "#ffffff",
			AccentColor:      "#333355",
			ProgressBarColor: "#4ade80",
		},

		// Sound
		Sound: SoundConfig{Enabled: true, Volume: 0.3},

		// Logging
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file. Missing keys keep their defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// SaveToFile writes the configuration as YAML, creating the parent directory.
func SaveToFile(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the per-user settings file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "framestep", FileName), nil
}

// FindConfigFile resolves the settings file: an explicit path wins, otherwise
// the per-user file is used when it exists. It returns "" when there is none.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	path, err := DefaultPath()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Validation errors.
var (
	ErrInvalidMaxFrames  = errors.New("config: max_frames must be positive")
	ErrInvalidFrameRate  = errors.New("config: default_frame_rate must be positive")
	ErrInvalidDuration   = errors.New("config: default_frame_duration_ms must be positive")
	ErrInvalidWindowSize = errors.New("config: window size must be positive")
	ErrInvalidVolume     = errors.New("config: sound volume must be between 0 and 1")
)

// Validate checks value ranges.
func (c Config) Validate() error {
	switch {
	case c.MaxFrames <= 0:
		return ErrInvalidMaxFrames
	case c.DefaultFrameRate <= 0:
		return ErrInvalidFrameRate
	case c.DefaultFrameDurationMs <= 0:
		return ErrInvalidDuration
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return ErrInvalidWindowSize
	case c.Sound.Volume < 0 || c.Sound.Volume > 1:
		return ErrInvalidVolume
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() ports.LogLevel {
	return ports.ParseLogLevel(c.LogLevel)
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	return color.RGBA{
		R: hexValue(hex[0])<<4 | hexValue(hex[1]),
		G: hexValue(hex[2])<<4 | hexValue(hex[3]),
		B: hexValue(hex[4])<<4 | hexValue(hex[5]),
		A: 255,
	}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToSessionConfig converts Config to session.Config.
func (c Config) ToSessionConfig() session.Config {
	return session.Config{
		Job: decodejob.Options{
			MaxFrames:              c.MaxFrames,
			DefaultFrameRate:       c.DefaultFrameRate,
			DefaultFrameDurationMs: c.DefaultFrameDurationMs,
		},
	}
}
