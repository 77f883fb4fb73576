// Package config holds runtime configuration: defaults, the optional TOML
// defaults file, and validation. Flag parsing lives in cmd/framegrab;
// flags override file values, which override built-in defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/backmassage/framegrab/internal/term"
)

//go:embed sample_config.toml
var sampleConfig string

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and finally mutated by flag parsing
// before being passed (by pointer) to packages that need it.
type Config struct {
	// Paths (set from positional args, never from the file).
	Input     string `toml:"-"`
	OutputDir string `toml:"-"`

	// Extraction options.
	Start     string  `toml:"-"`         // Optional seek position (per-run, not a default).
	End       string  `toml:"-"`         // Optional stop position.
	FPS       float64 `toml:"fps"`       // 0 means every source frame.
	Pattern   string  `toml:"pattern"`   // Default: "frame_%06d.jpg".
	Overwrite bool    `toml:"overwrite"` // Default: false (ffmpeg -n).

	// Behavior flags.
	DryRun  bool `toml:"-"`
	Verbose bool `toml:"verbose"`

	// Display and logging.
	ColorMode term.ColorMode `toml:"color"`    // auto | always | never.
	LogFile   string         `toml:"log_file"` // Optional append-to-file sink.
}

// DefaultConfig returns a Config with built-in defaults.
func DefaultConfig() Config {
	return Config{
		Pattern:   "frame_%06d.jpg",
		ColorMode: term.ColorAuto,
	}
}

// DefaultPath returns the default config file location
// (~/.config/framegrab/config.toml on Linux).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "framegrab", "config.toml"), nil
}

// LoadFile overlays cfg with values from the TOML file at path. When path
// is empty the default location is used; a missing file at the default
// location is not an error (a missing explicit path is).
func LoadFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// CreateSample writes the embedded sample configuration to path, creating
// parent directories as needed. Refuses to clobber an existing file.
func CreateSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path. A path
// consisting solely of slashes ("/", "//", ...) is the filesystem root,
// not the empty string.
func NormalizeDirArg(path string) string {
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" && path != "" {
		return "/"
	}
	return trimmed
}

// Validate checks the enum and default fields that do not depend on the
// filesystem. Per-run validation (input file, times, fps, pattern) happens
// in the extract package where the typed failure codes live.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case term.ColorAuto, term.ColorAlways, term.ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.Pattern == "" {
		return errors.New("pattern must not be empty")
	}
	return nil
}
