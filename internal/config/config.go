// Package config loads the application configuration file.
//
// The file lives at <user config dir>/coverhue/config.json and is entirely
// optional: a missing file yields the zero configuration with a default
// palette directory. API credentials for the cover art sources only ever
// enter the program through this file; there is no global state.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Config carries the user-provided settings.
type Config struct {
	// LastFMAPIKey enables the Last.fm cover art source.
	LastFMAPIKey string `json:"lastfm_api_key"`

	// DiscogsToken enables the Discogs cover art source.
	DiscogsToken string `json:"discogs_token"`

	// PaletteDir is where palette records are stored. Defaults to
	// ~/.coverhue/palettes.
	PaletteDir string `json:"palette_dir"`
}

// DefaultPath returns the default configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config directory: %w", err)
	}
	return filepath.Join(dir, "coverhue", "config.json"), nil
}

// DefaultPaletteDir returns the default palette store directory.
func DefaultPaletteDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".coverhue", "palettes"), nil
}

// Load reads the configuration file at path from the given filesystem. A
// missing file is not an error; it yields the defaults. An empty path means
// the default location.
func Load(fs afero.Fs, path string) (Config, error) {
	var cfg Config

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return withDefaults(cfg)
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decoding config file %s: %w", path, err)
	}

	return withDefaults(cfg)
}

func withDefaults(cfg Config) (Config, error) {
	if cfg.PaletteDir == "" {
		dir, err := DefaultPaletteDir()
		if err != nil {
			return cfg, err
		}
		cfg.PaletteDir = dir
	}
	return cfg, nil
}
