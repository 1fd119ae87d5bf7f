package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/bleviet/ipcraft/pkg/pipeline"
)

// Config holds user preferences loaded from ~/.config/ipcraft/config.toml.
// Command-line flags override these values; missing keys fall back to
// built-in defaults.
type Config struct {
	// View is the default visualization type ("strip" or "hierarchy").
	View string `toml:"view"`

	// Width is the default strip drawing width in pixels.
	Width float64 `toml:"width"`

	// RegisterBits is the assumed register width for documents that omit it.
	RegisterBits int64 `toml:"register_bits"`

	// NoCache disables the artifact cache for all commands.
	NoCache bool `toml:"no_cache"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		View:         pipeline.DefaultView,
		Width:        pipeline.DefaultWidth,
		RegisterBits: 32,
	}
}

// LoadConfig reads the user config file, falling back to defaults when the
// file is missing or malformed. A broken config never blocks the CLI.
func LoadConfig() *Config {
	cfg := DefaultConfig()

	dir, err := configDir()
	if err != nil {
		return cfg
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err != nil {
		return cfg
	}

	loaded := DefaultConfig()
	if _, err := toml.DecodeFile(path, loaded); err != nil {
		return cfg
	}
	if loaded.View != "" && pipeline.ValidViews[loaded.View] {
		cfg.View = loaded.View
	}
	if loaded.Width > 0 {
		cfg.Width = loaded.Width
	}
	if loaded.RegisterBits > 0 {
		cfg.RegisterBits = loaded.RegisterBits
	}
	cfg.NoCache = loaded.NoCache
	return cfg
}
