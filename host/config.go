// Package host exposes the rbxdoc module surface to a scripting host:
// background-offloaded serialize/deserialize entry points, synchronous
// registry mutation, and the derived-capability installer that runs at
// module construction.
package host

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the host configuration file looked up per project.
const ConfigFileName = "rbxdoc.toml"

// Config is the rbxdoc.toml host configuration.
type Config struct {
	Offload OffloadConfig `toml:"offload"`
	Studio  StudioConfig  `toml:"studio"`
	Log     LogConfig     `toml:"log"`
}

// OffloadConfig sizes the background worker pool.
type OffloadConfig struct {
	// Workers is the worker count; zero or less means one per CPU.
	Workers int `toml:"workers"`
}

// StudioConfig overrides Studio installation discovery.
type StudioConfig struct {
	Root string `toml:"root"`
}

// LogConfig configures the commonlog backend.
type LogConfig struct {
	Verbosity int `toml:"verbosity"`
}

// DefaultConfig returns the configuration used when no rbxdoc.toml is
// present.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig parses rbxdoc.toml from the given directory. A missing file
// is not an error; defaults are returned.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return &cfg, nil
}
