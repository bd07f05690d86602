// Package config loads optional build defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
)

// DefaultFileName is looked up in the working directory when no
// config path is given.
const DefaultFileName = "pbd-epub-builder.yaml"

// Config holds build defaults. CLI flags override these.
type Config struct {
	DataDir     string      `yaml:"dataDir"`     // Directory holding downloaded txt/images
	OutputDir   string      `yaml:"outputDir"`   // Where EPUBs are written
	LibraryPath string      `yaml:"libraryPath"` // DuckDB library file
	UseIndex    bool        `yaml:"useIndex"`    // Number novel titles
	Image       ImageConfig `yaml:"image"`
}

// ImageConfig defines optional image optimization.
type ImageConfig struct {
	Device string `yaml:"device"` // Device profile id (empty = keep images as-is)
}

// DefaultConfig returns the defaults used without a config file.
func DefaultConfig() *Config {
	return &Config{
		DataDir:     ".",
		OutputDir:   ".",
		LibraryPath: "pbd-library.db",
	}
}

// Load reads a config file. An empty path falls back to
// DefaultFileName; if that is absent too, defaults are returned.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFileName
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	return cfg, nil
}
