package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds repository-level settings read from whose.toml.
type Config struct {
	// CodeownersPath overrides the candidate-location probe.
	CodeownersPath string `toml:"codeowners_path"`
	// Ignore lists doublestar globs excluded from directory walks.
	Ignore []string `toml:"ignore"`
	// Format is the default output format.
	Format string `toml:"format"`
}

const fileName = "whose.toml"

// Read loads whose.toml from the repository root. A missing file yields
// the defaults; a malformed file yields the defaults and an error.
func Read(root string) (*Config, error) {
	defaultConfig := &Config{
		CodeownersPath: "",
		Ignore:         []string{},
		Format:         "default",
	}

	path := filepath.Join(root, fileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return defaultConfig, nil
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return defaultConfig, err
	}
	config := defaultConfig
	if err := toml.Unmarshal(contents, config); err != nil {
		return &Config{Ignore: []string{}, Format: "default"}, err
	}
	if config.Format == "" {
		config.Format = "default"
	}
	return config, nil
}
