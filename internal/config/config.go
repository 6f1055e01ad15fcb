// Package config reads the optional uncovered.toml from the source root.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Context          int      `toml:"context"`
	ExcludeMarkers   []string `toml:"exclude_markers"`
	Ignore           []string `toml:"ignore"`
	SourceExtensions []string `toml:"source_extensions"`
}

const configFileName = "uncovered.toml"

// DefaultContext is the number of context lines shown around uncovered code
// when neither the config file nor the --context flag say otherwise.
const DefaultContext = 3

func defaultConfig() *Config {
	return &Config{
		Context:          DefaultContext,
		ExcludeMarkers:   []string{"/nix/store"},
		Ignore:           []string{},
		SourceExtensions: []string{},
	}
}

// Read loads uncovered.toml from root. A missing file is not an error; a
// malformed one returns the defaults along with the error so the caller can
// warn and continue.
func Read(root string) (*Config, error) {
	config := defaultConfig()

	fileName := filepath.Join(root, configFileName)
	if _, err := os.Stat(fileName); errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	file, err := os.ReadFile(fileName)
	if err != nil {
		return config, err
	}
	if err := toml.Unmarshal(file, config); err != nil {
		return defaultConfig(), err
	}
	if config.Context <= 0 {
		config.Context = DefaultContext
	}
	return config, nil
}
