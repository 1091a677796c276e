// Package config loads rpncalc settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FileName is the name of the configuration file in the user config dir.
const FileName = "rpncalc.yaml"

type Config struct {
	// Format is the output format for results: text, json, or yaml.
	Format string `json:"format"`
	// Verb is the fmt verb used to print results in text format.
	Verb string `json:"verb"`
	// Echo prints the token and postfix sequences before each result.
	Echo bool `json:"echo"`
	// Address is the listen address for serve.
	Address string `json:"address"`
	// Verbose enables debug logging.
	Verbose bool `json:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		Format:  FormatText,
		Verb:    "%g",
		Echo:    false,
		Address: ":8080",
		Verbose: false,
	}
}

// Validate checks that the config describes a usable output setup.
func (config *Config) Validate() error {
	switch config.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format '%s'", config.Format)
	}

	if config.Verb == "" {
		return fmt.Errorf("result format verb cannot be empty")
	}

	return nil
}

// FromFile reads a config file. Fields missing from the file keep their
// default values.
func FromFile(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(bytes, config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file '%s': %w", path, err)
	}

	return config, nil
}

// FromDefaultFile reads the config file from the user config dir. A missing
// file gives the default config.
func FromDefaultFile() (*Config, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfig(), nil
	}

	config, err := FromFile(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return config, err
}
