// Package config handles props configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Text encodings accepted by write.encoding.
const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf8"
)

// Config represents the contents of the props config.yaml.
type Config struct {
	Write WriteConfig `yaml:"write"`
	XML   XMLConfig   `yaml:"xml"`
	JSON  bool        `yaml:"json"`
}

// WriteConfig controls how text properties files are written.
type WriteConfig struct {
	SuppressDate bool   `yaml:"suppress_date"`
	Encoding     string `yaml:"encoding"`
	Comment      string `yaml:"comment"`
}

type XMLConfig struct {
	Encoding string `yaml:"encoding"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Write: WriteConfig{
			Encoding: EncodingLatin1,
		},
		XML: XMLConfig{
			Encoding: "UTF-8",
		},
	}
}

// Load reads config.yaml from path and applies defaults for missing fields.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Write.Encoding == "" {
		cfg.Write.Encoding = EncodingLatin1
	}
	if cfg.XML.Encoding == "" {
		cfg.XML.Encoding = "UTF-8"
	}

	return cfg, nil
}

// Write writes the provided configuration to path.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// DefaultPath returns the config file location used when neither --config
// nor PROPS_CONFIG is set.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, "props", "config.yaml"), nil
}

// Resolve loads the configuration for a command invocation. An explicit
// path (from --config) or PROPS_CONFIG must exist; the default location is
// optional and falls back to Default. Environment overrides are applied and
// the result is validated.
func Resolve(explicit string) (Config, string, error) {
	path := explicit
	required := true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		required = false
		p, err := DefaultPath()
		if err != nil {
			return Config{}, "", err
		}
		path = p
	}

	cfg, err := Load(path)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !required:
		cfg = Default()
	case errors.Is(err, os.ErrNotExist):
		return Config{}, "", fmt.Errorf("config file %s does not exist", path)
	default:
		return Config{}, "", fmt.Errorf("loading %s: %w", path, err)
	}

	if err := ApplyEnvOverrides(&cfg); err != nil {
		return Config{}, "", err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}
