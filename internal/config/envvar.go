package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names for props configuration.
const (
	EnvConfig       = "PROPS_CONFIG"        // Path to config.yaml
	EnvSuppressDate = "PROPS_SUPPRESS_DATE" // Omit the timestamp comment ("1" or "true")
	EnvEncoding     = "PROPS_ENCODING"      // Text file encoding (latin1, utf8)
	EnvJSON         = "PROPS_JSON"          // Enable JSON output ("1" or "true")
)

// ApplyEnvOverrides overrides config values from PROPS_* environment
// variables. Overrides apply in memory only.
func ApplyEnvOverrides(cfg *Config) error {
	if v := os.Getenv(EnvSuppressDate); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSuppressDate, err)
		}
		cfg.Write.SuppressDate = b
	}
	if v := os.Getenv(EnvEncoding); v != "" {
		cfg.Write.Encoding = v
	}
	if v := os.Getenv(EnvJSON); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJSON, err)
		}
		cfg.JSON = b
	}
	return nil
}
