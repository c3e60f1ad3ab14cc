package config

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

var validEncodings = []string{EncodingLatin1, EncodingUTF8}

// Validate checks every field of cfg. It returns an error describing every
// invalid value found, or nil if all values are valid.
func Validate(cfg Config) error {
	var errs []string

	if !slices.Contains(validEncodings, cfg.Write.Encoding) {
		errs = append(errs, fmt.Sprintf(
			"write.encoding: invalid value %q (allowed: %s)",
			cfg.Write.Encoding, strings.Join(validEncodings, ", ")))
	}

	if cfg.XML.Encoding == "" {
		errs = append(errs, "xml.encoding: must not be empty")
	} else if !strings.EqualFold(cfg.XML.Encoding, "UTF-8") {
		if enc, err := ianaindex.IANA.Encoding(cfg.XML.Encoding); err != nil || enc == nil {
			errs = append(errs, fmt.Sprintf(
				"xml.encoding: unsupported character encoding %q", cfg.XML.Encoding))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
}
