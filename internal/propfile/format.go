package propfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies the on-disk representation of a properties file.
type Format int

const (
	// FormatAuto selects the format from the file extension.
	FormatAuto Format = iota
	FormatText
	FormatXML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatXML:
		return "xml"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return FormatAuto, nil
	case "text", "properties":
		return FormatText, nil
	case "xml":
		return FormatXML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatAuto, fmt.Errorf("unknown format %q (want text, xml or yaml)", name)
}

// DetectFormat picks a format from the extension of path. Anything that is
// not .xml, .yaml or .yml is treated as the line-oriented text format.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return FormatXML
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

func resolveFormat(path string, f Format) Format {
	if f == FormatAuto {
		return DetectFormat(path)
	}
	return f
}
