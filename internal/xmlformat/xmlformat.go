// Package xmlformat reads and writes the XML form of a properties document:
//
//	<?xml version="1.0" encoding="UTF-8" standalone="no"?>
//	<!DOCTYPE properties SYSTEM "http://java.sun.com/dtd/properties.dtd">
//	<properties>
//	<comment>optional</comment>
//	<entry key="k">v</entry>
//	</properties>
package xmlformat

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// SystemID is the only DTD system identifier a document may declare.
const SystemID = "http://java.sun.com/dtd/properties.dtd"

// DefaultEncoding is used by Write when no encoding is given.
const DefaultEncoding = "UTF-8"

// ErrUnsupportedEncoding is returned for character encodings that cannot be
// resolved.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// ErrInvalidChar is returned by Write when a key, value or comment holds a
// character that XML 1.0 cannot represent, even as a character reference.
var ErrInvalidChar = errors.New("character not allowed in XML")

// Sink receives entries in document order.
type Sink interface {
	Put(key, value string)
}

// Source supplies the entries to write, in the order returned by Keys.
type Source interface {
	Keys() []string
	Get(key string) (string, bool)
}

// SyntaxError describes a document that does not follow the properties
// schema. Path names the offending element, for example
// "properties/entry[2]"; it is empty when the problem is not tied to one.
type SyntaxError struct {
	Line int
	Path string
	Msg  string
	Err  error
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "line %d", e.Line)
	if e.Path != "" {
		fmt.Fprintf(&b, " (%s)", e.Path)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// lookupEncoding resolves an IANA charset name. A nil Encoding with a nil
// error means UTF-8, which needs no transcoding.
func lookupEncoding(name string) (encoding.Encoding, error) {
	if isUTF8(name) {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, name)
	}
	return enc, nil
}

func isUTF8(name string) bool {
	return strings.EqualFold(name, "UTF-8") || strings.EqualFold(name, "UTF8")
}

// isXMLChar reports whether r matches the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		r >= 0x20 && r <= 0xD7FF ||
		r >= 0xE000 && r <= 0xFFFD ||
		r >= 0x10000 && r <= 0x10FFFF
}

// checkText returns an error for the first rune of s that isXMLChar rejects.
// Invalid UTF-8 is rejected too.
func checkText(what, s string) error {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return fmt.Errorf("%w: %s has invalid UTF-8 at byte %d", ErrInvalidChar, what, i)
			}
		}
		if !isXMLChar(r) {
			return fmt.Errorf("%w: %s contains %U", ErrInvalidChar, what, r)
		}
	}
	return nil
}
