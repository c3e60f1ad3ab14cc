package properties

import (
	"errors"
	"fmt"

	"orderedprops/internal/textformat"
	"orderedprops/internal/xmlformat"
)

var (
	// ErrFormat matches every *FormatError via errors.Is.
	ErrFormat = errors.New("invalid properties format")

	// ErrUnsupportedEncoding is returned when an XML character encoding
	// cannot be resolved.
	ErrUnsupportedEncoding = xmlformat.ErrUnsupportedEncoding

	// ErrInvalidXMLChar is returned by StoreXML when a key, value or
	// comment contains a character XML 1.0 does not allow, such as a form
	// feed or another C0 control. Nothing is written in that case.
	ErrInvalidXMLChar = xmlformat.ErrInvalidChar
)

// FormatError reports malformed input. For text input Line is the line on
// which the offending entry starts; for XML input Path names the element
// (for example "properties/entry[3]") when it can be determined.
type FormatError struct {
	Line int
	Path string
	Msg  string
	Err  error
}

func (e *FormatError) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("%s: line %d (%s): %s", ErrFormat, e.Line, e.Path, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %s", ErrFormat, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", ErrFormat, e.Msg)
}

// Is makes errors.Is(err, ErrFormat) hold for any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func (e *FormatError) Unwrap() error { return e.Err }

// formatError converts syntax errors of the format packages to *FormatError
// and leaves every other error, notably I/O errors, untouched.
func formatError(err error) error {
	var textErr *textformat.SyntaxError
	if errors.As(err, &textErr) {
		return &FormatError{Line: textErr.Line, Msg: textErr.Msg}
	}
	var xmlErr *xmlformat.SyntaxError
	if errors.As(err, &xmlErr) {
		return &FormatError{Line: xmlErr.Line, Path: xmlErr.Path, Msg: xmlErr.Msg, Err: xmlErr.Err}
	}
	return err
}
