// Package textformat reads and writes the line-oriented properties format.
//
// Entries are exchanged through the Sink and Source interfaces so that the
// caller decides where parsed entries go and in which order they are written.
package textformat

import (
	"fmt"
	"runtime"
)

// Sink receives entries in the order they appear in the input.
type Sink interface {
	Put(key, value string)
}

// Source supplies the entries to write, in the order returned by Keys.
type Source interface {
	Keys() []string
	Get(key string) (string, bool)
}

// LineSeparator is the line terminator written by NewWriter.
var LineSeparator = defaultLineSeparator()

func defaultLineSeparator() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// DateLayout renders the timestamp comment the way the classic properties
// writer does.
const DateLayout = "Mon Jan 02 15:04:05 MST 2006"

// SyntaxError describes malformed input. Line is 1-based and refers to the
// natural line on which the offending logical line starts.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}
