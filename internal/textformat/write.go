package textformat

import (
	"io"
	"strings"
	"time"
	"unicode/utf16"
)

// Escape selects which characters the writer turns into \uXXXX escapes.
type Escape int

const (
	// EscapeNonASCII escapes every rune outside printable ASCII. Output is
	// then plain ASCII apart from Latin-1 characters in comments.
	EscapeNonASCII Escape = iota
	// EscapeControlOnly escapes control characters and leaves other runes as is.
	EscapeControlOnly
)

const hexDigits = "0123456789ABCDEF"

// Writer writes properties in the line-oriented format. Output is issued as
// a sequence of small writes (comment fragments, entries, line separators)
// rather than one write per line.
type Writer struct {
	w             io.Writer
	escape        Escape
	lineSeparator string
	err           error
}

// NewWriter returns a Writer that writes to w using LineSeparator.
func NewWriter(w io.Writer, escape Escape) *Writer {
	return &Writer{w: w, escape: escape, lineSeparator: LineSeparator}
}

// Write emits the comment block, a timestamp comment for date, and then
// every entry of src in order. An empty comments string writes no comment
// line. The first write error is returned unchanged.
func (w *Writer) Write(src Source, comments string, date time.Time) error {
	if comments != "" {
		w.writeComments(comments)
	}
	w.writeString("#" + date.Format(DateLayout))
	w.newLine()
	for _, key := range src.Keys() {
		value, _ := src.Get(key)
		w.writeString(w.convert(key, true) + "=" + w.convert(value, false))
		w.newLine()
	}
	return w.err
}

func (w *Writer) writeString(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *Writer) newLine() {
	w.writeString(w.lineSeparator)
}

// writeComments writes comments as one or more comment lines. Embedded line
// breaks start a new comment line, which is prefixed with '#' unless the
// text already begins with '#' or '!'.
func (w *Writer) writeComments(comments string) {
	w.writeString("#")
	runes := []rune(comments)
	last := 0
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		escapeRune := c > 0xff && w.escape == EscapeNonASCII
		if !escapeRune && c != '\n' && c != '\r' {
			continue
		}
		if last != i {
			w.writeString(string(runes[last:i]))
		}
		if escapeRune {
			w.writeString(unicodeEscape(c))
		} else {
			w.newLine()
			if c == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
				i++
			}
			if i == len(runes)-1 || (runes[i+1] != '#' && runes[i+1] != '!') {
				w.writeString("#")
			}
		}
		last = i + 1
	}
	if last < len(runes) {
		w.writeString(string(runes[last:]))
	}
	w.newLine()
}

// convert escapes s for use as a key or value. Keys have every space
// escaped; values only a leading one.
func (w *Writer) convert(s string, isKey bool) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i, c := range s {
		if c > 61 && c < 127 {
			if c == '\\' {
				b.WriteString(`\\`)
				continue
			}
			b.WriteRune(c)
			continue
		}
		switch c {
		case ' ':
			if i == 0 || isKey {
				b.WriteByte('\\')
			}
			b.WriteByte(' ')
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\f':
			b.WriteString(`\f`)
		case '=', ':', '#', '!':
			b.WriteByte('\\')
			b.WriteRune(c)
		default:
			if w.needsEscape(c) {
				b.WriteString(unicodeEscape(c))
			} else {
				b.WriteRune(c)
			}
		}
	}
	return b.String()
}

func (w *Writer) needsEscape(c rune) bool {
	if c < 0x20 || c == 0x7f {
		return true
	}
	return w.escape == EscapeNonASCII && c > 0x7e
}

// unicodeEscape renders c as \uXXXX, using a surrogate pair above U+FFFF.
func unicodeEscape(c rune) string {
	if c > 0xffff {
		hi, lo := utf16.EncodeRune(c)
		return unicodeEscape(hi) + unicodeEscape(lo)
	}
	return string([]byte{
		'\\', 'u',
		hexDigits[(c>>12)&0xf],
		hexDigits[(c>>8)&0xf],
		hexDigits[(c>>4)&0xf],
		hexDigits[c&0xf],
	})
}
