package textformat

import (
	"errors"
	"io"
	"strings"
	"unicode/utf16"
)

var (
	errMalformedUnicode  = errors.New(`malformed \uxxxx escape`)
	errDanglingContinued = errors.New("line continuation at end of input")
)

// Parse reads entries from r and passes each one to sink in input order.
// It stops at the first malformed line. Errors from r are returned as is.
func Parse(r io.RuneScanner, sink Sink) error {
	lr := &lineReader{r: r}
	for {
		line, n, err := lr.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		key, value, err := splitEntry(line)
		if err != nil {
			return &SyntaxError{Line: n, Msg: err.Error()}
		}
		sink.Put(key, value)
	}
}

// lineReader assembles logical lines: comments and blank lines are dropped,
// continuation lines are joined with their leading whitespace removed.
type lineReader struct {
	r    io.RuneScanner
	line int // completed natural lines
}

func isWhitespace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\f'
}

// next returns the next logical line with escapes still in place, and the
// natural line number it starts on.
func (lr *lineReader) next() ([]rune, int, error) {
	var (
		buf                []rune
		start              int
		skipWhitespace     = true
		newLine            = true
		continued          bool
		comment            bool
		precedingBackslash bool
	)
	for {
		c, _, err := lr.r.ReadRune()
		if err != nil {
			if err != io.EOF {
				return nil, 0, err
			}
			if continued || precedingBackslash {
				return nil, 0, &SyntaxError{Line: start, Msg: errDanglingContinued.Error()}
			}
			if len(buf) == 0 {
				return nil, 0, io.EOF
			}
			return buf, start, nil
		}

		if skipWhitespace {
			if isWhitespace(c) {
				continue
			}
			if !continued && (c == '\n' || c == '\r') {
				if err := lr.endOfLine(c); err != nil {
					return nil, 0, err
				}
				continue
			}
			skipWhitespace = false
			continued = false
		}

		if newLine {
			newLine = false
			start = lr.line + 1
			if c == '#' || c == '!' {
				comment = true
				continue
			}
		}

		if c != '\n' && c != '\r' {
			if comment {
				continue
			}
			buf = append(buf, c)
			if c == '\\' {
				precedingBackslash = !precedingBackslash
			} else {
				precedingBackslash = false
			}
			continue
		}

		if err := lr.endOfLine(c); err != nil {
			return nil, 0, err
		}
		if comment || len(buf) == 0 {
			comment = false
			newLine = true
			skipWhitespace = true
			continue
		}
		if precedingBackslash {
			buf = buf[:len(buf)-1]
			precedingBackslash = false
			skipWhitespace = true
			continued = true
			continue
		}
		return buf, start, nil
	}
}

// endOfLine counts a line terminator, folding \r\n into one.
func (lr *lineReader) endOfLine(c rune) error {
	lr.line++
	if c != '\r' {
		return nil
	}
	next, _, err := lr.r.ReadRune()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	if next != '\n' {
		return lr.r.UnreadRune()
	}
	return nil
}

// splitEntry separates a logical line into its unescaped key and value.
// The separator is the first unescaped '=', ':' or whitespace; whitespace
// around it and a single '=' or ':' following whitespace are dropped.
func splitEntry(line []rune) (string, string, error) {
	keyLen := 0
	valueStart := len(line)
	hasSep := false
	precedingBackslash := false
	for keyLen < len(line) {
		c := line[keyLen]
		if (c == '=' || c == ':') && !precedingBackslash {
			valueStart = keyLen + 1
			hasSep = true
			break
		}
		if isWhitespace(c) && !precedingBackslash {
			valueStart = keyLen + 1
			break
		}
		if c == '\\' {
			precedingBackslash = !precedingBackslash
		} else {
			precedingBackslash = false
		}
		keyLen++
	}
	for valueStart < len(line) {
		c := line[valueStart]
		if !isWhitespace(c) {
			if !hasSep && (c == '=' || c == ':') {
				hasSep = true
			} else {
				break
			}
		}
		valueStart++
	}

	key, err := unescape(line[:keyLen])
	if err != nil {
		return "", "", err
	}
	value, err := unescape(line[valueStart:])
	if err != nil {
		return "", "", err
	}
	return key, value, nil
}

// unescape resolves backslash escapes. \uXXXX sequences that form a UTF-16
// surrogate pair are combined into one rune.
func unescape(s []rune) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	var high rune
	flushHigh := func() {
		if high != 0 {
			b.WriteRune(utf16.DecodeRune(high, 0))
			high = 0
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			flushHigh()
			b.WriteRune(c)
			continue
		}
		i++
		if i == len(s) {
			break
		}
		c = s[i]
		if c != 'u' {
			flushHigh()
			switch c {
			case 't':
				c = '\t'
			case 'r':
				c = '\r'
			case 'n':
				c = '\n'
			case 'f':
				c = '\f'
			}
			b.WriteRune(c)
			continue
		}
		if i+4 >= len(s) {
			return "", errMalformedUnicode
		}
		var unit rune
		for _, h := range s[i+1 : i+5] {
			d, ok := hexDigit(h)
			if !ok {
				return "", errMalformedUnicode
			}
			unit = unit<<4 | d
		}
		i += 4
		switch {
		case utf16.IsSurrogate(unit) && unit < 0xDC00:
			flushHigh()
			high = unit
		case utf16.IsSurrogate(unit) && high != 0:
			b.WriteRune(utf16.DecodeRune(high, unit))
			high = 0
		default:
			flushHigh()
			b.WriteRune(unit)
		}
	}
	flushHigh()
	return b.String(), nil
}

func hexDigit(c rune) (rune, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
