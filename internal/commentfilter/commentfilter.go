// Package commentfilter drops the last line of the leading comment block of
// a properties document as it is written.
//
// The classic properties writer always ends its comment block with a
// timestamp line. Routing its output through a Filter removes that line while
// every earlier comment line and all entry lines reach the destination
// unchanged.
package commentfilter

import "io"

type state int

const (
	lineStart state = iota // at the start of a line inside the comment block
	inComment              // accumulating a comment line
	passThrough            // past the comment block
)

// Filter is an io.Writer that forwards to an underlying writer. It works on
// bytes, so the result does not depend on how the input is split across Write
// calls. A line counts as a comment when it starts with '#' or '!'.
type Filter struct {
	out      io.Writer
	state    state
	current  []byte
	previous []byte
	held     bool
}

// New returns a Filter writing to out.
func New(out io.Writer) *Filter {
	return &Filter{out: out}
}

// Write filters p. It reports len(p) on success; errors from the underlying
// writer are returned unchanged.
func (f *Filter) Write(p []byte) (int, error) {
	pass := 0 // start of the pending pass-through run in p
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch f.state {
		case passThrough:
			i = len(p)
		case lineStart:
			if c != '#' && c != '!' {
				f.state = passThrough
				f.previous, f.held = nil, false
				pass = i
				i = len(p)
				continue
			}
			f.state = inComment
			f.current = append(f.current[:0], c)
			if err := f.completeIfEOL(c); err != nil {
				return 0, err
			}
		case inComment:
			f.current = append(f.current, c)
			if err := f.completeIfEOL(c); err != nil {
				return 0, err
			}
		}
	}
	if f.state != passThrough {
		return len(p), nil
	}
	if pass < len(p) {
		if _, err := f.out.Write(p[pass:]); err != nil {
			return 0, err
		}
	}
	return len(p), nil
}

// completeIfEOL finishes the current comment line when c ends it: the line
// held from before is written out and the finished line is held instead.
func (f *Filter) completeIfEOL(c byte) error {
	if c != '\n' {
		return nil
	}
	if f.held {
		if _, err := f.out.Write(f.previous); err != nil {
			return err
		}
	}
	f.previous = append(f.previous[:0], f.current...)
	f.held = true
	f.current = f.current[:0]
	f.state = lineStart
	return nil
}

// Close ends the stream. Any held or partial comment line is discarded.
// The underlying writer is not closed.
func (f *Filter) Close() error {
	f.current = nil
	f.previous, f.held = nil, false
	return nil
}
