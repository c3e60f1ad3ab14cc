package xmlformat

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// readTracker remembers the last error returned by the wrapped reader so
// that I/O failures can be told apart from malformed documents.
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF {
		t.err = err
	}
	return n, err
}

// parser holds the position within the document while tokens are consumed.
type parser struct {
	dec     *xml.Decoder
	sink    Sink
	encErr  error
	depth   int
	root    bool
	done    bool
	entries int
	comment bool

	// current child of the root element
	child string
	key   string
	value strings.Builder
}

// Parse decodes a properties document from r and passes every entry to sink
// in document order. Errors from r are returned unchanged; anything else
// that goes wrong is a *SyntaxError.
func Parse(r io.Reader, sink Sink) error {
	tr := &readTracker{r: r}
	p := &parser{sink: sink}
	p.dec = xml.NewDecoder(tr)
	p.dec.Strict = true
	p.dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		enc, err := lookupEncoding(label)
		if err != nil {
			p.encErr = err
			return nil, err
		}
		if enc == nil {
			return input, nil
		}
		return enc.NewDecoder().Reader(input), nil
	}

	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			if !p.root {
				return p.fail("", "missing <properties> element")
			}
			if !p.done {
				return p.fail("properties", "unexpected end of document")
			}
			return nil
		}
		if err != nil {
			if tr.err != nil {
				return tr.err
			}
			line, _ := p.dec.InputPos()
			return &SyntaxError{Line: line, Msg: err.Error(), Err: p.encErr}
		}
		if err := p.handle(tok); err != nil {
			return err
		}
	}
}

func (p *parser) handle(tok xml.Token) error {
	switch t := tok.(type) {
	case xml.Directive:
		return p.directive(string(t))
	case xml.StartElement:
		return p.start(t)
	case xml.EndElement:
		return p.end()
	case xml.CharData:
		return p.charData(t)
	}
	return nil
}

func (p *parser) directive(d string) error {
	fields := strings.Fields(d)
	if len(fields) == 0 || fields[0] != "DOCTYPE" {
		return nil
	}
	if p.root {
		return p.fail("", "DOCTYPE after root element")
	}
	if len(fields) < 2 || fields[1] != "properties" {
		return p.fail("", "DOCTYPE must name the properties element")
	}
	if strings.Contains(d, "[") {
		return p.fail("", "internal DTD subset is not supported")
	}
	if len(fields) < 3 {
		return nil
	}
	literals := quotedLiterals(d)
	var id string
	switch fields[2] {
	case "SYSTEM":
		if len(literals) != 1 {
			return p.fail("", "SYSTEM identifier must be one quoted literal")
		}
		id = literals[0]
	case "PUBLIC":
		if len(literals) != 2 {
			return p.fail("", "PUBLIC identifier must be followed by a system identifier")
		}
		id = literals[1]
	default:
		return p.fail("", fmt.Sprintf("unexpected %q in DOCTYPE", fields[2]))
	}
	if id != SystemID {
		return p.fail("", fmt.Sprintf("invalid system identifier %q", id))
	}
	return nil
}

// quotedLiterals returns the contents of every '...' or "..." literal in s.
func quotedLiterals(s string) []string {
	var out []string
	for {
		i := strings.IndexAny(s, `"'`)
		if i < 0 {
			return out
		}
		q := s[i]
		s = s[i+1:]
		j := strings.IndexByte(s, q)
		if j < 0 {
			return append(out, s)
		}
		out = append(out, s[:j])
		s = s[j+1:]
	}
}

func (p *parser) start(el xml.StartElement) error {
	name := el.Name.Local
	switch p.depth {
	case 0:
		if p.root {
			return p.fail(name, "content after the root element")
		}
		if name != "properties" {
			return p.fail(name, "root element must be <properties>")
		}
		p.root = true
	case 1:
		switch name {
		case "comment":
			if p.comment || p.entries > 0 {
				return p.fail("properties/comment", "<comment> must be the first child and appear once")
			}
			p.comment = true
		case "entry":
			p.entries++
			key, ok := attr(el, "key")
			if !ok {
				return p.fail(p.entryPath(), "<entry> is missing the key attribute")
			}
			p.key = key
		default:
			return p.fail("properties/"+name, "unexpected element <"+name+">")
		}
		p.child = name
		p.value.Reset()
	default:
		return p.fail(p.childPath()+"/"+name, "element <"+name+"> is not allowed here")
	}
	p.depth++
	return nil
}

func (p *parser) end() error {
	p.depth--
	switch p.depth {
	case 0:
		p.done = true
	case 1:
		if p.child == "entry" {
			p.sink.Put(p.key, p.value.String())
		}
		p.child = ""
	}
	return nil
}

func (p *parser) charData(data xml.CharData) error {
	switch p.depth {
	case 2:
		p.value.Write(data)
	case 0, 1:
		if strings.TrimSpace(string(data)) != "" {
			path := ""
			if p.depth == 1 {
				path = "properties"
			}
			return p.fail(path, "unexpected text content")
		}
	}
	return nil
}

func (p *parser) entryPath() string {
	return fmt.Sprintf("properties/entry[%d]", p.entries)
}

func (p *parser) childPath() string {
	if p.child == "entry" {
		return p.entryPath()
	}
	return "properties/" + p.child
}

func (p *parser) fail(path, msg string) error {
	line, _ := p.dec.InputPos()
	return &SyntaxError{Line: line, Path: path, Msg: msg}
}

func attr(el xml.StartElement, name string) (string, bool) {
	for _, a := range el.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			return a.Value, true
		}
	}
	return "", false
}
