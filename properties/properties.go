// Package properties provides an insertion-ordered properties container that
// reads and writes the line-oriented and XML properties formats.
//
// Entries keep the order in which their keys were first added, whether by
// Set or by loading a file top to bottom, so a load/modify/store cycle
// produces stable, diff-friendly output.
//
// A Properties value is not safe for concurrent use. Callers that share one
// instance between goroutines serialize access themselves or wrap it with
// NewSynchronized.
package properties

import (
	"bufio"
	"io"
	"iter"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"orderedprops/internal/commentfilter"
	"orderedprops/internal/textformat"
	"orderedprops/internal/xmlformat"
)

// Properties is an ordered set of string properties with load and store
// operations. The date comment behaviour is fixed at construction.
type Properties struct {
	entries      *Store
	suppressDate bool
	now          func() time.Time
}

// New returns empty Properties whose Store methods write the timestamp
// comment line.
func New() *Properties {
	return newProperties(false)
}

// WithoutDateComment returns empty Properties whose Store and StoreUTF8
// methods omit the timestamp comment line.
func WithoutDateComment() *Properties {
	return newProperties(true)
}

func newProperties(suppressDate bool) *Properties {
	return &Properties{
		entries:      NewStore(),
		suppressDate: suppressDate,
		now:          time.Now,
	}
}

// SuppressesDate reports whether the timestamp comment is omitted on store.
func (p *Properties) SuppressesDate() bool {
	return p.suppressDate
}

// Entries returns the underlying ordered store.
func (p *Properties) Entries() *Store {
	return p.entries
}

// Get returns the value for key and whether it was present.
func (p *Properties) Get(key string) (string, bool) {
	return p.entries.Get(key)
}

// GetOrDefault returns the value for key, or def if key is not present.
func (p *Properties) GetOrDefault(key, def string) string {
	return p.entries.GetOrDefault(key, def)
}

// Set stores value under key and returns the previous value, if any.
func (p *Properties) Set(key, value string) (string, bool) {
	return p.entries.Set(key, value)
}

// Remove deletes key and returns its value, if any.
func (p *Properties) Remove(key string) (string, bool) {
	return p.entries.Remove(key)
}

// IsEmpty reports whether there are no entries.
func (p *Properties) IsEmpty() bool { return p.entries.IsEmpty() }

// Len returns the number of entries.
func (p *Properties) Len() int { return p.entries.Len() }

// Keys returns a snapshot of the keys in order.
func (p *Properties) Keys() []string { return p.entries.Keys() }

// KeySet returns a snapshot of the keys as an ordered set.
func (p *Properties) KeySet() *KeySet { return p.entries.KeySet() }

// All iterates over the entries in order.
func (p *Properties) All() iter.Seq2[string, string] { return p.entries.All() }

func (p *Properties) String() string { return p.entries.String() }

// entrySink hands every entry a parser produces to a Store.
type entrySink struct {
	store *Store
}

func (s entrySink) Put(key, value string) {
	s.store.Set(key, value)
}

// Load reads the line-oriented format from r, decoding bytes as ISO-8859-1;
// other characters are expected as \uXXXX escapes. Entries are added in
// file order. On error the receiver is left as it was.
func (p *Properties) Load(r io.Reader) error {
	return p.loadText(charmap.ISO8859_1.NewDecoder().Reader(r))
}

// LoadUTF8 is like Load but decodes r as UTF-8.
func (p *Properties) LoadUTF8(r io.Reader) error {
	return p.loadText(r)
}

func (p *Properties) loadText(r io.Reader) error {
	scratch := NewStore()
	if err := textformat.Parse(bufio.NewReader(r), entrySink{scratch}); err != nil {
		return formatError(err)
	}
	p.merge(scratch)
	return nil
}

// LoadXML reads an XML properties document from r. On error the receiver
// is left as it was.
func (p *Properties) LoadXML(r io.Reader) error {
	scratch := NewStore()
	if err := xmlformat.Parse(r, entrySink{scratch}); err != nil {
		return formatError(err)
	}
	p.merge(scratch)
	return nil
}

func (p *Properties) merge(src *Store) {
	for k, v := range src.All() {
		p.entries.Set(k, v)
	}
}

// Store writes the properties to w in the line-oriented format encoded as
// ISO-8859-1, escaping every character outside printable ASCII. A non-empty
// comments string is written as a leading comment; then, unless the date
// comment is suppressed, a timestamp comment; then every entry in order.
func (p *Properties) Store(w io.Writer, comments string) error {
	enc := transform.NewWriter(w, charmap.ISO8859_1.NewEncoder())
	if err := p.storeText(enc, comments, textformat.EscapeNonASCII); err != nil {
		return err
	}
	return enc.Close()
}

// StoreUTF8 is like Store but writes UTF-8 and escapes only control
// characters.
func (p *Properties) StoreUTF8(w io.Writer, comments string) error {
	return p.storeText(w, comments, textformat.EscapeControlOnly)
}

func (p *Properties) storeText(w io.Writer, comments string, escape textformat.Escape) error {
	if !p.suppressDate {
		return textformat.NewWriter(w, escape).Write(p.entries, comments, p.now())
	}
	filter := commentfilter.New(w)
	if err := textformat.NewWriter(filter, escape).Write(p.entries, comments, p.now()); err != nil {
		return err
	}
	return filter.Close()
}

// StoreXML writes the properties as an XML document in the named encoding;
// an empty encoding means UTF-8. An empty comment omits the comment element.
func (p *Properties) StoreXML(w io.Writer, comment, encoding string) error {
	return xmlformat.Write(w, p.entries, comment, encoding)
}
