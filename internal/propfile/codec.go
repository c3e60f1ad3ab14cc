package propfile

import (
	"fmt"
	"io"

	"orderedprops/internal/config"
	"orderedprops/internal/yamlconv"
	"orderedprops/properties"
)

type storeSink struct{ store *properties.Store }

func (s storeSink) Put(key, value string) { s.store.Set(key, value) }

// Decode reads r in the given format and merges the entries into p.
// FormatAuto is not accepted here since there is no path to inspect.
func Decode(r io.Reader, format Format, p *properties.Properties, opts Options) error {
	switch format {
	case FormatText:
		if opts.Encoding == config.EncodingUTF8 {
			return p.LoadUTF8(r)
		}
		return p.Load(r)
	case FormatXML:
		return p.LoadXML(r)
	case FormatYAML:
		scratch := properties.NewStore()
		if err := yamlconv.Decode(r, storeSink{scratch}); err != nil {
			return err
		}
		for k, v := range scratch.All() {
			p.Set(k, v)
		}
		return nil
	}
	return fmt.Errorf("cannot decode format %s", format)
}

// Encode writes p to w in the given format.
func Encode(w io.Writer, format Format, p *properties.Properties, opts Options) error {
	switch format {
	case FormatText:
		if opts.Encoding == config.EncodingUTF8 {
			return p.StoreUTF8(w, opts.Comment)
		}
		return p.Store(w, opts.Comment)
	case FormatXML:
		return p.StoreXML(w, opts.Comment, opts.XMLEncoding)
	case FormatYAML:
		return yamlconv.Encode(w, p.Entries())
	}
	return fmt.Errorf("cannot encode format %s", format)
}
