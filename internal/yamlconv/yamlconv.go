// Package yamlconv converts ordered properties to and from a flat YAML
// mapping.
//
// Dotted keys such as "db.pool.size" stay literal strings; nothing is nested.
// Values are always written as YAML strings so that "1" or "true" survive a
// round trip unchanged. Mapping order follows the properties order in both
// directions.
package yamlconv

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrNotFlat is returned when a document is not a mapping of scalars.
var ErrNotFlat = errors.New("yaml document is not a flat mapping")

// Source supplies the entries to encode, in the order returned by Keys.
type Source interface {
	Keys() []string
	Get(key string) (string, bool)
}

// Sink receives decoded entries in document order.
type Sink interface {
	Put(key, value string)
}

// Encode writes src to w as a YAML mapping.
func Encode(w io.Writer, src Source) error {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range src.Keys() {
		value, _ := src.Get(key)
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(mapping); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// Decode reads one YAML document from r and passes each key/value pair to
// sink. An empty document yields no entries; null values become "".
func Decode(r io.Reader, sink Sink) error {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("parsing yaml: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		root = root.Content[0]
	}
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil
	}
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %w", root.Line, ErrNotFlat)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := resolve(root.Content[i]), resolve(root.Content[i+1])
		if key.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: key must be a scalar: %w", key.Line, ErrNotFlat)
		}
		if value.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: value of %q must be a scalar: %w", value.Line, key.Value, ErrNotFlat)
		}
		v := value.Value
		if value.Tag == "!!null" {
			v = ""
		}
		sink.Put(key.Value, v)
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
