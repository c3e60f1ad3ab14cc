package properties

import (
	"iter"
	"slices"
	"strings"
)

// Store is a string-to-string mapping that keeps its keys in the order in
// which they were first inserted. Updating the value of an existing key does
// not move it.
//
// The zero value is an empty store ready to use. A Store is not safe for
// concurrent use; see Synchronized.
type Store struct {
	keys   []string
	values map[string]string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// GetOrDefault returns the value for key, or def if key is not present.
func (s *Store) GetOrDefault(key, def string) string {
	if v, ok := s.values[key]; ok {
		return v
	}
	return def
}

// Set stores value under key. A new key is appended to the end of the order;
// an existing key keeps its position. It returns the previous value and
// whether the key already existed.
func (s *Store) Set(key, value string) (string, bool) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	prev, existed := s.values[key]
	if !existed {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	return prev, existed
}

// Remove deletes key. The remaining keys keep their relative order.
// It returns the removed value and whether the key was present.
func (s *Store) Remove(key string) (string, bool) {
	prev, ok := s.values[key]
	if !ok {
		return "", false
	}
	delete(s.values, key)
	if i := slices.Index(s.keys, key); i >= 0 {
		s.keys = slices.Delete(s.keys, i, i+1)
	}
	return prev, true
}

// IsEmpty reports whether the store holds no entries.
func (s *Store) IsEmpty() bool {
	return len(s.keys) == 0
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.keys)
}

// Keys returns a copy of the keys in insertion order.
func (s *Store) Keys() []string {
	return slices.Clone(s.keys)
}

// KeySet returns a snapshot of the keys as an ordered set.
func (s *Store) KeySet() *KeySet {
	ks := &KeySet{
		order:   slices.Clone(s.keys),
		members: make(map[string]struct{}, len(s.keys)),
	}
	for _, k := range s.keys {
		ks.members[k] = struct{}{}
	}
	return ks
}

// All iterates over the entries in insertion order. The store must not be
// modified during iteration.
func (s *Store) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range s.keys {
			if !yield(k, s.values[k]) {
				return
			}
		}
	}
}

// Clear removes every entry.
func (s *Store) Clear() {
	s.keys = nil
	s.values = make(map[string]string)
}

// Clone returns an independent copy of s.
func (s *Store) Clone() *Store {
	c := NewStore()
	for k, v := range s.All() {
		c.Set(k, v)
	}
	return c
}

// Equal reports whether s and other hold the same entries in the same order.
// A nil Store is only equal to another nil Store.
func (s *Store) Equal(other *Store) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.Len() != other.Len() {
		return false
	}
	for i, k := range s.keys {
		if other.keys[i] != k || other.values[k] != s.values[k] {
			return false
		}
	}
	return true
}

// String renders the entries in order as {k1=v1, k2=v2}.
func (s *Store) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(s.values[k])
	}
	b.WriteByte('}')
	return b.String()
}

// KeySet is an ordered, immutable set of keys taken from a Store.
type KeySet struct {
	order   []string
	members map[string]struct{}
}

// Contains reports whether key is in the set.
func (ks *KeySet) Contains(key string) bool {
	_, ok := ks.members[key]
	return ok
}

// Len returns the number of keys.
func (ks *KeySet) Len() int {
	return len(ks.order)
}

// Keys returns the keys in insertion order.
func (ks *KeySet) Keys() []string {
	return slices.Clone(ks.order)
}

// All iterates over the keys in insertion order.
func (ks *KeySet) All() iter.Seq[string] {
	return slices.Values(ks.order)
}
