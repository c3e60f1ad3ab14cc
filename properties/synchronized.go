package properties

import (
	"io"
	"sync"
)

// Synchronized guards a Properties value with a mutex owned by the wrapper.
// Every method holds the lock for its whole duration, including stream I/O
// in the load and store methods. Wrappers around different Properties never
// contend with each other.
type Synchronized struct {
	mu    sync.Mutex
	props *Properties
}

// NewSynchronized wraps p. The caller must not use p directly afterwards.
func NewSynchronized(p *Properties) *Synchronized {
	return &Synchronized{props: p}
}

// Do runs fn with the lock held, for compound operations such as
// read-modify-write sequences.
func (s *Synchronized) Do(fn func(p *Properties)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.props)
}

func (s *Synchronized) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.Get(key)
}

func (s *Synchronized) GetOrDefault(key, def string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.GetOrDefault(key, def)
}

func (s *Synchronized) Set(key, value string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.Set(key, value)
}

func (s *Synchronized) Remove(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.Remove(key)
}

func (s *Synchronized) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.IsEmpty()
}

func (s *Synchronized) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.Len()
}

func (s *Synchronized) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.Keys()
}

func (s *Synchronized) KeySet() *KeySet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.KeySet()
}

func (s *Synchronized) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.String()
}

func (s *Synchronized) Load(r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.Load(r)
}

func (s *Synchronized) LoadUTF8(r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.LoadUTF8(r)
}

func (s *Synchronized) LoadXML(r io.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.LoadXML(r)
}

func (s *Synchronized) Store(w io.Writer, comments string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.Store(w, comments)
}

func (s *Synchronized) StoreUTF8(w io.Writer, comments string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.StoreUTF8(w, comments)
}

func (s *Synchronized) StoreXML(w io.Writer, comment, encoding string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.props.StoreXML(w, comment, encoding)
}
