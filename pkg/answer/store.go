package answer

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Reader is the read-only view a render pass consumes.
type Reader interface {
	Get(key string) (Value, bool)
}

// Map is an immutable-by-convention answer set. It satisfies Reader and is
// what Store.Snapshot returns.
type Map map[string]Value

// Get returns the value stored under key.
func (m Map) Get(key string) (Value, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the answered question keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the value under key, or the unset value.
func Lookup(r Reader, key string) Value {
	if r == nil {
		return Null()
	}
	v, _ := r.Get(key)
	return v
}

// Store is the caller-owned answer state. Records are created on first Set,
// updated on every input event and dropped by Clear or Reset.
type Store struct {
	mu     sync.RWMutex
	values map[string]Value
}

// NewStore builds a store seeded with the supplied answers.
func NewStore(seed Map) *Store {
	values := make(map[string]Value, len(seed))
	for key, value := range seed {
		values[key] = value
	}
	return &Store{values: values}
}

// Get implements Reader.
func (s *Store) Get(key string) (Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Set records the answer for key. Blank keys are ignored.
func (s *Store) Set(key string, value Value) {
	key = strings.TrimSpace(key)
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]Value)
	}
	s.values[key] = value
}

// Clear removes the answer for key.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Reset drops every answer.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = make(map[string]Value)
}

// Len reports the number of recorded answers.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Snapshot copies the current answers so a render pass never observes a
// concurrent write.
func (s *Store) Snapshot() Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Map, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// Decode parses a JSON or YAML answers document (a flat question → value
// mapping). JSON is tried first, matching the loader order used for
// profiles.
func Decode(data []byte) (Map, error) {
	if strings.TrimSpace(string(data)) == "" {
		return Map{}, nil
	}

	var out Map
	jsonErr := json.Unmarshal(data, &out)
	if jsonErr == nil {
		return normalise(out), nil
	}

	out = nil
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("answer: parse answers: invalid JSON (%v) or YAML: %w", jsonErr, err)
	}
	return normalise(out), nil
}

// LoadFile reads and decodes an answers file.
func LoadFile(path string) (Map, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("answer: file path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("answer: read %s: %w", path, err)
	}
	answers, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("answer: %s: %w", path, err)
	}
	return answers, nil
}

// Encode serialises answers as indented JSON with sorted keys.
func Encode(answers Map) ([]byte, error) {
	payload, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("answer: encode answers: %w", err)
	}
	return payload, nil
}

func normalise(in Map) Map {
	out := make(Map, len(in))
	for key, value := range in {
		trimmed := strings.TrimSpace(key)
		if trimmed == "" {
			continue
		}
		out[trimmed] = value
	}
	return out
}
