package novel

import "maps"

// OrderedMap is a string-keyed map that remembers insertion order. Project
// files keep links, plot line notes and the word count log in document order,
// so plain Go maps would not round-trip.
type OrderedMap[V comparable] struct {
	keys   []string
	values map[string]V
}

func NewOrderedMap[V comparable]() *OrderedMap[V] {
	return &OrderedMap[V]{values: make(map[string]V)}
}

func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	var zero V
	if m == nil {
		return zero, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key. A new key goes to the end, an existing key
// keeps its position.
func (m *OrderedMap[V]) Set(key string, value V) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *OrderedMap[V]) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The returned slice is shared,
// callers must not modify it.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

func (m *OrderedMap[V]) Last() (string, V, bool) {
	var zero V
	if m.Len() == 0 {
		return "", zero, false
	}
	key := m.keys[len(m.keys)-1]
	return key, m.values[key], true
}

func (m *OrderedMap[V]) Clone() *OrderedMap[V] {
	out := NewOrderedMap[V]()
	if m == nil {
		return out
	}
	out.keys = append(out.keys, m.keys...)
	maps.Copy(out.values, m.values)
	return out
}

func (m *OrderedMap[V]) Equal(other *OrderedMap[V]) bool {
	if m.Len() != other.Len() {
		return false
	}
	for i, k := range m.Keys() {
		if other.keys[i] != k {
			return false
		}
		if m.values[k] != other.values[k] {
			return false
		}
	}
	return true
}
