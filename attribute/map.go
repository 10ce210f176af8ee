package attribute

import "sort"

// Map is the ordered-by-key-on-iteration, unique-key mapping every logical
// node owns (spec.md §3: "Each logical node owns a mapping string ->
// Attribute (keys unique; order not observable)"). Map itself carries no
// dirty/backend-identity concerns -- that lives one layer up, on core.Writable
// -- it is purely the value container.
type Map struct {
	m map[string]Attribute
}

func NewMap() *Map { return &Map{m: make(map[string]Attribute)} }

func (m *Map) ensure() {
	if m.m == nil {
		m.m = make(map[string]Attribute)
	}
}

func (m *Map) Get(key string) (Attribute, bool) {
	a, ok := m.m[key]
	return a, ok
}

func (m *Map) Set(key string, a Attribute) {
	m.ensure()
	m.m[key] = a
}

func (m *Map) Delete(key string) bool {
	if _, ok := m.m[key]; !ok {
		return false
	}
	delete(m.m, key)
	return true
}

func (m *Map) Contains(key string) bool {
	_, ok := m.m[key]
	return ok
}

// Keys returns a sorted snapshot of keys -- sorted purely to make output and
// tests deterministic; spec.md §3 explicitly does not make order observable
// as a model guarantee.
func (m *Map) Keys() []string {
	keys := make([]string, 0, len(m.m))
	for k := range m.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *Map) Len() int { return len(m.m) }

// Clone deep-copies every attribute, used when a logical handle is copied
// independently of its shared Writable (e.g. a defensive snapshot for a
// deferred-parse pass).
func (m *Map) Clone() *Map {
	cp := NewMap()
	for k, v := range m.m {
		cp.m[k] = v.Clone()
	}
	return cp
}

// Range iterates the map in sorted key order.
func (m *Map) Range(fn func(key string, a Attribute) bool) {
	for _, k := range m.Keys() {
		if !fn(k, m.m[k]) {
			return
		}
	}
}
