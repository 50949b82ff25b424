package resource

// FilterSet is an ordered collection of key/value matching rules attached to
// a resolved definition. Insertion order is preserved; setting an existing key
// replaces its value without moving it.
type FilterSet struct {
	keys   []string
	values map[string]string
}

// NewFilterSet returns an empty filter set.
func NewFilterSet() *FilterSet {
	return &FilterSet{values: make(map[string]string)}
}

// Set stores a filter entry.
func (f *FilterSet) Set(key, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = value
}

// Get returns the value for a key.
func (f *FilterSet) Get(key string) (string, bool) {
	if f == nil || f.values == nil {
		return "", false
	}
	v, ok := f.values[key]
	return v, ok
}

// Len returns the number of entries.
func (f *FilterSet) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Each visits entries in insertion order until fn returns false.
func (f *FilterSet) Each(fn func(key, value string) bool) {
	if f == nil {
		return
	}
	for _, k := range f.keys {
		if !fn(k, f.values[k]) {
			return
		}
	}
}

// Clone returns a deep copy. Cloning a nil set yields nil.
func (f *FilterSet) Clone() *FilterSet {
	if f == nil {
		return nil
	}
	clone := &FilterSet{
		keys:   make([]string, len(f.keys)),
		values: make(map[string]string, len(f.values)),
	}
	copy(clone.keys, f.keys)
	for k, v := range f.values {
		clone.values[k] = v
	}
	return clone
}

// Map returns the entries as a plain map copy.
func (f *FilterSet) Map() map[string]string {
	if f == nil {
		return map[string]string{}
	}
	m := make(map[string]string, len(f.values))
	for k, v := range f.values {
		m[k] = v
	}
	return m
}
