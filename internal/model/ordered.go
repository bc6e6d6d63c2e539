package model

// OrderedStrings is an insertion-ordered string-to-string map. Configuration
// sections such as `const` and `dynamic` must preserve the order keys were
// declared in YAML, and merges must preserve "base first, then new override
// keys appended" — a plain Go map can't carry that, so this type does.
type OrderedStrings struct {
	keys   []string
	values map[string]string
}

// NewOrderedStrings builds an OrderedStrings from a plain map, ordering keys
// as given. Use this only when the caller already has a stable key order
// (e.g. decoded from a yaml.Node mapping); a plain map[string]string has no
// order to preserve.
func NewOrderedStrings(keys []string, values map[string]string) *OrderedStrings {
	o := &OrderedStrings{values: make(map[string]string, len(keys))}
	for _, k := range keys {
		o.Set(k, values[k])
	}
	return o
}

// Set inserts or updates a key. Existing keys keep their original position.
func (o *OrderedStrings) Set(key, value string) {
	if o.values == nil {
		o.values = make(map[string]string)
	}
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value for key and whether it was present.
func (o *OrderedStrings) Get(key string) (string, bool) {
	if o == nil {
		return "", false
	}
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *OrderedStrings) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Len returns the number of entries.
func (o *OrderedStrings) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Clone returns a deep copy.
func (o *OrderedStrings) Clone() *OrderedStrings {
	if o == nil {
		return NewOrderedStrings(nil, nil)
	}
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	values := make(map[string]string, len(o.values))
	for k, v := range o.values {
		values[k] = v
	}
	return &OrderedStrings{keys: keys, values: values}
}

// Merge returns a new OrderedStrings with base's entries first (in their
// original order), override's values winning on key collision, and any key
// present only in override appended at the end in override's order. Either
// side may be nil.
func (o *OrderedStrings) Merge(override *OrderedStrings) *OrderedStrings {
	result := o.Clone()
	for _, k := range override.Keys() {
		v, _ := override.Get(k)
		result.Set(k, v)
	}
	return result
}

// Range calls fn for each entry in insertion order.
func (o *OrderedStrings) Range(fn func(key, value string)) {
	if o == nil {
		return
	}
	for _, k := range o.keys {
		fn(k, o.values[k])
	}
}
