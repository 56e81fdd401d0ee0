// Package yamltree implements shadowplay's located YAML loader: a walker
// over gopkg.in/yaml.v3's *yaml.Node tree that rebuilds a Value tree
// carrying a location.Location per node, in the same shape
// located_yaml::YamlLoader produces over yaml_rust's event stream — duplicate
// map keys and the "<<" merge key are detected and resolved the same way.
package yamltree

import "github.com/shadowplay-lint/shadowplay/internal/location"

// Kind tags the variant a Value holds, mirroring located_yaml's YamlElt.
type Kind int

const (
	KindBadValue Kind = iota
	KindNull
	KindReal
	KindInteger
	KindString
	KindBoolean
	KindArray
	KindHash
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindInteger:
		return "integer"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindHash:
		return "map"
	case KindAlias:
		return "alias"
	case KindNull:
		return "null"
	default:
		return "badvalue"
	}
}

// Value is one node of the located YAML tree. Only the fields relevant to
// Kind are meaningful; the rest are zero. Real numbers are kept as their
// original source text (like located_yaml's YamlElt::Real) since float64
// does not round-trip exactly and is not usable as a map key.
type Value struct {
	Kind     Kind
	Real     string
	Integer  int64
	Str      string
	Bool     bool
	Array    []*Value
	Hash     *OrderedMap
	AliasID  int
	Location location.Location
}

func (v *Value) IsBadValue() bool {
	return v != nil && v.Kind == KindBadValue
}

// GetStringKey looks up a string key in a Hash value, returning nil if v is
// not a Hash or the key is absent.
func (v *Value) GetStringKey(key string) *Value {
	if v == nil || v.Kind != KindHash {
		return nil
	}
	val, ok := v.Hash.Get(&Value{Kind: KindString, Str: key})
	if !ok {
		return nil
	}
	return val
}

// GetString returns the underlying string for a String or Real value.
func (v *Value) GetString() (string, bool) {
	if v == nil {
		return "", false
	}
	switch v.Kind {
	case KindString:
		return v.Str, true
	case KindReal:
		return v.Real, true
	default:
		return "", false
	}
}

// Equal reports structural equality of the YAML data, ignoring location —
// the same notion located_yaml uses for Yaml's PartialEq/Hash impls (keyed
// off YamlElt alone, markers excluded).
func Equal(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindReal:
		return a.Real == b.Real
	case KindInteger:
		return a.Integer == b.Integer
	case KindString:
		return a.Str == b.Str
	case KindBoolean:
		return a.Bool == b.Bool
	case KindAlias:
		return a.AliasID == b.AliasID
	case KindArray:
		if len(a.Array) != len(b.Array) {
			return false
		}
		for i := range a.Array {
			if !Equal(a.Array[i], b.Array[i]) {
				return false
			}
		}
		return true
	case KindHash:
		if a.Hash.Len() != b.Hash.Len() {
			return false
		}
		for _, k := range a.Hash.Keys() {
			av, _ := a.Hash.Get(k)
			bv, ok := b.Hash.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		// Null and BadValue carry no data.
		return true
	}
}

// OrderedMap is an insertion-ordered map keyed by structural Value equality
// (location-independent), the Go equivalent of linked_hash_map::LinkedHashMap<Yaml, Yaml>
// used by located_yaml — Go maps can't use *Value (or any struct with slice
// fields) as a key type, so lookups are a linear scan by Equal.
type OrderedMap struct {
	keys   []*Value
	values []*Value
}

func NewOrderedMap() *OrderedMap {
	return &OrderedMap{}
}

func (m *OrderedMap) Len() int {
	return len(m.keys)
}

func (m *OrderedMap) Keys() []*Value {
	return m.keys
}

func (m *OrderedMap) Get(key *Value) (*Value, bool) {
	for i, k := range m.keys {
		if Equal(k, key) {
			return m.values[i], true
		}
	}
	return nil, false
}

func (m *OrderedMap) Contains(key *Value) bool {
	_, ok := m.Get(key)
	return ok
}

// Set inserts key/value, or overwrites the value in place (preserving
// position) if key is already present — matching LinkedHashMap::insert's
// "update in place" behavior for an existing key.
func (m *OrderedMap) Set(key, value *Value) {
	for i, k := range m.keys {
		if Equal(k, key) {
			m.values[i] = value
			return
		}
	}
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
}

// Each calls f for every key/value pair in insertion order.
func (m *OrderedMap) Each(f func(key, value *Value)) {
	for i, k := range m.keys {
		f(k, m.values[i])
	}
}
