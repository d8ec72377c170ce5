package ir

import (
	"iter"
	"slices"
)

// Value is a sealed interface over the canonical configuration shapes.
// Only Null, Bool, Int, Float, Text, Bytes, List and *Nested implement it.
type Value interface {
	configValue() // Sealed - only these types implement it
}

// Null represents an absent value (an unset field).
// Using an explicit type ensures every Value satisfies the sealed interface.
type Null struct{}

func (Null) configValue() {}

// Bool represents a boolean scalar.
type Bool bool

func (Bool) configValue() {}

// Int represents an integer scalar.
type Int int64

func (Int) configValue() {}

// Float represents a floating point scalar.
type Float float64

func (Float) configValue() {}

// Text represents a text scalar.
type Text string

func (Text) configValue() {}

// Bytes represents an encoded text leaf. Serialization produces Bytes for
// every Text leaf so that the native engine receives raw byte strings.
type Bytes []byte

func (Bytes) configValue() {}

// List represents an ordered sequence of values.
type List []Value

func (List) configValue() {}

// Nested is an insertion-ordered mapping from field name to Value.
// Re-setting an existing key replaces its value but keeps its position.
type Nested struct {
	keys   []string
	fields map[string]Value
}

func (*Nested) configValue() {}

// Field is a key/value pair for ordered Nested construction.
type Field struct {
	Key   string
	Value Value
}

// F is a shorthand for Field.
// Example: NewNested(F("humidity", Float(0.42)), F("temperature", Float(20)))
func F(key string, value Value) Field {
	return Field{Key: key, Value: value}
}

// NewNested creates a Nested holding fields in the given order.
func NewNested(fields ...Field) *Nested {
	n := &Nested{fields: make(map[string]Value, len(fields))}
	for _, f := range fields {
		n.Set(f.Key, f.Value)
	}
	return n
}

// Set binds key to v. New keys are appended after existing ones.
func (n *Nested) Set(key string, v Value) {
	if n.fields == nil {
		n.fields = make(map[string]Value)
	}
	if _, ok := n.fields[key]; !ok {
		n.keys = append(n.keys, key)
	}
	if v == nil {
		v = Null{}
	}
	n.fields[key] = v
}

// Get returns the value bound to key.
func (n *Nested) Get(key string) (Value, bool) {
	if n == nil {
		return nil, false
	}
	v, ok := n.fields[key]
	return v, ok
}

// Has reports whether key is bound.
func (n *Nested) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Delete removes key, preserving the order of the remaining keys.
func (n *Nested) Delete(key string) {
	if n == nil {
		return
	}
	if _, ok := n.fields[key]; !ok {
		return
	}
	delete(n.fields, key)
	n.keys = slices.DeleteFunc(n.keys, func(k string) bool { return k == key })
}

// Len returns the number of keys.
func (n *Nested) Len() int {
	if n == nil {
		return 0
	}
	return len(n.keys)
}

// Keys returns a copy of the keys in insertion order.
func (n *Nested) Keys() []string {
	if n == nil {
		return nil
	}
	return slices.Clone(n.keys)
}

// All iterates key/value pairs in insertion order.
func (n *Nested) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if n == nil {
			return
		}
		for _, k := range n.keys {
			if !yield(k, n.fields[k]) {
				return
			}
		}
	}
}

// Clone returns a deep copy of v. Nested values keep their key order.
func Clone(v Value) Value {
	switch val := v.(type) {
	case nil:
		return Null{}
	case Bytes:
		return slices.Clone(val)
	case List:
		out := make(List, len(val))
		for i, elem := range val {
			out[i] = Clone(elem)
		}
		return out
	case *Nested:
		out := NewNested()
		for k, elem := range val.All() {
			out.Set(k, Clone(elem))
		}
		return out
	default:
		return v
	}
}

// DecodeText replaces every Bytes leaf with the equivalent Text.
// It is the inverse of the leaf encoding applied at the native boundary.
func DecodeText(v Value) Value {
	switch val := v.(type) {
	case Bytes:
		return Text(val)
	case List:
		out := make(List, len(val))
		for i, elem := range val {
			out[i] = DecodeText(elem)
		}
		return out
	case *Nested:
		out := NewNested()
		for k, elem := range val.All() {
			out.Set(k, DecodeText(elem))
		}
		return out
	case nil:
		return Null{}
	default:
		return v
	}
}

// Equal reports whether a and b hold the same shape and values.
// Int and Float compare numerically so 10 and 10.0 are equal.
func Equal(a, b Value) bool {
	if fa, ok := AsFloat(a); ok {
		fb, ok := AsFloat(b)
		return ok && fa == fb
	}
	switch va := a.(type) {
	case Null, nil:
		switch b.(type) {
		case Null, nil:
			return true
		}
		return false
	case Bool:
		vb, ok := b.(Bool)
		return ok && va == vb
	case Text, Bytes:
		sa, _ := AsString(a)
		sb, ok := AsString(b)
		return ok && sa == sb
	case List:
		vb, ok := b.(List)
		if !ok || len(va) != len(vb) {
			return false
		}
		for i := range va {
			if !Equal(va[i], vb[i]) {
				return false
			}
		}
		return true
	case *Nested:
		vb, ok := b.(*Nested)
		if !ok || va.Len() != vb.Len() {
			return false
		}
		for k, elem := range va.All() {
			other, ok := vb.Get(k)
			if !ok || !Equal(elem, other) {
				return false
			}
		}
		return true
	}
	return false
}
