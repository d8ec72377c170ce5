package entity

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/roach88/roomsim/internal/ir"
)

// Configurable is the capability every domain entity exposes: a kind name
// and an ordered set of named fields. Serialization and reconstruction work
// on this interface alone.
//
// A field value is one of:
//   - ir.Value (scalars, scalar lists, ir.Null for unset)
//   - Configurable (a nested entity)
//   - []Configurable (an ordered list of entities)
type Configurable interface {
	Kind() string
	FieldNames() []string
	Field(name string) any
}

// Entity is the field record behind every configurable entity. Field names
// are fixed when the entity is bound; values are read fresh at
// serialization time.
type Entity struct {
	schema *Schema
	names  []string
	values map[string]any
}

// Kind returns the entity's runtime type name.
func (e *Entity) Kind() string {
	return e.schema.Kind
}

// Schema returns the schema the entity was built from.
func (e *Entity) Schema() *Schema {
	return e.schema
}

// FieldNames returns the recorded field names in declaration order.
func (e *Entity) FieldNames() []string {
	return slices.Clone(e.names)
}

// Field returns the current value of a field, or nil if it was never set.
func (e *Entity) Field(name string) any {
	return e.values[name]
}

// Value returns a field as an ir.Value. Unset fields and fields holding
// entities read as ir.Null.
func (e *Entity) Value(name string) ir.Value {
	if v, ok := e.values[name].(ir.Value); ok {
		return v
	}
	return ir.Null{}
}

// IsNull reports whether a field is unset.
func (e *Entity) IsNull(name string) bool {
	switch e.values[name].(type) {
	case nil, ir.Null:
		return true
	}
	return false
}

// Assign sets a field value. It is meant for constructor bodies, which may
// replace captured arguments with derived values; the recorded field
// names are never changed by Assign.
func (e *Entity) Assign(name string, v any) error {
	norm, err := normalize(v, false)
	if err != nil {
		return NewInvalidValueError(e.Kind(), name, err.Error())
	}
	e.values[name] = norm
	return nil
}

// Config serializes the entity. See the package-level Config.
func (e *Entity) Config(opts ...ConfigOption) (*ir.Nested, error) {
	return Config(e, opts...)
}

var configurableType = reflect.TypeFor[Configurable]()

// normalize converts a Go value into a field value. Entities and slices of
// entities are kept as such; everything else goes through ir.From.
func normalize(v any, clone bool) (any, error) {
	switch val := v.(type) {
	case nil:
		return ir.Null{}, nil
	case ir.Value:
		if clone {
			return ir.Clone(val), nil
		}
		return val, nil
	case Configurable:
		if isNilPointer(val) {
			return ir.Null{}, nil
		}
		return val, nil
	case []Configurable:
		for i, elem := range val {
			if elem == nil || isNilPointer(elem) {
				return nil, fmt.Errorf("element %d is a nil entity", i)
			}
		}
		return slices.Clone(val), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Implements(configurableType) {
		out := make([]Configurable, 0, rv.Len())
		for i := range rv.Len() {
			elem, _ := rv.Index(i).Interface().(Configurable)
			if elem == nil || isNilPointer(elem) {
				return nil, fmt.Errorf("element %d is a nil entity", i)
			}
			out = append(out, elem)
		}
		return out, nil
	}

	return ir.From(v)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
