package ir

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// From converts a Go value to a Value.
//
// Supported inputs: nil, Value, bool, all integer and float kinds, string,
// []byte, slices and arrays of supported values, and map[string]any (keys
// sorted, since Go maps carry no order).
func From(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int8:
		return Int(val), nil
	case int16:
		return Int(val), nil
	case int32:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint8:
		return Int(val), nil
	case uint16:
		return Int(val), nil
	case uint32:
		return Int(val), nil
	case uint:
		if uint64(val) > math.MaxInt64 {
			return nil, fmt.Errorf("integer out of int64 range: %d", val)
		}
		return Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("integer out of int64 range: %d", val)
		}
		return Int(val), nil
	case float32:
		return Float(val), nil
	case float64:
		return Float(val), nil
	case string:
		return Text(val), nil
	case []byte:
		return Bytes(slices.Clone(val)), nil
	case []any:
		out := make(List, len(val))
		for i, elem := range val {
			conv, err := From(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := NewNested()
		for _, k := range keys {
			conv, err := From(val[k])
			if err != nil {
				return nil, fmt.Errorf("[%q]: %w", k, err)
			}
			out.Set(k, conv)
		}
		return out, nil
	}

	// Typed slices and arrays ([]float64, [3]float64, ...).
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make(List, rv.Len())
		for i := range rv.Len() {
			conv, err := From(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = conv
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported type: %T", v)
}

// MustFrom is like From but panics on error.
// Use only in tests or for literal defaults known to be valid.
func MustFrom(v any) Value {
	out, err := From(v)
	if err != nil {
		panic(err)
	}
	return out
}

// ToPlain converts v into plain Go values (map[string]any, []any, string,
// int64, float64, bool, nil) for consumers such as JSONPath evaluators.
// Bytes leaves become strings.
func ToPlain(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case Text:
		return string(val)
	case Bytes:
		return string(val)
	case List:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToPlain(elem)
		}
		return out
	case *Nested:
		out := make(map[string]any, val.Len())
		for k, elem := range val.All() {
			out[k] = ToPlain(elem)
		}
		return out
	}
	return nil
}

// AsFloat returns the numeric value of an Int or Float.
func AsFloat(v Value) (float64, bool) {
	switch val := v.(type) {
	case Int:
		return float64(val), true
	case Float:
		return float64(val), true
	}
	return 0, false
}

// AsInt returns the value of an Int, or of a Float with no fractional part.
func AsInt(v Value) (int64, bool) {
	switch val := v.(type) {
	case Int:
		return int64(val), true
	case Float:
		f := float64(val)
		if f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int64(f), true
		}
	}
	return 0, false
}

// AsBool returns the value of a Bool.
func AsBool(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}

// AsString returns the value of a Text or Bytes leaf.
func AsString(v Value) (string, bool) {
	switch val := v.(type) {
	case Text:
		return string(val), true
	case Bytes:
		return string(val), true
	}
	return "", false
}

// AsFloats returns the elements of a numeric List as float64s.
func AsFloats(v Value) ([]float64, bool) {
	list, ok := v.(List)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(list))
	for i, elem := range list {
		f, ok := AsFloat(elem)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// AsInts returns the elements of an integral List as int64s.
func AsInts(v Value) ([]int64, bool) {
	list, ok := v.(List)
	if !ok {
		return nil, false
	}
	out := make([]int64, len(list))
	for i, elem := range list {
		n, ok := AsInt(elem)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// FormatFloat renders f in shortest round-trip form, always keeping a
// decimal point or exponent so the text reads back as a float.
func FormatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// TypeName returns a short name for the shape of v, used in messages.
func TypeName(v Value) string {
	switch v.(type) {
	case nil, Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case Text:
		return "text"
	case Bytes:
		return "bytes"
	case List:
		return "list"
	case *Nested:
		return "nested"
	}
	return fmt.Sprintf("%T", v)
}
