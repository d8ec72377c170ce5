// Package cuescene reads scene configurations written in CUE.
//
// A scene file is a CUE struct shaped like the nested configuration
// mapping:
//
//	room: dimension: [10, 7, 4]
//	options: fs: 48000
//	sources: [{location: [8, 2.5, 1.6]}]
//
// Definitions, hidden fields and constraints may be used freely, but every
// regular field must evaluate to a concrete value. Field order follows
// declaration order.
package cuescene

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/roomsim/internal/ir"
)

// Compile evaluates CUE source and converts the result to a nested
// mapping. filename is used in error positions.
func Compile(src []byte, filename string) (*ir.Nested, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	return Value(v)
}

// LoadFile compiles a single CUE file.
func LoadFile(path string) (*ir.Nested, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cue scene: %w", err)
	}
	return Compile(src, path)
}

// Value converts an evaluated CUE struct to a nested mapping.
func Value(v cue.Value) (*ir.Nested, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}
	out, err := toValue(v, "")
	if err != nil {
		return nil, err
	}
	cfg, ok := out.(*ir.Nested)
	if !ok {
		return nil, &CompileError{
			Field:   "scene",
			Message: fmt.Sprintf("expected a struct, got %s", ir.TypeName(out)),
			Pos:     v.Pos(),
		}
	}
	return cfg, nil
}

func toValue(v cue.Value, path string) (ir.Value, error) {
	if d, ok := v.Default(); ok {
		v = d
	}
	switch v.Kind() {
	case cue.NullKind:
		return ir.Null{}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Bool(b), nil
	case cue.IntKind:
		i, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Int(i), nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Float(f), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Text(s), nil
	case cue.BytesKind:
		b, err := v.Bytes()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return ir.Bytes(b), nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		list := ir.List{}
		for iter.Next() {
			elem, err := toValue(iter.Value(), fmt.Sprintf("%s[%d]", path, len(list)))
			if err != nil {
				return nil, err
			}
			list = append(list, elem)
		}
		return list, nil
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out := ir.NewNested()
		for iter.Next() {
			label := iter.Selector().Unquoted()
			child := label
			if path != "" {
				child = path + "." + label
			}
			elem, err := toValue(iter.Value(), child)
			if err != nil {
				return nil, err
			}
			out.Set(label, elem)
		}
		return out, nil
	}
	return nil, &CompileError{
		Field:   path,
		Message: fmt.Sprintf("value is not concrete (%v)", v.IncompleteKind()),
		Pos:     v.Pos(),
	}
}
