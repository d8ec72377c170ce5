package entity

import (
	"fmt"
	"strings"

	"github.com/roach88/roomsim/internal/ir"
)

// FromConfig reconstructs an entity of schema s from a nested mapping.
//
// Each entry becomes a keyword argument:
//   - a nested mapping is rebuilt as an entity, its kind taken from its own
//     NameKey discriminant when present, else from the field name via r;
//     a name r cannot resolve is an unknown field class error
//   - a list under a name r resolves becomes a list of entities, one per
//     element; under any other name it stays a plain list
//   - scalars pass through, with byte leaves decoded back to text
//
// A NameKey entry naming s itself is consumed as the discriminant.
func FromConfig(s *Schema, cfg *ir.Nested, r Resolver) (Configurable, error) {
	args := make([]Arg, 0, cfg.Len())
	for key, v := range cfg.All() {
		if key == NameKey && namesKind(v, s.Kind) {
			continue
		}
		val, err := fromValue(s, key, v, r)
		if err != nil {
			return nil, err
		}
		args = append(args, Kw(key, val))
	}
	c, err := s.Build(args...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Decode reconstructs an entity whose kind is carried by the mapping's own
// NameKey discriminant, as written by Config with WithName.
func Decode(cfg *ir.Nested, r Resolver) (Configurable, error) {
	s, ok := discriminant(cfg, r)
	if !ok {
		return nil, NewInvalidValueError("", NameKey, "mapping carries no registered kind discriminant")
	}
	return FromConfig(s, cfg, r)
}

func fromValue(parent *Schema, key string, v ir.Value, r Resolver) (any, error) {
	switch val := v.(type) {
	case *ir.Nested:
		sub, ok := discriminant(val, r)
		if !ok {
			sub, ok = r.Resolve(key)
		}
		if !ok {
			return nil, NewUnknownFieldClassError(parent.Kind, key)
		}
		c, err := FromConfig(sub, val, r)
		if err != nil {
			return nil, underField(key, err)
		}
		return c, nil

	case ir.List:
		sub, ok := r.Resolve(key)
		if !ok {
			return ir.DecodeText(val), nil
		}
		out := make([]Configurable, 0, len(val))
		for i, elem := range val {
			path := fmt.Sprintf("%s[%d]", key, i)
			obj, ok := elem.(*ir.Nested)
			if !ok {
				return nil, NewInvalidValueError(parent.Kind, path,
					fmt.Sprintf("expected mapping for %s entity, got %s", sub.Kind, ir.TypeName(elem)))
			}
			elemSchema := sub
			if d, ok := discriminant(obj, r); ok {
				elemSchema = d
			}
			c, err := FromConfig(elemSchema, obj, r)
			if err != nil {
				return nil, underField(path, err)
			}
			out = append(out, c)
		}
		return out, nil

	default:
		return ir.DecodeText(v), nil
	}
}

// discriminant resolves the NameKey entry of cfg, if it names a known kind.
func discriminant(cfg *ir.Nested, r Resolver) (*Schema, bool) {
	v, ok := cfg.Get(NameKey)
	if !ok {
		return nil, false
	}
	name, ok := ir.AsString(v)
	if !ok {
		return nil, false
	}
	s, ok := r.Resolve(name)
	if !ok || !strings.EqualFold(s.Kind, name) {
		return nil, false
	}
	return s, true
}

func namesKind(v ir.Value, kind string) bool {
	name, ok := ir.AsString(v)
	return ok && strings.EqualFold(name, kind)
}
