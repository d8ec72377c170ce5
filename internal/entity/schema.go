package entity

import (
	"fmt"
	"slices"
)

// Param declares one constructor parameter of an entity kind.
type Param struct {
	// Name is the field name the parameter binds.
	Name string

	// Default is used when no argument supplies the parameter. It may be
	// nil (an unset field), an ir.Value or any Go value ir.From accepts.
	// Defaults are copied on every bind, so list defaults are never shared.
	Default any
}

// Schema is the declared constructor of an entity kind: its ordered
// parameter list plus the constructor body that runs after capture.
type Schema struct {
	// Kind is the runtime type name, emitted by WithName.
	Kind string

	// Params lists the parameters in declaration order. The order is the
	// field order of every serialized mapping.
	Params []Param

	// Variadic schemas accept keyword arguments no parameter declares and
	// record them after the declared fields, in the order given.
	Variadic bool

	// Init is the constructor body. It runs after every field is captured
	// and may Assign derived values (defaults, normalization).
	Init func(e *Entity) error

	// Wrap returns the typed view of a freshly built entity. Nil means the
	// *Entity itself is the result.
	Wrap func(e *Entity) Configurable
}

// Arg is one constructor argument, supplied by position or by name.
type Arg struct {
	name  string
	value any
	named bool
}

// Pos supplies a positional argument.
func Pos(v any) Arg {
	return Arg{value: v}
}

// Kw supplies a keyword argument.
func Kw(name string, v any) Arg {
	return Arg{name: name, value: v, named: true}
}

// ParamNames returns the declared parameter names in order.
func (s *Schema) ParamNames() []string {
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return names
}

// Bind captures args into a new entity without running Init.
//
// Every declared parameter becomes a field, in declaration order. A field
// takes its declared default, is overridden by a positional argument at its
// index, and is overridden again by a keyword argument of the same name.
// Returns an arity error when more positional arguments than parameters
// are supplied.
func (s *Schema) Bind(args ...Arg) (*Entity, error) {
	var positional, named []Arg
	for _, a := range args {
		if a.named {
			named = append(named, a)
		} else {
			positional = append(positional, a)
		}
	}
	if len(positional) > len(s.Params) {
		return nil, NewArityError(s.Kind, len(positional), len(s.Params))
	}

	e := &Entity{
		schema: s,
		names:  s.ParamNames(),
		values: make(map[string]any, len(s.Params)),
	}

	for _, p := range s.Params {
		v, err := normalize(p.Default, true)
		if err != nil {
			return nil, underField(p.Name, fmt.Errorf("default of %s: %w", s.Kind, err))
		}
		e.values[p.Name] = v
	}

	for i, a := range positional {
		name := s.Params[i].Name
		v, err := normalize(a.value, false)
		if err != nil {
			return nil, NewInvalidValueError(s.Kind, name, err.Error())
		}
		e.values[name] = v
	}

	for _, a := range named {
		if !slices.Contains(s.ParamNames(), a.name) {
			if !s.Variadic {
				return nil, NewUnknownParamError(s.Kind, a.name)
			}
			if !slices.Contains(e.names, a.name) {
				e.names = append(e.names, a.name)
			}
		}
		v, err := normalize(a.value, false)
		if err != nil {
			return nil, NewInvalidValueError(s.Kind, a.name, err.Error())
		}
		e.values[a.name] = v
	}

	return e, nil
}

// New captures args and runs the constructor body.
func (s *Schema) New(args ...Arg) (*Entity, error) {
	e, err := s.Bind(args...)
	if err != nil {
		return nil, err
	}
	if s.Init != nil {
		if err := s.Init(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Build is like New but returns the typed view produced by Wrap.
func (s *Schema) Build(args ...Arg) (Configurable, error) {
	e, err := s.New(args...)
	if err != nil {
		return nil, err
	}
	if s.Wrap != nil {
		return s.Wrap(e), nil
	}
	return e, nil
}
