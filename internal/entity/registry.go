package entity

import (
	"fmt"
	"slices"
	"strings"
)

// Resolver maps a field or kind name to the schema that reconstructs it.
// A miss is not an error: it tells the caller the name is a plain field.
type Resolver interface {
	Resolve(name string) (*Schema, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) (*Schema, bool)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(name string) (*Schema, bool) {
	return f(name)
}

// Registry is a case-insensitive name → schema table.
//
// Populate it during process start (package init or main); after that it
// is read-only and safe for concurrent lookups without locking.
type Registry struct {
	schemas map[string]*Schema
	names   []string
}

// NewRegistry creates a registry holding schemas under their kind names.
// Panics on duplicate names; registries are built from static tables.
func NewRegistry(schemas ...*Schema) *Registry {
	r := &Registry{schemas: make(map[string]*Schema)}
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds s under its kind name and any aliases.
// Names are matched case-insensitively.
func (r *Registry) Register(s *Schema, aliases ...string) error {
	names := append([]string{s.Kind}, aliases...)
	for _, name := range names {
		key := strings.ToLower(name)
		if _, ok := r.schemas[key]; ok {
			return fmt.Errorf("entity kind %q already registered", name)
		}
	}
	for _, name := range names {
		key := strings.ToLower(name)
		r.schemas[key] = s
		r.names = append(r.names, key)
	}
	return nil
}

// Resolve implements Resolver.
func (r *Registry) Resolve(name string) (*Schema, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.schemas[strings.ToLower(name)]
	return s, ok
}

// Names returns every registered name, lowercased, in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}
