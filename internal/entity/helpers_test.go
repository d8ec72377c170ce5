package entity

import "github.com/roach88/roomsim/internal/ir"

// Test kinds: a Panel is a leaf entity, a Wall owns one panel and a list of
// panels, with the constructor body filling a default panel.
var (
	panelSchema = &Schema{
		Kind: "Panel",
		Params: []Param{
			{Name: "width", Default: 1.0},
			{Name: "height", Default: 2.0},
			{Name: "label"},
		},
	}

	wallSchema = &Schema{
		Kind: "Wall",
		Params: []Param{
			{Name: "panel"},
			{Name: "panels"},
			{Name: "absorption", Default: []float64{0.1, 0.2}},
		},
		Init: func(e *Entity) error {
			if e.IsNull("panel") {
				p, err := panelSchema.New()
				if err != nil {
					return err
				}
				return e.Assign("panel", p)
			}
			return nil
		},
	}

	extrasSchema = &Schema{
		Kind:     "Extras",
		Params:   []Param{{Name: "fs", Default: 44100.0}},
		Variadic: true,
	}

	testRegistry = newTestRegistry()
)

func newTestRegistry() *Registry {
	r := NewRegistry(wallSchema, extrasSchema)
	// Field names that differ from their kind resolve through aliases.
	if err := r.Register(panelSchema, "panels"); err != nil {
		panic(err)
	}
	return r
}

func mustNew(s *Schema, args ...Arg) *Entity {
	e, err := s.New(args...)
	if err != nil {
		panic(err)
	}
	return e
}

func get(t interface{ Helper() }, n *ir.Nested, key string) ir.Value {
	t.Helper()
	v, _ := n.Get(key)
	return v
}
