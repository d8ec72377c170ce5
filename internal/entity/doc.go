// Package entity implements configurable entities: declared constructor
// schemas, argument capture into ordered fields, serialization into
// ir.Nested and reconstruction through a name resolver.
//
// A kind is declared once as a Schema (ordered Params plus an Init body).
// Everything else is generic:
//
//	e, err := schema.New(entity.Pos(x), entity.Kw("humidity", 0.4))
//	cfg, err := entity.Config(e)                 // ordered, text leaves as bytes
//	back, err := entity.FromConfig(schema, cfg, resolver)
//
// Field order is the parameter declaration order regardless of how the
// arguments were supplied.
package entity
