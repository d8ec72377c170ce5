package entity

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/roach88/roomsim/internal/ir"
)

// NameKey is the mapping key WithName writes the entity kind under, and the
// discriminant FromConfig and Decode read back.
const NameKey = "name"

// ConfigOption configures serialization.
type ConfigOption func(*configOptions)

type configOptions struct {
	withName   bool
	encoding   encoding.Encoding
	textLeaves bool
}

// WithName adds a NameKey entry holding the kind to every serialized
// entity, so the mapping can be decoded without an external type hint.
func WithName() ConfigOption {
	return func(o *configOptions) { o.withName = true }
}

// WithEncoding sets the encoding text leaves are converted to.
// Default: UTF-8.
func WithEncoding(enc encoding.Encoding) ConfigOption {
	return func(o *configOptions) { o.encoding = enc }
}

// WithTextLeaves skips leaf encoding and keeps text leaves as ir.Text.
// Markup and JSON persistence use this.
func WithTextLeaves() ConfigOption {
	return func(o *configOptions) { o.textLeaves = true }
}

// Config serializes c into a nested mapping keyed by its recorded field
// names, in order.
//
// Field values are classified as:
//   - Configurable: serialized recursively
//   - []Configurable: each element serialized recursively, giving an ir.List
//   - ir.Value: leaf post-processing, which encodes every text leaf (also
//     inside lists) into ir.Bytes for the native boundary
//
// Config never mutates c. It fails only when a text leaf cannot be
// represented in the target encoding.
func Config(c Configurable, opts ...ConfigOption) (*ir.Nested, error) {
	o := configOptions{encoding: unicode.UTF8}
	for _, opt := range opts {
		opt(&o)
	}
	s := &serializer{opts: o}
	if !o.textLeaves {
		s.enc = o.encoding.NewEncoder()
	}
	return s.entity(c)
}

// ConfigList serializes a top-level list of entities.
func ConfigList(items []Configurable, opts ...ConfigOption) (ir.List, error) {
	out := make(ir.List, len(items))
	for i, item := range items {
		cfg, err := Config(item, opts...)
		if err != nil {
			return nil, underField(fmt.Sprintf("[%d]", i), err)
		}
		out[i] = cfg
	}
	return out, nil
}

type serializer struct {
	opts configOptions
	enc  *encoding.Encoder
}

func (s *serializer) entity(c Configurable) (*ir.Nested, error) {
	out := ir.NewNested()
	for _, name := range c.FieldNames() {
		v, err := s.field(c.Field(name))
		if err != nil {
			var e *Error
			if errors.As(err, &e) && e.Kind == "" {
				e.Kind = c.Kind()
			}
			return nil, underField(name, err)
		}
		out.Set(name, v)
	}
	if s.opts.withName {
		out.Set(NameKey, s.text(c.Kind()))
	}
	return out, nil
}

func (s *serializer) field(v any) (ir.Value, error) {
	switch val := v.(type) {
	case nil:
		return ir.Null{}, nil
	case Configurable:
		return s.entity(val)
	case []Configurable:
		out := make(ir.List, len(val))
		for i, elem := range val {
			cfg, err := s.entity(elem)
			if err != nil {
				return nil, underField(fmt.Sprintf("[%d]", i), err)
			}
			out[i] = cfg
		}
		return out, nil
	case ir.Value:
		return s.leaf(val)
	}
	return nil, NewInvalidValueError("", "", fmt.Sprintf("unsupported field value %T", v))
}

// leaf applies leaf post-processing: text is encoded to bytes, other
// scalars pass through unchanged.
func (s *serializer) leaf(v ir.Value) (ir.Value, error) {
	switch val := v.(type) {
	case ir.Text:
		if s.enc == nil {
			return val, nil
		}
		return s.encode(string(val))
	case ir.List:
		out := make(ir.List, len(val))
		for i, elem := range val {
			conv, err := s.leaf(elem)
			if err != nil {
				return nil, underField(fmt.Sprintf("[%d]", i), err)
			}
			out[i] = conv
		}
		return out, nil
	case *ir.Nested:
		out := ir.NewNested()
		for k, elem := range val.All() {
			conv, err := s.leaf(elem)
			if err != nil {
				return nil, underField(k, err)
			}
			out.Set(k, conv)
		}
		return out, nil
	}
	return v, nil
}

func (s *serializer) text(str string) ir.Value {
	if s.enc == nil {
		return ir.Text(str)
	}
	// Kind names are ASCII identifiers; every supported encoding holds them.
	b, err := s.encode(str)
	if err != nil {
		return ir.Text(str)
	}
	return b
}

func (s *serializer) encode(str string) (ir.Value, error) {
	if !utf8.ValidString(str) {
		return nil, NewEncodingError("", "", errors.New("invalid UTF-8"))
	}
	out, err := s.enc.String(str)
	if err != nil {
		return nil, NewEncodingError("", "", err)
	}
	return ir.Bytes(out), nil
}
