package scene

import (
	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
)

// SourceOrReceiverSchema declares a sound source or receiver. The fields
// are unset until given.
var SourceOrReceiverSchema = &entity.Schema{
	Kind: KindSourceOrReceiver,
	Params: []entity.Param{
		{Name: "location"},
		{Name: "orientation"},
		{Name: "description"},
	},
	Wrap: func(e *entity.Entity) entity.Configurable { return &SourceOrReceiver{e} },
}

// SourceOrReceiver is a point sensor: a sound source or a receiver. Both
// roles share one type.
type SourceOrReceiver struct {
	*entity.Entity
}

// Source and Receiver name the two roles of SourceOrReceiver.
type (
	Source   = SourceOrReceiver
	Receiver = SourceOrReceiver
)

// NewSourceOrReceiver builds a SourceOrReceiver.
func NewSourceOrReceiver(args ...entity.Arg) (*SourceOrReceiver, error) {
	c, err := SourceOrReceiverSchema.Build(args...)
	if err != nil {
		return nil, err
	}
	return c.(*SourceOrReceiver), nil
}

// NewSource builds a source.
func NewSource(args ...entity.Arg) (*Source, error) {
	return NewSourceOrReceiver(args...)
}

// NewReceiver builds a receiver.
func NewReceiver(args ...entity.Arg) (*Receiver, error) {
	return NewSourceOrReceiver(args...)
}

// Location returns the position in meters, or nil when unset.
func (s *SourceOrReceiver) Location() []float64 {
	l, _ := ir.AsFloats(s.Value("location"))
	return l
}

// Orientation returns yaw, pitch and roll in degrees, or nil when unset.
func (s *SourceOrReceiver) Orientation() []float64 {
	o, _ := ir.AsFloats(s.Value("orientation"))
	return o
}

// Description returns the sensor description, e.g. "omnidirectional".
func (s *SourceOrReceiver) Description() string {
	d, _ := ir.AsString(s.Value("description"))
	return d
}
