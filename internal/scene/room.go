package scene

import (
	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
)

// RoomSchema declares Room: a shoebox room with its air conditions and
// wall surface.
var RoomSchema = &entity.Schema{
	Kind: KindRoom,
	Params: []entity.Param{
		{Name: "dimension", Default: []int64{10, 7, 4}},
		{Name: "humidity", Default: 0.42},
		{Name: "temperature", Default: 20.0},
		{Name: "surface"},
	},
	Init: func(e *entity.Entity) error {
		if !e.IsNull("surface") {
			return nil
		}
		s, err := NewSurface()
		if err != nil {
			return err
		}
		return e.Assign("surface", s)
	},
	Wrap: func(e *entity.Entity) entity.Configurable { return &Room{e} },
}

// Room is a shoebox room.
type Room struct {
	*entity.Entity
}

// NewRoom builds a Room. A missing surface becomes the default Surface.
func NewRoom(args ...entity.Arg) (*Room, error) {
	c, err := RoomSchema.Build(args...)
	if err != nil {
		return nil, err
	}
	return c.(*Room), nil
}

// Dimension returns length, width and height in meters.
func (r *Room) Dimension() []float64 {
	d, _ := ir.AsFloats(r.Value("dimension"))
	return d
}

// Humidity returns the relative humidity as a fraction.
func (r *Room) Humidity() float64 {
	h, _ := ir.AsFloat(r.Value("humidity"))
	return h
}

// Temperature returns the air temperature in degrees Celsius.
func (r *Room) Temperature() float64 {
	t, _ := ir.AsFloat(r.Value("temperature"))
	return t
}

// Surface returns the wall surface, or nil if the field holds something
// other than a Surface.
func (r *Room) Surface() *Surface {
	return asSurface(r.Field("surface"))
}
