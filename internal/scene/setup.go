package scene

import (
	"fmt"

	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
)

// RoomSetupSchema declares RoomSetup, the aggregate handed to the engine.
var RoomSetupSchema = &entity.Schema{
	Kind: KindRoomSetup,
	Params: []entity.Param{
		{Name: "room"},
		{Name: "options"},
		{Name: "sources"},
		{Name: "receivers"},
	},
	Init: initRoomSetup,
	Wrap: func(e *entity.Entity) entity.Configurable { return &RoomSetup{e} },
}

func initRoomSetup(e *entity.Entity) error {
	if e.IsNull("room") {
		room, err := NewRoom()
		if err != nil {
			return err
		}
		if err := e.Assign("room", room); err != nil {
			return err
		}
	}
	if e.IsNull("options") {
		opts, err := NewOptions()
		if err != nil {
			return err
		}
		if err := e.Assign("options", opts); err != nil {
			return err
		}
	}
	for _, name := range []string{"sources", "receivers"} {
		sensors, err := sensorList(e.Field(name))
		if err != nil {
			return entity.NewInvalidValueError(KindRoomSetup, name, err.Error())
		}
		if err := e.Assign(name, sensors); err != nil {
			return err
		}
	}
	return nil
}

// sensorList normalizes a sources/receivers field to a list: unset becomes
// one default sensor, a single sensor becomes a list of one, and a list
// is kept as given.
func sensorList(v any) ([]entity.Configurable, error) {
	switch val := v.(type) {
	case nil, ir.Null:
		s, err := NewSourceOrReceiver()
		if err != nil {
			return nil, err
		}
		return []entity.Configurable{s}, nil
	case []entity.Configurable:
		return val, nil
	case entity.Configurable:
		return []entity.Configurable{val}, nil
	case ir.List:
		if len(val) == 0 {
			return []entity.Configurable{}, nil
		}
	}
	return nil, fmt.Errorf("expected a sensor or a list of sensors, got %T", v)
}

// RoomSetup is the complete scene: one room, the options, and the ordered
// sources and receivers.
type RoomSetup struct {
	*entity.Entity
}

// NewRoomSetup builds a RoomSetup. Unset room and options take their
// defaults; sources and receivers may be given as one sensor or as a list
// and always read back as a list.
func NewRoomSetup(args ...entity.Arg) (*RoomSetup, error) {
	c, err := RoomSetupSchema.Build(args...)
	if err != nil {
		return nil, err
	}
	return c.(*RoomSetup), nil
}

// Room returns the room.
func (s *RoomSetup) Room() *Room {
	return asRoom(s.Field("room"))
}

// Options returns the simulation options.
func (s *RoomSetup) Options() *Options {
	return asOptions(s.Field("options"))
}

// Sources returns the sources in order.
func (s *RoomSetup) Sources() []*SourceOrReceiver {
	return sensors(s.Field("sources"))
}

// Receivers returns the receivers in order.
func (s *RoomSetup) Receivers() []*SourceOrReceiver {
	return sensors(s.Field("receivers"))
}

func sensors(v any) []*SourceOrReceiver {
	list, _ := v.([]entity.Configurable)
	out := make([]*SourceOrReceiver, 0, len(list))
	for _, c := range list {
		if s := asSourceOrReceiver(c); s != nil {
			out = append(out, s)
		}
	}
	return out
}
