package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
)

func newTestSetup(t *testing.T) *RoomSetup {
	t.Helper()
	src, err := NewSource(entity.Kw("location", []float64{8, 2.5, 1.6}))
	require.NoError(t, err)
	rcv, err := NewReceiver(entity.Kw("location", []float64{5, 3, 0}))
	require.NoError(t, err)
	room, err := NewRoom()
	require.NoError(t, err)
	opts, err := NewOptions()
	require.NoError(t, err)

	setup, err := NewRoomSetup(
		entity.Kw("room", room),
		entity.Kw("options", opts),
		entity.Kw("sources", src),
		entity.Kw("receivers", rcv),
	)
	require.NoError(t, err)
	return setup
}

func TestEndToEndRoundTrip(t *testing.T) {
	setup := newTestSetup(t)

	cfg, err := setup.Config()
	require.NoError(t, err)

	back, err := FromConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 7, 4}, back.Room().Dimension())
	require.Len(t, back.Sources(), 1)
	assert.Equal(t, []float64{8, 2.5, 1.6}, back.Sources()[0].Location())
	require.Len(t, back.Receivers(), 1)
	assert.Equal(t, []float64{5, 3, 0}, back.Receivers()[0].Location())

	again, err := back.Config()
	require.NoError(t, err)
	assert.True(t, ir.Equal(cfg, again))
}

func TestRoomSetupPayloadShape(t *testing.T) {
	cfg, err := newTestSetup(t).Config()
	require.NoError(t, err)

	assert.Equal(t, []string{"room", "options", "sources", "receivers"}, cfg.Keys())

	room, _ := cfg.Get("room")
	assert.Equal(t, []string{"dimension", "humidity", "temperature", "surface"}, room.(*ir.Nested).Keys())

	surface, _ := room.(*ir.Nested).Get("surface")
	assert.Equal(t, []string{"frequency", "absorption", "diffusion"}, surface.(*ir.Nested).Keys())

	opts, _ := cfg.Get("options")
	assert.Equal(t, OptionsSchema.ParamNames(), opts.(*ir.Nested).Keys())

	sources, _ := cfg.Get("sources")
	src := sources.(ir.List)[0].(*ir.Nested)
	assert.Equal(t, []string{"location", "orientation", "description"}, src.Keys())
}

func TestRoomSetupPayloadEncodesText(t *testing.T) {
	src, err := NewSource(entity.Kw("description", "omnidirectional"))
	require.NoError(t, err)
	setup, err := NewRoomSetup(entity.Kw("sources", src))
	require.NoError(t, err)

	cfg, err := setup.Config()
	require.NoError(t, err)

	sources, _ := cfg.Get("sources")
	desc, _ := sources.(ir.List)[0].(*ir.Nested).Get("description")
	assert.Equal(t, ir.Bytes("omnidirectional"), desc)

	back, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "omnidirectional", back.Sources()[0].Description())
	assert.Equal(t, ir.Text("omnidirectional"), back.Sources()[0].Value("description"))
}

func TestSingleSensorBecomesList(t *testing.T) {
	src, err := NewSource(entity.Kw("location", []float64{1, 1, 1}))
	require.NoError(t, err)

	setup, err := NewRoomSetup(entity.Kw("sources", src))
	require.NoError(t, err)
	assert.Len(t, setup.Sources(), 1)
	assert.Same(t, src, setup.Sources()[0])
}

func TestSensorListKeepsOrder(t *testing.T) {
	a, err := NewSource(entity.Kw("description", "a"))
	require.NoError(t, err)
	b, err := NewSource(entity.Kw("description", "b"))
	require.NoError(t, err)

	setup, err := NewRoomSetup(entity.Kw("sources", []*Source{a, b}))
	require.NoError(t, err)

	sources := setup.Sources()
	require.Len(t, sources, 2)
	assert.Equal(t, "a", sources[0].Description())
	assert.Equal(t, "b", sources[1].Description())
}

func TestRoomSetupDefaults(t *testing.T) {
	setup, err := NewRoomSetup()
	require.NoError(t, err)

	require.NotNil(t, setup.Room())
	require.NotNil(t, setup.Options())
	require.Len(t, setup.Sources(), 1)
	require.Len(t, setup.Receivers(), 1)
	assert.True(t, setup.Sources()[0].IsNull("location"))
	assert.Nil(t, setup.Receivers()[0].Location())
	assert.Equal(t, []string{"room", "options", "sources", "receivers"}, setup.FieldNames())
}

func TestRoomSetupEmptySensorList(t *testing.T) {
	setup, err := NewRoomSetup(entity.Kw("receivers", []*Receiver{}))
	require.NoError(t, err)
	assert.Empty(t, setup.Receivers())

	cfg, err := setup.Config()
	require.NoError(t, err)
	receivers, _ := cfg.Get("receivers")
	assert.Equal(t, ir.List{}, receivers)

	back, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Empty(t, back.Receivers())
}

func TestRoomSetupRejectsScalarSensors(t *testing.T) {
	_, err := NewRoomSetup(entity.Kw("sources", 3))
	require.Error(t, err)

	var e *entity.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "sources", e.Field)
}

func TestRoomSetupRejectsNilSensorInList(t *testing.T) {
	src, err := NewSource(entity.Kw("location", []float64{1, 2, 3}))
	require.NoError(t, err)

	_, err = NewRoomSetup(entity.Kw("sources", []*SourceOrReceiver{src, nil}))
	require.Error(t, err)
	assert.True(t, entity.IsInvalidValue(err), "got %v", err)

	_, err = NewRoomSetup(entity.Kw("receivers", []*Receiver{nil}))
	require.Error(t, err)
}

func TestRoomSetupPositionalArguments(t *testing.T) {
	room, err := NewRoom(entity.Pos([]float64{5, 4, 3}))
	require.NoError(t, err)

	setup, err := NewRoomSetup(entity.Pos(room))
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 4, 3}, setup.Room().Dimension())

	_, err = NewRoomSetup(entity.Pos(nil), entity.Pos(nil), entity.Pos(nil), entity.Pos(nil), entity.Pos(nil))
	assert.True(t, entity.IsArityError(err))
}

func TestDecodeWithName(t *testing.T) {
	setup := newTestSetup(t)
	cfg, err := setup.Config(entity.WithName())
	require.NoError(t, err)

	name, _ := cfg.Get(entity.NameKey)
	assert.Equal(t, ir.Bytes(KindRoomSetup), name)

	c, err := Decode(cfg)
	require.NoError(t, err)
	back, ok := c.(*RoomSetup)
	require.True(t, ok)
	assert.Equal(t, []float64{8, 2.5, 1.6}, back.Sources()[0].Location())

	room, err := setup.Room().Config(entity.WithName())
	require.NoError(t, err)
	c, err = Decode(room)
	require.NoError(t, err)
	_, ok = c.(*Room)
	assert.True(t, ok)
}

func TestFromConfigAs(t *testing.T) {
	c, err := FromConfigAs("room", ir.NewNested(ir.F("humidity", ir.Float(0.6))))
	require.NoError(t, err)

	room, ok := c.(*Room)
	require.True(t, ok)
	assert.Equal(t, 0.6, room.Humidity())
	assert.NotNil(t, room.Surface())

	_, err = FromConfigAs("ceiling", ir.NewNested())
	assert.True(t, entity.IsUnknownFieldClass(err))
}

func TestFromConfigUnknownNestedField(t *testing.T) {
	cfg := ir.NewNested(ir.F("speaker", ir.NewNested(ir.F("gain", ir.Int(1)))))
	_, err := FromConfig(cfg)
	assert.True(t, entity.IsUnknownFieldClass(err))
}

func TestFromConfigKeepsPlainLists(t *testing.T) {
	cfg := ir.NewNested(ir.F("room", ir.NewNested(
		ir.F("dimension", ir.List{ir.Int(3), ir.Int(3), ir.Int(3)}),
	)))
	setup, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3, 3}, setup.Room().Dimension())
}
