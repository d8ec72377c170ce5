package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
)

func TestSurfaceDefaults(t *testing.T) {
	s, err := NewSurface()
	require.NoError(t, err)

	assert.Equal(t, []float64{125, 250, 500, 1000, 2000, 4000}, s.Frequency())
	assert.Len(t, s.Absorption(), 36)
	assert.Equal(t, 0.35, s.Absorption()[7])
	assert.Len(t, s.Diffusion(), 36)
	assert.NoError(t, s.Validate(Walls))
}

func TestSurfaceDefaultsAreNotShared(t *testing.T) {
	a, err := NewSurface()
	require.NoError(t, err)
	b, err := NewSurface()
	require.NoError(t, err)

	list := a.Value("absorption").(ir.List)
	list[0] = ir.Float(0.99)

	assert.Equal(t, 0.1, b.Absorption()[0])
	assert.Equal(t, 0.1, DefaultAbsorption[0])
}

func TestSurfaceExplicitNullGetsDefault(t *testing.T) {
	s, err := NewSurface(entity.Kw("frequency", nil))
	require.NoError(t, err)
	assert.Len(t, s.Frequency(), 6)
}

func TestSurfaceValidate(t *testing.T) {
	s, err := NewSurface(
		entity.Kw("frequency", []int{500, 1000}),
		entity.Kw("absorption", []float64{0.1, 0.2, 0.3, 0.4}),
		entity.Kw("diffusion", []float64{0.5, 0.5, 0.5}),
	)
	require.NoError(t, err)

	err = s.Validate(2)
	require.Error(t, err)

	var e *entity.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "diffusion", e.Field)

	s, err = NewSurface(
		entity.Kw("frequency", []int{500, 1000}),
		entity.Kw("absorption", "none"),
	)
	require.NoError(t, err)
	assert.Error(t, s.Validate(2))
}

func TestRoomDefaults(t *testing.T) {
	r, err := NewRoom()
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 7, 4}, r.Dimension())
	assert.Equal(t, 0.42, r.Humidity())
	assert.Equal(t, 20.0, r.Temperature())
	require.NotNil(t, r.Surface())
	assert.Len(t, r.Surface().Frequency(), 6)

	// Defaults keep their declared types.
	assert.Equal(t, ir.List{ir.Int(10), ir.Int(7), ir.Int(4)}, r.Value("dimension"))
	assert.Equal(t, ir.Float(20), r.Value("temperature"))
}

func TestRoomKeepsGivenSurface(t *testing.T) {
	s, err := NewSurface(entity.Kw("frequency", []int{1000}))
	require.NoError(t, err)

	r, err := NewRoom(entity.Kw("surface", s))
	require.NoError(t, err)
	assert.Same(t, s, r.Surface())
}

func TestRoomRecordedFieldsIgnoreDerivedValues(t *testing.T) {
	r, err := NewRoom(entity.Kw("humidity", 0.3), entity.Pos([]int{4, 4, 3}))
	require.NoError(t, err)

	assert.Equal(t, []string{"dimension", "humidity", "temperature", "surface"}, r.FieldNames())
	assert.Equal(t, []float64{4, 4, 3}, r.Dimension())
	assert.Equal(t, 0.3, r.Humidity())
}

func TestOptionsDefaults(t *testing.T) {
	o, err := NewOptions()
	require.NoError(t, err)

	assert.Equal(t, 44100.0, o.SampleRate())
	assert.Equal(t, 1.25, o.ResponseDuration())
	assert.Equal(t, []int64{10, 10, 10}, o.ReflectionOrder())
	assert.Equal(t, int64(2000), o.NumberOfRays())
	assert.Equal(t, ir.Int(-80), o.Value("rayenergyfloordB"))
	assert.Equal(t, ir.Float(0.01), o.Value("diffusetimestep"))
	assert.Equal(t, ir.Bool(false), o.Value("subsampleaccuracy"))
	assert.Len(t, o.FieldNames(), 16)
	assert.Empty(t, o.Extra())
}

func TestOptionsKeepsExtraKeywords(t *testing.T) {
	o, err := NewOptions(
		entity.Kw("outputname", "brir"),
		entity.Kw("fs", 48000),
	)
	require.NoError(t, err)

	assert.Equal(t, 48000.0, o.SampleRate())
	assert.Equal(t, []string{"outputname"}, o.Extra())

	cfg, err := o.Config()
	require.NoError(t, err)
	keys := cfg.Keys()
	assert.Equal(t, "outputname", keys[len(keys)-1])

	back, err := FromConfigAs(KindOptions, cfg)
	require.NoError(t, err)
	assert.Equal(t, ir.Text("brir"), back.(*Options).Value("outputname"))
}

func TestSourceAndReceiverShareKind(t *testing.T) {
	src, err := NewSource()
	require.NoError(t, err)
	rcv, err := NewReceiver()
	require.NoError(t, err)

	assert.Equal(t, KindSourceOrReceiver, src.Kind())
	assert.Equal(t, src.Kind(), rcv.Kind())
	assert.Equal(t, []string{"location", "orientation", "description"}, src.FieldNames())
}

func TestSourceOrReceiverAccessors(t *testing.T) {
	s, err := NewSourceOrReceiver(
		entity.Pos([]float64{1, 2, 3}),
		entity.Pos([]int{0, 90, 0}),
		entity.Pos("cardioid"),
	)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3}, s.Location())
	assert.Equal(t, []float64{0, 90, 0}, s.Orientation())
	assert.Equal(t, "cardioid", s.Description())
}

func TestUnknownKeywordRejected(t *testing.T) {
	_, err := NewRoom(entity.Kw("color", "red"))
	assert.True(t, entity.IsUnknownParam(err))
}
