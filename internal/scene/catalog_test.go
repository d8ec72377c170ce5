package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
)

func TestCatalogResolvesBuiltins(t *testing.T) {
	tests := []struct {
		name string
		want *entity.Schema
	}{
		{"room", RoomSchema},
		{"Surface", SurfaceSchema},
		{"OPTIONS", OptionsSchema},
		{"sources", SourceOrReceiverSchema},
		{"receivers", SourceOrReceiverSchema},
		{"sourceorreceiver", SourceOrReceiverSchema},
		{"roomsetup", RoomSetupSchema},
	}
	for _, tt := range tests {
		s, ok := Catalog.Resolve(tt.name)
		require.True(t, ok, tt.name)
		assert.Same(t, tt.want, s, tt.name)
	}

	_, ok := Catalog.Resolve("dimension")
	assert.False(t, ok)
}

func TestRegisterPlugin(t *testing.T) {
	diffuser := &entity.Schema{
		Kind:   "Diffuser",
		Params: []entity.Param{{Name: "depth", Default: 0.2}},
	}
	require.NoError(t, Register(diffuser, "diffusers"))

	s, ok := Catalog.Resolve("DIFFUSERS")
	require.True(t, ok)
	assert.Same(t, diffuser, s)
	assert.Contains(t, Kinds(), "diffuser")

	assert.Error(t, Register(diffuser))
	assert.Error(t, Register(&entity.Schema{Kind: "Room"}))
	assert.Error(t, Register(&entity.Schema{Kind: "Panel"}, "sources"))

	// A plugin kind is reachable from a nested field of a variadic entity.
	cfg := ir.NewNested(ir.F("diffusers", ir.List{
		ir.NewNested(ir.F("depth", ir.Float(0.3))),
	}))
	c, err := FromConfigAs(KindOptions, cfg)
	require.NoError(t, err)
	list, ok := c.Field("diffusers").([]entity.Configurable)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, "Diffuser", list[0].Kind())
}

func TestWrapTypesBareEntities(t *testing.T) {
	e, err := RoomSchema.New()
	require.NoError(t, err)

	r, ok := Wrap(e).(*Room)
	require.True(t, ok)
	assert.Equal(t, 0.42, r.Humidity())

	other := &entity.Schema{Kind: "Lamp"}
	lamp, err := other.New()
	require.NoError(t, err)
	assert.Same(t, lamp, Wrap(lamp))
}
