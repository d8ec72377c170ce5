package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/roach88/roomsim/internal/ir"
)

func TestConfigFollowsDeclaredOrder(t *testing.T) {
	e := mustNew(panelSchema, Kw("label", "door"), Pos(3))

	cfg, err := Config(e)
	require.NoError(t, err)

	assert.Equal(t, []string{"width", "height", "label"}, cfg.Keys())
	assert.Equal(t, ir.Int(3), get(t, cfg, "width"))
	assert.Equal(t, ir.Float(2), get(t, cfg, "height"))
}

func TestConfigEncodesTextLeaves(t *testing.T) {
	e := mustNew(panelSchema, Kw("label", "door"))

	cfg, err := Config(e)
	require.NoError(t, err)
	assert.Equal(t, ir.Bytes("door"), get(t, cfg, "label"))

	cfg, err = Config(e, WithTextLeaves())
	require.NoError(t, err)
	assert.Equal(t, ir.Text("door"), get(t, cfg, "label"))
}

func TestConfigEncodesTextInsideLists(t *testing.T) {
	e := mustNew(extrasSchema, Kw("tags", []string{"a", "b"}))

	cfg, err := Config(e)
	require.NoError(t, err)
	assert.Equal(t, ir.List{ir.Bytes("a"), ir.Bytes("b")}, get(t, cfg, "tags"))
}

func TestConfigRecursesIntoEntitiesAndLists(t *testing.T) {
	p1 := mustNew(panelSchema, Kw("label", "a"))
	p2 := mustNew(panelSchema, Kw("label", "b"))
	w := mustNew(wallSchema, Kw("panels", []*Entity{p1, p2}))

	cfg, err := Config(w)
	require.NoError(t, err)

	assert.Equal(t, []string{"panel", "panels", "absorption"}, cfg.Keys())

	panel, ok := get(t, cfg, "panel").(*ir.Nested)
	require.True(t, ok)
	assert.Equal(t, []string{"width", "height", "label"}, panel.Keys())

	panels, ok := get(t, cfg, "panels").(ir.List)
	require.True(t, ok)
	require.Len(t, panels, 2)
	assert.Equal(t, ir.Bytes("b"), get(t, panels[1].(*ir.Nested), "label"))
}

func TestConfigWithNameAppendsKind(t *testing.T) {
	w := mustNew(wallSchema)

	cfg, err := Config(w, WithName(), WithTextLeaves())
	require.NoError(t, err)

	assert.Equal(t, []string{"panel", "panels", "absorption", "name"}, cfg.Keys())
	assert.Equal(t, ir.Text("Wall"), get(t, cfg, NameKey))

	panel := get(t, cfg, "panel").(*ir.Nested)
	assert.Equal(t, ir.Text("Panel"), get(t, panel, NameKey))
}

func TestConfigDoesNotMutateEntity(t *testing.T) {
	e := mustNew(panelSchema, Kw("label", "door"))

	_, err := Config(e, WithName())
	require.NoError(t, err)

	assert.Equal(t, []string{"width", "height", "label"}, e.FieldNames())
	assert.Equal(t, ir.Text("door"), e.Field("label"))
}

func TestConfigReadsCurrentValues(t *testing.T) {
	e := mustNew(panelSchema)
	require.NoError(t, e.Assign("width", 9))

	cfg, err := e.Config()
	require.NoError(t, err)
	assert.Equal(t, ir.Int(9), get(t, cfg, "width"))
}

func TestConfigEncodingError(t *testing.T) {
	e := mustNew(panelSchema, Kw("label", "日本"))
	w := mustNew(wallSchema, Kw("panel", e))

	_, err := Config(w, WithEncoding(charmap.ISO8859_1))
	require.Error(t, err)

	assert.True(t, IsEncodingError(err))
	var ee *Error
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, "panel.label", ee.Field)
	assert.Equal(t, "Panel", ee.Kind)
}

func TestConfigLatin1Encoding(t *testing.T) {
	e := mustNew(panelSchema, Kw("label", "café"))

	cfg, err := Config(e, WithEncoding(charmap.ISO8859_1))
	require.NoError(t, err)
	assert.Equal(t, ir.Bytes{'c', 'a', 'f', 0xe9}, get(t, cfg, "label"))
}

func TestConfigInvalidUTF8(t *testing.T) {
	e := mustNew(panelSchema, Kw("label", "\xff"))

	_, err := Config(e)
	require.Error(t, err)
	assert.True(t, IsEncodingError(err))
}

func TestConfigList(t *testing.T) {
	items := []Configurable{
		mustNew(panelSchema, Kw("label", "a")),
		mustNew(panelSchema, Kw("label", "b")),
	}

	list, err := ConfigList(items, WithTextLeaves())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ir.Text("a"), get(t, list[0].(*ir.Nested), "label"))
}
