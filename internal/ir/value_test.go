package ir

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueSealed(t *testing.T) {
	// Verify all types implement Value (compile-time check via assignment)
	var _ Value = Null{}
	var _ Value = Bool(true)
	var _ Value = Int(42)
	var _ Value = Float(0.42)
	var _ Value = Text("omnidirectional")
	var _ Value = Bytes("subcardioid")
	var _ Value = List{Int(1), Float(2.5)}
	var _ Value = NewNested(F("key", Text("value")))
}

func TestNestedPreservesInsertionOrder(t *testing.T) {
	n := NewNested(
		F("temperature", Float(20)),
		F("dimension", List{Int(10), Int(7), Int(4)}),
		F("humidity", Float(0.42)),
	)

	assert.Equal(t, []string{"temperature", "dimension", "humidity"}, n.Keys())
}

func TestNestedSetExistingKeepsPosition(t *testing.T) {
	n := NewNested(F("a", Int(1)), F("b", Int(2)), F("c", Int(3)))
	n.Set("a", Int(10))

	assert.Equal(t, []string{"a", "b", "c"}, n.Keys())
	v, ok := n.Get("a")
	require.True(t, ok)
	assert.Equal(t, Int(10), v)
}

func TestNestedDelete(t *testing.T) {
	n := NewNested(F("a", Int(1)), F("b", Int(2)), F("c", Int(3)))
	n.Delete("b")
	n.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, n.Keys())
	assert.False(t, n.Has("b"))
	assert.Equal(t, 2, n.Len())
}

func TestNestedSetNilStoresNull(t *testing.T) {
	n := NewNested()
	n.Set("description", nil)

	v, ok := n.Get("description")
	require.True(t, ok)
	assert.Equal(t, Null{}, v)
}

func TestNestedAllStopsEarly(t *testing.T) {
	n := NewNested(F("a", Int(1)), F("b", Int(2)), F("c", Int(3)))

	var seen []string
	for k := range n.All() {
		seen = append(seen, k)
		if k == "b" {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestNilNestedIsEmpty(t *testing.T) {
	var n *Nested
	assert.Equal(t, 0, n.Len())
	assert.Nil(t, n.Keys())
	_, ok := n.Get("a")
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	inner := List{Float(0.1), Float(0.2)}
	orig := NewNested(F("surface", NewNested(F("absorption", inner))))

	cp := Clone(orig).(*Nested)
	surface, _ := cp.Get("surface")
	surface.(*Nested).Set("absorption", List{})
	inner[0] = Float(9)

	origSurface, _ := orig.Get("surface")
	absorption, _ := origSurface.(*Nested).Get("absorption")
	assert.Equal(t, List{Float(9), Float(0.2)}, absorption)

	cpAbsorption, _ := surface.(*Nested).Get("absorption")
	assert.Equal(t, List{}, cpAbsorption)
}

func TestDecodeTextRecurses(t *testing.T) {
	v := NewNested(
		F("description", Bytes("omnidirectional")),
		F("tags", List{Bytes("a"), Int(1)}),
	)

	out := DecodeText(v).(*Nested)
	desc, _ := out.Get("description")
	assert.Equal(t, Text("omnidirectional"), desc)
	tags, _ := out.Get("tags")
	assert.Equal(t, List{Text("a"), Int(1)}, tags)
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"int equals float", Int(10), Float(10), true},
		{"float differs", Float(2.5), Float(2.6), false},
		{"text equals bytes", Text("x"), Bytes("x"), true},
		{"bool vs int", Bool(true), Int(1), false},
		{"null vs nil", Null{}, nil, true},
		{"lists", List{Int(1), Float(2)}, List{Float(1), Int(2)}, true},
		{"list length", List{Int(1)}, List{Int(1), Int(2)}, false},
		{"nested", NewNested(F("a", Int(1))), NewNested(F("a", Float(1))), true},
		{"nested key", NewNested(F("a", Int(1))), NewNested(F("b", Int(1))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestFromConvertsGoValues(t *testing.T) {
	v, err := From([]float64{8, 2.5, 1.6})
	require.NoError(t, err)
	assert.Equal(t, List{Float(8), Float(2.5), Float(1.6)}, v)

	v, err = From([3]int{10, 10, 10})
	require.NoError(t, err)
	assert.Equal(t, List{Int(10), Int(10), Int(10)}, v)

	v, err = From(map[string]any{"b": 1, "a": "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.(*Nested).Keys())

	v, err = From(nil)
	require.NoError(t, err)
	assert.Equal(t, Null{}, v)
}

func TestFromRejectsUnsupported(t *testing.T) {
	_, err := From(struct{}{})
	assert.Error(t, err)

	_, err = From([]any{1, make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[1]")
}

func TestNumericAccessors(t *testing.T) {
	floats, ok := AsFloats(List{Int(10), Float(7.5)})
	require.True(t, ok)
	assert.Equal(t, []float64{10, 7.5}, floats)

	_, ok = AsFloats(List{Text("x")})
	assert.False(t, ok)

	ints, ok := AsInts(List{Int(10), Float(10)})
	require.True(t, ok)
	assert.Equal(t, []int64{10, 10}, ints)

	_, ok = AsInt(Float(1.5))
	assert.False(t, ok)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "20.0", FormatFloat(20))
	assert.Equal(t, "0.42", FormatFloat(0.42))
	assert.Equal(t, "1e+21", FormatFloat(1e21))
	assert.Equal(t, "-80.0", FormatFloat(-80))
	assert.Equal(t, "Inf", FormatFloat(math.Inf(1)))
}

func TestToPlain(t *testing.T) {
	v := NewNested(
		F("location", List{Int(8), Float(2.5)}),
		F("description", Bytes("omni")),
		F("missing", Null{}),
	)

	plain := ToPlain(v).(map[string]any)
	assert.Equal(t, []any{int64(8), 2.5}, plain["location"])
	assert.Equal(t, "omni", plain["description"])
	assert.Nil(t, plain["missing"])
}
