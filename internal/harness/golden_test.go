package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/roomsim/internal/ir"
	"github.com/roach88/roomsim/internal/sim"
)

func TestRunWithGolden_StudioDirectPath(t *testing.T) {
	result, err := RunWithGolden(t, loadTestScenario(t, "studio_direct_path"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunWithGolden_EmptyRoom(t *testing.T) {
	result, err := RunWithGolden(t, loadTestScenario(t, "empty_room"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestAssertGolden_FromResult(t *testing.T) {
	result, err := Run(loadTestScenario(t, "studio_direct_path"))
	require.NoError(t, err)

	require.NoError(t, AssertGolden(t, "studio_direct_path", result))
}

func TestSnapshot_WithoutResponse(t *testing.T) {
	r := NewResult()
	r.Config = ir.NewNested(ir.F("sources", ir.List{}))

	data, err := NewSnapshot("bare", r).MarshalCanonical()
	require.NoError(t, err)
	assert.Equal(t, `{"receivers":null,"scenario_name":"bare","sources":[]}`, string(data))
}

func TestSnapshot_CanonicalDeterminism(t *testing.T) {
	r := NewResult()
	r.Config = ir.NewNested(
		ir.F("receivers", ir.List{ir.NewNested(
			ir.F("orientation", ir.Null{}),
			ir.F("location", ir.List{ir.Float(1.5), ir.Int(2)}),
		)}),
	)
	r.Response = &sim.Response{Samples: []float64{0, 1}, Channels: 1, SampleRate: 10, SampleCount: 2}

	var outputs []string
	for range 5 {
		data, err := NewSnapshot("det", r).MarshalCanonical()
		require.NoError(t, err)
		outputs = append(outputs, string(data))
	}
	for _, out := range outputs[1:] {
		assert.Equal(t, outputs[0], out)
	}
	assert.Equal(t,
		`{"receivers":[{"location":[1.5,2],"orientation":null}],"response":{"channels":1,"onsets":[1],"sample_count":2,"sample_rate":10},"scenario_name":"det","sources":null}`,
		outputs[0])
}
