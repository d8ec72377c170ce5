package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return scenario
}

func TestRun_ConfigurationOnly(t *testing.T) {
	result, err := Run(loadTestScenario(t, "studio_defaults"))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Len(t, result.SceneID, 64)
	assert.Nil(t, result.Response)
	assert.Empty(t, result.RunID)
}

func TestRun_Simulated(t *testing.T) {
	result, err := Run(loadTestScenario(t, "studio_direct_path"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, DefaultRunID, result.RunID)
	assert.Equal(t, int64(1), result.Seq)
	require.NotNil(t, result.Response)
	assert.Equal(t, []int{422, 492}, result.Onsets())
}

func TestRun_DefaultSensors(t *testing.T) {
	result, err := Run(loadTestScenario(t, "empty_room"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 1, result.Response.Channels)
}

func TestRun_FixedRunID(t *testing.T) {
	scenario := loadTestScenario(t, "empty_room")
	scenario.RunID = "run-fixed-001"

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.Equal(t, "run-fixed-001", result.RunID)
}

func TestRun_Deterministic(t *testing.T) {
	scenario := loadTestScenario(t, "studio_direct_path")

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	assert.Equal(t, first.SceneID, second.SceneID)
	assert.Equal(t, first.Response.Samples, second.Response.Samples)
}

func TestRun_FreshDatabasePerRun(t *testing.T) {
	scenario := loadTestScenario(t, "empty_room")

	for range 3 {
		result, err := Run(scenario)
		require.NoError(t, err)
		// Every run is the first in its own catalog.
		assert.Equal(t, int64(1), result.Seq)
	}
}

func TestRun_FailingAssertions(t *testing.T) {
	scenario := loadTestScenario(t, "studio_direct_path")
	scenario.Assertions = []Assertion{
		{Type: AssertValue, Path: "$.options.fs", Value: 44100},
		{Type: AssertOnset, Channel: 1, Frame: 422},
		{Type: AssertCount, Path: "$.sources", Count: 2},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "$.options.fs")
	assert.Contains(t, result.Errors[1], "$.sources")
}

func TestRun_SceneLoadFailure(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "broken.txt")
	require.NoError(t, os.WriteFile(scenePath, []byte("room.dimension = [1 2\n"), 0644))

	scenario := &Scenario{
		Name:        "broken",
		Description: "Unclosed list",
		Scene:       scenePath,
		Assertions:  []Assertion{{Type: AssertAbsent, Path: "$.foo"}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "load scene")
	assert.Nil(t, result.Config)
}

func TestRun_EngineFailureFailsResult(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "silent.txt")
	require.NoError(t, os.WriteFile(scenePath, []byte("options.fs = 0\n"), 0644))

	scenario := &Scenario{
		Name:        "silent",
		Description: "Zero sample rate",
		Scene:       scenePath,
		Simulate:    &SimulateClause{},
		Assertions:  []Assertion{{Type: AssertValue, Path: "$.options.fs", Value: 0}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "simulate")
	assert.Contains(t, result.Errors[0], "ENGINE_FAILED")
}
