package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryScalar(t *testing.T) {
	cmd := NewQueryCommand(&RootOptions{Format: "text"})

	stdout, err := execute(t, cmd, studioScene, "$.options.fs")
	require.NoError(t, err)
	assert.Equal(t, "48000\n", stdout)
}

func TestQueryDefaultsVisible(t *testing.T) {
	cmd := NewQueryCommand(&RootOptions{Format: "text"})

	stdout, err := execute(t, cmd, studioScene, "$.room.temperature")
	require.NoError(t, err)
	assert.Equal(t, "20.0\n", stdout)
}

func TestQueryRawHidesDefaults(t *testing.T) {
	cmd := NewQueryCommand(&RootOptions{Format: "text"})

	_, err := execute(t, cmd, studioScene, "$.room.temperature", "--raw")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeQuery)
}

func TestQueryWildcardJSON(t *testing.T) {
	cmd := NewQueryCommand(&RootOptions{Format: "json"})

	stdout, err := execute(t, cmd, studioScene, "$.receivers[*].location")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Expression string      `json:"expression"`
			Value      [][]float64 `json:"value"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "$.receivers[*].location", resp.Data.Expression)
	assert.Equal(t, [][]float64{{4, 2, 1.2}, {4.5, 2, 1.2}}, resp.Data.Value)
}

func TestQueryText(t *testing.T) {
	cmd := NewQueryCommand(&RootOptions{Format: "text"})

	stdout, err := execute(t, cmd, studioScene, "$.sources[0].description")
	require.NoError(t, err)
	assert.Equal(t, "omnidirectional\n", stdout)
}

func TestQueryUnsetValue(t *testing.T) {
	cmd := NewQueryCommand(&RootOptions{Format: "text"})

	stdout, err := execute(t, cmd, studioScene, "$.receivers[1].orientation")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "no value found")
}

func TestQueryEmptyExpression(t *testing.T) {
	cmd := NewQueryCommand(&RootOptions{Format: "text"})

	_, err := execute(t, cmd, studioScene, "  ")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestQueryMissingFile(t *testing.T) {
	cmd := NewQueryCommand(&RootOptions{Format: "text"})

	_, err := execute(t, cmd, "testdata/scenes/nope.yml", "$.room")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)
}
