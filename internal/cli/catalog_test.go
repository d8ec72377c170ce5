package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/roomsim/internal/scene"
	"github.com/roach88/roomsim/internal/store"
)

func catalogAdd(t *testing.T, db string, paths ...string) []CatalogEntry {
	t.Helper()
	args := append([]string{"add", "--db", db}, paths...)
	stdout, err := execute(t, NewCatalogCommand(&RootOptions{Format: "json"}), args...)
	require.NoError(t, err)

	var resp struct {
		Data []CatalogEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	return resp.Data
}

func TestCatalogAdd(t *testing.T) {
	db := testDB(t)

	entries := catalogAdd(t, db, studioScene, hallsPackage)
	require.Len(t, entries, 3)
	assert.Equal(t, "studio", entries[0].Name)
	assert.Equal(t, "small", entries[1].Name)
	assert.Equal(t, "large", entries[2].Name)
	for i, e := range entries {
		assert.True(t, e.Added)
		assert.Equal(t, int64(i+1), e.Seq)
	}
}

func TestCatalogAddIsIdempotentAcrossFormats(t *testing.T) {
	db := testDB(t)
	first := catalogAdd(t, db, studioScene)

	converted := filepath.Join(t.TempDir(), "copy.yml")
	_, err := execute(t, NewConvertCommand(&RootOptions{Format: "text"}), studioScene, "-o", converted)
	require.NoError(t, err)

	again := catalogAdd(t, db, converted)
	require.Len(t, again, 1)
	assert.False(t, again[0].Added)
	assert.Equal(t, first[0].ID, again[0].ID)
	assert.Equal(t, "studio", again[0].Name)
}

func TestCatalogAddText(t *testing.T) {
	cmd := NewCatalogCommand(&RootOptions{Format: "text"})

	stdout, err := execute(t, cmd, "add", "--db", testDB(t), studioScene)
	require.NoError(t, err)
	assert.Regexp(t, `^\+ [0-9a-f]{12}  studio\n$`, stdout)
}

func TestCatalogAddMalformedScene(t *testing.T) {
	db := testDB(t)
	cmd := NewCatalogCommand(&RootOptions{Format: "text"})

	_, err := execute(t, cmd, "add", "--db", db, studioScene, brokenScene)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	scenes, err := st.ListScenes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, scenes)
}

func TestCatalogList(t *testing.T) {
	db := testDB(t)
	catalogAdd(t, db, hallsPackage)

	stdout, err := execute(t, NewCatalogCommand(&RootOptions{Format: "text"}), "list", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, stdout, "SEQ")
	assert.Contains(t, stdout, "small")
	assert.Contains(t, stdout, "large")

	stdout, err = execute(t, NewCatalogCommand(&RootOptions{Format: "json"}), "list", "--db", db)
	require.NoError(t, err)
	var resp struct {
		Data []CatalogEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "small", resp.Data[0].Name)
	assert.Equal(t, 0, resp.Data[0].Runs)
}

func TestCatalogListEmpty(t *testing.T) {
	stdout, err := execute(t, NewCatalogCommand(&RootOptions{Format: "text"}), "list", "--db", testDB(t))
	require.NoError(t, err)
	assert.Equal(t, "No scenes cataloged\n", stdout)
}

func TestCatalogShowByPrefix(t *testing.T) {
	db := testDB(t)
	entries := catalogAdd(t, db, studioScene)

	stdout, err := execute(t, NewCatalogCommand(&RootOptions{Format: "text"}), "show", "--db", db, entries[0].ID[:8])
	require.NoError(t, err)
	assert.Contains(t, stdout, "# studio ("+entries[0].ID+")")
	assert.Contains(t, stdout, "dimension: [6, 4, 3]")
	assert.Contains(t, stdout, "outputname: studio")
}

func TestCatalogShowExport(t *testing.T) {
	db := testDB(t)
	entries := catalogAdd(t, db, studioScene)
	out := filepath.Join(t.TempDir(), "studio.txt")

	_, err := execute(t, NewCatalogCommand(&RootOptions{Format: "text"}), "show", "--db", db, entries[0].ID, "-o", out)
	require.NoError(t, err)

	setup, err := scene.FromText(out)
	require.NoError(t, err)
	assert.Len(t, setup.Receivers(), 2)
	assert.Equal(t, 48000.0, setup.Options().SampleRate())
}

func TestCatalogShowNotFound(t *testing.T) {
	stdout, err := execute(t, NewCatalogCommand(&RootOptions{Format: "json"}), "show", "--db", testDB(t), "deadbeef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeNotFound)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestCatalogMissingDatabaseFlag(t *testing.T) {
	_, err := execute(t, NewCatalogCommand(&RootOptions{Format: "text"}), "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestCatalogBadDatabasePath(t *testing.T) {
	_, err := execute(t, NewCatalogCommand(&RootOptions{Format: "text"}), "list", "--db", "/nonexistent/dir/scenes.db")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), ErrCodeDatabase)
}
