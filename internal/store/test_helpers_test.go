package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/roomsim/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestConfig creates a small scene configuration whose content
// depends on width.
func createTestConfig(width float64) *ir.Nested {
	return ir.NewNested(
		ir.F("room", ir.NewNested(
			ir.F("dimension", ir.List{ir.Float(width), ir.Float(7), ir.Float(4)}),
			ir.F("humidity", ir.Float(0.42)),
		)),
		ir.F("sources", ir.List{
			ir.NewNested(ir.F("description", ir.Bytes("omnidirectional"))),
		}),
	)
}

// putTestScene stores a scene and fails the test on error.
func putTestScene(t *testing.T, s *Store, name string, width float64) Scene {
	t.Helper()
	scene, _, err := s.PutScene(context.Background(), name, createTestConfig(width))
	if err != nil {
		t.Fatalf("PutScene() failed: %v", err)
	}
	return scene
}
