package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/roomsim/internal/cuescene"
	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
	"github.com/roach88/roomsim/internal/legacytxt"
	"github.com/roach88/roomsim/internal/scene"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = cuescene.ErrCodeGeneric     // Generic/unknown error
	ErrCodeParseFailed = "E002"                      // Legacy text parse error
	ErrCodeNoFiles     = cuescene.ErrCodeNoFiles     // No CUE files found
	ErrCodeLoadFailed  = cuescene.ErrCodeLoadFailed  // CUE or markup load failed
	ErrCodeNotFound    = cuescene.ErrCodeNotFound    // Path, scene or run not found
	ErrCodeBuildFailed = cuescene.ErrCodeBuildFailed // CUE build failed
	ErrCodeWriteFailed = "E007"                      // File write error
	ErrCodeNotConcrete = cuescene.ErrCodeNotConcrete // CUE value not concrete
	ErrCodeDecode      = "E009"                      // Entity reconstruction failed
	ErrCodeQuery       = "E010"                      // JSONPath evaluation failed
	ErrCodeInvalid     = "E011"                      // Scene shape check failed
	ErrCodeDatabase    = "E012"                      // Catalog database error
	ErrCodeTestFailed  = "E013"                      // Conformance scenario failed
)

// ErrorCode maps an error from the scene packages to its CLI error code.
func ErrorCode(err error) string {
	var (
		parseErr  *legacytxt.ParseError
		loadErr   *cuescene.LoadError
		cueErr    *cuescene.CompileError
		entityErr *entity.Error
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound
	case errors.As(err, &parseErr):
		return ErrCodeParseFailed
	case errors.As(err, &loadErr):
		return loadErr.Code
	case errors.As(err, &cueErr):
		return ErrCodeLoadFailed
	case errors.As(err, &entityErr):
		return ErrCodeDecode
	}
	return ErrCodeGeneric
}

// LoadedScene is one scene read from the command line.
type LoadedScene struct {
	Name   string
	Path   string
	Format scene.Format
	Setup  *scene.RoomSetup
}

// LoadSetup reads and reconstructs the RoomSetup in path.
func LoadSetup(path string) (*LoadedScene, error) {
	setup, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	return &LoadedScene{
		Name:   sceneName(path),
		Path:   path,
		Format: scene.FormatOf(path),
		Setup:  setup,
	}, nil
}

// LoadScenes reads every scene named on the command line. A directory is
// loaded as a CUE package whose `scenes` struct holds one setup per field;
// anything else is a single scene file.
func LoadScenes(paths []string) ([]*LoadedScene, error) {
	var out []*LoadedScene
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			s, err := LoadSetup(path)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			out = append(out, s)
			continue
		}

		result, err := cuescene.LoadDir(path)
		if err != nil {
			return nil, err
		}
		for _, sc := range result.Scenes {
			setup, err := scene.FromConfig(sc.Config)
			if err != nil {
				return nil, fmt.Errorf("%s: scene %s: %w", path, sc.Name, err)
			}
			out = append(out, &LoadedScene{
				Name:   sc.Name,
				Path:   path,
				Format: scene.FormatCUE,
				Setup:  setup,
			})
		}
	}
	return out, nil
}

// TextConfig returns the configuration of s with text leaves, the form
// written to files and the catalog.
func (s *LoadedScene) TextConfig() (*ir.Nested, error) {
	return entity.Config(s.Setup, entity.WithTextLeaves())
}

func sceneName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
