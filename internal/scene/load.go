package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/roomsim/internal/cuescene"
	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
	"github.com/roach88/roomsim/internal/legacytxt"
	"github.com/roach88/roomsim/internal/markup"
)

// Format identifies a scene file format.
type Format string

const (
	FormatMarkup Format = "yaml"
	FormatJSON   Format = "json"
	FormatCUE    Format = "cue"
	FormatText   Format = "txt"
)

// FormatOf picks the format from a file extension. Unknown extensions are
// read as legacy text.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatMarkup
	case ".json":
		return FormatJSON
	case ".cue":
		return FormatCUE
	}
	return FormatText
}

// FromConfig reconstructs a RoomSetup from its nested configuration.
func FromConfig(cfg *ir.Nested) (*RoomSetup, error) {
	c, err := entity.FromConfig(RoomSetupSchema, cfg, Catalog)
	if err != nil {
		return nil, err
	}
	return asRoomSetup(c), nil
}

// FromConfigAs reconstructs an entity of the named kind.
func FromConfigAs(kind string, cfg *ir.Nested) (entity.Configurable, error) {
	s, ok := Catalog.Resolve(kind)
	if !ok {
		return nil, entity.NewUnknownFieldClassError("", kind)
	}
	c, err := entity.FromConfig(s, cfg, Catalog)
	if err != nil {
		return nil, err
	}
	return Wrap(c), nil
}

// Decode reconstructs an entity whose kind is carried in its "name" entry,
// as written with entity.WithName.
func Decode(cfg *ir.Nested) (entity.Configurable, error) {
	c, err := entity.Decode(cfg, Catalog)
	if err != nil {
		return nil, err
	}
	return Wrap(c), nil
}

// FromText loads a RoomSetup from a legacy text file.
func FromText(path string) (*RoomSetup, error) {
	cfg, err := legacytxt.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg)
}

// FromMarkup loads a RoomSetup from a YAML file.
func FromMarkup(path string) (*RoomSetup, error) {
	cfg, err := markup.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg)
}

// FromJSON loads a RoomSetup from a JSON file.
func FromJSON(path string) (*RoomSetup, error) {
	cfg, err := ReadJSON(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg)
}

// FromCUE loads a RoomSetup from a CUE file.
func FromCUE(path string) (*RoomSetup, error) {
	cfg, err := cuescene.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg)
}

// ReadConfig reads the nested configuration of a scene file in the format
// its extension names.
func ReadConfig(path string) (*ir.Nested, error) {
	switch FormatOf(path) {
	case FormatMarkup:
		return markup.ReadFile(path)
	case FormatJSON:
		return ReadJSON(path)
	case FormatCUE:
		return cuescene.LoadFile(path)
	}
	return legacytxt.ParseFile(path)
}

// Load reads a RoomSetup from any supported file format.
func Load(path string) (*RoomSetup, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg)
}

// ToMarkup writes c as YAML with text leaves, appending ".yml" when path
// lacks it. It returns the path written.
func ToMarkup(c entity.Configurable, path string) (string, error) {
	cfg, err := entity.Config(c, entity.WithTextLeaves())
	if err != nil {
		return "", err
	}
	return markup.WriteFile(path, cfg)
}

// Save writes c in the format its extension names.
func Save(c entity.Configurable, path string, opts ...entity.ConfigOption) error {
	cfg, err := entity.Config(c, append(opts, entity.WithTextLeaves())...)
	if err != nil {
		return err
	}
	return WriteConfig(path, cfg)
}

// WriteConfig writes a nested configuration in the format the extension
// of path names. CUE output is not supported.
func WriteConfig(path string, cfg *ir.Nested) error {
	var (
		data []byte
		err  error
	)
	switch FormatOf(path) {
	case FormatMarkup:
		data, err = markup.Marshal(cfg)
	case FormatJSON:
		data, err = marshalJSON(cfg)
	case FormatCUE:
		return fmt.Errorf("writing CUE scenes is not supported: %s", path)
	default:
		data, err = legacytxt.Format(cfg)
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

// ReadJSON reads an order-preserving JSON configuration.
func ReadJSON(path string) (*ir.Nested, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}
	var cfg ir.Nested
	if err := cfg.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func marshalJSON(cfg *ir.Nested) ([]byte, error) {
	data, err := cfg.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
