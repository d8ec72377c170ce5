package scene

import (
	"fmt"
	"strings"

	"github.com/roach88/roomsim/internal/entity"
)

// Kind names of the built-in entities.
const (
	KindSurface          = "Surface"
	KindRoom             = "Room"
	KindOptions          = "Options"
	KindSourceOrReceiver = "SourceOrReceiver"
	KindRoomSetup        = "RoomSetup"
)

// Catalog resolves field and kind names to entity schemas. Built-in names
// are matched by a fixed switch; anything else falls through to the
// plugin table filled by Register.
var Catalog entity.Resolver = entity.ResolverFunc(resolve)

var plugins = entity.NewRegistry()

func resolve(name string) (*entity.Schema, bool) {
	if s := builtin(strings.ToLower(name)); s != nil {
		return s, true
	}
	return plugins.Resolve(name)
}

func builtin(name string) *entity.Schema {
	switch name {
	case "surface":
		return SurfaceSchema
	case "room":
		return RoomSchema
	case "options":
		return OptionsSchema
	case "sourceorreceiver", "sources", "receivers":
		return SourceOrReceiverSchema
	case "roomsetup":
		return RoomSetupSchema
	}
	return nil
}

// Register adds an entity kind to the plugin table under its kind name and
// any aliases (the field names it appears under). Built-in names cannot be
// replaced. Call Register during process start; lookups are not
// synchronized with it.
func Register(s *entity.Schema, aliases ...string) error {
	for _, name := range append([]string{s.Kind}, aliases...) {
		if builtin(strings.ToLower(name)) != nil {
			return fmt.Errorf("entity kind %q is built in", name)
		}
	}
	return plugins.Register(s, aliases...)
}

// Kinds returns the built-in kind names followed by registered plugin
// names.
func Kinds() []string {
	kinds := []string{KindSurface, KindRoom, KindOptions, KindSourceOrReceiver, KindRoomSetup}
	return append(kinds, plugins.Names()...)
}

// Wrap returns the typed view of an entity of a built-in kind. Entities
// already typed, and entities of other kinds, are returned unchanged.
func Wrap(c entity.Configurable) entity.Configurable {
	e, ok := c.(*entity.Entity)
	if !ok {
		return c
	}
	if s := builtin(strings.ToLower(e.Kind())); s != nil && s.Wrap != nil && s.Kind == e.Kind() {
		return s.Wrap(e)
	}
	return c
}

func asSurface(v any) *Surface {
	s, _ := wrapped(v).(*Surface)
	return s
}

func asRoom(v any) *Room {
	r, _ := wrapped(v).(*Room)
	return r
}

func asOptions(v any) *Options {
	o, _ := wrapped(v).(*Options)
	return o
}

func asSourceOrReceiver(v any) *SourceOrReceiver {
	s, _ := wrapped(v).(*SourceOrReceiver)
	return s
}

func asRoomSetup(v any) *RoomSetup {
	s, _ := wrapped(v).(*RoomSetup)
	return s
}

func wrapped(v any) entity.Configurable {
	c, ok := v.(entity.Configurable)
	if !ok {
		return nil
	}
	return Wrap(c)
}
