// Package scene defines the acoustic scene entities: Surface, Room,
// Options, SourceOrReceiver and the RoomSetup aggregate.
//
// Every entity is an entity.Configurable built from a declared schema, so
// serialization and reconstruction need no per-type code:
//
//	src, _ := scene.NewSource(entity.Kw("location", []float64{8, 2.5, 1.6}))
//	setup, _ := scene.NewRoomSetup(entity.Kw("sources", src))
//	cfg, _ := setup.Config()      // payload for the engine
//	back, _ := scene.FromConfig(cfg)
//
// Files in YAML, JSON, CUE and the legacy text format are read with Load
// and written with Save.
package scene
