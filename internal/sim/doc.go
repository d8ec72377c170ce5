// Package sim is the boundary to the external room acoustics engine.
//
// The engine itself is not part of this module. It is anything satisfying
// Engine: it accepts the nested configuration of a RoomSetup (text leaves
// encoded as bytes) and returns an interleaved multichannel response.
// Runner serializes a setup, calls the engine, checks the response shape
// and records the run in the scene catalog.
package sim
