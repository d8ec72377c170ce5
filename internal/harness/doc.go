// Package harness provides a conformance testing framework for room scenes.
//
// A scenario is a YAML file naming one scene file (legacy text, markup,
// JSON or CUE) and a list of assertions:
//
//	name: studio_direct_path
//	description: "Direct path reaches each receiver after distance / c"
//	scene: ../scenes/studio.txt
//	simulate:
//	  max_samples: 1000
//	assertions:
//	  - type: value
//	    path: $.options.fs
//	    value: 48000
//	  - type: onset
//	    channel: 1
//	    frame: 422
//
// Run loads the scene, reconstructs its configuration and, with a
// simulate clause, drives it through sim.Runner backed by the
// deterministic testutil.ImpulseEngine and a fresh in-memory catalog.
// Path assertions are JSONPath expressions over the reconstructed
// configuration; response and onset assertions inspect the engine output.
//
// RunWithGolden additionally pins the sensor layout and the response
// summary in testdata/golden/{name}.golden.
//
// The impulse engine only models the direct path. Scenarios check the
// configuration that reaches an engine, not acoustic accuracy.
package harness
