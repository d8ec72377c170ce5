package store

import "github.com/roach88/roomsim/internal/ir"

// Scene is a stored scene configuration.
type Scene struct {
	ID        string
	Name      string
	Config    *ir.Nested
	IRVersion string
	Seq       int64
}

// Run is a stored simulation result. Samples are channel-interleaved:
// len(Samples) == Channels * SampleCount.
type Run struct {
	ID          string
	SceneID     string
	Channels    int
	SampleRate  float64
	SampleCount int
	Samples     []float64
	ToolVersion string
	Seq         int64
}
