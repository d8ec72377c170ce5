package harness

import (
	"github.com/roach88/roomsim/internal/ir"
	"github.com/roach88/roomsim/internal/sim"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if the scene loaded, simulated (when asked) and every
	// assertion held.
	Pass bool `json:"pass"`

	// SceneID is the content hash of the reconstructed configuration.
	SceneID string `json:"scene_id"`

	// Config is the configuration with text leaves, as assertions see it.
	Config *ir.Nested `json:"config"`

	// RunID and Seq identify the recorded run. Empty without simulation.
	RunID string `json:"run_id,omitempty"`
	Seq   int64  `json:"seq,omitempty"`

	// Response is the engine output, or nil without simulation.
	Response *sim.Response `json:"-"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Onsets returns the first non-zero frame of every response channel, or
// -1 for a silent channel. Nil without a response.
func (r *Result) Onsets() []int {
	if r.Response == nil {
		return nil
	}
	out := make([]int, r.Response.Channels)
	for ch := range out {
		out[ch] = onset(r.Response.Channel(ch))
	}
	return out
}

func onset(samples []float64) int {
	for i, s := range samples {
		if s != 0 {
			return i
		}
	}
	return -1
}
