package sim

import (
	"context"
	"fmt"

	"github.com/roach88/roomsim/internal/ir"
)

// Engine computes room impulse responses.
type Engine interface {
	Generate(ctx context.Context, cfg *ir.Nested) (*Response, error)
}

// EngineFunc adapts a function to Engine.
type EngineFunc func(ctx context.Context, cfg *ir.Nested) (*Response, error)

// Generate implements Engine.
func (f EngineFunc) Generate(ctx context.Context, cfg *ir.Nested) (*Response, error) {
	return f(ctx, cfg)
}

// Response is the engine output: SampleCount frames of Channels
// interleaved samples at SampleRate Hz.
type Response struct {
	Samples     []float64
	Channels    int
	SampleRate  float64
	SampleCount int
}

// Validate checks that the sample buffer matches the declared shape.
func (r *Response) Validate() error {
	switch {
	case r == nil:
		return fmt.Errorf("no response")
	case r.Channels <= 0:
		return fmt.Errorf("channel count %d is not positive", r.Channels)
	case r.SampleCount < 0:
		return fmt.Errorf("sample count %d is negative", r.SampleCount)
	case r.SampleRate <= 0:
		return fmt.Errorf("sample rate %v is not positive", r.SampleRate)
	case len(r.Samples) != r.Channels*r.SampleCount:
		return fmt.Errorf("%d samples do not fill %d channels x %d samples",
			len(r.Samples), r.Channels, r.SampleCount)
	}
	return nil
}

// Channel returns a copy of one channel's samples.
func (r *Response) Channel(ch int) []float64 {
	if ch < 0 || ch >= r.Channels {
		return nil
	}
	out := make([]float64, r.SampleCount)
	for i := range out {
		out[i] = r.Samples[i*r.Channels+ch]
	}
	return out
}
