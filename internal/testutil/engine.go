package testutil

import (
	"context"
	"errors"
	"math"
	"sync/atomic"

	"github.com/roach88/roomsim/internal/ir"
	"github.com/roach88/roomsim/internal/sim"
)

// SpeedOfSound is the propagation speed ImpulseEngine assumes, in m/s.
const SpeedOfSound = 343.0

// ImpulseEngine is a deterministic sim.Engine. For every receiver it
// places a single direct-path impulse from the first source: delayed by
// distance/SpeedOfSound and scaled by 1/max(distance, 1). All other
// samples are zero.
//
// The response has one channel per receiver and
// round(fs * responseduration) samples, both read from the payload.
//
// Thread-safety: ImpulseEngine is safe for concurrent use.
type ImpulseEngine struct {
	// Err, when set, is returned by every Generate call.
	Err error

	// MaxSamples caps the sample count per channel. Zero means no cap.
	MaxSamples int

	calls atomic.Int64
}

// Calls returns how many times Generate was invoked.
func (e *ImpulseEngine) Calls() int64 {
	return e.calls.Load()
}

// Generate implements sim.Engine.
func (e *ImpulseEngine) Generate(ctx context.Context, cfg *ir.Nested) (*sim.Response, error) {
	e.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.Err != nil {
		return nil, e.Err
	}

	opts, ok := nested(cfg, "options")
	if !ok {
		return nil, errors.New("payload has no options")
	}
	fs, ok := number(opts, "fs")
	if !ok || fs <= 0 {
		return nil, errors.New("payload has no positive options.fs")
	}
	duration, _ := number(opts, "responseduration")
	count := int(math.Round(fs * duration))
	if e.MaxSamples > 0 && count > e.MaxSamples {
		count = e.MaxSamples
	}

	receivers := entries(cfg, "receivers")
	if len(receivers) == 0 {
		return nil, errors.New("payload has no receivers")
	}
	var origin []float64
	if sources := entries(cfg, "sources"); len(sources) > 0 {
		origin = location(sources[0])
	}

	channels := len(receivers)
	samples := make([]float64, channels*count)
	for ch, rcv := range receivers {
		d := distance(origin, location(rcv))
		frame := int(math.Round(d / SpeedOfSound * fs))
		if frame < count {
			samples[frame*channels+ch] = 1 / math.Max(d, 1)
		}
	}

	return &sim.Response{
		Samples:     samples,
		Channels:    channels,
		SampleRate:  fs,
		SampleCount: count,
	}, nil
}

// FailingEngine returns an engine whose every call fails with err.
func FailingEngine(err error) sim.Engine {
	return sim.EngineFunc(func(context.Context, *ir.Nested) (*sim.Response, error) {
		return nil, err
	})
}

func nested(cfg *ir.Nested, key string) (*ir.Nested, bool) {
	v, _ := cfg.Get(key)
	n, ok := v.(*ir.Nested)
	return n, ok
}

func number(cfg *ir.Nested, key string) (float64, bool) {
	v, _ := cfg.Get(key)
	return ir.AsFloat(v)
}

func entries(cfg *ir.Nested, key string) []*ir.Nested {
	v, _ := cfg.Get(key)
	list, _ := v.(ir.List)
	var out []*ir.Nested
	for _, elem := range list {
		if n, ok := elem.(*ir.Nested); ok {
			out = append(out, n)
		}
	}
	return out
}

func location(n *ir.Nested) []float64 {
	v, _ := n.Get("location")
	loc, _ := ir.AsFloats(v)
	return loc
}

func distance(a, b []float64) float64 {
	var sum float64
	for i := range min(len(a), len(b)) {
		sum += (a[i] - b[i]) * (a[i] - b[i])
	}
	return math.Sqrt(sum)
}
