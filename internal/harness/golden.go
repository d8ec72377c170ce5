package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/roomsim/internal/ir"
)

// Snapshot captures the observable outcome of a scenario: the sensor
// layout as reconstructed and a summary of the response.
// It is serialized with canonical JSON for deterministic comparison.
type Snapshot struct {
	ScenarioName string
	Sources      ir.Value
	Receivers    ir.Value
	Response     *ResponseSummary
}

// ResponseSummary is the part of a response worth pinning in a golden
// file. Raw samples are left out.
type ResponseSummary struct {
	Channels    int
	SampleRate  float64
	SampleCount int
	Onsets      []int
}

// NewSnapshot builds the snapshot of a scenario result.
func NewSnapshot(name string, result *Result) *Snapshot {
	s := &Snapshot{ScenarioName: name, Sources: ir.Null{}, Receivers: ir.Null{}}
	if result.Config != nil {
		if v, ok := result.Config.Get("sources"); ok {
			s.Sources = v
		}
		if v, ok := result.Config.Get("receivers"); ok {
			s.Receivers = v
		}
	}
	if resp := result.Response; resp != nil {
		s.Response = &ResponseSummary{
			Channels:    resp.Channels,
			SampleRate:  resp.SampleRate,
			SampleCount: resp.SampleCount,
			Onsets:      result.Onsets(),
		}
	}
	return s
}

// toNested converts a Snapshot to an ir.Nested for canonical JSON
// serialization.
func (s *Snapshot) toNested() *ir.Nested {
	out := ir.NewNested(
		ir.F("scenario_name", ir.Text(s.ScenarioName)),
		ir.F("sources", s.Sources),
		ir.F("receivers", s.Receivers),
	)
	if s.Response != nil {
		onsets := make(ir.List, len(s.Response.Onsets))
		for i, f := range s.Response.Onsets {
			onsets[i] = ir.Int(f)
		}
		out.Set("response", ir.NewNested(
			ir.F("channels", ir.Int(s.Response.Channels)),
			ir.F("sample_rate", ir.Float(s.Response.SampleRate)),
			ir.F("sample_count", ir.Int(s.Response.SampleCount)),
			ir.F("onsets", onsets),
		))
	}
	return out
}

// MarshalCanonical renders the snapshot as canonical JSON.
func (s *Snapshot) MarshalCanonical() ([]byte, error) {
	return ir.MarshalCanonical(s.toNested())
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file. The golden file is stored in
// testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares the given result's snapshot against a golden file.
// This is useful when you've already run a scenario and want to compare
// the result against a golden file without re-running.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(scenarioName, result).MarshalCanonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
