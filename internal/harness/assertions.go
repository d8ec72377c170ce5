package harness

import (
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"

	"github.com/roach88/roomsim/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Path     string // JSONPath or response field the assertion checked
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Path != "" {
		fmt.Fprintf(&buf, " at %s", e.Path)
	}
	fmt.Fprintf(&buf, "\n  Expected: %s\n  Actual: %s", e.Expected, e.Actual)
	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns
// the failure messages in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion) error {
	switch a.Type {
	case AssertValue:
		return assertValue(result, a)
	case AssertCount:
		return assertCount(result, a)
	case AssertAbsent:
		return assertAbsent(result, a)
	case AssertResponse:
		return assertResponse(result, a)
	case AssertOnset:
		return assertOnset(result, a)
	}
	return fmt.Errorf("unknown assertion type %q", a.Type)
}

// lookup evaluates a JSONPath expression over the configuration.
func lookup(result *Result, path string) (any, error) {
	if result.Config == nil {
		return nil, fmt.Errorf("no configuration")
	}
	return jsonpath.Get(path, ir.ToPlain(result.Config))
}

func assertValue(result *Result, a Assertion) error {
	want, err := ir.From(a.Value)
	if err != nil {
		return fmt.Errorf("expected value: %w", err)
	}
	got, err := lookup(result, a.Path)
	if err != nil {
		return &AssertionError{Type: a.Type, Path: a.Path, Expected: render(want), Actual: "no match (" + err.Error() + ")"}
	}
	gotValue, err := ir.From(got)
	if err != nil {
		return fmt.Errorf("selected value: %w", err)
	}
	if !ir.Equal(want, gotValue) {
		return &AssertionError{Type: a.Type, Path: a.Path, Expected: render(want), Actual: render(gotValue)}
	}
	return nil
}

func assertCount(result *Result, a Assertion) error {
	got, err := lookup(result, a.Path)
	if err != nil {
		return &AssertionError{Type: a.Type, Path: a.Path, Expected: fmt.Sprintf("%d entries", a.Count), Actual: "no match (" + err.Error() + ")"}
	}
	var n int
	switch v := got.(type) {
	case []any:
		n = len(v)
	case map[string]any:
		n = len(v)
	default:
		return &AssertionError{Type: a.Type, Path: a.Path, Expected: fmt.Sprintf("%d entries", a.Count), Actual: fmt.Sprintf("scalar %v", got)}
	}
	if n != a.Count {
		return &AssertionError{Type: a.Type, Path: a.Path, Expected: fmt.Sprintf("%d entries", a.Count), Actual: fmt.Sprintf("%d entries", n)}
	}
	return nil
}

func assertAbsent(result *Result, a Assertion) error {
	got, err := lookup(result, a.Path)
	if err != nil || got == nil {
		return nil
	}
	actual := fmt.Sprintf("%v", got)
	if v, convErr := ir.From(got); convErr == nil {
		actual = render(v)
	}
	return &AssertionError{Type: a.Type, Path: a.Path, Expected: "no value", Actual: actual}
}

func assertResponse(result *Result, a Assertion) error {
	resp := result.Response
	if resp == nil {
		return &AssertionError{Type: a.Type, Expected: "a response", Actual: "no simulation"}
	}
	if a.Channels != 0 && resp.Channels != a.Channels {
		return &AssertionError{Type: a.Type, Path: "channels", Expected: fmt.Sprint(a.Channels), Actual: fmt.Sprint(resp.Channels)}
	}
	if a.SampleRate != 0 && resp.SampleRate != a.SampleRate {
		return &AssertionError{Type: a.Type, Path: "sample_rate", Expected: ir.FormatFloat(a.SampleRate), Actual: ir.FormatFloat(resp.SampleRate)}
	}
	if a.SampleCount != 0 && resp.SampleCount != a.SampleCount {
		return &AssertionError{Type: a.Type, Path: "sample_count", Expected: fmt.Sprint(a.SampleCount), Actual: fmt.Sprint(resp.SampleCount)}
	}
	return nil
}

func assertOnset(result *Result, a Assertion) error {
	onsets := result.Onsets()
	if onsets == nil {
		return &AssertionError{Type: a.Type, Expected: "a response", Actual: "no simulation"}
	}
	path := fmt.Sprintf("channel %d", a.Channel)
	if a.Channel > len(onsets) {
		return &AssertionError{Type: a.Type, Path: path, Expected: fmt.Sprintf("frame %d", a.Frame), Actual: fmt.Sprintf("only %d channels", len(onsets))}
	}
	got := onsets[a.Channel-1]
	if got < 0 {
		return &AssertionError{Type: a.Type, Path: path, Expected: fmt.Sprintf("frame %d", a.Frame), Actual: "silent channel"}
	}
	if got != a.Frame {
		return &AssertionError{Type: a.Type, Path: path, Expected: fmt.Sprintf("frame %d", a.Frame), Actual: fmt.Sprintf("frame %d", got)}
	}
	return nil
}

func render(v ir.Value) string {
	b, err := ir.MarshalValue(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}
