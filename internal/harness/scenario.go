package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// A scenario loads one scene file, optionally simulates it with the
// deterministic impulse engine, and asserts on the reconstructed
// configuration and the response.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden
	// file and the cataloged scene.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Scene is the path of the scene file (legacy text, markup, JSON or
	// CUE). Relative paths are resolved against the scenario's base path.
	Scene string `yaml:"scene"`

	// Simulate runs the scene through the impulse engine when present.
	Simulate *SimulateClause `yaml:"simulate,omitempty"`

	// Assertions validate the configuration and the response.
	// Supported types: value, count, absent, response, onset
	Assertions []Assertion `yaml:"assertions"`

	// RunID is an optional fixed run ID for deterministic tests.
	// If empty, defaults to "harness-run".
	RunID string `yaml:"run_id,omitempty"`
}

// SimulateClause configures the simulation step.
type SimulateClause struct {
	// MaxSamples caps the response length per channel. Zero means the
	// full fs * responseduration.
	MaxSamples int `yaml:"max_samples,omitempty"`
}

// Assertion validates the configuration or the response.
type Assertion struct {
	// Type specifies the assertion type:
	// - "value": the JSONPath selects exactly Value
	// - "count": the JSONPath selects a list or mapping of Count entries
	// - "absent": the JSONPath selects nothing, or null
	// - "response": the response has the given shape
	// - "onset": the first non-zero frame of Channel is Frame
	Type string `yaml:"type"`

	// Path is a JSONPath expression over the configuration (used by
	// value, count and absent).
	Path string `yaml:"path,omitempty"`

	// Value is the expected value (used by value). Numbers compare
	// numerically, so 48000 matches 48000.0.
	Value any `yaml:"value,omitempty"`

	// Count is the expected number of entries (used by count).
	Count int `yaml:"count,omitempty"`

	// Channels, SampleRate and SampleCount describe the expected
	// response (used by response). Zero fields are not checked.
	Channels    int     `yaml:"channels,omitempty"`
	SampleRate  float64 `yaml:"sample_rate,omitempty"`
	SampleCount int     `yaml:"sample_count,omitempty"`

	// Channel is the 1-based receiver number (used by onset).
	Channel int `yaml:"channel,omitempty"`

	// Frame is the expected onset frame (used by onset).
	Frame int `yaml:"frame,omitempty"`
}

// Assertion type constants.
const (
	AssertValue    = "value"
	AssertCount    = "count"
	AssertAbsent   = "absent"
	AssertResponse = "response"
	AssertOnset    = "onset"
)

// LoadScenario reads and parses a scenario YAML file. The scene path is
// resolved relative to the scenario file's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving the scene path relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Scene != "" && !filepath.IsAbs(scenario.Scene) && basePath != "" {
		scenario.Scene = filepath.Join(basePath, scenario.Scene)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Scene == "" {
		return fmt.Errorf("scene is required")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if _, err := os.Stat(s.Scene); os.IsNotExist(err) {
		return fmt.Errorf("scene file not found: %s", s.Scene)
	}

	if s.Simulate != nil && s.Simulate.MaxSamples < 0 {
		return fmt.Errorf("simulate: max_samples must be non-negative")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, s.Simulate != nil); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
// Response assertions need a simulate clause.
func validateAssertion(index int, a *Assertion, simulated bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertValue:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for value", index)
		}
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for value (use absent for null)", index)
		}
	case AssertCount:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertAbsent:
		if a.Path == "" {
			return fmt.Errorf("assertions[%d]: path is required for absent", index)
		}
	case AssertResponse:
		if !simulated {
			return fmt.Errorf("assertions[%d]: response requires a simulate clause", index)
		}
		if a.Channels == 0 && a.SampleRate == 0 && a.SampleCount == 0 {
			return fmt.Errorf("assertions[%d]: response needs channels, sample_rate or sample_count", index)
		}
	case AssertOnset:
		if !simulated {
			return fmt.Errorf("assertions[%d]: onset requires a simulate clause", index)
		}
		if a.Channel < 1 {
			return fmt.Errorf("assertions[%d]: channel must be 1 or greater for onset", index)
		}
		if a.Frame < 0 {
			return fmt.Errorf("assertions[%d]: frame must be non-negative for onset", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
