package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
	"github.com/roach88/roomsim/internal/scene"
	"github.com/roach88/roomsim/internal/sim"
	"github.com/roach88/roomsim/internal/store"
	"github.com/roach88/roomsim/internal/testutil"
)

// DefaultRunID is the run ID used when a scenario names none.
const DefaultRunID = "harness-run"

// Harness is the test execution engine.
// It runs scenarios against a fresh catalog with a deterministic engine
// and run IDs.
type Harness struct {
	store  *store.Store
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Load the scene file and reconstruct its configuration
// 2. Simulate with the impulse engine, if the scenario asks for it
// 3. Evaluate assertions
// 4. Return result with pass/fail and errors
//
// A scene that fails to load or simulate is a failed result, not an error.
// Errors are reserved for harness faults such as the database.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	result := NewResult()
	setup, err := scene.Load(scenario.Scene)
	if err != nil {
		result.AddError(fmt.Sprintf("load scene: %v", err))
		return result, nil
	}

	cfg, err := entity.Config(setup, entity.WithTextLeaves())
	if err != nil {
		result.AddError(fmt.Sprintf("serialize scene: %v", err))
		return result, nil
	}
	sceneID, err := ir.SceneID(cfg)
	if err != nil {
		result.AddError(fmt.Sprintf("hash scene: %v", err))
		return result, nil
	}
	result.Config = cfg
	result.SceneID = sceneID

	if scenario.Simulate != nil {
		if err := h.simulate(ctx, scenario, setup, result); err != nil {
			return nil, err
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

// simulate runs setup through the impulse engine and records the run.
// Engine failures fail the result; catalog failures are returned.
func (h *Harness) simulate(ctx context.Context, scenario *Scenario, setup *scene.RoomSetup, result *Result) error {
	runID := scenario.RunID
	if runID == "" {
		runID = DefaultRunID
	}

	runner := sim.NewRunner(
		&testutil.ImpulseEngine{MaxSamples: scenario.Simulate.MaxSamples},
		sim.WithStore(h.store),
		sim.WithIDGenerator(sim.NewFixedGenerator(runID)),
		sim.WithLogger(h.logger),
	)
	res, err := runner.Run(ctx, scenario.Name, setup)
	if err != nil {
		if sim.IsEngineError(err) || sim.IsInvalidResponse(err) {
			result.AddError(fmt.Sprintf("simulate: %v", err))
			return nil
		}
		return fmt.Errorf("failed to simulate: %w", err)
	}

	// The engine payload carries byte leaves; it must hash like the
	// text configuration.
	if res.SceneID != result.SceneID {
		result.AddError(fmt.Sprintf("engine payload hash %s differs from scene %s", res.SceneID, result.SceneID))
	}

	result.RunID = res.RunID
	result.Seq = res.Seq
	result.Response = res.Response

	h.logger.Info("scenario simulated",
		"scenario", scenario.Name,
		"run", res.RunID,
		"channels", res.Response.Channels,
	)
	return nil
}
