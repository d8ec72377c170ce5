package sim

import (
	"context"
	"log/slog"

	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
	"github.com/roach88/roomsim/internal/store"
)

// Result is the outcome of one simulation run.
type Result struct {
	// RunID identifies the run. It is assigned even when no store is set.
	RunID string

	// SceneID is the content hash of the configuration sent to the engine.
	SceneID string

	// Seq is the run's position in the store, or 0 when nothing was
	// recorded.
	Seq int64

	// Config is the payload the engine received (text leaves as bytes).
	Config *ir.Nested

	Response *Response
}

// Runner drives the external engine for room setups.
type Runner struct {
	engine Engine
	store  *store.Store
	ids    IDGenerator
	logger *slog.Logger
	opts   []entity.ConfigOption
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithStore records every successful run, and its scene, in st.
func WithStore(st *store.Store) RunnerOption {
	return func(r *Runner) { r.store = st }
}

// WithIDGenerator sets the run ID generator. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) RunnerOption {
	return func(r *Runner) { r.ids = g }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = l }
}

// WithConfigOptions sets the options used to serialize setups for the
// engine, e.g. entity.WithEncoding for a non UTF-8 engine build.
func WithConfigOptions(opts ...entity.ConfigOption) RunnerOption {
	return func(r *Runner) { r.opts = opts }
}

// NewRunner creates a runner around engine.
func NewRunner(engine Engine, opts ...RunnerOption) *Runner {
	r := &Runner{
		engine: engine,
		ids:    UUIDv7Generator{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run serializes setup, hands the payload to the engine and checks the
// response shape. With a store configured the scene is cataloged under
// name and the run recorded against it.
//
// The engine call is the only blocking step; ctx is checked before it and
// passed through to it.
func (r *Runner) Run(ctx context.Context, name string, setup entity.Configurable) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := entity.Config(setup, r.opts...)
	if err != nil {
		return nil, &RunError{Code: ErrCodeConfig, Message: "serialize " + setup.Kind(), Err: err}
	}
	sceneID, err := ir.SceneID(cfg)
	if err != nil {
		return nil, &RunError{Code: ErrCodeConfig, Message: "hash configuration", Err: err}
	}

	runID := r.ids.Generate()
	r.logger.Debug("invoking engine", "run", runID, "scene", sceneID)

	resp, err := r.engine.Generate(ctx, cfg)
	if err != nil {
		return nil, &RunError{Code: ErrCodeEngine, Message: "engine call failed", SceneID: sceneID, Err: err}
	}
	if err := resp.Validate(); err != nil {
		return nil, &RunError{Code: ErrCodeInvalidResponse, Message: "malformed response", SceneID: sceneID, Err: err}
	}

	res := &Result{RunID: runID, SceneID: sceneID, Config: cfg, Response: resp}
	if r.store != nil {
		seq, err := r.record(ctx, name, res)
		if err != nil {
			return nil, &RunError{Code: ErrCodeRecord, Message: "record run", SceneID: sceneID, Err: err}
		}
		res.Seq = seq
	}

	r.logger.Info("simulation complete",
		"run", runID,
		"scene", sceneID,
		"channels", resp.Channels,
		"samples", resp.SampleCount,
		"sample_rate", resp.SampleRate,
	)
	return res, nil
}

func (r *Runner) record(ctx context.Context, name string, res *Result) (int64, error) {
	sc, inserted, err := r.store.PutScene(ctx, name, res.Config)
	if err != nil {
		return 0, err
	}
	if inserted {
		r.logger.Debug("scene cataloged", "scene", sc.ID, "name", name)
	}
	return r.store.WriteRun(ctx, store.Run{
		ID:          res.RunID,
		SceneID:     sc.ID,
		Channels:    res.Response.Channels,
		SampleRate:  res.Response.SampleRate,
		SampleCount: res.Response.SampleCount,
		Samples:     res.Response.Samples,
		ToolVersion: ir.ToolVersion,
	})
}
