package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/roomsim/internal/sim"
	"github.com/roach88/roomsim/internal/store"
)

// RunsOptions holds flags shared by the runs subcommands.
type RunsOptions struct {
	*RootOptions
	Database string
	Output   string
}

// RunEntry is one recorded simulation run in command output.
type RunEntry struct {
	ID          string  `json:"id"`
	SceneID     string  `json:"scene_id"`
	Seq         int64   `json:"seq"`
	Channels    int     `json:"channels"`
	SampleRate  float64 `json:"sample_rate"`
	SampleCount int     `json:"sample_count"`
	ToolVersion string  `json:"tool_version"`
}

// NewRunsCommand creates the runs command and its subcommands.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded simulation runs",
		Long: `List the simulation runs recorded for a cataloged scene, or export a
run's impulse response as a 32-bit float WAVE file.`,
	}
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(&cobra.Command{
		Use:           "list <scene-id>",
		Short:         "List the runs of a scene",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsList(opts, args[0], cmd)
		},
	})

	export := &cobra.Command{
		Use:   "export <run-id>",
		Short: "Write a run's response as a WAVE file",
		Long: `Write a run's response as a 32-bit float WAVE file, one WAVE channel per
response channel.

Example:
  roomsim runs export --db ./scenes.db 0191f3c2-... -o "studio - receiver_1.wav"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsExport(opts, args[0], cmd)
		},
	}
	export.Flags().StringVarP(&opts.Output, "output", "o", "", "output WAVE file (required)")
	_ = export.MarkFlagRequired("output")
	cmd.AddCommand(export)

	return cmd
}

func runRunsList(opts *RunsOptions, id string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer closeCatalog(st)

	sc, err := findScene(ctx, formatter, st, id)
	if err != nil {
		return err
	}
	runs, err := st.ReadRuns(ctx, sc.ID)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeDatabase+": failed to read runs", err)
	}

	entries := make([]RunEntry, len(runs))
	for i, r := range runs {
		entries[i] = runEntry(r)
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintf(formatter.Writer, "No runs recorded for scene: %s\n", sc.Name)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "Runs of %s (%s)\n", sc.Name, shortID(sc.ID))
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%4d  %s  %d ch  %g Hz  %d samples\n",
			e.Seq, e.ID, e.Channels, e.SampleRate, e.SampleCount)
	}
	return nil
}

func runRunsExport(opts *RunsOptions, id string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer closeCatalog(st)

	run, err := st.ReadRun(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("run not found: %s", id), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: run not found: %s", ErrCodeNotFound, id))
	}
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeDatabase+": failed to read run", err)
	}

	resp := &sim.Response{
		Samples:     run.Samples,
		Channels:    run.Channels,
		SampleRate:  run.SampleRate,
		SampleCount: run.SampleCount,
	}
	if err := sim.SaveWAV(opts.Output, resp); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("failed to write wave file: %v", err), nil)
		return WrapExitError(ExitCommandError, ErrCodeWriteFailed+": failed to write wave file", err)
	}
	slog.Debug("run exported", "run", run.ID, "output", opts.Output)

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{"run": runEntry(run), "output": opts.Output})
	}
	formatter.OK("Wrote %s (%d ch, %g Hz)", opts.Output, run.Channels, run.SampleRate)
	return nil
}

func runEntry(r store.Run) RunEntry {
	return RunEntry{
		ID:          r.ID,
		SceneID:     r.SceneID,
		Seq:         r.Seq,
		Channels:    r.Channels,
		SampleRate:  r.SampleRate,
		SampleCount: r.SampleCount,
		ToolVersion: r.ToolVersion,
	}
}
