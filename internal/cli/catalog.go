package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/roomsim/internal/markup"
	"github.com/roach88/roomsim/internal/scene"
	"github.com/roach88/roomsim/internal/store"
)

// CatalogOptions holds flags shared by the catalog subcommands.
type CatalogOptions struct {
	*RootOptions
	Database string
	Output   string
}

// CatalogEntry is one cataloged scene in command output.
type CatalogEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Seq   int64  `json:"seq"`
	Runs  int    `json:"runs"`
	Added bool   `json:"added,omitempty"`
}

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the scene catalog",
		Long: `Store scenes in a SQLite catalog keyed by their content hash.

Adding a scene that is already cataloged (in any file format) is a
no-op: the existing entry keeps its name and position.`,
	}
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newCatalogAddCommand(opts))
	cmd.AddCommand(newCatalogListCommand(opts))
	cmd.AddCommand(newCatalogShowCommand(opts))

	return cmd
}

func newCatalogAddCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <scene-path>...",
		Short: "Add scenes to the catalog",
		Long: `Add scene files, or every scene of a CUE package directory, to the
catalog.

Examples:
  roomsim catalog add --db ./scenes.db setup.txt studio.yml
  roomsim catalog add --db ./scenes.db ./halls`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogAdd(opts, args, cmd)
		},
	}
}

func newCatalogListCommand(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List cataloged scenes",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(opts, cmd)
		},
	}
}

func newCatalogShowCommand(opts *CatalogOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <scene-id>",
		Short: "Print or export a cataloged scene",
		Long: `Print a cataloged scene as YAML, or write it to a file with --output in
the format the extension names. The scene ID may be abbreviated to a
unique prefix of at least four characters.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(opts, args[0], cmd)
		},
	}
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the scene to this file")
	return cmd
}

func openCatalog(formatter *OutputFormatter, path string) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, fmt.Sprintf("failed to open database: %v", err), nil)
		return nil, WrapExitError(ExitCommandError, ErrCodeDatabase+": failed to open database", err)
	}
	return st, nil
}

func closeCatalog(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

func runCatalogAdd(opts *CatalogOptions, paths []string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	scenes, err := LoadScenes(paths)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load scenes", err)
	}

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer closeCatalog(st)

	entries := make([]CatalogEntry, 0, len(scenes))
	for _, s := range scenes {
		cfg, err := s.TextConfig()
		if err != nil {
			return formatter.Fail(ExitCommandError, "failed to serialize scene "+s.Name, err)
		}
		rec, added, err := st.PutScene(ctx, s.Name, cfg)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, fmt.Sprintf("failed to store scene %s: %v", s.Name, err), nil)
			return WrapExitError(ExitCommandError, ErrCodeDatabase+": failed to store scene", err)
		}
		slog.Debug("scene stored", "scene", rec.ID, "name", rec.Name, "added", added)
		entries = append(entries, CatalogEntry{ID: rec.ID, Name: rec.Name, Seq: rec.Seq, Added: added})
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}
	for _, e := range entries {
		mark := "="
		if e.Added {
			mark = "+"
		}
		fmt.Fprintf(formatter.Writer, "%s %s  %s\n", mark, shortID(e.ID), e.Name)
	}
	return nil
}

func runCatalogList(opts *CatalogOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer closeCatalog(st)

	scenes, err := st.ListScenes(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, ErrCodeDatabase+": failed to list scenes", err)
	}

	entries := make([]CatalogEntry, 0, len(scenes))
	for _, sc := range scenes {
		runs, err := st.CountRuns(ctx, sc.ID)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, ErrCodeDatabase+": failed to count runs", err)
		}
		entries = append(entries, CatalogEntry{ID: sc.ID, Name: sc.Name, Seq: sc.Seq, Runs: runs})
	}

	if formatter.Format == "json" {
		return formatter.Success(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(formatter.Writer, "No scenes cataloged")
		return nil
	}
	fmt.Fprintf(formatter.Writer, "%-4s  %-12s  %-4s  %s\n", "SEQ", "ID", "RUNS", "NAME")
	for _, e := range entries {
		fmt.Fprintf(formatter.Writer, "%-4d  %-12s  %-4d  %s\n", e.Seq, shortID(e.ID), e.Runs, e.Name)
	}
	return nil
}

func runCatalogShow(opts *CatalogOptions, id string, cmd *cobra.Command) error {
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

	if opts.Output != "" {
		if err := scene.WriteConfig(opts.Output, sc.Config); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("failed to write scene: %v", err), nil)
			return WrapExitError(ExitCommandError, ErrCodeWriteFailed+": failed to write scene", err)
		}
		if formatter.Format == "json" {
			return formatter.Success(map[string]string{"id": sc.ID, "output": opts.Output})
		}
		formatter.OK("Wrote %s", opts.Output)
		return nil
	}

	if formatter.Format == "json" {
		return formatter.Success(map[string]any{
			"id":     sc.ID,
			"name":   sc.Name,
			"seq":    sc.Seq,
			"config": sc.Config,
		})
	}
	data, err := markup.Marshal(sc.Config)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to render scene", err)
	}
	fmt.Fprintf(formatter.Writer, "# %s (%s)\n", sc.Name, sc.ID)
	_, err = formatter.Writer.Write(data)
	return err
}

func findScene(ctx context.Context, formatter *OutputFormatter, st *store.Store, id string) (store.Scene, error) {
	sc, err := st.FindScene(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("scene not found: %s", id), nil)
		return store.Scene{}, NewExitError(ExitCommandError, fmt.Sprintf("%s: scene not found: %s", ErrCodeNotFound, id))
	}
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return store.Scene{}, WrapExitError(ExitCommandError, ErrCodeDatabase+": failed to find scene", err)
	}
	return sc, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
