package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/spf13/cobra"

	"github.com/roach88/roomsim/internal/ir"
	"github.com/roach88/roomsim/internal/scene"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Raw bool
}

// QueryResult is the JSON payload of a query.
type QueryResult struct {
	Expression string `json:"expression"`
	Value      any    `json:"value"`
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <scene-file> <jsonpath>",
		Short: "Evaluate a JSONPath expression against a scene",
		Long: `Evaluate a JSONPath expression against the nested configuration of a
scene. By default the scene is reconstructed first, so defaults are
visible; --raw queries the file's configuration as written.

Examples:
  roomsim query setup.txt '$.options.fs'
  roomsim query setup.yml '$.receivers[*].location'
  roomsim query setup.yml '$.room.surface.frequency[0]' --raw`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "query the configuration as written, without defaults")

	return cmd
}

func runQuery(opts *QueryOptions, path, expr string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	cfg, err := queryConfig(path, opts.Raw)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load scene", err)
	}

	expr = strings.TrimSpace(expr)
	if expr == "" {
		_ = formatter.Error(ErrCodeQuery, "empty jsonpath expression", nil)
		return NewExitError(ExitCommandError, ErrCodeQuery+": empty jsonpath expression")
	}

	val, err := jsonpath.Get(expr, ir.ToPlain(cfg))
	if err != nil {
		_ = formatter.Error(ErrCodeQuery, fmt.Sprintf("jsonpath error: %v", err), nil)
		return WrapExitError(ExitFailure, ErrCodeQuery+": jsonpath error", err)
	}
	if isEmptyMatch(val) {
		_ = formatter.Error(ErrCodeQuery, fmt.Sprintf("no value found for %s", expr), nil)
		return NewExitError(ExitFailure, ErrCodeQuery+": no value found")
	}

	if formatter.Format == "json" {
		return formatter.Success(QueryResult{Expression: expr, Value: val})
	}
	return printQueryValue(formatter, val)
}

func queryConfig(path string, raw bool) (*ir.Nested, error) {
	if raw {
		return scene.ReadConfig(path)
	}
	loaded, err := LoadSetup(path)
	if err != nil {
		return nil, err
	}
	return loaded.TextConfig()
}

func isEmptyMatch(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case []any:
		return len(t) == 0
	}
	return false
}

// printQueryValue prints scalars bare and everything else as indented JSON.
func printQueryValue(f *OutputFormatter, v any) error {
	switch t := v.(type) {
	case string:
		fmt.Fprintln(f.Writer, t)
		return nil
	case float64:
		fmt.Fprintln(f.Writer, ir.FormatFloat(t))
		return nil
	case int64, bool:
		fmt.Fprintln(f.Writer, t)
		return nil
	}
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
