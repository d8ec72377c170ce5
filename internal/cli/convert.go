package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/ir"
	"github.com/roach88/roomsim/internal/markup"
	"github.com/roach88/roomsim/internal/scene"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Output   string
	WithName bool
}

// ConvertResult is the JSON payload of a successful conversion.
type ConvertResult struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	From    string `json:"from"`
	To      string `json:"to"`
	SceneID string `json:"scene_id"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert a scene between file formats",
		Long: `Read a scene, fill in every default, and write it in the format the
output extension names. An output without extension is written as
YAML with ".yml" appended.

Examples:
  roomsim convert setup.txt -o setup.yml
  roomsim convert setup.yml -o setup.json --with-name
  roomsim convert hall.cue -o hall.txt`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (required)")
	_ = cmd.MarkFlagRequired("output")
	cmd.Flags().BoolVar(&opts.WithName, "with-name", false, "record each entity's kind under a \"name\" key")

	return cmd
}

func runConvert(opts *ConvertOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	loaded, err := LoadSetup(input)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load scene", err)
	}
	formatter.VerboseLog("Loaded %s scene from %s", loaded.Format, input)

	var cfgOpts []entity.ConfigOption
	if opts.WithName {
		cfgOpts = append(cfgOpts, entity.WithName())
	}

	output := opts.Output
	if filepath.Ext(output) == "" {
		output += markup.Ext
	}
	if err := scene.Save(loaded.Setup, output, cfgOpts...); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("failed to write scene: %v", err), nil)
		return WrapExitError(ExitCommandError, ErrCodeWriteFailed+": failed to write scene", err)
	}

	cfg, err := loaded.TextConfig()
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to serialize scene", err)
	}
	sceneID, err := ir.SceneID(cfg)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to hash scene", err)
	}
	slog.Debug("scene converted", "input", input, "output", output, "scene", sceneID)

	result := ConvertResult{
		Input:   input,
		Output:  output,
		From:    string(loaded.Format),
		To:      string(scene.FormatOf(output)),
		SceneID: sceneID,
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	formatter.OK("Wrote %s (%s → %s)", output, result.From, result.To)
	return nil
}
