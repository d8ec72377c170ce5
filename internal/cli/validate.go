package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/roomsim/internal/entity"
	"github.com/roach88/roomsim/internal/scene"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Scenes int               `json:"scenes"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError is one problem found in a scene.
type ValidationError struct {
	Path    string `json:"path"`
	Scene   string `json:"scene,omitempty"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scene-path>...",
		Short: "Check that scenes load and their surfaces are well formed",
		Long: `Load every scene named (files, or CUE package directories with a
"scenes" struct) and check each room surface: absorption and diffusion
must hold one coefficient per wall and frequency band.

All paths are checked before reporting. Exit code 1 means at least one
scene failed; 2 means a path does not exist.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	var (
		errs  []ValidationError
		count int
	)
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("scene path not found: %s", path), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: scene path not found: %s", ErrCodeNotFound, path))
		}

		scenes, err := LoadScenes([]string{path})
		if err != nil {
			errs = append(errs, ValidationError{
				Path:    path,
				Code:    ErrorCode(err),
				Message: err.Error(),
			})
			continue
		}
		for _, s := range scenes {
			count++
			formatter.VerboseLog("Validating scene: %s", s.Name)
			if verr := validateScene(s); verr != nil {
				errs = append(errs, *verr)
			}
		}
	}

	if len(errs) > 0 {
		return outputValidationErrors(formatter, count, errs)
	}
	return outputValidateSuccess(formatter, count)
}

func validateScene(s *LoadedScene) *ValidationError {
	err := s.Setup.Room().Surface().Validate(scene.Walls)
	if err == nil {
		return nil
	}
	verr := &ValidationError{
		Path:    s.Path,
		Scene:   s.Name,
		Code:    ErrCodeInvalid,
		Message: err.Error(),
	}
	var ee *entity.Error
	if errors.As(err, &ee) {
		verr.Field = "room.surface." + ee.Field
		verr.Message = ee.Message
	}
	return verr
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, count int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Scenes: count})
	}

	formatter.OK("%d scene(s) valid", count)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, count int, errs []ValidationError) error {
	if formatter.Format == "json" {
		data := ValidationResult{Valid: false, Scenes: count, Errors: errs}
		if err := formatter.Report(data, &CLIError{Code: errs[0].Code, Message: errs[0].Message}); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	formatter.Failed("Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		where := err.Path
		if err.Scene != "" {
			where += " (" + err.Scene + ")"
		}
		fmt.Fprintln(formatter.Writer, where)
		if err.Field != "" {
			fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
		} else {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
		}
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
