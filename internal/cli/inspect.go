package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/roach88/roomsim/internal/ir"
	"github.com/roach88/roomsim/internal/scene"
)

// InspectResult summarizes a scene.
type InspectResult struct {
	Name      string       `json:"name"`
	Format    string       `json:"format"`
	SceneID   string       `json:"scene_id"`
	Room      RoomInfo     `json:"room"`
	Options   OptionsInfo  `json:"options"`
	Sources   []SensorInfo `json:"sources"`
	Receivers []SensorInfo `json:"receivers"`
}

// RoomInfo is the room part of InspectResult.
type RoomInfo struct {
	Dimension   []float64 `json:"dimension"`
	Humidity    float64   `json:"humidity"`
	Temperature float64   `json:"temperature"`
	Bands       int       `json:"bands"`
}

// OptionsInfo is the options part of InspectResult.
type OptionsInfo struct {
	SampleRate       float64  `json:"fs"`
	ResponseDuration float64  `json:"responseduration"`
	ReflectionOrder  []int64  `json:"reflectionorder"`
	NumberOfRays     int64    `json:"numberofrays"`
	Extra            []string `json:"extra,omitempty"`
}

// SensorInfo describes one source or receiver.
type SensorInfo struct {
	Location    []float64 `json:"location,omitempty"`
	Orientation []float64 `json:"orientation,omitempty"`
	Description string    `json:"description,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <scene-file>",
		Short: "Summarize a scene",
		Long: `Load a scene, fill in every default, and print a summary: the content
hash, the room, the main options and every source and receiver.

With --verbose the full nested configuration is dumped as well.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runInspect(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	loaded, err := LoadSetup(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to load scene", err)
	}
	cfg, err := loaded.TextConfig()
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to serialize scene", err)
	}
	sceneID, err := ir.SceneID(cfg)
	if err != nil {
		return formatter.Fail(ExitCommandError, "failed to hash scene", err)
	}

	result := summarize(loaded, sceneID)
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	printInspect(formatter.Writer, result)
	if formatter.Verbose {
		fmt.Fprintln(formatter.Writer)
		dumpConfig(formatter.Writer, cfg)
	}
	return nil
}

func summarize(loaded *LoadedScene, sceneID string) InspectResult {
	setup := loaded.Setup
	room := setup.Room()
	options := setup.Options()

	return InspectResult{
		Name:    loaded.Name,
		Format:  string(loaded.Format),
		SceneID: sceneID,
		Room: RoomInfo{
			Dimension:   room.Dimension(),
			Humidity:    room.Humidity(),
			Temperature: room.Temperature(),
			Bands:       len(room.Surface().Frequency()),
		},
		Options: OptionsInfo{
			SampleRate:       options.SampleRate(),
			ResponseDuration: options.ResponseDuration(),
			ReflectionOrder:  options.ReflectionOrder(),
			NumberOfRays:     options.NumberOfRays(),
			Extra:            options.Extra(),
		},
		Sources:   sensorInfos(setup.Sources()),
		Receivers: sensorInfos(setup.Receivers()),
	}
}

func sensorInfos(sensors []*scene.SourceOrReceiver) []SensorInfo {
	out := make([]SensorInfo, len(sensors))
	for i, s := range sensors {
		out[i] = SensorInfo{
			Location:    s.Location(),
			Orientation: s.Orientation(),
			Description: s.Description(),
		}
	}
	return out
}

func printInspect(w io.Writer, r InspectResult) {
	fmt.Fprintf(w, "Scene: %s (%s)\n", r.Name, r.Format)
	fmt.Fprintf(w, "ID:    %s\n\n", r.SceneID)

	fmt.Fprintln(w, "Room")
	fmt.Fprintf(w, "  dimension:   %s m\n", floats(r.Room.Dimension))
	fmt.Fprintf(w, "  humidity:    %g\n", r.Room.Humidity)
	fmt.Fprintf(w, "  temperature: %g °C\n", r.Room.Temperature)
	fmt.Fprintf(w, "  bands:       %d\n\n", r.Room.Bands)

	fmt.Fprintln(w, "Options")
	fmt.Fprintf(w, "  fs:               %g Hz\n", r.Options.SampleRate)
	fmt.Fprintf(w, "  responseduration: %g s\n", r.Options.ResponseDuration)
	fmt.Fprintf(w, "  reflectionorder:  %v\n", r.Options.ReflectionOrder)
	fmt.Fprintf(w, "  numberofrays:     %d\n", r.Options.NumberOfRays)
	if len(r.Options.Extra) > 0 {
		fmt.Fprintf(w, "  extra:            %s\n", strings.Join(r.Options.Extra, ", "))
	}

	printSensors(w, "Sources", r.Sources)
	printSensors(w, "Receivers", r.Receivers)
}

func printSensors(w io.Writer, title string, sensors []SensorInfo) {
	fmt.Fprintf(w, "\n%s (%d)\n", title, len(sensors))
	for i, s := range sensors {
		line := fmt.Sprintf("  %d. at %s", i+1, floats(s.Location))
		if s.Description != "" {
			line += " " + s.Description
		}
		fmt.Fprintln(w, line)
	}
}

func floats(fs []float64) string {
	if fs == nil {
		return "(unset)"
	}
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// dumpConfig writes the plain form of cfg with go-spew. Map keys are
// sorted so the dump is stable.
func dumpConfig(w io.Writer, cfg *ir.Nested) {
	cs := spew.ConfigState{
		Indent:                  "  ",
		SortKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
	}
	cs.Fdump(w, ir.ToPlain(cfg))
}
