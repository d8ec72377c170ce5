package ir

// Version constants for the configuration schema and tool.
const (
	// SchemaVersion is the configuration mapping schema version.
	SchemaVersion = "1"

	// ToolVersion is the roomsim tool version.
	ToolVersion = "0.1.0"
)
