// pkg/config/types.go
package config

// Config is the root configuration structure for the deployo application.
// It aggregates all other specific configuration structs.
type Config struct {
	Log     LogConfig    `description:"Logging configuration" koanf:"log"`
	Deploy  DeployConfig `description:"Deployment configuration" koanf:"deploy"`
	Targets []Target     `description:"Deployment targets" koanf:"targets"`
}

// LogConfig holds logging related configuration.
type LogConfig struct {
	Level  string `description:"Log level for deployo logs." koanf:"level"`   // Log level (e.g., "debug", "info", "warn", "error")
	Format string `description:"Deployo log format: json | text" koanf:"format"` // Log format (e.g., "json", "text")
}

// DeployConfig holds settings shared by all deployments.
type DeployConfig struct {
	// Root is the workspace root all deployed files are relativized against.
	// Empty means the current working directory.
	Root string `description:"Workspace root directory" koanf:"root"`
}

// Target is a named, configured deployment destination. A target is immutable
// for the duration of one deploy operation; the pipeline only reads it.
type Target struct {
	Name        string `koanf:"name" validate:"required"`
	Type        string `koanf:"type" validate:"required"` // selects which plugin(s) apply
	Description string `koanf:"description"`

	// Dir is the output directory for directory-oriented backends (zip, local).
	// Relative paths are resolved against the workspace root.
	Dir string `koanf:"dir"`

	// Targets lists the names of other targets a batch target fans out to.
	Targets []string `koanf:"targets"`

	// Options carries backend-specific fields that have no dedicated slot
	// above. Values are coerced by the consuming backend.
	Options map[string]any `koanf:"options"`
}
