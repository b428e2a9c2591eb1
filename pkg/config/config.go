// Package config defines the persistent configuration for goqbc.
// These types are pure data structures; discovery and merging with CLI
// flags live in internal/configloader.
package config

// Config is the root configuration structure, persisted as .goqbc.yaml.
type Config struct {
	// Format is the default output format ("boostbook" or "html").
	Format string `yaml:"format"`

	// PrettyPrint enables the layout pass over generated markup.
	// Nil means the built-in default (enabled).
	PrettyPrint *bool `yaml:"pretty_print"`

	// Indent is the layout indent width in spaces.
	Indent int `yaml:"indent"`

	// LineWidth is the layout wrap column.
	LineWidth int `yaml:"line_width"`

	// IncludePaths is the ordered include search path list.
	IncludePaths []string `yaml:"include_paths"`

	// Defines holds NAME=VALUE macro presets applied to every compile.
	Defines []string `yaml:"defines"`

	// MSErrors switches diagnostics to the Visual Studio layout.
	MSErrors bool `yaml:"ms_errors"`

	// LogLevel sets the logging verbosity ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`
}

// NewConfig returns a Config with the built-in defaults.
func NewConfig() *Config {
	pretty := true
	return &Config{
		Format:      "boostbook",
		PrettyPrint: &pretty,
		Indent:      2,
		LineWidth:   80,
		LogLevel:    "warn",
	}
}

// PrettyPrintEnabled resolves the optional PrettyPrint field.
func (c *Config) PrettyPrintEnabled() bool {
	if c == nil || c.PrettyPrint == nil {
		return true
	}
	return *c.PrettyPrint
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	if c.PrettyPrint != nil {
		pretty := *c.PrettyPrint
		clone.PrettyPrint = &pretty
	}
	if c.IncludePaths != nil {
		clone.IncludePaths = make([]string, len(c.IncludePaths))
		copy(clone.IncludePaths, c.IncludePaths)
	}
	if c.Defines != nil {
		clone.Defines = make([]string, len(c.Defines))
		copy(clone.Defines, c.Defines)
	}
	return &clone
}
