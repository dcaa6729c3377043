// Package config holds runtime configuration: defaults, validation, and
// loading of the authored rules file. Flag binding lives in the CLI; this
// package only defines the settings and checks them.
package config

import (
	"github.com/cockroachdb/errors"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [Default] and then
// mutated by CLI flag binding before being passed (by pointer) to packages
// that need it.
type Config struct {
	// Inputs.
	ProjectFile string   // YAML snapshot of the project's timelines.
	RulesFile   string   // TOML file with authored rule rows.
	Timelines   []string // Timeline name selection; empty means all.

	// LUT discovery.
	ExtraLUTDirs []string // Search roots in addition to the OS defaults.

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// Default returns a Config with all defaults applied, used as the base
// before CLI overrides.
func Default() Config {
	return Config{
		ColorMode: ColorAuto,
	}
}

// Validate checks enum fields. Presence of the project and rules files is
// checked per command, since not every command needs them.
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return errors.Newf("invalid color mode %q (use 'auto', 'always', or 'never')", c.ColorMode)
	}
}
