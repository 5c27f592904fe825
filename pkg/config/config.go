// Package config provides configuration management for GNtax.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Match: on_ambiguity
//   - Parse: nomenclatural_code, with_canonical
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Build.Separators, Regexp, Roles, ClassificationColumn, NameColumn
//     (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNTAX_ prefix with underscores for nesting:
//
//	GNTAX_MATCH_ON_AMBIGUITY=strict
//	GNTAX_LOG_LEVEL=info
//	GNTAX_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete GNtax configuration.
type Config struct {
	// Build contains settings specific to the build command.
	Build BuildConfig `mapstructure:"build" yaml:"build"`

	// Match contains settings for dataset-to-taxon mapping.
	Match MatchConfig `mapstructure:"match" yaml:"match"`

	// Parse contains settings for scientific-name normalization.
	Parse ParseConfig `mapstructure:"parse" yaml:"parse"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// BuildConfig contains settings specific to the build command.
// All fields are runtime-only: they describe one particular input and
// are set by CLI flags, not by config.yaml.
type BuildConfig struct {
	// Separators holds the rank separators applied to each record.
	// Each entry is a literal string or a regular expression; all of them
	// act as alternative split points.
	Separators []string `mapstructure:"separators" yaml:"separators"`

	// Regexp is the extraction pattern with capture groups. Each group's
	// text is assigned a role from Roles.
	Regexp string `mapstructure:"regexp" yaml:"regexp"`

	// Roles assigns a role to each capture group of Regexp, in order.
	// Valid values: "name", "rank", "info:<field>", "discard".
	Roles []string `mapstructure:"roles" yaml:"roles"`

	// ClassificationColumn names the CSV column that carries the raw
	// classification string. Empty means the input is plain text, one
	// record per line.
	ClassificationColumn string `mapstructure:"classification_column" yaml:"classification_column"`

	// NameColumn names the CSV column that provides each record's
	// identity for later {{name}} mapping. Empty means the raw record
	// itself is the name.
	NameColumn string `mapstructure:"name_column" yaml:"name_column"`
}

// MatchConfig contains settings for dataset-to-taxon mapping.
type MatchConfig struct {
	// OnAmbiguity decides what happens when a dataset row matches more
	// than one primary record under column-equality mapping.
	// Valid values: "first" (take the first match in record order),
	// "strict" (fail the attachment).
	OnAmbiguity string `mapstructure:"on_ambiguity" yaml:"on_ambiguity"`
}

// ParseConfig contains settings for scientific-name normalization.
type ParseConfig struct {
	// NomenclaturalCode selects the code used by gnparser.
	// Valid values: "botanical", "zoological".
	NomenclaturalCode string `mapstructure:"nomenclatural_code" yaml:"nomenclatural_code"`

	// WithCanonical is true when extracted taxon names should be
	// normalized to their canonical form with gnparser.
	WithCanonical bool `mapstructure:"with_canonical" yaml:"with_canonical"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Match: MatchConfig{
			OnAmbiguity: "first",
		},
		Parse: ParseConfig{
			NomenclaturalCode: "zoological",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
