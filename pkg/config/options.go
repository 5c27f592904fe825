package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptBuildSeparators sets the rank separators for record splitting.
// Runtime-only field - not in ToOptions().
func OptBuildSeparators(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Build.Separators = ss
		}
	}
}

// OptBuildRegexp sets the extraction pattern with capture groups.
// Runtime-only field - not in ToOptions().
func OptBuildRegexp(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Build Regexp", s) {
			c.Build.Regexp = s
		}
	}
}

// OptBuildRoles sets the role of each capture group, in order.
// Runtime-only field - not in ToOptions().
func OptBuildRoles(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Build.Roles = ss
		}
	}
}

// OptBuildClassificationColumn sets the CSV column carrying the raw
// classification string.
// Runtime-only field - not in ToOptions().
func OptBuildClassificationColumn(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Classification Column", s) {
			c.Build.ClassificationColumn = s
		}
	}
}

// OptBuildNameColumn sets the CSV column providing record identity
// for {{name}} mapping.
// Runtime-only field - not in ToOptions().
func OptBuildNameColumn(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Name Column", s) {
			c.Build.NameColumn = s
		}
	}
}

// OptMatchOnAmbiguity sets the tie-break policy for column-equality
// mapping. Valid values: "first", "strict".
func OptMatchOnAmbiguity(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Match.OnAmbiguity", s) {
			c.Match.OnAmbiguity = s
		}
	}
}

// OptParseNomenclaturalCode sets the nomenclatural code used by gnparser.
// Valid values: "botanical", "zoological".
func OptParseNomenclaturalCode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Parse.NomenclaturalCode", s) {
			c.Parse.NomenclaturalCode = s
		}
	}
}

// OptParseWithCanonical sets whether extracted taxon names are
// normalized to their canonical form.
func OptParseWithCanonical(b bool) Option {
	return func(c *Config) {
		c.Parse.WithCanonical = b
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel
// operations.
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache and logs.
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
