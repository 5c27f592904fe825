package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gnames/gntax/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gntax"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "gntax"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gntax", "logs"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()

	t.Run("creates valid default config", func(t *testing.T) {
		require.NotNil(t, cfg)

		// Match defaults
		assert.Equal(t, "first", cfg.Match.OnAmbiguity)

		// Parse defaults
		assert.Equal(t, "zoological", cfg.Parse.NomenclaturalCode)
		assert.False(t, cfg.Parse.WithCanonical)

		// Log defaults
		assert.Equal(t, "json", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "file", cfg.Log.Destination)

		// JobsNumber defaults to CPU count
		assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)

		// Build fields are runtime-only and start empty
		assert.Empty(t, cfg.Build.Separators)
		assert.Empty(t, cfg.Build.Regexp)
		assert.Empty(t, cfg.Build.Roles)
	})
}

func TestOptionMatchOnAmbiguity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid policy - first",
			input:    "first",
			expected: "first",
		},
		{
			name:     "sets valid policy - strict",
			input:    "strict",
			expected: "strict",
		},
		{
			name:     "normalizes to lowercase",
			input:    "STRICT",
			expected: "strict",
		},
		{
			name:     "ignores invalid value",
			input:    "maybe",
			expected: "first", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptMatchOnAmbiguity(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Match.OnAmbiguity)
		})
	}
}

func TestOptionParseNomenclaturalCode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid code - botanical",
			input:    "botanical",
			expected: "botanical",
		},
		{
			name:     "sets valid code - zoological",
			input:    "zoological",
			expected: "zoological",
		},
		{
			name:     "normalizes to lowercase",
			input:    "Botanical",
			expected: "botanical",
		},
		{
			name:     "ignores invalid value",
			input:    "bacterial",
			expected: "zoological", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptParseNomenclaturalCode(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Parse.NomenclaturalCode)
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid log level - debug",
			input:    "debug",
			expected: "debug",
		},
		{
			name:     "sets valid log level - warn",
			input:    "warn",
			expected: "warn",
		},
		{
			name:     "normalizes to lowercase",
			input:    "ERROR",
			expected: "error",
		},
		{
			name:     "ignores invalid value",
			input:    "trace",
			expected: "info", // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptLogLevel(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionJobsNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{
			name:     "sets valid number",
			input:    8,
			expected: 8,
		},
		{
			name:     "ignores zero",
			input:    0,
			expected: runtime.NumCPU(), // Should keep default
		},
		{
			name:     "ignores negative",
			input:    -4,
			expected: runtime.NumCPU(), // Should keep default
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			opt := config.OptJobsNumber(tt.input)
			cfg.Update([]config.Option{opt})
			assert.Equal(t, tt.expected, cfg.JobsNumber)
		})
	}
}

func TestOptionBuildSeparators(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptBuildSeparators([]string{";", "|"}),
	})
	assert.Equal(t, []string{";", "|"}, cfg.Build.Separators)

	// Empty slice keeps the previous value.
	cfg.Update([]config.Option{config.OptBuildSeparators(nil)})
	assert.Equal(t, []string{";", "|"}, cfg.Build.Separators)
}

func TestToOptionsRoundTrip(t *testing.T) {
	orig := config.New()
	orig.Update([]config.Option{
		config.OptMatchOnAmbiguity("strict"),
		config.OptParseNomenclaturalCode("botanical"),
		config.OptParseWithCanonical(true),
		config.OptLogLevel("debug"),
		config.OptLogFormat("text"),
		config.OptLogDestination("stderr"),
		config.OptJobsNumber(4),
	})

	clone := config.New()
	clone.Update(orig.ToOptions())

	assert.Equal(t, orig.Match, clone.Match)
	assert.Equal(t, orig.Parse, clone.Parse)
	assert.Equal(t, orig.Log, clone.Log)
	assert.Equal(t, orig.JobsNumber, clone.JobsNumber)
}

func TestToOptionsSkipsRuntimeFields(t *testing.T) {
	orig := config.New()
	orig.Update([]config.Option{
		config.OptBuildSeparators([]string{"|"}),
		config.OptBuildRegexp(`(\w+)__(\w+)`),
		config.OptHomeDir("/tmp/gntax-test"),
	})

	clone := config.New()
	clone.Update(orig.ToOptions())

	assert.Empty(t, clone.Build.Separators)
	assert.Empty(t, clone.Build.Regexp)
	assert.Empty(t, clone.HomeDir)
}
