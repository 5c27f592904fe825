package extract_test

import (
	"strings"
	"testing"

	"github.com/gnames/gntax/pkg/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeparatorSplit(t *testing.T) {
	ex, err := extract.New(extract.Config{Separators: []string{";"}})
	require.NoError(t, err)

	tests := []struct {
		name   string
		record string
		want   []string
	}{
		{
			name:   "three ranks",
			record: "Animalia;Chordata;Mammalia",
			want:   []string{"Animalia", "Chordata", "Mammalia"},
		},
		{
			name:   "whitespace around segments",
			record: " Animalia ; Chordata ",
			want:   []string{"Animalia", "Chordata"},
		},
		{
			name:   "trailing separator",
			record: "Animalia;Chordata;",
			want:   []string{"Animalia", "Chordata"},
		},
		{
			name:   "single segment",
			record: "Animalia",
			want:   []string{"Animalia"},
		},
		{
			name:   "empty record",
			record: "",
			want:   []string{},
		},
		{
			name:   "only separators",
			record: ";;;",
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ex.Path(tt.record)
			assert.Equal(t, tt.want, path.Names())
		})
	}
}

func TestMultipleSeparators(t *testing.T) {
	ex, err := extract.New(
		extract.Config{Separators: []string{";", "|"}},
	)
	require.NoError(t, err)

	path := ex.Path("Animalia|Chordata;Mammalia")
	assert.Equal(
		t, []string{"Animalia", "Chordata", "Mammalia"}, path.Names(),
	)
}

func TestRegexpSeparators(t *testing.T) {
	ex, err := extract.New(extract.Config{
		Separators:      []string{`\s*>\s*`},
		SeparatorRegexp: true,
	})
	require.NoError(t, err)

	path := ex.Path("Animalia > Chordata >Mammalia")
	assert.Equal(
		t, []string{"Animalia", "Chordata", "Mammalia"}, path.Names(),
	)
}

func TestCaptureRoles(t *testing.T) {
	// Taxon name and rank glued with a double underscore.
	ex, err := extract.New(extract.Config{
		Separators: []string{";"},
		Regexp:     `(\w+)__(\w+)`,
		Roles:      []extract.Role{extract.Name(), extract.Rank()},
	})
	require.NoError(t, err)

	path := ex.Path("Mammalia__class;Carnivora__order")
	require.Len(t, path, 2)
	assert.Equal(t, "Mammalia", path[0].Name)
	assert.Equal(t, "class", path[0].Rank)
	assert.Equal(t, "Carnivora", path[1].Name)
	assert.Equal(t, "order", path[1].Rank)
}

func TestInfoAndDiscardRoles(t *testing.T) {
	ex, err := extract.New(extract.Config{
		Separators: []string{";"},
		Regexp:     `(\w+)__(\w+)__(\d+)__(\w+)`,
		Roles: []extract.Role{
			extract.Name(),
			extract.Rank(),
			extract.Info("records"),
			extract.Discard(),
		},
	})
	require.NoError(t, err)

	path := ex.Path("Mammalia__class__120__x1")
	require.Len(t, path, 1)
	assert.Equal(t, "Mammalia", path[0].Name)
	assert.Equal(t, "class", path[0].Rank)
	assert.Equal(t, "120", path[0].Info["records"])
}

func TestNoSeparatorScanMode(t *testing.T) {
	// Without separators every non-overlapping match is a segment.
	ex, err := extract.New(extract.Config{
		Regexp: `([A-Z][a-z]+)__([a-z]+)`,
		Roles:  []extract.Role{extract.Name(), extract.Rank()},
	})
	require.NoError(t, err)

	path := ex.Path("Mammalia__class Carnivora__order junk")
	require.Len(t, path, 2)
	assert.Equal(t, []string{"Mammalia", "Carnivora"}, path.Names())
	assert.Equal(t, "order", path[1].Rank)
}

func TestNonMatchingSegmentsSkipped(t *testing.T) {
	ex, err := extract.New(extract.Config{
		Separators: []string{";"},
		Regexp:     `(\w+)__(\w+)`,
		Roles:      []extract.Role{extract.Name(), extract.Rank()},
	})
	require.NoError(t, err)

	path := ex.Path("Mammalia__class;oops;Carnivora__order")
	assert.Equal(t, []string{"Mammalia", "Carnivora"}, path.Names())
}

func TestConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  extract.Config
	}{
		{
			name: "role count mismatch",
			cfg: extract.Config{
				Regexp: `(\w+)__(\w+)`,
				Roles:  []extract.Role{extract.Name()},
			},
		},
		{
			name: "roles without pattern",
			cfg: extract.Config{
				Separators: []string{";"},
				Roles:      []extract.Role{extract.Name()},
			},
		},
		{
			name: "no name role",
			cfg: extract.Config{
				Regexp: `(\w+)__(\w+)`,
				Roles:  []extract.Role{extract.Rank(), extract.Discard()},
			},
		},
		{
			name: "duplicate name role",
			cfg: extract.Config{
				Regexp: `(\w+)__(\w+)`,
				Roles:  []extract.Role{extract.Name(), extract.Name()},
			},
		},
		{
			name: "bad extraction pattern",
			cfg:  extract.Config{Regexp: `(\w+`},
		},
		{
			name: "bad separator pattern",
			cfg: extract.Config{
				Separators:      []string{`[`},
				SeparatorRegexp: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extract.New(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNameNormalizer(t *testing.T) {
	ex, err := extract.New(extract.Config{
		Separators:     []string{";"},
		NameNormalizer: strings.ToUpper,
	})
	require.NoError(t, err)

	path := ex.Path("Animalia;Chordata")
	assert.Equal(t, []string{"ANIMALIA", "CHORDATA"}, path.Names())
}
