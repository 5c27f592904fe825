package parserpool_test

import (
	"sync"
	"testing"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gntax/pkg/parserpool"
	"github.com/stretchr/testify/assert"
)

var _ parserpool.Pool = (*parserpool.PoolImpl)(nil)

func TestCanonical(t *testing.T) {
	pool := parserpool.New(nomcode.Zoological, 2)
	defer pool.Close()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "authorship stripped",
			input: "Homo sapiens Linnaeus, 1758",
			want:  "Homo sapiens",
		},
		{
			name:  "already canonical",
			input: "Homo sapiens",
			want:  "Homo sapiens",
		},
		{
			name:  "unparseable stays unchanged",
			input: "not_a_name_123",
			want:  "not_a_name_123",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pool.Canonical(tt.input))
		})
	}
}

func TestConcurrentUse(t *testing.T) {
	pool := parserpool.New(nomcode.Botanical, 2)
	defer pool.Close()

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := pool.Canonical("Rosa arvensis Huds.")
			assert.Equal(t, "Rosa arvensis", got)
		}()
	}
	wg.Wait()
}

func TestCode(t *testing.T) {
	assert.Equal(t, nomcode.Botanical, parserpool.Code("botanical"))
	assert.Equal(t, nomcode.Zoological, parserpool.Code("zoological"))
	assert.Equal(t, nomcode.Zoological, parserpool.Code(""))
}
