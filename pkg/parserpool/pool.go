// Package parserpool provides a pool of gnparser instances for
// concurrent canonicalization of scientific names. This is a pure
// package - parsing is computation, not I/O.
package parserpool

import (
	"runtime"
	"strings"

	"github.com/gnames/gnlib/ent/nomcode"
	"github.com/gnames/gnparser"
)

// Pool canonicalizes scientific names using a fixed set of gnparser
// instances. Safe for concurrent use.
type Pool interface {
	// Canonical returns the canonical simple form of a scientific
	// name. Names gnparser cannot parse are returned unchanged, so
	// the result is always usable as a taxon name.
	Canonical(name string) string

	// Normalizer returns Canonical as a plain function, suitable for
	// the extractor's NameNormalizer hook.
	Normalizer() func(string) string

	// Close shuts down the pool and releases the parsers.
	// After calling Close, the pool should not be used.
	Close()
}

// PoolImpl implements the Pool interface using gnparser.NewPool.
type PoolImpl struct {
	ch       chan gnparser.GNparser
	poolSize int
}

// New creates a parser pool for the given nomenclatural code with the
// specified number of parsers. If jobsNum is 0, it defaults to
// runtime.NumCPU().
func New(code nomcode.Code, jobsNum int) Pool {
	poolSize := jobsNum
	if poolSize == 0 {
		poolSize = runtime.NumCPU()
	}

	cfg := gnparser.NewConfig(gnparser.OptCode(code))
	ch := gnparser.NewPool(cfg, poolSize)

	return &PoolImpl{ch: ch, poolSize: poolSize}
}

// Canonical parses a name with a parser from the pool and returns its
// canonical simple form.
func (p *PoolImpl) Canonical(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}

	parser := <-p.ch
	defer func() { p.ch <- parser }()

	parsed := parser.ParseName(name)
	if !parsed.Parsed || parsed.Canonical == nil {
		return name
	}
	return parsed.Canonical.Simple
}

// Normalizer returns Canonical as a function value.
func (p *PoolImpl) Normalizer() func(string) string {
	return p.Canonical
}

// Close drains the pool's parsers.
func (p *PoolImpl) Close() {
	for range p.poolSize {
		<-p.ch
	}
}

// Code converts a configuration string into a nomenclatural code.
// Unknown values fall back to zoological, gnparser's default.
func Code(s string) nomcode.Code {
	if strings.ToLower(strings.TrimSpace(s)) == "botanical" {
		return nomcode.Botanical
	}
	return nomcode.Zoological
}
