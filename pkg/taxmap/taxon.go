// Package taxmap builds and queries a canonical tree of taxa.
//
// The builder consumes per-record classification paths and assembles a
// forest: a trie over name sequences where identical full paths
// collapse into one taxon and divergent paths share their common
// prefix. Taxon IDs are small integers assigned in creation order;
// they are stable within one build only. Each taxon also carries a
// deterministic UUID derived from its full path, which survives
// rebuilds of the same data.
//
// After the single build pass the tree is immutable; the query surface
// (Subtaxa, Supertaxa, Roots, Leaves) is read-only and repeatable.
package taxmap

import (
	"strings"

	"github.com/gnames/gnuuid"
)

// NoTaxon is the ID used for records whose path is empty and for the
// parent of root taxa.
const NoTaxon = 0

// Taxon is one node of the classification tree.
type Taxon struct {
	// ID is unique within one build, assigned in creation order
	// starting from 1.
	ID int `json:"id"`

	// Name of the taxon at its rank level.
	Name string `json:"name"`

	// Rank is optional ("class", "genus", ...).
	Rank string `json:"rank,omitempty"`

	// Info holds arbitrary extracted fields.
	Info map[string]string `json:"info,omitempty"`

	// ParentID is NoTaxon for roots.
	ParentID int `json:"parentId,omitempty"`

	// PathID is a UUID v5 of the full root-to-self name sequence.
	// Identical paths produce identical PathIDs across builds.
	PathID string `json:"pathId"`
}

// Edge is one parent-child relation of the tree.
type Edge struct {
	ParentID int `json:"parentId"`
	ChildID  int `json:"childId"`
}

// Record ties one input item to its leaf taxon. Name and Values feed
// later dataset mapping; both may be empty.
type Record struct {
	// Index is the zero-based position of the record in the input.
	Index int `json:"index"`

	// Name is the record's identity used by {{name}} mapping.
	Name string `json:"name,omitempty"`

	// Values holds the source row's columns when the input was
	// tabular. Used by column-equality mapping.
	Values map[string]string `json:"values,omitempty"`

	// TaxonID is the leaf taxon of the record's path, NoTaxon when
	// the path was empty.
	TaxonID int `json:"taxonId,omitempty"`
}

// Warning reports a first-write-wins conflict: a later occurrence of
// a taxon carried a different rank or info value than the first one.
type Warning struct {
	TaxonID int    `json:"taxonId"`
	Field   string `json:"field"`
	Kept    string `json:"kept"`
	Ignored string `json:"ignored"`
}

// pathSep joins name sequences into prefix keys. A non-printable
// separator avoids collisions with characters found in names.
const pathSep = "\x1f"

// prefixKey returns the index key of a root-to-current name sequence.
func prefixKey(names []string) string {
	return strings.Join(names, pathSep)
}

// pathUUID returns the deterministic UUID of a full name sequence.
func pathUUID(names []string) string {
	return gnuuid.New(strings.Join(names, "|")).String()
}
