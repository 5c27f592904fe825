package taxmap

import (
	"maps"
	"slices"

	"github.com/gnames/gntax/pkg/extract"
)

// builder owns the ID counter and the prefix index for one build
// pass. It exists only during Build; no global state is involved.
type builder struct {
	counter  int
	prefixes map[string]int
	tree     *Tree
	warnings []Warning
}

// Build processes paths in input order and returns the taxon tree,
// the leaf taxon ID of every path (NoTaxon for empty paths), and the
// first-write-wins conflict warnings.
//
// Two paths create the same taxon iff their full root-to-taxon name
// sequences are identical; the same name under different ancestors
// yields distinct taxa. Runs in O(total name tokens).
func Build(paths []extract.Path) (*Tree, []int, []Warning) {
	b := &builder{
		prefixes: make(map[string]int),
		tree:     newTree(),
	}

	leaves := make([]int, len(paths))
	for i, path := range paths {
		leaves[i] = b.addPath(path)
	}
	return b.tree, leaves, b.warnings
}

// addPath walks one path from the root, looking up or creating a
// taxon per prefix, and returns the leaf taxon ID.
func (b *builder) addPath(path extract.Path) int {
	parent := NoTaxon
	names := make([]string, 0, len(path))

	for _, tuple := range path {
		names = append(names, tuple.Name)
		key := prefixKey(names)

		id, ok := b.prefixes[key]
		if ok {
			b.checkConflicts(id, tuple)
		} else {
			id = b.createTaxon(names, parent, tuple)
			b.prefixes[key] = id
		}
		parent = id
	}

	return parent
}

// createTaxon registers a fresh taxon for a first-seen prefix.
func (b *builder) createTaxon(
	names []string,
	parent int,
	tuple extract.Tuple,
) int {
	b.counter++
	taxon := &Taxon{
		ID:       b.counter,
		Name:     tuple.Name,
		Rank:     tuple.Rank,
		ParentID: parent,
		PathID:   pathUUID(names),
	}
	if len(tuple.Info) > 0 {
		taxon.Info = make(map[string]string, len(tuple.Info))
		for k, v := range tuple.Info {
			taxon.Info[k] = v
		}
	}
	b.tree.add(taxon)
	return taxon.ID
}

// checkConflicts applies first-write-wins to rank and info fields of
// an already known taxon. Differing later values are ignored and
// surface as warnings.
func (b *builder) checkConflicts(id int, tuple extract.Tuple) {
	taxon := b.tree.taxa[id]

	if tuple.Rank != "" {
		if taxon.Rank == "" {
			taxon.Rank = tuple.Rank
		} else if taxon.Rank != tuple.Rank {
			b.warnings = append(b.warnings, Warning{
				TaxonID: id,
				Field:   "rank",
				Kept:    taxon.Rank,
				Ignored: tuple.Rank,
			})
		}
	}

	for _, k := range slices.Sorted(maps.Keys(tuple.Info)) {
		v := tuple.Info[k]
		if v == "" {
			continue
		}
		old, ok := taxon.Info[k]
		switch {
		case !ok || old == "":
			if taxon.Info == nil {
				taxon.Info = make(map[string]string)
			}
			taxon.Info[k] = v
		case old != v:
			b.warnings = append(b.warnings, Warning{
				TaxonID: id,
				Field:   k,
				Kept:    old,
				Ignored: v,
			})
		}
	}
}
