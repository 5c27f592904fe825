package taxmap

import (
	"fmt"
	"slices"

	"github.com/gnames/gn"
	"github.com/gnames/gntax/pkg/errcode"
)

// Tree is an immutable forest of taxa. Multiple roots are permitted;
// every non-root taxon has exactly one parent. All query methods are
// read-only and safe for concurrent use after the build pass.
type Tree struct {
	taxa     map[int]*Taxon
	children map[int][]int
	roots    []int
	order    []int
}

func newTree() *Tree {
	return &Tree{
		taxa:     make(map[int]*Taxon),
		children: make(map[int][]int),
	}
}

// add registers a taxon during the build pass. Insertion order is
// preserved for deterministic traversal.
func (t *Tree) add(taxon *Taxon) {
	t.taxa[taxon.ID] = taxon
	t.order = append(t.order, taxon.ID)
	if taxon.ParentID == NoTaxon {
		t.roots = append(t.roots, taxon.ID)
	} else {
		t.children[taxon.ParentID] = append(
			t.children[taxon.ParentID], taxon.ID,
		)
	}
}

// Len returns the number of taxa in the tree.
func (t *Tree) Len() int {
	return len(t.taxa)
}

// Taxon returns a copy of the taxon with the given ID.
func (t *Tree) Taxon(id int) (Taxon, bool) {
	taxon, ok := t.taxa[id]
	if !ok {
		return Taxon{}, false
	}
	return *taxon, true
}

// Taxa returns all taxa in creation order.
func (t *Tree) Taxa() []Taxon {
	res := make([]Taxon, len(t.order))
	for i, id := range t.order {
		res[i] = *t.taxa[id]
	}
	return res
}

// Edges returns the parent-child edge list in creation order of the
// child. Roots do not appear as children.
func (t *Tree) Edges() []Edge {
	var res []Edge
	for _, id := range t.order {
		taxon := t.taxa[id]
		if taxon.ParentID == NoTaxon {
			continue
		}
		res = append(res, Edge{ParentID: taxon.ParentID, ChildID: id})
	}
	return res
}

// Roots returns the IDs of taxa without a parent, in creation order.
func (t *Tree) Roots() []int {
	return slices.Clone(t.roots)
}

// Leaves returns the IDs of taxa without children, in creation order.
func (t *Tree) Leaves() []int {
	var res []int
	for _, id := range t.order {
		if len(t.children[id]) == 0 {
			res = append(res, id)
		}
	}
	return res
}

// Children returns the direct children of a taxon, in creation order.
func (t *Tree) Children(id int) []int {
	return slices.Clone(t.children[id])
}

// Subtaxa returns the transitive closure of descendants of a taxon in
// depth-first preorder. With includeSelf the taxon itself comes
// first. An unknown ID yields nil.
func (t *Tree) Subtaxa(id int, includeSelf bool) []int {
	if _, ok := t.taxa[id]; !ok {
		return nil
	}

	var res []int
	if includeSelf {
		res = append(res, id)
	}

	stack := slices.Clone(t.children[id])
	slices.Reverse(stack)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		res = append(res, curr)

		kids := t.children[curr]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return res
}

// Supertaxa returns the ordered ancestor chain of a taxon, from the
// taxon's parent up to its root. With includeSelf the chain starts at
// the taxon itself. An unknown ID yields nil.
func (t *Tree) Supertaxa(id int, includeSelf bool) []int {
	taxon, ok := t.taxa[id]
	if !ok {
		return nil
	}

	var res []int
	if includeSelf {
		res = append(res, id)
	}
	for taxon.ParentID != NoTaxon {
		res = append(res, taxon.ParentID)
		taxon = t.taxa[taxon.ParentID]
	}
	return res
}

// IsAncestor reports whether ancestor lies on the path from taxon to
// its root. A taxon is not its own ancestor.
func (t *Tree) IsAncestor(ancestor, id int) bool {
	taxon, ok := t.taxa[id]
	if !ok {
		return false
	}
	for taxon.ParentID != NoTaxon {
		if taxon.ParentID == ancestor {
			return true
		}
		taxon = t.taxa[taxon.ParentID]
	}
	return false
}

// Restore reconstructs a tree from a persisted taxon table. Taxa must
// be supplied in their original creation order; parents must precede
// their children.
func Restore(taxa []Taxon) (*Tree, error) {
	t := newTree()
	for i := range taxa {
		taxon := taxa[i]
		if taxon.ParentID != NoTaxon {
			if _, ok := t.taxa[taxon.ParentID]; !ok {
				return nil, restoreError(taxon.ID, taxon.ParentID)
			}
		}
		if _, ok := t.taxa[taxon.ID]; ok {
			return nil, &gn.Error{
				Code: errcode.StoreLoadError,
				Msg:  "Duplicate taxon ID <em>%d</em> in persisted tree",
				Vars: []any{taxon.ID},
				Err:  fmt.Errorf("duplicate taxon id %d", taxon.ID),
			}
		}
		t.add(&taxon)
	}
	return t, nil
}

func restoreError(id, parentID int) error {
	msg := `Broken edge in persisted tree

<em>Taxon ID:</em> %d
<em>Missing parent ID:</em> %d`

	return &gn.Error{
		Code: errcode.StoreLoadError,
		Msg:  msg,
		Vars: []any{id, parentID},
		Err: fmt.Errorf(
			"taxon %d references missing parent %d", id, parentID,
		),
	}
}
