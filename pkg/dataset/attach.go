package dataset

import (
	"strconv"

	"github.com/gnames/gntax/pkg/taxmap"
)

// Attach resolves every row of a dataset to a taxon of the tree using
// the ordered mapping rules. The first rule that resolves a row wins;
// rows no rule resolves are collected in the Unmatched report.
//
// Attach validates all rules before touching any row; rule errors are
// fatal, unmatched rows are not. The tree and records are read-only
// here.
func Attach(
	tree *taxmap.Tree,
	records []taxmap.Record,
	ds *Dataset,
	rules []Rule,
	policy Policy,
) (*Bound, *Unmatched, error) {
	if err := validateRules(ds, rules); err != nil {
		return nil, nil, err
	}
	for _, rule := range rules {
		if rule.Destination == SelIndex && ds.Len() != len(records) {
			return nil, nil, LengthMismatchError(
				ds.Name, ds.Len(), len(records),
			)
		}
	}

	res := &Bound{
		Dataset:  ds,
		TaxonIDs: make([]int, ds.Len()),
	}
	unmatched := &Unmatched{DatasetName: ds.Name}

	byName := recordsByName(records)
	joins := make(map[string]map[string][]int)

	for i := range ds.Rows {
		id, err := resolveRow(
			tree, records, ds, rules, policy, byName, joins, i,
		)
		if err != nil {
			return nil, nil, err
		}
		res.TaxonIDs[i] = id
		if id == taxmap.NoTaxon {
			unmatched.Rows = append(unmatched.Rows, i)
		}
	}

	return res, unmatched, nil
}

// resolveRow tries each rule in order until one yields a taxon.
func resolveRow(
	tree *taxmap.Tree,
	records []taxmap.Record,
	ds *Dataset,
	rules []Rule,
	policy Policy,
	byName map[string][]int,
	joins map[string]map[string][]int,
	row int,
) (int, error) {
	for _, rule := range rules {
		switch rule.Destination {
		case SelIndex:
			if id := records[row].TaxonID; id != taxmap.NoTaxon {
				return id, nil
			}
		case SelName:
			val := ds.Rows[row][ds.ColumnIndex(rule.Source)]
			id, err := pickMatch(
				ds.Name, row, byName[val], records, policy,
			)
			if err != nil {
				return 0, err
			}
			if id != taxmap.NoTaxon {
				return id, nil
			}
		case SelTaxonID:
			val := ds.Rows[row][ds.ColumnIndex(rule.Source)]
			id, err := strconv.Atoi(val)
			if err != nil {
				continue
			}
			if _, ok := tree.Taxon(id); ok {
				return id, nil
			}
		default:
			idx := columnJoin(records, rule.Destination, joins)
			val := ds.Rows[row][ds.ColumnIndex(rule.Source)]
			id, err := pickMatch(
				ds.Name, row, idx[val], records, policy,
			)
			if err != nil {
				return 0, err
			}
			if id != taxmap.NoTaxon {
				return id, nil
			}
		}
	}
	return taxmap.NoTaxon, nil
}

// pickMatch applies the ambiguity policy to candidate record indexes
// and returns the taxon of the chosen record.
func pickMatch(
	dsName string,
	row int,
	candidates []int,
	records []taxmap.Record,
	policy Policy,
) (int, error) {
	switch {
	case len(candidates) == 0:
		return taxmap.NoTaxon, nil
	case len(candidates) > 1 && policy == ErrorOnAmbiguous:
		return 0, AmbiguousMatchError(dsName, row, len(candidates))
	}
	return records[candidates[0]].TaxonID, nil
}

// recordsByName indexes primary records by their declared name.
// Records without a name or without a taxon stay out of the index.
func recordsByName(records []taxmap.Record) map[string][]int {
	res := make(map[string][]int)
	for i, rec := range records {
		if rec.Name == "" || rec.TaxonID == taxmap.NoTaxon {
			continue
		}
		res[rec.Name] = append(res[rec.Name], i)
	}
	return res
}

// columnJoin lazily indexes primary records by the values of one of
// their source columns. The index is built once per column and reused
// across rows.
func columnJoin(
	records []taxmap.Record,
	column string,
	joins map[string]map[string][]int,
) map[string][]int {
	if idx, ok := joins[column]; ok {
		return idx
	}
	idx := make(map[string][]int)
	for i, rec := range records {
		if rec.TaxonID == taxmap.NoTaxon {
			continue
		}
		val, ok := rec.Values[column]
		if !ok {
			continue
		}
		idx[val] = append(idx[val], i)
	}
	joins[column] = idx
	return idx
}

// Observations returns the row indexes of a bound dataset associated
// with the taxon or any of its subtaxa. Data attached at a descendant
// is visible at every ancestor.
func (b *Bound) Observations(tree *taxmap.Tree, taxonID int) []int {
	within := make(map[int]bool)
	for _, id := range tree.Subtaxa(taxonID, true) {
		within[id] = true
	}

	var res []int
	for i, id := range b.TaxonIDs {
		if id != taxmap.NoTaxon && within[id] {
			res = append(res, i)
		}
	}
	return res
}
