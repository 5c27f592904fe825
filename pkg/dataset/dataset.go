// Package dataset binds externally supplied tabular data to taxa of a
// built tree.
//
// A dataset arrives with no taxonomic information. Attachment resolves
// each row to the leaf taxon of one primary record through an ordered
// list of declarative mapping rules; rows that no rule resolves stay
// unassociated and are reported, not rejected. Attachment never
// mutates the tree, the primary records, or other datasets.
package dataset

import (
	"slices"
)

// Dataset is an ordered tabular collection. Columns keeps the column
// order of the source; every row has one value per column.
type Dataset struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// New creates a dataset and checks that every row matches the column
// count.
func New(name string, columns []string, rows [][]string) (*Dataset, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, RowWidthError(name, i, len(columns), len(row))
		}
	}
	return &Dataset{Name: name, Columns: columns, Rows: rows}, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// ColumnIndex returns the position of a column, -1 when absent.
func (d *Dataset) ColumnIndex(column string) int {
	return slices.Index(d.Columns, column)
}

// Column returns all values of one column in row order.
func (d *Dataset) Column(column string) ([]string, bool) {
	idx := d.ColumnIndex(column)
	if idx < 0 {
		return nil, false
	}
	res := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		res[i] = row[idx]
	}
	return res, true
}

// Bound is a dataset after attachment: every row carries the ID of
// its associated taxon, or taxmap.NoTaxon when unmatched.
type Bound struct {
	Dataset  *Dataset `json:"dataset"`
	TaxonIDs []int    `json:"taxonIds"`
}

// Unmatched lists rows of one dataset that no mapping rule resolved.
// An unmatched row is excluded from taxon association; it is not an
// error.
type Unmatched struct {
	DatasetName string `json:"datasetName"`
	Rows        []int  `json:"rows,omitempty"`
}

// Count returns the number of unmatched rows.
func (u *Unmatched) Count() int {
	return len(u.Rows)
}
