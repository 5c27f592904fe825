package iostore

import (
	"context"
	"database/sql"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntax/pkg/dataset"
	"github.com/gnames/gntax/pkg/taxmap"
)

// LoadTree reconstructs the taxon tree from the taxa table. Creation
// order equals ID order, so parents always precede children.
func (s *Store) LoadTree(ctx context.Context) (*taxmap.Tree, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, rank, info, parent_id, path_uuid
FROM taxa ORDER BY id`)
	if err != nil {
		return nil, LoadError("taxa", err)
	}
	defer rows.Close()

	enc := gnfmt.GNjson{}
	var taxa []taxmap.Taxon
	for rows.Next() {
		var taxon taxmap.Taxon
		var info string
		err = rows.Scan(
			&taxon.ID, &taxon.Name, &taxon.Rank,
			&info, &taxon.ParentID, &taxon.PathID,
		)
		if err != nil {
			return nil, LoadError("taxa", err)
		}
		if info != "" {
			if err = enc.Decode([]byte(info), &taxon.Info); err != nil {
				return nil, LoadError("taxa", err)
			}
		}
		taxa = append(taxa, taxon)
	}
	if err = rows.Err(); err != nil {
		return nil, LoadError("taxa", err)
	}

	return taxmap.Restore(taxa)
}

// LoadRecords returns the persisted primary records in input order.
func (s *Store) LoadRecords(ctx context.Context) ([]taxmap.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT idx, name, vals, taxon_id FROM records ORDER BY idx`)
	if err != nil {
		return nil, LoadError("records", err)
	}
	defer rows.Close()

	enc := gnfmt.GNjson{}
	var res []taxmap.Record
	for rows.Next() {
		var rec taxmap.Record
		var vals string
		err = rows.Scan(&rec.Index, &rec.Name, &vals, &rec.TaxonID)
		if err != nil {
			return nil, LoadError("records", err)
		}
		if vals != "" {
			if err = enc.Decode([]byte(vals), &rec.Values); err != nil {
				return nil, LoadError("records", err)
			}
		}
		res = append(res, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, LoadError("records", err)
	}
	return res, nil
}

// Datasets lists the names of attached datasets.
func (s *Store) Datasets(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(
		ctx, "SELECT name FROM datasets ORDER BY name",
	)
	if err != nil {
		return nil, LoadError("datasets", err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, LoadError("datasets", err)
		}
		res = append(res, name)
	}
	if err = rows.Err(); err != nil {
		return nil, LoadError("datasets", err)
	}
	return res, nil
}

// LoadDataset reconstructs one bound dataset with its row-to-taxon
// bindings.
func (s *Store) LoadDataset(
	ctx context.Context,
	name string,
) (*dataset.Bound, error) {
	enc := gnfmt.GNjson{}

	var columnsJSON string
	err := s.db.QueryRowContext(
		ctx, "SELECT columns FROM datasets WHERE name = ?", name,
	).Scan(&columnsJSON)
	if err == sql.ErrNoRows {
		return nil, NotFoundError(name)
	}
	if err != nil {
		return nil, LoadError(name, err)
	}

	var columns []string
	if err = enc.Decode([]byte(columnsJSON), &columns); err != nil {
		return nil, LoadError(name, err)
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT vals, taxon_id FROM dataset_rows
WHERE dataset = ? ORDER BY idx`, name)
	if err != nil {
		return nil, LoadError(name, err)
	}
	defer rows.Close()

	var data [][]string
	var taxonIDs []int
	for rows.Next() {
		var vals string
		var taxonID int
		if err = rows.Scan(&vals, &taxonID); err != nil {
			return nil, LoadError(name, err)
		}
		var row []string
		if err = enc.Decode([]byte(vals), &row); err != nil {
			return nil, LoadError(name, err)
		}
		data = append(data, row)
		taxonIDs = append(taxonIDs, taxonID)
	}
	if err = rows.Err(); err != nil {
		return nil, LoadError(name, err)
	}

	ds, err := dataset.New(name, columns, data)
	if err != nil {
		return nil, err
	}
	return &dataset.Bound{Dataset: ds, TaxonIDs: taxonIDs}, nil
}
