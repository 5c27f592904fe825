// Package iostore persists built taxonomies in a single SQLite file:
// the taxon attribute table (which doubles as the edge list through
// parent_id), the per-record leaf bindings, and the row-to-taxon
// column of every attached dataset. The stored form is sufficient to
// reconstruct all query results.
package iostore

import (
	"context"
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntax/pkg/dataset"
	"github.com/gnames/gntax/pkg/taxmap"
)

// Store wraps one taxonomy database file.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) a taxonomy database with WAL mode enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}

	if _, err = db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}
	if _, err = db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, OpenError(path, err)
	}

	if err = initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS taxa (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	rank TEXT NOT NULL DEFAULT '',
	info TEXT NOT NULL DEFAULT '',
	parent_id INTEGER NOT NULL DEFAULT 0,
	path_uuid TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
	idx INTEGER PRIMARY KEY,
	name TEXT NOT NULL DEFAULT '',
	vals TEXT NOT NULL DEFAULT '',
	taxon_id INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS datasets (
	name TEXT PRIMARY KEY,
	columns TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS dataset_rows (
	dataset TEXT NOT NULL,
	idx INTEGER NOT NULL,
	vals TEXT NOT NULL,
	taxon_id INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (dataset, idx),
	FOREIGN KEY (dataset) REFERENCES datasets(name) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_taxa_parent ON taxa (parent_id);
CREATE INDEX IF NOT EXISTS idx_rows_taxon ON dataset_rows (taxon_id);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return SchemaError(err)
	}
	return nil
}

// SaveBuild stores a freshly built tree with its records. Any
// previous build in the file, including attached datasets, is
// replaced in one transaction.
func (s *Store) SaveBuild(
	ctx context.Context,
	tree *taxmap.Tree,
	records []taxmap.Record,
) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveError("build", err)
	}
	defer tx.Rollback()

	wipe := []string{
		"DELETE FROM dataset_rows",
		"DELETE FROM datasets",
		"DELETE FROM records",
		"DELETE FROM taxa",
	}
	for _, q := range wipe {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return SaveError("build", err)
		}
	}

	enc := gnfmt.GNjson{}

	taxonStmt, err := tx.PrepareContext(ctx, `
INSERT INTO taxa (id, name, rank, info, parent_id, path_uuid)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return SaveError("build", err)
	}
	defer taxonStmt.Close()

	for _, taxon := range tree.Taxa() {
		var info []byte
		if len(taxon.Info) > 0 {
			if info, err = enc.Encode(taxon.Info); err != nil {
				return SaveError("build", err)
			}
		}
		_, err = taxonStmt.ExecContext(
			ctx, taxon.ID, taxon.Name, taxon.Rank,
			string(info), taxon.ParentID, taxon.PathID,
		)
		if err != nil {
			return SaveError("build", err)
		}
	}

	recStmt, err := tx.PrepareContext(ctx, `
INSERT INTO records (idx, name, vals, taxon_id)
VALUES (?, ?, ?, ?)`)
	if err != nil {
		return SaveError("build", err)
	}
	defer recStmt.Close()

	for _, rec := range records {
		var vals []byte
		if len(rec.Values) > 0 {
			if vals, err = enc.Encode(rec.Values); err != nil {
				return SaveError("build", err)
			}
		}
		_, err = recStmt.ExecContext(
			ctx, rec.Index, rec.Name, string(vals), rec.TaxonID,
		)
		if err != nil {
			return SaveError("build", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return SaveError("build", err)
	}
	return nil
}

// SaveDataset stores one bound dataset. A dataset with the same name
// is replaced; the tree and records stay untouched.
func (s *Store) SaveDataset(
	ctx context.Context,
	bound *dataset.Bound,
) error {
	name := bound.Dataset.Name

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveError(name, err)
	}
	defer tx.Rollback()

	enc := gnfmt.GNjson{}
	columns, err := enc.Encode(bound.Dataset.Columns)
	if err != nil {
		return SaveError(name, err)
	}

	_, err = tx.ExecContext(
		ctx, "DELETE FROM datasets WHERE name = ?", name,
	)
	if err != nil {
		return SaveError(name, err)
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO datasets (name, columns) VALUES (?, ?)",
		name, string(columns),
	)
	if err != nil {
		return SaveError(name, err)
	}

	rowStmt, err := tx.PrepareContext(ctx, `
INSERT INTO dataset_rows (dataset, idx, vals, taxon_id)
VALUES (?, ?, ?, ?)`)
	if err != nil {
		return SaveError(name, err)
	}
	defer rowStmt.Close()

	for i, row := range bound.Dataset.Rows {
		vals, err := enc.Encode(row)
		if err != nil {
			return SaveError(name, err)
		}
		_, err = rowStmt.ExecContext(
			ctx, name, i, string(vals), bound.TaxonIDs[i],
		)
		if err != nil {
			return SaveError(name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return SaveError(name, err)
	}
	return nil
}
