// Package ioinput reads primary records and auxiliary datasets from
// the file system and runs the extraction pass over them.
package ioinput

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gntax/pkg/config"
	"github.com/gnames/gntax/pkg/dataset"
)

// Input is one raw primary record before extraction.
type Input struct {
	// Raw is the classification text handed to the extractor.
	Raw string

	// Name is the record's identity used by {{name}} mapping.
	Name string

	// Values holds the source row's columns when the input was
	// tabular.
	Values map[string]string
}

// ReadRecords loads primary records from a file. With a configured
// classification column the file is parsed as CSV with a header row;
// otherwise every line is one record.
func ReadRecords(path string, cfg *config.Config) ([]Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	var res []Input
	if cfg.Build.ClassificationColumn == "" {
		res, err = readLines(f, path)
	} else {
		res, err = readTable(f, path, cfg)
	}
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, EmptyError(path)
	}
	return res, nil
}

// readLines treats every line of the file as one raw record.
func readLines(r io.Reader, path string) ([]Input, error) {
	var res []Input
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		res = append(res, Input{Raw: line, Name: strings.TrimSpace(line)})
	}
	if err := sc.Err(); err != nil {
		return nil, ReadError(path, err)
	}
	return res, nil
}

// readTable parses the file as CSV. The classification column feeds
// the extractor; the optional name column provides record identity;
// all columns are kept for later column-equality mapping.
func readTable(
	r io.Reader,
	path string,
	cfg *config.Config,
) ([]Input, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, ReadError(path, err)
	}

	clsfIdx := columnIndex(header, cfg.Build.ClassificationColumn)
	if clsfIdx < 0 {
		return nil, MissingColumnError(
			path, cfg.Build.ClassificationColumn,
		)
	}
	nameIdx := -1
	if cfg.Build.NameColumn != "" {
		nameIdx = columnIndex(header, cfg.Build.NameColumn)
		if nameIdx < 0 {
			return nil, MissingColumnError(path, cfg.Build.NameColumn)
		}
	}

	var res []Input
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ReadError(path, err)
		}

		values := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				values[col] = row[i]
			}
		}

		rec := Input{Values: values}
		if clsfIdx < len(row) {
			rec.Raw = row[clsfIdx]
		}
		if nameIdx >= 0 && nameIdx < len(row) {
			rec.Name = row[nameIdx]
		} else if nameIdx < 0 {
			rec.Name = strings.TrimSpace(rec.Raw)
		}
		res = append(res, rec)
	}
	return res, nil
}

// ReadDataset loads one auxiliary dataset from a CSV file with a
// header row. An empty name defaults to the file name without
// extension.
func ReadDataset(path, name string) (*dataset.Dataset, error) {
	if name == "" {
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, ReadError(path, err)
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ReadError(path, err)
		}
		rows = append(rows, row)
	}

	return dataset.New(name, header, rows)
}

func columnIndex(header []string, column string) int {
	for i, col := range header {
		if strings.TrimSpace(col) == column {
			return i
		}
	}
	return -1
}
