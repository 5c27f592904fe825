package ioinput_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gntax/internal/ioinput"
	"github.com/gnames/gntax/pkg/config"
	"github.com/gnames/gntax/pkg/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadRecordsLines(t *testing.T) {
	path := writeFile(t, "records.txt", "A;B;C\nA;B;D\n\nE\n")
	cfg := config.New()

	inputs, err := ioinput.ReadRecords(path, cfg)
	require.NoError(t, err)
	require.Len(t, inputs, 4)
	assert.Equal(t, "A;B;C", inputs[0].Raw)
	assert.Equal(t, "A;B;C", inputs[0].Name)
	// Empty lines stay: they become unassociated records.
	assert.Equal(t, "", inputs[2].Raw)
}

func TestReadRecordsTable(t *testing.T) {
	csv := `my_id,classification,site
A,"Animalia;Chordata",s1
B,"Plantae;Rosaceae",s2
`
	path := writeFile(t, "records.csv", csv)
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptBuildClassificationColumn("classification"),
		config.OptBuildNameColumn("my_id"),
	})

	inputs, err := ioinput.ReadRecords(path, cfg)
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "Animalia;Chordata", inputs[0].Raw)
	assert.Equal(t, "A", inputs[0].Name)
	assert.Equal(t, "s1", inputs[0].Values["site"])
}

func TestReadRecordsMissingColumn(t *testing.T) {
	path := writeFile(t, "records.csv", "a,b\n1,2\n")
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptBuildClassificationColumn("classification"),
	})

	_, err := ioinput.ReadRecords(path, cfg)
	assert.Error(t, err)
}

func TestReadRecordsMissingFile(t *testing.T) {
	_, err := ioinput.ReadRecords("/no/such/file", config.New())
	assert.Error(t, err)
}

func TestReadRecordsEmptyFile(t *testing.T) {
	path := writeFile(t, "records.txt", "")
	_, err := ioinput.ReadRecords(path, config.New())
	assert.Error(t, err)
}

func TestReadDataset(t *testing.T) {
	path := writeFile(t, "sites.csv", "id,site\nA,s1\nB,s2\n")

	ds, err := ioinput.ReadDataset(path, "")
	require.NoError(t, err)
	assert.Equal(t, "sites", ds.Name)
	assert.Equal(t, []string{"id", "site"}, ds.Columns)
	assert.Equal(t, 2, ds.Len())

	ds, err = ioinput.ReadDataset(path, "renamed")
	require.NoError(t, err)
	assert.Equal(t, "renamed", ds.Name)
}

func TestExtractPathsKeepsOrder(t *testing.T) {
	ex, err := extract.New(extract.Config{Separators: []string{";"}})
	require.NoError(t, err)

	inputs := []ioinput.Input{
		{Raw: "A;B"},
		{Raw: ""},
		{Raw: "C"},
	}

	paths, err := ioinput.ExtractPaths(
		context.Background(), inputs, ex, 4,
	)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	assert.Equal(t, []string{"A", "B"}, paths[0].Names())
	assert.Empty(t, paths[1])
	assert.Equal(t, []string{"C"}, paths[2].Names())
}

func TestBuildRecords(t *testing.T) {
	inputs := []ioinput.Input{
		{Raw: "A;B", Name: "r1"},
		{Raw: "", Name: "r2"},
	}
	records := ioinput.BuildRecords(inputs, []int{2, 0})

	require.Len(t, records, 2)
	assert.Equal(t, 0, records[0].Index)
	assert.Equal(t, "r1", records[0].Name)
	assert.Equal(t, 2, records[0].TaxonID)
	assert.Equal(t, 0, records[1].TaxonID)
}
