/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntax/internal/ioinput"
	"github.com/gnames/gntax/internal/iostore"
	"github.com/gnames/gntax/pkg/config"
	"github.com/gnames/gntax/pkg/extract"
	"github.com/gnames/gntax/pkg/parserpool"
	"github.com/gnames/gntax/pkg/taxmap"
	"github.com/spf13/cobra"
)

// getBuildCmd returns the build command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getBuildCmd() *cobra.Command {
	var (
		separators []string
		sepRegexp  bool
		pattern    string
		roles      []string
		clsfCol    string
		nameCol    string
		canonical  bool
		output     string
	)

	buildCmd := &cobra.Command{
		Use:   "build <records-file>",
		Short: "Build a taxonomic tree from classification text",
		Long: `Convert raw classification records into a canonical tree of taxa.

The input is either a plain-text file with one record per line, or a
CSV file when --classification-column names the column that carries
the classification string.

Records are split into rank-segments by the --separator flags. An
optional --regexp with capture groups extracts name, rank and info
fields from each segment; --roles assigns one role per capture group
(name, rank, info:<field>, discard). Without separators, every match
of --regexp against the whole record becomes one segment.

The result is written to a SQLite taxonomy file that later commands
query and attach datasets to.

Examples:
  # Semicolon-separated paths, one record per line
  gntax build records.txt -s ";" -o taxa.sqlite

  # Name and rank glued with a double underscore
  gntax build records.txt -s ";" -p '(\w+)__(\w+)' -r name,rank

  # Tabular input with canonicalized scientific names
  gntax build records.csv -c classification -n my_id --canonical`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBuild(args[0], output, sepRegexp)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	buildCmd.Flags().StringSliceVarP(
		&separators, "separator", "s", []string{";"},
		"rank separators, alternatives when repeated",
	)
	buildCmd.Flags().BoolVar(
		&sepRegexp, "separator-regexp", false,
		"treat separators as regular expressions",
	)
	buildCmd.Flags().StringVarP(
		&pattern, "regexp", "p", "",
		"extraction pattern with capture groups",
	)
	buildCmd.Flags().StringSliceVarP(
		&roles, "roles", "r", []string{},
		"role per capture group: name, rank, info:<field>, discard",
	)
	buildCmd.Flags().StringVarP(
		&clsfCol, "classification-column", "c", "",
		"CSV column with classification text (empty = plain lines)",
	)
	buildCmd.Flags().StringVarP(
		&nameCol, "name-column", "n", "",
		"CSV column with record names for {{name}} mapping",
	)
	buildCmd.Flags().BoolVar(
		&canonical, "canonical", false,
		"normalize taxon names with gnparser",
	)
	buildCmd.Flags().StringVarP(
		&output, "output", "o", "taxa.sqlite",
		"taxonomy file to create",
	)

	// Flag values flow into cfg.Build via options in runBuild.
	buildCmd.PreRun = func(cmd *cobra.Command, args []string) {
		var buildOpts []config.Option
		if cmd.Flags().Changed("separator") {
			buildOpts = append(buildOpts, config.OptBuildSeparators(separators))
		}
		if cmd.Flags().Changed("regexp") {
			buildOpts = append(buildOpts, config.OptBuildRegexp(pattern))
		}
		if cmd.Flags().Changed("roles") {
			buildOpts = append(buildOpts, config.OptBuildRoles(roles))
		}
		if cmd.Flags().Changed("classification-column") {
			buildOpts = append(
				buildOpts, config.OptBuildClassificationColumn(clsfCol),
			)
		}
		if cmd.Flags().Changed("name-column") {
			buildOpts = append(buildOpts, config.OptBuildNameColumn(nameCol))
		}
		if cmd.Flags().Changed("canonical") {
			buildOpts = append(
				buildOpts, config.OptParseWithCanonical(canonical),
			)
		}
		cfg.Update(buildOpts)
		// Default separator applies unless the user set another one.
		if len(cfg.Build.Separators) == 0 {
			cfg.Update([]config.Option{config.OptBuildSeparators(separators)})
		}
	}

	return buildCmd
}

func runBuild(input, output string, sepRegexp bool) error {
	ctx := context.Background()
	start := time.Now()

	exCfg := extract.Config{
		Separators:      cfg.Build.Separators,
		SeparatorRegexp: sepRegexp,
		Regexp:          cfg.Build.Regexp,
	}

	if len(cfg.Build.Roles) > 0 {
		roles, err := extract.ParseRoles(cfg.Build.Roles)
		if err != nil {
			return err
		}
		exCfg.Roles = roles
	}

	if cfg.Parse.WithCanonical {
		pool := parserpool.New(
			parserpool.Code(cfg.Parse.NomenclaturalCode),
			cfg.JobsNumber,
		)
		defer pool.Close()
		exCfg.NameNormalizer = pool.Normalizer()
	}

	ex, err := extract.New(exCfg)
	if err != nil {
		return err
	}

	inputs, err := ioinput.ReadRecords(input, cfg)
	if err != nil {
		return err
	}
	gn.Info("Read <em>%s</em> records from <em>%s</em>",
		humanize.Comma(int64(len(inputs))), input)

	paths, err := ioinput.ExtractPaths(ctx, inputs, ex, cfg.JobsNumber)
	if err != nil {
		return err
	}

	tree, leaves, warns := taxmap.Build(paths)
	records := ioinput.BuildRecords(inputs, leaves)
	reportWarnings(warns)

	var unassociated int
	for _, id := range leaves {
		if id == taxmap.NoTaxon {
			unassociated++
		}
	}
	if unassociated > 0 {
		gn.Warn("<warn>%s records produced no classification path</warn>",
			humanize.Comma(int64(unassociated)))
	}

	store, err := iostore.Open(ctx, output)
	if err != nil {
		return err
	}
	defer store.Close()

	if err = store.SaveBuild(ctx, tree, records); err != nil {
		return err
	}

	duration := time.Since(start)
	slog.Info("Build finished",
		"taxa", tree.Len(),
		"records", len(records),
		"warnings", len(warns),
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info(`Built <em>%s</em> taxa from <em>%s</em> records in %s
Taxonomy file: <em>%s</em>`,
		humanize.Comma(int64(tree.Len())),
		humanize.Comma(int64(len(records))),
		gnfmt.TimeString(duration.Seconds()),
		output,
	)

	return nil
}

// reportWarnings surfaces first-write-wins conflicts without failing
// the build.
func reportWarnings(warns []taxmap.Warning) {
	if len(warns) == 0 {
		return
	}
	gn.Warn("<warn>%d rank/info conflicts, first value kept</warn>",
		len(warns))
	for _, w := range warns {
		slog.Warn("Conflicting taxon data ignored",
			"taxon_id", w.TaxonID,
			"field", w.Field,
			"kept", w.Kept,
			"ignored", w.Ignored,
		)
	}
}
