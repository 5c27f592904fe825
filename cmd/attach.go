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
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntax/internal/ioinput"
	"github.com/gnames/gntax/internal/iostore"
	"github.com/gnames/gntax/pkg/config"
	"github.com/gnames/gntax/pkg/dataset"
	"github.com/spf13/cobra"
)

// getAttachCmd returns the attach command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getAttachCmd() *cobra.Command {
	var (
		treeFile string
		strict   bool
		example  bool
	)

	attachCmd := &cobra.Command{
		Use:   "attach <datasets.yaml>",
		Short: "Attach auxiliary datasets to a taxonomic tree",
		Long: `Bind the rows of auxiliary CSV files to the taxa of an existing tree.

The datasets and their mapping rules come from a YAML file; run
'gntax attach --example' to print a documented template. For each
dataset the rules are tried in order, the first rule that resolves a
row wins, and rows no rule resolves are reported and stored as
unbound. Bound datasets are written into the tree's SQLite file, and
a dataset with the same name replaces its previous version.`,
		Example: `  # Print a documented datasets.yaml template
  gntax attach --example > datasets.yaml

  # Attach all datasets listed in the file to taxa.sqlite
  gntax attach datasets.yaml

  # Use a tree stored under a different path
  gntax attach datasets.yaml -t mussels.sqlite

  # Fail instead of picking the first record on ambiguous matches
  gntax attach datasets.yaml --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if example {
				fmt.Print(dataset.ExampleRulesFile())
				return nil
			}
			if len(args) != 1 {
				return cmd.Help()
			}
			err := runAttach(args[0], treeFile)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	attachCmd.Flags().StringVarP(
		&treeFile, "tree", "t", "taxa.sqlite",
		"SQLite file with the taxonomic tree",
	)
	attachCmd.Flags().BoolVar(
		&strict, "strict", false,
		"fail on ambiguous column matches instead of taking the first",
	)
	attachCmd.Flags().BoolVar(
		&example, "example", false,
		"print a documented datasets.yaml template and exit",
	)

	attachCmd.PreRun = func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("strict") && strict {
			cfg.Update([]config.Option{
				config.OptMatchOnAmbiguity("strict"),
			})
		}
	}

	return attachCmd
}

func runAttach(rulesPath, treeFile string) error {
	start := time.Now()
	ctx := context.Background()

	rules, err := dataset.LoadRulesFile(rulesPath)
	if err != nil {
		return err
	}

	store, err := iostore.Open(ctx, treeFile)
	if err != nil {
		return err
	}
	defer store.Close()

	tree, err := store.LoadTree(ctx)
	if err != nil {
		return err
	}
	records, err := store.LoadRecords(ctx)
	if err != nil {
		return err
	}

	policy := dataset.ParsePolicy(cfg.Match.OnAmbiguity)
	var bound, unbound int

	for _, dsRules := range rules.Datasets {
		ds, err := ioinput.ReadDataset(dsRules.File, dsRules.Name)
		if err != nil {
			return err
		}

		slog.Info("Attaching dataset",
			"dataset", ds.Name,
			"rows", ds.Len(),
			"rules", len(dsRules.Mappings),
			"policy", policy.String(),
		)

		res, unmatched, err := dataset.Attach(
			tree, records, ds, dsRules.Mappings, policy,
		)
		if err != nil {
			return err
		}

		if unmatched.Count() > 0 {
			slog.Warn("Rows without a matching taxon",
				"dataset", ds.Name,
				"rows", unmatched.Count(),
			)
			gn.Warn("<warn>%s: %d of %d rows did not match any taxon</warn>",
				ds.Name, unmatched.Count(), ds.Len(),
			)
		}

		if err = store.SaveDataset(ctx, res); err != nil {
			return err
		}
		bound += ds.Len() - unmatched.Count()
		unbound += unmatched.Count()
	}

	duration := time.Since(start)
	slog.Info("Datasets attached",
		"datasets", len(rules.Datasets),
		"boundRows", bound,
		"unboundRows", unbound,
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info(`Attached <em>%d</em> datasets, <em>%s</em> rows bound, <em>%s</em> not in %s
Taxonomy file: <em>%s</em>`,
		len(rules.Datasets),
		humanize.Comma(int64(bound)),
		humanize.Comma(int64(unbound)),
		gnfmt.TimeString(duration.Seconds()),
		treeFile,
	)

	return nil
}
