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
	"strconv"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gntax/internal/iostore"
	"github.com/gnames/gntax/pkg/errcode"
	"github.com/gnames/gntax/pkg/taxmap"
	"github.com/spf13/cobra"
)

// getQueryCmd returns the query command with its subcommands.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getQueryCmd() *cobra.Command {
	var treeFile string
	var withSelf bool

	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Query a stored taxonomic tree",
		Long: `Read-only queries over a tree built with 'gntax build'.

Results are printed as JSON. Taxon IDs are the integer IDs assigned
during the build; 'roots' and 'leaves' list the corresponding taxa,
'subtaxa' and 'supertaxa' traverse from a given taxon, and
'observations' lists the dataset rows bound to a taxon's subtree.`,
		Example: `  gntax query roots
  gntax query leaves -t mussels.sqlite
  gntax query subtaxa 2 --self
  gntax query supertaxa 7
  gntax query datasets
  gntax query observations shells 2`,
	}

	queryCmd.PersistentFlags().StringVarP(
		&treeFile, "tree", "t", "taxa.sqlite",
		"SQLite file with the taxonomic tree",
	)

	rootsCmd := &cobra.Command{
		Use:   "roots",
		Short: "List the root taxa of the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTreeQuery(treeFile,
				func(t *taxmap.Tree) ([]int, error) {
					return t.Roots(), nil
				})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	leavesCmd := &cobra.Command{
		Use:   "leaves",
		Short: "List the leaf taxa of the tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTreeQuery(treeFile,
				func(t *taxmap.Tree) ([]int, error) {
					return t.Leaves(), nil
				})
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	subtaxaCmd := &cobra.Command{
		Use:   "subtaxa <taxon-id>",
		Short: "List a taxon's subtree in depth-first order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTraversal(treeFile, args[0], withSelf,
				(*taxmap.Tree).Subtaxa)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	supertaxaCmd := &cobra.Command{
		Use:   "supertaxa <taxon-id>",
		Short: "List a taxon's ancestors from itself to its root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTraversal(treeFile, args[0], withSelf,
				(*taxmap.Tree).Supertaxa)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	for _, c := range []*cobra.Command{subtaxaCmd, supertaxaCmd} {
		c.Flags().BoolVar(
			&withSelf, "self", false,
			"include the taxon itself in the result",
		)
	}

	datasetsCmd := &cobra.Command{
		Use:   "datasets",
		Short: "List the attached datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runDatasets(treeFile)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	observationsCmd := &cobra.Command{
		Use:   "observations <dataset> <taxon-id>",
		Short: "List dataset rows bound to a taxon's subtree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runObservations(treeFile, args[0], args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	queryCmd.AddCommand(rootsCmd)
	queryCmd.AddCommand(leavesCmd)
	queryCmd.AddCommand(subtaxaCmd)
	queryCmd.AddCommand(supertaxaCmd)
	queryCmd.AddCommand(datasetsCmd)
	queryCmd.AddCommand(observationsCmd)

	return queryCmd
}

func runTreeQuery(
	treeFile string,
	ids func(*taxmap.Tree) ([]int, error),
) error {
	ctx := context.Background()
	store, err := iostore.Open(ctx, treeFile)
	if err != nil {
		return err
	}
	defer store.Close()

	tree, err := store.LoadTree(ctx)
	if err != nil {
		return err
	}
	res, err := ids(tree)
	if err != nil {
		return err
	}
	return printTaxa(tree, res)
}

func runTraversal(
	treeFile, idArg string,
	withSelf bool,
	traverse func(*taxmap.Tree, int, bool) []int,
) error {
	id, err := parseTaxonID(idArg)
	if err != nil {
		return err
	}
	return runTreeQuery(treeFile, func(t *taxmap.Tree) ([]int, error) {
		if _, ok := t.Taxon(id); !ok {
			return nil, unknownTaxonError(id)
		}
		return traverse(t, id, withSelf), nil
	})
}

func runDatasets(treeFile string) error {
	ctx := context.Background()
	store, err := iostore.Open(ctx, treeFile)
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.Datasets(ctx)
	if err != nil {
		return err
	}
	return printJSON(names)
}

func runObservations(treeFile, dsName, idArg string) error {
	id, err := parseTaxonID(idArg)
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := iostore.Open(ctx, treeFile)
	if err != nil {
		return err
	}
	defer store.Close()

	tree, err := store.LoadTree(ctx)
	if err != nil {
		return err
	}
	if _, ok := tree.Taxon(id); !ok {
		return unknownTaxonError(id)
	}

	bound, err := store.LoadDataset(ctx, dsName)
	if err != nil {
		return err
	}

	type observation struct {
		Row     int      `json:"row"`
		TaxonID int      `json:"taxonId"`
		Values  []string `json:"values"`
	}
	var res []observation
	for _, row := range bound.Observations(tree, id) {
		res = append(res, observation{
			Row:     row,
			TaxonID: bound.TaxonIDs[row],
			Values:  bound.Dataset.Rows[row],
		})
	}
	return printJSON(res)
}

func printTaxa(tree *taxmap.Tree, ids []int) error {
	res := make([]taxmap.Taxon, 0, len(ids))
	for _, id := range ids {
		taxon, ok := tree.Taxon(id)
		if !ok {
			continue
		}
		res = append(res, taxon)
	}
	return printJSON(res)
}

func printJSON(v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(v)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func parseTaxonID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id < 1 {
		return 0, &gn.Error{
			Code: errcode.StoreNotFoundError,
			Msg:  "Invalid taxon ID <em>%s</em>, expected a positive integer",
			Vars: []any{s},
			Err:  fmt.Errorf("invalid taxon ID %q", s),
		}
	}
	return id, nil
}

func unknownTaxonError(id int) error {
	return &gn.Error{
		Code: errcode.StoreNotFoundError,
		Msg:  "No taxon with ID <em>%d</em> in the tree",
		Vars: []any{id},
		Err:  fmt.Errorf("no taxon %d", id),
	}
}
