package ioinput

import (
	"context"

	"github.com/gnames/gntax/pkg/extract"
	"github.com/gnames/gntax/pkg/taxmap"
	"golang.org/x/sync/errgroup"
)

// progressThreshold is the input size above which a progress bar is
// shown during extraction.
const progressThreshold = 10_000

// ExtractPaths runs the extractor over all inputs. Extraction is pure
// per record, so it fans out across jobsNum workers; results are
// written by input index, which keeps the path order identical to the
// input order before the tree build starts.
func ExtractPaths(
	ctx context.Context,
	inputs []Input,
	ex *extract.Extractor,
	jobsNum int,
) ([]extract.Path, error) {
	res := make([]extract.Path, len(inputs))
	if len(inputs) == 0 {
		return res, nil
	}
	if jobsNum < 1 {
		jobsNum = 1
	}

	var bar progressBar
	if len(inputs) >= progressThreshold {
		bar = newProgressBar(len(inputs), "extract ")
		defer bar.Finish()
	}

	chIn := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	for range jobsNum {
		g.Go(func() error {
			for i := range chIn {
				res[i] = ex.Path(inputs[i].Raw)
				if bar != nil {
					bar.Increment()
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(chIn)
		for i := range inputs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- i:
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// BuildRecords pairs inputs with the leaf taxa of their paths.
func BuildRecords(inputs []Input, leaves []int) []taxmap.Record {
	res := make([]taxmap.Record, len(inputs))
	for i, in := range inputs {
		res[i] = taxmap.Record{
			Index:   i,
			Name:    in.Name,
			Values:  in.Values,
			TaxonID: leaves[i],
		}
	}
	return res
}
