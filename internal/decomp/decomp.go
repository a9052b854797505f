// Package implementing the decomposition of multi-labeled gene family trees
// into their maximal duplication-free clades
package decomp

import (
	"context"
	"errors"
	"fmt"

	"github.com/evolbioinfo/gotree/tree"
	"golang.org/x/sync/errgroup"

	gr "github.com/jsdoublel/maxclade/internal/graphs"
)

var (
	ErrDegenerate = errors.New("degenerate tree")
	ErrBadLabel   = errors.New("invalid leaf label")
)

// Outcome of decomposing a single input tree. Err is a terminal failure for
// that record only; nothing is ever emitted for a failed record.
type Result struct {
	Clades []*tree.Tree // maximal duplication-free clades, in deterministic order
	Err    error
}

// Decompose breaks one gene family tree into its maximal duplication-free
// clades, each materialized as an independent tree (the input is never
// mutated). The tree is first brought into unrooted form, matching how
// downstream methods consume the output. If the whole tree is free of
// duplicate species it is returned as the single clade. Clades come out in
// deterministic order: down candidates in post-order, then up candidates
// (children of the root first, then pre-order).
func Decompose(tre *tree.Tree, delimiter string) ([]*tree.Tree, error) {
	if gr.NumLeaves(tre) < 2 {
		return nil, fmt.Errorf("%w, fewer than two leaves", ErrDegenerate)
	}
	td := gr.MakeTreeData(normalize(tre))
	prof := newProfiles(td.NNodes())
	resolver := NewSpeciesResolver(delimiter)
	if err := resolveSpecies(td, prof, resolver); err != nil {
		return nil, err
	}
	nSpecies := resolver.NumSpecies()
	downCands := downProfiles(td, prof, nSpecies)
	upCands := upProfiles(td, prof, nSpecies)
	clades := make([]*tree.Tree, 0)
	if !prof.dupDown[td.ID(td.Root())] {
		// no duplication below the root means none anywhere
		clades = append(clades, gr.ExtractSubtree(td.Root()))
	} else {
		for _, v := range downCands {
			if maximalDown(td, prof, v) {
				clades = append(clades, gr.ExtractSubtree(v))
			}
		}
		for _, v := range upCands {
			if maximalUp(td, prof, v) {
				clades = append(clades, gr.ExtractComplement(&td.Tree, v))
			}
		}
	}
	for i, clade := range clades {
		clades[i] = normalize(clade)
	}
	return clades, nil
}

// DecomposeAll runs Decompose over every input tree, nprocs trees at a time,
// preserving input order in the result slice. A degenerate record fails only
// itself; a label that cannot be resolved is a configuration mismatch and
// cancels the whole run.
func DecomposeAll(trees []*tree.Tree, delimiter string, nprocs int) ([]Result, error) {
	results := make([]Result, len(trees))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(nprocs)
	for i, tre := range trees {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			clades, err := Decompose(tre, delimiter)
			if errors.Is(err, ErrBadLabel) {
				return fmt.Errorf("tree %d: %w", i+1, err)
			}
			results[i] = Result{Clades: clades, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// unroot, then suppress unifurcations; applied to every input tree before
// profiling and to every clade before emission
func normalize(t *tree.Tree) *tree.Tree {
	out := gr.Unroot(t)
	out.RemoveSingleNodes()
	return out
}
