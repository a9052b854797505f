package decomp

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/evolbioinfo/gotree/tree"

	gr "github.com/jsdoublel/maxclade/internal/graphs"
)

// Per-node annotations for one decomposition run, indexed by the TreeData
// arena. They only live until classification is done.
type profiles struct {
	down    []*bitset.BitSet // species below each node
	up      []*bitset.BitSet // species on the far side of each node's parent edge
	dupDown []bool           // subtree below contains a duplicate species
	dupUp   []bool           // far side contains a duplicate species
	species []uint           // resolved species id (tips only)
}

func newProfiles(n int) *profiles {
	return &profiles{
		down:    make([]*bitset.BitSet, n),
		up:      make([]*bitset.BitSet, n),
		dupDown: make([]bool, n),
		dupUp:   make([]bool, n),
		species: make([]uint, n),
	}
}

// Assigns a species id to every tip. Fails on the first label the resolver
// cannot split.
func resolveSpecies(td *gr.TreeData, prof *profiles, resolver *SpeciesResolver) error {
	for _, tip := range td.Tips() {
		id, err := resolver.Resolve(tip.Name())
		if err != nil {
			return err
		}
		prof.species[td.ID(tip)] = id
	}
	return nil
}

// Bottom-up pass: populates down/dupDown for every node and returns the
// duplication-free internal nodes in post-order (the down-clade candidates).
// Tips are not candidates; a one-leaf clade never carries signal.
//
// A collision inside the union is detected by comparing cardinalities before
// and after; a duplicate buried inside a single child does not shrink this
// node's union, hence the child flag check next to it.
func downProfiles(td *gr.TreeData, prof *profiles, nSpecies int) []*tree.Node {
	candidates := make([]*tree.Node, 0)
	td.PostOrder(func(cur, prev *tree.Node, e *tree.Edge) (keep bool) {
		id := td.ID(cur)
		if cur.Tip() {
			prof.down[id] = bitset.New(uint(nSpecies)).Set(prof.species[id])
			return true
		}
		acc := bitset.New(uint(nSpecies))
		for _, child := range td.Children[id] {
			cid := td.ID(child)
			expected := acc.Count() + prof.down[cid].Count()
			acc.InPlaceUnion(prof.down[cid])
			if prof.dupDown[cid] || acc.Count() < expected {
				prof.dupDown[id] = true
			}
		}
		prof.down[id] = acc
		if !prof.dupDown[id] {
			candidates = append(candidates, cur)
		}
		return true
	})
	return candidates
}
