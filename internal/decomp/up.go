package decomp

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/evolbioinfo/gotree/tree"

	gr "github.com/jsdoublel/maxclade/internal/graphs"
)

// Top-down pass: populates up/dupUp for every non-root node and returns the
// nodes whose far side is duplication-free (the up-clade candidates). Must
// run after downProfiles.
//
// Children of the root are special: there is nothing above the root, so
// their far side is just the union of their siblings' down sets. Every
// deeper node starts from its parent's up profile and unions in the down
// sets of its siblings, with the same cardinality collision test.
func upProfiles(td *gr.TreeData, prof *profiles, nSpecies int) []*tree.Node {
	candidates := make([]*tree.Node, 0)
	root := td.Root()
	rootID := td.ID(root)
	for _, node := range td.Children[rootID] {
		id := td.ID(node)
		acc := bitset.New(uint(nSpecies))
		for _, sib := range td.Children[rootID] {
			if sib == node {
				continue
			}
			sid := td.ID(sib)
			expected := acc.Count() + prof.down[sid].Count()
			acc.InPlaceUnion(prof.down[sid])
			if prof.dupDown[sid] || acc.Count() < expected {
				prof.dupUp[id] = true
			}
		}
		prof.up[id] = acc
		if !prof.dupUp[id] {
			candidates = append(candidates, node)
		}
	}
	td.PreOrder(func(cur, prev *tree.Node, e *tree.Edge) (keep bool) {
		if cur == root || prev == root {
			return true // root has no up profile, its children are done above
		}
		id, pid := td.ID(cur), td.ID(prev)
		acc := prof.up[pid].Clone()
		dup := prof.dupUp[pid]
		for _, sib := range td.Children[pid] {
			if sib == cur {
				continue
			}
			sid := td.ID(sib)
			expected := acc.Count() + prof.down[sid].Count()
			acc.InPlaceUnion(prof.down[sid])
			if prof.dupDown[sid] || acc.Count() < expected {
				dup = true
			}
		}
		prof.up[id], prof.dupUp[id] = acc, dup
		if !dup {
			candidates = append(candidates, cur)
		}
		return true
	})
	return candidates
}
