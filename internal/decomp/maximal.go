package decomp

import (
	"github.com/evolbioinfo/gotree/tree"

	gr "github.com/jsdoublel/maxclade/internal/graphs"
)

// Reports whether the duplication-free subtree below v is maximal, i.e.
// cannot be grown across its boundary edge without picking up a duplicate.
// The clades one cut-shift larger are the parent's down-clade and each
// sibling's up-clade; all of them must carry a duplicate.
func maximalDown(td *gr.TreeData, prof *profiles, v *tree.Node) bool {
	pid := td.ID(gr.Parent(v))
	if !prof.dupDown[pid] {
		return false
	}
	for _, sib := range td.Children[pid] {
		if sib != v && !prof.dupUp[td.ID(sib)] {
			return false
		}
	}
	return true
}

// Same decision for the far side of v's parent edge: the only clades one
// cut-shift larger are the up-clades of v's children.
func maximalUp(td *gr.TreeData, prof *profiles, v *tree.Node) bool {
	for _, child := range td.Children[td.ID(v)] {
		if !prof.dupUp[td.ID(child)] {
			return false
		}
	}
	return true
}
