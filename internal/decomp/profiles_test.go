package decomp

import (
	"testing"

	"github.com/evolbioinfo/gotree/tree"

	gr "github.com/jsdoublel/maxclade/internal/graphs"
)

// checks down/up profiles against species multisets counted the slow way
func TestProfiles(t *testing.T) {
	testCases := []struct {
		name      string
		tre       string
		delimiter string
	}{
		{
			name:      "clean tree",
			tre:       "((a,b),(c,d));",
			delimiter: "",
		},
		{
			name:      "one duplicated species",
			tre:       "((a_1,(b_1,c_1)),((a_2,d_1),(e_1,f_1)));",
			delimiter: "_",
		},
		{
			name:      "three copies",
			tre:       "((a_1,b_1),(a_2,c_1),(a_3,d_1));",
			delimiter: "_",
		},
		{
			name:      "duplicates on both sides",
			tre:       "(((s_1,t_1),a_1),(a_2,(s_2,u_1)));",
			delimiter: "_",
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			td := gr.MakeTreeData(parseNewick(t, test.tre))
			prof := newProfiles(td.NNodes())
			resolver := NewSpeciesResolver(test.delimiter)
			if err := resolveSpecies(td, prof, resolver); err != nil {
				t.Fatalf("unexpected error %s", err)
			}
			downProfiles(td, prof, resolver.NumSpecies())
			upProfiles(td, prof, resolver.NumSpecies())
			total := make(map[uint]int)
			for _, tip := range td.Tips() {
				total[prof.species[td.ID(tip)]]++
			}
			for id, node := range td.IdToNodes {
				below := speciesBelow(td, prof, node)
				if expected := hasDup(below); prof.dupDown[id] != expected {
					t.Errorf("dupDown of node %d (%q) is %v, expected %v", id, node.Name(), prof.dupDown[id], expected)
				}
				if prof.down[id].Count() != uint(len(below)) {
					t.Errorf("down set of node %d has %d species, expected %d", id, prof.down[id].Count(), len(below))
				}
				for sp := range below {
					if !prof.down[id].Test(sp) {
						t.Errorf("down set of node %d is missing species %d", id, sp)
					}
				}
				if node == td.Root() {
					continue
				}
				above := make(map[uint]int)
				for sp, n := range total {
					if rest := n - below[sp]; rest > 0 {
						above[sp] = rest
					}
				}
				if expected := hasDup(above); prof.dupUp[id] != expected {
					t.Errorf("dupUp of node %d (%q) is %v, expected %v", id, node.Name(), prof.dupUp[id], expected)
				}
			}
		})
	}
}

// species multiset of the subtree below v
func speciesBelow(td *gr.TreeData, prof *profiles, v *tree.Node) map[uint]int {
	counts := make(map[uint]int)
	var walk func(n *tree.Node)
	walk = func(n *tree.Node) {
		if n.Tip() {
			counts[prof.species[td.ID(n)]]++
			return
		}
		for _, c := range td.Children[td.ID(n)] {
			walk(c)
		}
	}
	walk(v)
	return counts
}

func hasDup(counts map[uint]int) bool {
	for _, n := range counts {
		if n > 1 {
			return true
		}
	}
	return false
}
