package decomp

// Trivial reports whether a newick string describes a tree with fewer than
// two branching points. Such a clade has at most one internal split and no
// topological signal for downstream quartet or distance methods.
func Trivial(nwk string) bool {
	count := 0
	for _, c := range nwk {
		if c == '(' {
			if count++; count > 1 {
				return false
			}
		}
	}
	return true
}
