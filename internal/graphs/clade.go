package graphs

import (
	"github.com/evolbioinfo/gotree/tree"
)

// ExtractSubtree deep-copies the subtree rooted at node into an independent
// tree. Names, branch lengths and supports are carried over verbatim; the
// input tree is left untouched.
func ExtractSubtree(node *tree.Node) *tree.Tree {
	out := tree.NewTree()
	root := out.NewNode()
	root.SetName(node.Name())
	out.SetRoot(root)
	for _, c := range GetChildren(node) {
		copySubtree(out, root, c, tree.NIL_LENGTH)
	}
	return out
}

// ExtractComplement deep-copies the "up" side of the edge above v: an
// independent tree rooted at v's parent containing everything reachable
// without crossing into v's own subtree. The walk toward the original root is
// inverted on the fly, which yields the same tree as deep-copying the whole
// tree, rerooting the copy at v and extracting the subtree under v's former
// parent -- without ever mutating anything.
func ExtractComplement(t *tree.Tree, v *tree.Node) *tree.Tree {
	out := tree.NewTree()
	p := Parent(v)
	root := out.NewNode()
	root.SetName(p.Name())
	out.SetRoot(root)
	buildComplement(out, root, t, p, v)
	return out
}

// Copies all of src's neighbors except fromChild under dst; src's own parent
// is attached as a child (inverted orientation) and the walk continues upward
// until the original root is consumed.
func buildComplement(out *tree.Tree, dst *tree.Node, t *tree.Tree, src, fromChild *tree.Node) {
	for _, c := range GetChildren(src) {
		if c != fromChild {
			copySubtree(out, dst, c, tree.NIL_LENGTH)
		}
	}
	if src == t.Root() {
		return
	}
	p := Parent(src)
	node := out.NewNode()
	node.SetName(p.Name())
	edge := out.ConnectNodes(dst, node)
	if pe, err := src.ParentEdge(); err == nil {
		edge.SetLength(pe.Length())
		edge.SetSupport(pe.Support())
	}
	buildComplement(out, node, t, p, src)
}

// Unroot returns a copy of t in the conventional unrooted rendering. Chains
// of single-child roots are collapsed onto the first branching node, and a
// root bifurcation is contracted by promoting the children of a non-leaf
// root child (right child first). A two-leaf cherry stays a cherry.
func Unroot(t *tree.Tree) *tree.Tree {
	// child counts, not Node.Tip: a unifurcating root has degree one and
	// would be mistaken for a leaf
	r := t.Root()
	children := GetChildren(r)
	for len(children) == 1 {
		r = children[0]
		children = GetChildren(r)
	}
	out := tree.NewTree()
	root := out.NewNode()
	root.SetName(r.Name())
	out.SetRoot(root)
	if len(children) == 0 {
		return out
	}
	var contract *tree.Node
	if len(children) == 2 {
		if len(GetChildren(children[1])) > 0 {
			contract = children[1]
		} else if len(GetChildren(children[0])) > 0 {
			contract = children[0]
		}
	}
	for _, c := range children {
		if c != contract {
			copySubtree(out, root, c, tree.NIL_LENGTH)
			continue
		}
		length := tree.NIL_LENGTH
		if pe, err := c.ParentEdge(); err == nil {
			length = pe.Length()
		}
		for _, gc := range GetChildren(c) {
			copySubtree(out, root, gc, length)
		}
	}
	return out
}

// recursive worker shared by the extraction entry points; extra is a branch
// length inherited from a contracted edge (NIL_LENGTH when there is none)
func copySubtree(out *tree.Tree, parent, cur *tree.Node, extra float64) {
	node := out.NewNode()
	node.SetName(cur.Name())
	edge := out.ConnectNodes(parent, node)
	if pe, err := cur.ParentEdge(); err == nil {
		edge.SetLength(combineLengths(pe.Length(), extra))
		edge.SetSupport(pe.Support())
	} else if extra != tree.NIL_LENGTH {
		edge.SetLength(extra)
	}
	for _, c := range GetChildren(cur) {
		copySubtree(out, node, c, tree.NIL_LENGTH)
	}
}

func combineLengths(a, b float64) float64 {
	switch {
	case a == tree.NIL_LENGTH:
		return b
	case b == tree.NIL_LENGTH:
		return a
	default:
		return a + b
	}
}
