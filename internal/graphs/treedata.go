// Package containing tree-side data structures and tree surgery used by the
// decomposition, built on top of gotree
package graphs

import (
	"fmt"

	"github.com/evolbioinfo/gotree/tree"
)

// Expanded tree struct holding the side tables the decomposition needs.
// gotree only stores neighbors, so children lists are precomputed, and every
// node gets a dense arena index (gotree node ids are only trustworthy right
// after parsing, not after surgery).
type TreeData struct {
	tree.Tree
	Children  [][]*tree.Node // children for each node index (nil for tips)
	IdToNodes []*tree.Node   // mapping between index and node pointer
	NLeaves   int            // number of leaves
	index     map[*tree.Node]int
}

// Walks the tree and builds the side tables. The tree is not modified.
func MakeTreeData(tre *tree.Tree) *TreeData {
	index := make(map[*tree.Node]int)
	idToNodes := make([]*tree.Node, 0)
	nLeaves := 0
	tre.PostOrder(func(cur, prev *tree.Node, e *tree.Edge) (keep bool) {
		index[cur] = len(idToNodes)
		idToNodes = append(idToNodes, cur)
		if cur.Tip() {
			nLeaves++
		}
		return true
	})
	children := make([][]*tree.Node, len(idToNodes))
	for i, node := range idToNodes {
		if !node.Tip() {
			children[i] = GetChildren(node)
		}
	}
	return &TreeData{
		Tree:      *tre,
		Children:  children,
		IdToNodes: idToNodes,
		NLeaves:   nLeaves,
		index:     index,
	}
}

// ID returns the arena index of a node belonging to this tree.
func (td *TreeData) ID(node *tree.Node) int {
	id, ok := td.index[node]
	if !ok {
		panic(fmt.Sprintf("node %q is not part of the tree", node.Name()))
	}
	return id
}

// NNodes returns the total number of nodes in the tree.
func (td *TreeData) NNodes() int {
	return len(td.IdToNodes)
}

// NumLeaves counts the leaves of a rooted tree. A unifurcating root has
// degree one and must not be counted as one of them; a tree collapsed to a
// single node is one leaf.
func NumLeaves(t *tree.Tree) int {
	n := 0
	for _, tip := range t.Tips() {
		if tip != t.Root() {
			n++
		}
	}
	if n == 0 && t.Root() != nil && len(t.Root().Neigh()) == 0 {
		return 1
	}
	return n
}

// Get children of node
func GetChildren(node *tree.Node) []*tree.Node {
	children := make([]*tree.Node, 0)
	p, err := node.Parent()
	if err != nil && err.Error() == "The node has more than one parent" {
		panic(err)
	}
	for _, u := range node.Neigh() {
		if u != p {
			children = append(children, u)
		}
	}
	return children
}

// Parent of node; panics on the root (callers check for the root first)
func Parent(node *tree.Node) *tree.Node {
	p, err := node.Parent()
	if err != nil {
		panic(fmt.Sprintf("error getting parent of %q: %s", node.Name(), err))
	}
	return p
}
