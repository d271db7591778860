package hierarchy

import (
	"github.com/matzehuels/vamsha/pkg/family"
)

// Node is one member in the rooted tree.
type Node struct {
	Member   family.Member
	Parent   *Node
	Children []*Node // collection order
	Depth    int
}

// ID returns the member identity.
func (n *Node) ID() string { return n.Member.ID }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is a validated rooted tree with one node per member.
type Tree struct {
	Root  *Node
	nodes map[string]*Node
	order []*Node // pre-order
}

// Len returns the number of nodes.
func (t *Tree) Len() int { return len(t.order) }

// Node returns the node for a member identity.
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Nodes returns all nodes in pre-order (parents before children, siblings
// in collection order).
func (t *Tree) Nodes() []*Node {
	out := make([]*Node, len(t.order))
	copy(out, t.order)
	return out
}

// Walk calls fn for each node in pre-order.
func (t *Tree) Walk(fn func(*Node)) {
	for _, n := range t.order {
		fn(n)
	}
}

// Link is a parent-child pair.
type Link struct {
	Parent, Child *Node
}

// Links returns every parent-child pair, ordered by child in pre-order.
func (t *Tree) Links() []Link {
	links := make([]Link, 0, len(t.order))
	for _, n := range t.order {
		if n.Parent != nil {
			links = append(links, Link{Parent: n.Parent, Child: n})
		}
	}
	return links
}

// Depth returns the number of levels below the root.
func (t *Tree) Depth() int {
	d := 0
	for _, n := range t.order {
		d = max(d, n.Depth)
	}
	return d
}
