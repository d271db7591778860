package hierarchy

import (
	"github.com/matzehuels/vamsha/pkg/family"
)

// Build validates members and links them into a rooted tree. Children keep
// the relative order they have in members.
func Build(members family.Members) (*Tree, error) {
	if len(members) == 0 {
		return nil, structural(ReasonEmpty)
	}

	nodes := make(map[string]*Node, len(members))
	var dups []string
	for _, m := range members {
		if _, ok := nodes[m.ID]; ok {
			dups = append(dups, m.ID)
			continue
		}
		nodes[m.ID] = &Node{Member: m}
	}
	if len(dups) > 0 {
		return nil, structural(ReasonDuplicateID, dups...)
	}

	var roots, dangling []string
	for _, m := range members {
		if m.IsRoot() {
			roots = append(roots, m.ID)
			continue
		}
		if _, ok := nodes[m.ParentID]; !ok {
			dangling = append(dangling, m.ID)
		}
	}
	switch {
	case len(roots) == 0:
		return nil, structural(ReasonNoRoot)
	case len(roots) > 1:
		return nil, structural(ReasonMultipleRoots, roots...)
	case len(dangling) > 0:
		return nil, structural(ReasonDanglingParent, dangling...)
	}

	for _, m := range members {
		if m.IsRoot() {
			continue
		}
		child, parent := nodes[m.ID], nodes[m.ParentID]
		child.Parent = parent
		parent.Children = append(parent.Children, child)
	}

	t := &Tree{Root: nodes[roots[0]], nodes: nodes}
	t.order = make([]*Node, 0, len(members))
	stack := []*Node{t.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Parent != nil {
			n.Depth = n.Parent.Depth + 1
		}
		t.order = append(t.order, n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}

	if len(t.order) != len(members) {
		reached := make(map[string]bool, len(t.order))
		for _, n := range t.order {
			reached[n.ID()] = true
		}
		var cyclic []string
		for _, m := range members {
			if !reached[m.ID] {
				cyclic = append(cyclic, m.ID)
			}
		}
		return nil, structural(ReasonCycle, cyclic...)
	}

	return t, nil
}
