package family

import (
	"slices"

	"github.com/matzehuels/vamsha/pkg/errors"
)

// Members is the flat member collection. Order is significant: children
// are laid out left to right in collection order.
type Members []Member

// Clone returns a copy that shares no backing array with ms.
func (ms Members) Clone() Members {
	if ms == nil {
		return nil
	}
	return slices.Clone(ms)
}

// Find returns the member with the given identity.
func (ms Members) Find(id string) (Member, bool) {
	if i := ms.index(id); i >= 0 {
		return ms[i], true
	}
	return Member{}, false
}

// Children returns the direct children of id in collection order.
func (ms Members) Children(id string) Members {
	var out Members
	for _, m := range ms {
		if m.ParentID == id && id != "" {
			out = append(out, m)
		}
	}
	return out
}

// Root returns the first member without a parent.
func (ms Members) Root() (Member, bool) {
	for _, m := range ms {
		if m.IsRoot() {
			return m, true
		}
	}
	return Member{}, false
}

// AddChild appends a placeholder child of parentID with identity id.
func (ms Members) AddChild(parentID, id string) (Members, error) {
	if _, ok := ms.Find(parentID); !ok {
		return ms, errors.New(errors.ErrCodeInvalidInput, "parent %q does not exist", parentID)
	}
	if _, ok := ms.Find(id); ok {
		return ms, errors.New(errors.ErrCodeInvalidInput, "member %q already exists", id)
	}
	child := Member{
		ID:       id,
		ParentID: parentID,
		Name:     PlaceholderName,
		Relation: PlaceholderRelation,
		Gender:   GenderMale,
	}
	return append(ms.Clone(), child), nil
}

// Update replaces the member that has the same identity as m.
func (ms Members) Update(m Member) (Members, error) {
	i := ms.index(m.ID)
	if i < 0 {
		return ms, errors.New(errors.ErrCodeNotFound, "member %q not found", m.ID)
	}
	out := ms.Clone()
	out[i] = m
	return out, nil
}

// DeleteSubtree removes id and every transitive descendant of id. No other
// member is touched. The root cannot be deleted.
func (ms Members) DeleteSubtree(id string) (Members, error) {
	target, ok := ms.Find(id)
	if !ok {
		return ms, errors.New(errors.ErrCodeNotFound, "member %q not found", id)
	}
	if target.IsRoot() {
		return ms, errors.New(errors.ErrCodeInvalidInput, "the root member cannot be deleted")
	}

	doomed := ms.Descendants(id)
	doomed[id] = true

	out := make(Members, 0, len(ms)-len(doomed))
	for _, m := range ms {
		if !doomed[m.ID] {
			out = append(out, m)
		}
	}
	return out, nil
}

// Descendants returns the identities of every transitive descendant of id.
// Cycles in malformed collections are tolerated.
func (ms Members) Descendants(id string) map[string]bool {
	byParent := make(map[string][]string, len(ms))
	for _, m := range ms {
		if !m.IsRoot() {
			byParent[m.ParentID] = append(byParent[m.ParentID], m.ID)
		}
	}

	seen := make(map[string]bool)
	queue := []string{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range byParent[cur] {
			if seen[child] || child == id {
				continue
			}
			seen[child] = true
			queue = append(queue, child)
		}
	}
	return seen
}

func (ms Members) index(id string) int {
	return slices.IndexFunc(ms, func(m Member) bool { return m.ID == id })
}
