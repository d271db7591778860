// Package family defines the family-tree data model.
//
// A family tree is stored as a flat collection of [Member] records. Each
// member names its parent by identity; exactly one member (the root) has no
// parent. The collection itself is the source of truth: the hierarchy, the
// layout and the rendered scene are all derived from it on demand.
//
// # Operations
//
// [Members] methods never modify the receiver. Each mutation returns a new
// collection, which keeps a rendered view consistent with the collection it
// was derived from:
//
//	ms := family.Seed()
//	ms, err := ms.AddChild("root-1", family.NewID())
//	ms, err = ms.DeleteSubtree(childID) // also removes the child's descendants
//
// The root cannot be deleted. Validation of the single-root and
// resolvable-parent invariants is the job of the hierarchy package, which
// treats every collection as untrusted input.
//
// # Languages
//
// [Language] is the closed set of twelve target languages offered for name
// translation and narrative generation. It affects requests only, never the
// shape of stored data.
package family
