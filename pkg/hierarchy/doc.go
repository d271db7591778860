// Package hierarchy converts a flat member collection into a rooted tree.
//
// [Build] is the gate between untrusted member data and the layout engine.
// It runs on every rebuild and fails with an INVALID_STRUCTURE error
// wrapping a [*StructuralError] when the collection is not a tree:
//
//   - the collection is empty
//   - no member, or more than one member, has an empty parent reference
//   - a parent reference names a member that does not exist
//   - two members share an identity
//   - some members are unreachable from the root (they sit on a cycle)
//
// Callers render [Diagnostic] in place of the diagram; the error is never
// fatal.
package hierarchy
