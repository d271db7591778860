// Package layout assigns 2D coordinates to the nodes of a family tree.
//
// # Algorithm
//
// [Compute] implements a tidy-tree layout in the Reingold–Tilford family:
//
//  1. A post-order pass places each node's child subtrees left to right.
//     Every subtree is shifted right until its horizontal extent clears the
//     extent of the previous sibling subtree by one node slot.
//  2. A parent is centred over the span between its first and last child.
//  3. A pre-order pass accumulates the relative offsets into absolute
//     coordinates, with the root at X = 0.
//
// Depth maps to Y (one LevelHeight per generation). Sibling subtrees never
// overlap horizontally at any depth, and siblings keep their collection
// order.
//
// # Determinism
//
// The layout is a pure function of the tree and [Options]; identical
// input produces bit-identical coordinates. There is no incremental
// relayout: callers recompute on every change, which is cheap at family
// tree scale.
//
// # Coordinates
//
// Node positions are card centres in scene units. The default slot of
// 240×160 leaves room for a 220×110 card plus margin. Surface dimensions are
// carried through for the renderer's default viewport; they do not scale
// the layout.
package layout
