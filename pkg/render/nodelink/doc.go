// Package nodelink renders family trees as Graphviz node-link diagrams.
//
// # Overview
//
// This is an alternative to the card diagram drawn by the scene sinks:
// Graphviz lays the tree out on its own, with one box per member and plain
// lines from parents to children. It is useful for very wide trees and for
// feeding the tree into other Graphviz tooling.
//
// # Usage
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
//   - Detailed: add relation and life dates to each label
//   - Selected: outline one member in the selection colour
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB), rounded boxes
// in the card colours, and nodes in pre-order so sibling order follows the
// member collection.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process through WebAssembly; no system Graphviz is needed.
package nodelink
