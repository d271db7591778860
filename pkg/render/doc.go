// Package render groups the output renderers for family-tree scenes.
//
// # Overview
//
// Rendering starts from a [scene.Scene], the drawable form of a laid-out
// tree, and ends in bytes:
//
//   - Card diagrams (in [sink] subpackage): SVG, PNG, JPEG, PDF and JSON
//   - Node-link diagrams (in [nodelink] subpackage): Graphviz DOT and SVG
//
// # Card Diagrams
//
// The [sink] subpackage draws the same cards the editor shows. Vector
// output is written directly; raster output is drawn with fogleman/gg and
// wrapped into PDF with go-pdf/fpdf, so no external converter is needed.
//
//	svg := sink.RenderSVG(s, sink.WithContentBounds(50))
//	jpg, err := sink.RenderJPEG(s, 100)
//	pdf, err := sink.RenderPDF(s)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage hands the tree to Graphviz instead of the
// tidy-tree layout:
//
//	dot := nodelink.ToDOT(tree, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [scene.Scene]: github.com/matzehuels/vamsha/pkg/scene.Scene
// [sink]: github.com/matzehuels/vamsha/pkg/render/sink
// [nodelink]: github.com/matzehuels/vamsha/pkg/render/nodelink
package render
