// Package scene turns a computed layout into drawable primitives.
//
// A [Scene] holds one [Card] per member and one [Connector] per
// parent-child link, in scene coordinates where the root card is centred at
// the origin. Everything a sink needs to draw a card is resolved here:
// colours, stroke widths, which text lines exist, and the truncated name.
// Sinks in [github.com/matzehuels/vamsha/pkg/render/sink] only translate
// these primitives into SVG elements, raster strokes or PDF pages.
//
// # Viewport
//
// Panning and zooming never touch the scene. A [Viewport] keeps the
// [Transform] that maps scene coordinates to surface coordinates:
//
//	surfaceX = X + K*sceneX
//	surfaceY = Y + K*sceneY
//
// [Interaction] drives a viewport from pointer events and reports card
// clicks as [SelectEvent] values. Clicking a card selects it and never
// starts a pan.
//
// # Broken trees
//
// When the member collection is not a valid tree, [Invalid] builds a scene
// with no cards and a [Scene.Diagnostic] message that sinks draw centred
// on the surface in place of the diagram.
package scene
