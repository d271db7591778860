// Package sink provides output format renderers for family-tree scenes.
//
// # Overview
//
// A "sink" transforms a [scene.Scene] into a final output format. This
// package provides renderers for:
//
//   - SVG: the scene as a vector document
//   - Raster: an [image.Image] drawn with fogleman/gg
//   - PNG and JPEG: encoded rasters
//   - PDF: a single-page document holding the raster
//   - JSON: the scene primitives for external tools
//
// # SVG Output
//
// [RenderSVG] has two views. The default view is what an editor surface
// shows: a document the size of the surface with the scene in a group
// under the viewport transform, [scene.DefaultTransform] unless
// [WithTransform] is given. [WithContentBounds] switches to the export
// view: the viewBox covers the drawn content plus padding and no
// transform is applied.
//
//	svg := sink.RenderSVG(s, sink.WithTransform(vp.Transform))
//	doc := sink.RenderSVG(s, sink.WithContentBounds(50))
//
// A scene built with [scene.Invalid] renders its diagnostic centred on the
// surface in red.
//
// # Raster, PNG, JPEG and PDF Output
//
// Rasters always use the export view: content bounds plus padding (50 by
// default), one pixel per scene unit, flattened onto white. Member photos
// given as local file paths or data URIs are cropped into the avatar disc.
//
//	img, err := sink.RenderRaster(s, sink.WithPadding(50))
//	jpg, err := sink.RenderJPEG(s, 100)
//	pdf, err := sink.RenderPDF(s)
//
// These return [ErrNothingToRender] for scenes without cards. The PDF page
// matches the raster size with one point per pixel, in landscape when the
// raster is wider than tall.
//
// [scene.Scene]: github.com/matzehuels/vamsha/pkg/scene.Scene
package sink
