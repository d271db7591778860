package scene

import (
	"math"
	"strconv"
)

// Zoom limits and the initial view.
const (
	MinZoom        = 0.1
	MaxZoom        = 2.0
	DefaultZoom    = 0.85
	DefaultOffsetY = 80.0
)

// Transform maps scene coordinates to surface coordinates: translate by
// (X, Y) after scaling by K.
type Transform struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{K: 1}

// DefaultTransform centres the root horizontally on a surface of the given
// width, 80 units from the top, at 85% scale.
func DefaultTransform(width float64) Transform {
	return Transform{X: width / 2, Y: DefaultOffsetY, K: DefaultZoom}
}

// Apply maps a scene point to the surface.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.X + t.K*x, t.Y + t.K*y
}

// Invert maps a surface point back to the scene.
func (t Transform) Invert(px, py float64) (float64, float64) {
	return (px - t.X) / t.K, (py - t.Y) / t.K
}

// String formats t as an SVG transform attribute.
func (t Transform) String() string {
	return "translate(" + num(t.X) + "," + num(t.Y) + ") scale(" + num(t.K) + ")"
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Viewport is the pan and zoom state of a surface showing a scene.
type Viewport struct {
	Transform Transform
	width     float64
}

// NewViewport returns a viewport at the default transform for the width.
func NewViewport(width float64) *Viewport {
	return &Viewport{Transform: DefaultTransform(width), width: width}
}

// Pan moves the view by (dx, dy) surface units.
func (v *Viewport) Pan(dx, dy float64) {
	v.Transform.X += dx
	v.Transform.Y += dy
}

// ZoomAt multiplies the scale by factor, clamped to [MinZoom, MaxZoom],
// keeping the scene point under the surface point (px, py) in place.
func (v *Viewport) ZoomAt(px, py, factor float64) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	k := clampZoom(v.Transform.K * factor)
	sx, sy := v.Transform.Invert(px, py)
	v.Transform = Transform{X: px - sx*k, Y: py - sy*k, K: k}
}

// Resize changes the surface width used by [Viewport.Reset].
func (v *Viewport) Resize(width float64) {
	v.width = width
}

// Reset restores the default transform.
func (v *Viewport) Reset() {
	v.Transform = DefaultTransform(v.width)
}

func clampZoom(k float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, k))
}
