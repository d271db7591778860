package scene

import "math"

// SelectEvent reports a click on a card.
type SelectEvent struct {
	ID string
}

// wheelScale converts wheel deltas to zoom exponents (base 2).
const wheelScale = 0.002

// Interaction turns pointer input into pans, zooms and selections.
// Coordinates are surface coordinates.
type Interaction struct {
	Viewport *Viewport
	Scene    *Scene
	OnSelect func(SelectEvent)

	dragging     bool
	lastX, lastY float64
}

// PointerDown selects the card under the pointer or starts a drag.
// It reports whether a card was hit.
func (in *Interaction) PointerDown(px, py float64) bool {
	sx, sy := in.Viewport.Transform.Invert(px, py)
	if id, ok := in.Scene.HitTest(sx, sy); ok {
		in.dragging = false
		if in.OnSelect != nil {
			in.OnSelect(SelectEvent{ID: id})
		}
		return true
	}
	in.dragging = true
	in.lastX, in.lastY = px, py
	return false
}

// PointerMove pans while a drag is in progress.
func (in *Interaction) PointerMove(px, py float64) {
	if !in.dragging {
		return
	}
	in.Viewport.Pan(px-in.lastX, py-in.lastY)
	in.lastX, in.lastY = px, py
}

// PointerUp ends a drag.
func (in *Interaction) PointerUp() {
	in.dragging = false
}

// Dragging reports whether a drag is in progress.
func (in *Interaction) Dragging() bool {
	return in.dragging
}

// Wheel zooms at the pointer. Positive deltaY zooms out.
func (in *Interaction) Wheel(px, py, deltaY float64) {
	in.Viewport.ZoomAt(px, py, math.Pow(2, -deltaY*wheelScale))
}
