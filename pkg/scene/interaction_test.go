package scene

import (
	"testing"
)

func TestClickSelectsWithoutPanning(t *testing.T) {
	s := build(t, family3(), Options{})
	v := NewViewport(800)

	var got []SelectEvent
	in := &Interaction{Viewport: v, Scene: s, OnSelect: func(e SelectEvent) { got = append(got, e) }}

	aunt, _ := s.Card("3")
	px, py := v.Transform.Apply(aunt.X, aunt.Y)
	before := v.Transform

	if !in.PointerDown(px, py) {
		t.Fatal("PointerDown on card reported miss")
	}
	in.PointerMove(px+50, py+50)
	in.PointerUp()

	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("events = %+v, want one select of 3", got)
	}
	if v.Transform != before {
		t.Errorf("click panned the view: %+v -> %+v", before, v.Transform)
	}
}

func TestDragOnBackgroundPans(t *testing.T) {
	s := build(t, family3(), Options{})
	v := NewViewport(800)
	selected := false
	in := &Interaction{Viewport: v, Scene: s, OnSelect: func(SelectEvent) { selected = true }}

	if in.PointerDown(5, 590) {
		t.Fatal("PointerDown on background reported hit")
	}
	if !in.Dragging() {
		t.Fatal("drag not started")
	}
	in.PointerMove(25, 580)
	in.PointerMove(45, 570)
	in.PointerUp()
	in.PointerMove(500, 500)

	want := DefaultTransform(800)
	want.X += 40
	want.Y -= 20
	if v.Transform != want {
		t.Errorf("Transform = %+v, want %+v", v.Transform, want)
	}
	if selected {
		t.Error("background drag selected a card")
	}
}

func TestWheelZooms(t *testing.T) {
	v := NewViewport(800)
	in := &Interaction{Viewport: v, Scene: Invalid("broken", 800, 600)}

	in.Wheel(400, 300, -100)
	if v.Transform.K <= DefaultZoom {
		t.Errorf("wheel up: K = %v", v.Transform.K)
	}
	in.Wheel(400, 300, 100)
	if !near(v.Transform.K, DefaultZoom) {
		t.Errorf("wheel back: K = %v, want %v", v.Transform.K, DefaultZoom)
	}
	for range 100 {
		in.Wheel(400, 300, 500)
	}
	if v.Transform.K != MinZoom {
		t.Errorf("K = %v, want clamp at %v", v.Transform.K, MinZoom)
	}
}
