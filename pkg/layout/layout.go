package layout

import (
	"math"

	"github.com/matzehuels/vamsha/pkg/hierarchy"
)

// Default slot and surface sizes.
const (
	DefaultNodeWidth   = 240.0
	DefaultLevelHeight = 160.0
	DefaultWidth       = 800.0
	DefaultHeight      = 600.0
)

// Options configures [Compute].
type Options struct {
	Width, Height float64 // drawing surface
	NodeWidth     float64 // horizontal slot per node
	LevelHeight   float64 // vertical distance between generations
}

// WithDefaults fills zero or negative fields with the package defaults.
func (o Options) WithDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.LevelHeight <= 0 {
		o.LevelHeight = DefaultLevelHeight
	}
	return o
}

// Node is a laid-out member: its card centre and generation.
type Node struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Depth int     `json:"depth"`
}

// Link connects a parent to a child.
type Link struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal span.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical span.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// Inset grows r by d on every side (shrinks for negative d).
func (r Rect) Inset(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Contains reports whether (x, y) lies inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// Layout is the result of [Compute].
type Layout struct {
	Nodes  []Node  `json:"nodes"` // pre-order
	Links  []Link  `json:"links"` // ordered by child in pre-order
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Bounds Rect    `json:"bounds"` // of node centres

	index map[string]int
}

// Position returns the laid-out node for a member identity.
func (l Layout) Position(id string) (Node, bool) {
	if l.index != nil {
		i, ok := l.index[id]
		if !ok {
			return Node{}, false
		}
		return l.Nodes[i], true
	}
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// extent is a subtree's horizontal reach relative to its root's centre.
type extent struct {
	min, max float64
}

// Compute lays out t. A nil tree yields an empty layout.
func Compute(t *hierarchy.Tree, opts Options) Layout {
	opts = opts.WithDefaults()
	l := Layout{Width: opts.Width, Height: opts.Height}
	if t == nil || t.Root == nil {
		return l
	}

	offsets := make(map[*hierarchy.Node]float64, t.Len())
	place(t.Root, opts.NodeWidth, offsets)

	xs := make(map[*hierarchy.Node]float64, t.Len())
	l.Nodes = make([]Node, 0, t.Len())
	l.Links = make([]Link, 0, t.Len())
	l.index = make(map[string]int, t.Len())
	first := true

	t.Walk(func(n *hierarchy.Node) {
		x := 0.0
		if n.Parent != nil {
			x = xs[n.Parent] + offsets[n]
			l.Links = append(l.Links, Link{From: n.Parent.ID(), To: n.ID()})
		}
		xs[n] = x
		y := float64(n.Depth) * opts.LevelHeight

		l.index[n.ID()] = len(l.Nodes)
		l.Nodes = append(l.Nodes, Node{ID: n.ID(), X: x, Y: y, Depth: n.Depth})

		pt := Rect{MinX: x, MinY: y, MaxX: x, MaxY: y}
		if first {
			l.Bounds = pt
			first = false
		} else {
			l.Bounds = l.Bounds.Union(pt)
		}
	})

	return l
}

// place positions the children of n relative to n and returns the extent
// of the subtree rooted at n. Sibling subtrees are packed left to right
// with at least gap between the right edge of one and the left edge of
// the next.
func place(n *hierarchy.Node, gap float64, offsets map[*hierarchy.Node]float64) extent {
	if n.IsLeaf() {
		return extent{}
	}

	pos := make([]float64, len(n.Children))
	exts := make([]extent, len(n.Children))
	right := 0.0
	for i, c := range n.Children {
		exts[i] = place(c, gap, offsets)
		if i == 0 {
			pos[i] = 0
		} else {
			// Shift the subtree right until it clears its left neighbour.
			pos[i] = right + gap - exts[i].min
		}
		right = pos[i] + exts[i].max
	}

	mid := (pos[0] + pos[len(pos)-1]) / 2
	ext := extent{}
	for i, c := range n.Children {
		off := pos[i] - mid
		offsets[c] = off
		ext.min = math.Min(ext.min, off+exts[i].min)
		ext.max = math.Max(ext.max, off+exts[i].max)
	}
	return ext
}
