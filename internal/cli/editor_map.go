package cli

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/matzehuels/vamsha/pkg/scene"
)

// Surface pixels covered by one terminal cell. Cells are roughly twice as
// tall as they are wide.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

type cellKind uint8

const (
	cellBlank cellKind = iota
	cellLink
	cellBorder
	cellBorderSelected
	cellText
	cellRegional
	cellDiagnostic
)

var cellStyles = map[cellKind]lipgloss.Style{
	cellLink:           lipgloss.NewStyle().Foreground(colorDim),
	cellBorder:         lipgloss.NewStyle().Foreground(colorGray),
	cellBorderSelected: lipgloss.NewStyle().Foreground(colorRed).Bold(true),
	cellText:           lipgloss.NewStyle().Foreground(colorWhite),
	cellRegional:       StyleRegional,
	cellDiagnostic:     lipgloss.NewStyle().Foreground(colorRed),
}

// mapCell holds one grapheme cluster. A wide cluster occupies its cell and
// a following continuation cell with an empty s.
type mapCell struct {
	s    string
	kind cellKind
	cont bool
}

// mapCanvas is a character grid the scene is projected onto.
type mapCanvas struct {
	w, h  int
	cells []mapCell
}

func newMapCanvas(w, h int) *mapCanvas {
	w, h = max(w, 0), max(h, 0)
	c := &mapCanvas{w: w, h: h, cells: make([]mapCell, w*h)}
	for i := range c.cells {
		c.cells[i] = mapCell{s: " "}
	}
	return c
}

func (c *mapCanvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.w && y < c.h
}

func (c *mapCanvas) put(x, y int, s string, kind cellKind) {
	if !c.inside(x, y) {
		return
	}
	c.cells[y*c.w+x] = mapCell{s: s, kind: kind}
}

// text writes s starting at column x and returns the columns used.
func (c *mapCanvas) text(x, y int, s string, kind cellKind) int {
	start := x
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		if w == 0 {
			continue
		}
		if w == 2 && x+1 >= c.w {
			break
		}
		c.put(x, y, cluster, kind)
		if w == 2 && c.inside(x+1, y) {
			c.cells[y*c.w+x+1] = mapCell{kind: kind, cont: true}
		}
		x += w
	}
	return x - start
}

// centered writes s centred between columns x0 and x1 inclusive, truncated
// to fit.
func (c *mapCanvas) centered(x0, x1, y int, s string, kind cellKind) {
	width := x1 - x0 + 1
	if width <= 0 || s == "" {
		return
	}
	s = runewidth.Truncate(s, width, "…")
	pad := (width - runewidth.StringWidth(s)) / 2
	c.text(x0+pad, y, s, kind)
}

// String renders the grid, grouping runs of equally styled cells.
func (c *mapCanvas) String() string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		kind := cellBlank
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if st, ok := cellStyles[kind]; ok {
				b.WriteString(st.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cell := c.cells[y*c.w+x]
			if cell.cont {
				continue
			}
			if cell.kind != kind {
				flush()
				kind = cell.kind
			}
			run.WriteString(cell.s)
		}
		flush()
	}
	return b.String()
}

// cellAt maps a surface point to a cell.
func cellAt(px, py float64) (int, int) {
	return int(math.Floor(px / cellWidth)), int(math.Floor(py / cellHeight))
}

// surfacePoint returns the surface point at the centre of a cell.
func surfacePoint(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * cellWidth, (float64(row) + 0.5) * cellHeight
}

// drawMap projects s through t onto a w×h grid.
func drawMap(s *scene.Scene, t scene.Transform, w, h int) string {
	c := newMapCanvas(w, h)
	if s == nil {
		return c.String()
	}
	if s.Diagnostic != "" {
		c.centered(0, w-1, h/2, s.Diagnostic, cellDiagnostic)
		return c.String()
	}
	for _, conn := range s.Connectors {
		drawLink(c, t, conn)
	}
	for _, card := range s.Cards {
		drawCard(c, t, card)
	}
	return c.String()
}

// drawLink draws a connector as an elbow: down from the parent, across at
// the midpoint, down into the child.
func drawLink(c *mapCanvas, t scene.Transform, conn scene.Connector) {
	x0, y0 := cellAt(t.Apply(conn.X0, conn.Y0))
	x1, y1 := cellAt(t.Apply(conn.X1, conn.Y1))
	mid := (y0 + y1) / 2

	for y := y0; y < mid; y++ {
		c.put(x0, y, "│", cellLink)
	}
	for y := mid + 1; y <= y1; y++ {
		c.put(x1, y, "│", cellLink)
	}
	switch {
	case x1 == x0:
		c.put(x0, mid, "│", cellLink)
	case x1 > x0:
		for x := x0 + 1; x < x1; x++ {
			c.put(x, mid, "─", cellLink)
		}
		c.put(x0, mid, "└", cellLink)
		c.put(x1, mid, "┐", cellLink)
	default:
		for x := x1 + 1; x < x0; x++ {
			c.put(x, mid, "─", cellLink)
		}
		c.put(x0, mid, "┘", cellLink)
		c.put(x1, mid, "┌", cellLink)
	}
}

type mapLine struct {
	s    string
	kind cellKind
}

// cardLines returns the text lines shown inside a card, most important first.
func cardLines(card scene.Card) []mapLine {
	var lines []mapLine
	name, _ := card.Text(scene.RoleName)
	glyph, _ := card.Text(scene.RoleGlyph)
	lines = append(lines, mapLine{strings.TrimSpace(glyph.Content + " " + name.Content), cellText})
	if t, ok := card.Text(scene.RoleRegional); ok && t.Content != "" {
		lines = append(lines, mapLine{t.Content, cellRegional})
	}
	if t, ok := card.Text(scene.RoleSpouse); ok {
		lines = append(lines, mapLine{t.Content, cellText})
	}
	if t, ok := card.Text(scene.RoleSpouseRegional); ok {
		lines = append(lines, mapLine{t.Content, cellRegional})
	}
	return lines
}

func drawCard(c *mapCanvas, t scene.Transform, card scene.Card) {
	r := card.Rect()
	x0, y0 := cellAt(t.Apply(r.MinX, r.MinY))
	x1, y1 := cellAt(t.Apply(r.MaxX, r.MaxY))

	border := cellBorder
	if card.Selected {
		border = cellBorderSelected
	}

	// Too small for a box: a single marker.
	if x1-x0 < 2 || y1-y0 < 2 {
		cx, cy := cellAt(t.Apply(card.X, card.Y))
		marker := "○"
		if card.Selected {
			marker = "●"
		}
		c.put(cx, cy, marker, border)
		return
	}

	for y := y0 + 1; y < y1; y++ {
		for x := x0 + 1; x < x1; x++ {
			c.put(x, y, " ", cellBlank)
		}
		c.put(x0, y, "│", border)
		c.put(x1, y, "│", border)
	}
	for x := x0 + 1; x < x1; x++ {
		c.put(x, y0, "─", border)
		c.put(x, y1, "─", border)
	}
	c.put(x0, y0, "╭", border)
	c.put(x1, y0, "╮", border)
	c.put(x0, y1, "╰", border)
	c.put(x1, y1, "╯", border)

	lines := cardLines(card)
	rows := y1 - y0 - 1
	if len(lines) > rows {
		lines = lines[:rows]
	}
	top := y0 + 1 + (rows-len(lines))/2
	for i, l := range lines {
		c.centered(x0+1, x1-1, top+i, l.s, l.kind)
	}
}
