package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/hierarchy"
	"github.com/matzehuels/vamsha/pkg/pipeline"
)

var (
	outlineSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	outlineCursorStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	outlineNormalStyle   = lipgloss.NewStyle().Foreground(colorGray)
)

// outlineRow is one member in the indented outline.
type outlineRow struct {
	ID       string
	Depth    int
	Name     string
	Regional string
}

// outlineRows lists members in tree order. When the members do not form a
// tree they are listed flat in collection order.
func outlineRows(v pipeline.View) []outlineRow {
	if v.Tree == nil {
		rows := make([]outlineRow, len(v.Members))
		for i, m := range v.Members {
			rows[i] = rowFor(m, 0)
		}
		return rows
	}
	rows := make([]outlineRow, 0, v.Tree.Len())
	v.Tree.Walk(func(n *hierarchy.Node) {
		rows = append(rows, rowFor(n.Member, n.Depth))
	})
	return rows
}

func rowFor(m family.Member, depth int) outlineRow {
	return outlineRow{ID: m.ID, Depth: depth, Name: m.Name, Regional: m.RegionalName}
}

func rowIndex(rows []outlineRow, id string) int {
	for i, r := range rows {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// renderOutline draws rows into a width×height block, scrolled so that the
// cursor row is visible.
func renderOutline(rows []outlineRow, cursor int, selected string, width, height int) string {
	if height <= 0 || width <= 0 {
		return ""
	}
	offset := 0
	if cursor >= height {
		offset = cursor - height + 1
	}

	lines := make([]string, 0, height)
	for i := offset; i < len(rows) && len(lines) < height; i++ {
		r := rows[i]
		prefix := "  "
		if i == cursor {
			prefix = "▸ "
		}
		text := prefix + strings.Repeat("  ", r.Depth) + r.Name
		if r.Regional != "" {
			text += " · " + r.Regional
		}
		text = runewidth.FillRight(runewidth.Truncate(text, width, "…"), width)

		switch {
		case r.ID == selected:
			lines = append(lines, outlineSelectedStyle.Render(text))
		case i == cursor:
			lines = append(lines, outlineCursorStyle.Render(text))
		default:
			lines = append(lines, outlineNormalStyle.Render(text))
		}
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}
