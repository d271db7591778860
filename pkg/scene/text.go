package scene

import (
	"github.com/rivo/uniseg"

	"github.com/matzehuels/vamsha/pkg/fonts"
)

// Measurer reports the rendered width of text and whether a style has
// glyphs for it. [fonts.Set] implements it.
type Measurer interface {
	Measure(text string, style fonts.Style, size float64) float64
	Covers(style fonts.Style, text string) bool
}

// styleFor returns style when its font covers text, otherwise the script
// style, so that text is measured with the face that draws it.
func styleFor(ms Measurer, style fonts.Style, text string) fonts.Style {
	if text == "" || ms.Covers(style, text) {
		return style
	}
	return fonts.Script
}

// Ellipsis marks truncated text.
const Ellipsis = "..."

// Truncate shortens text until it fits maxWidth when rendered, removing
// whole grapheme clusters from the end and appending [Ellipsis]. Text that
// already fits is returned unchanged. When not even one cluster fits, the
// result is the ellipsis alone.
func Truncate(text string, maxWidth float64, ms Measurer, style fonts.Style, size float64) string {
	if ms.Measure(text, style, size) <= maxWidth {
		return text
	}

	// Byte offsets at which each grapheme cluster ends.
	var ends []int
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		_, to := g.Positions()
		ends = append(ends, to)
	}

	for i := len(ends) - 2; i >= 0; i-- {
		candidate := text[:ends[i]] + Ellipsis
		if ms.Measure(candidate, style, size) <= maxWidth {
			return candidate
		}
	}
	return Ellipsis
}
