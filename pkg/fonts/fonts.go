// Package fonts provides font faces for rendering and text measurement.
//
// The Go fonts are embedded through golang.org/x/image/font/gofont, so a
// [Set] is always usable without system fonts. The Go fonts cover Latin,
// Greek and Cyrillic only; regional names in Indic or Perso-Arabic scripts
// need a script font, which [Load] locates by file name among the system
// fonts (for example "NotoSansDevanagari-Regular.ttf") or takes as a path.
//
// Measurement goes through the same faces the raster renderer draws with,
// so truncation decisions match what ends up on the page.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Style selects a face within a [Set].
type Style int

const (
	Regular Style = iota
	Bold
	Script // regional names; falls back to Regular when no script font is loaded
)

// FontFamily is the CSS font-family used by the SVG sink.
const FontFamily = `'Noto Sans', 'Go', 'Segoe UI', sans-serif`

// ScriptFontFamily is the CSS font-family for regional-name text.
const ScriptFontFamily = `'Noto Sans Devanagari', 'Noto Sans', 'Go', sans-serif`

// Set holds parsed fonts and a cache of measuring faces.
type Set struct {
	regular *truetype.Font
	bold    *truetype.Font
	script  *truetype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	style Style
	size  float64
}

var (
	defaultSet     *Set
	defaultSetOnce sync.Once
)

// Default returns the shared Set built from the embedded Go fonts.
func Default() *Set {
	defaultSetOnce.Do(func() {
		regular, err := truetype.Parse(goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("fonts: parse embedded regular font: %v", err))
		}
		bold, err := truetype.Parse(gobold.TTF)
		if err != nil {
			panic(fmt.Sprintf("fonts: parse embedded bold font: %v", err))
		}
		defaultSet = newSet(regular, bold, nil)
	})
	return defaultSet
}

func newSet(regular, bold, script *truetype.Font) *Set {
	return &Set{regular: regular, bold: bold, script: script, faces: make(map[faceKey]font.Face)}
}

// Load returns a Set with the embedded fonts plus the given script font.
// scriptFont may be an absolute or relative path, or a bare file name that
// is searched for in the system font directories. An empty scriptFont
// returns [Default].
func Load(scriptFont string) (*Set, error) {
	base := Default()
	if scriptFont == "" {
		return base, nil
	}

	path := scriptFont
	if filepath.Base(scriptFont) == scriptFont {
		found, err := findfont.Find(scriptFont)
		if err != nil {
			return nil, fmt.Errorf("find font %s: %w", scriptFont, err)
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	script, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return newSet(base.regular, base.bold, script), nil
}

// HasScript reports whether a dedicated script font is loaded.
func (s *Set) HasScript() bool {
	return s.script != nil
}

func (s *Set) font(style Style) *truetype.Font {
	switch style {
	case Bold:
		return s.bold
	case Script:
		if s.script != nil {
			return s.script
		}
	}
	return s.regular
}

// Covers reports whether every rune of text has a glyph in the style's
// font.
func (s *Set) Covers(style Style, text string) bool {
	f := s.font(style)
	for _, r := range text {
		if f.Index(r) == 0 {
			return false
		}
	}
	return true
}

// NewFace returns a new face at size points (72 DPI, so one point is one
// scene unit). Faces are not safe for concurrent use; renderers create
// their own.
func (s *Set) NewFace(style Style, size float64) font.Face {
	return truetype.NewFace(s.font(style), &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Measure returns the advance width of text in scene units. It is safe for
// concurrent use.
func (s *Set) Measure(text string, style Style, size float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := faceKey{style: style, size: size}
	face, ok := s.faces[key]
	if !ok {
		face = s.NewFace(style, size)
		s.faces[key] = face
	}
	return float64(font.MeasureString(face, text)) / 64
}
