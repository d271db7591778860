// Package pipeline derives the displayed view from the member collection
// and renders it to output formats.
//
// This package implements the build → layout → scene derivation that the
// CLI commands and the interactive editor share. By centralizing this
// logic, every entry point draws the same diagram for the same members.
//
// # Architecture
//
// Derivation has three stages:
//
//  1. Build: turn the flat member list into a rooted tree
//  2. Layout: assign tidy-tree coordinates
//  3. Scene: resolve cards, connectors and styles
//
// A structural failure in the first stage does not fail derivation: the
// resulting [View] carries the error and a diagnostic scene, which every
// sink knows how to draw.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger, nil)
//	view := runner.Derive(ctx, members, pipeline.Options{Selected: id})
//	artifacts, err := runner.Render(ctx, view, []string{"svg", "jpg"}, pipeline.RenderOptions{})
//	svg := artifacts["svg"]
package pipeline

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/fonts"
	"github.com/matzehuels/vamsha/pkg/hierarchy"
	"github.com/matzehuels/vamsha/pkg/layout"
	"github.com/matzehuels/vamsha/pkg/scene"
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatJPEG     = "jpg"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink" // Graphviz-drawn SVG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatJPEG:     true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatNodelink: true,
}

// FormatNames returns the supported formats in a stable order.
func FormatNames() []string {
	return []string{FormatSVG, FormatPNG, FormatJPEG, FormatPDF, FormatJSON, FormatDOT, FormatNodelink}
}

// Extension returns the file extension for a format, including the dot.
func Extension(format string) string {
	if format == FormatNodelink {
		return ".nodelink.svg"
	}
	return "." + format
}

// NormalizeFormat maps aliases such as "jpeg" onto format names.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "jpeg" {
		return FormatJPEG
	}
	return f
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Options configures [Runner.Derive].
type Options struct {
	Selected string  // highlighted member
	Width    float64 // drawing surface; defaults to 800x600
	Height   float64
}

func (o Options) withDefaults() Options {
	lo := layout.Options{Width: o.Width, Height: o.Height}.WithDefaults()
	o.Width, o.Height = lo.Width, lo.Height
	return o
}

// RenderOptions configures [Runner.Render].
type RenderOptions struct {
	// Transform draws SVG output as the editor surface under this viewport
	// transform. When nil, SVG output uses the content view.
	Transform *scene.Transform

	Padding  float64    // content margin, default 50
	Quality  int        // JPEG quality, default 100
	Fonts    *fonts.Set // overrides the runner's fonts for raster output
	Detailed bool       // detailed node-link labels
}

// View is the derived, displayable state for one member collection.
type View struct {
	Members family.Members
	Tree    *hierarchy.Tree // nil when the collection is not a valid tree
	Layout  layout.Layout
	Scene   *scene.Scene // never nil
	Err     error        // structural failure, nil when valid
	Stats   Stats
}

// Valid reports whether the members formed a tree.
func (v View) Valid() bool {
	return v.Err == nil && v.Tree != nil
}

// Stats contains derivation statistics.
type Stats struct {
	MemberCount int
	Depth       int
	BuildTime   time.Duration
	LayoutTime  time.Duration
	SceneTime   time.Duration
	RenderTime  time.Duration
}

// Total returns the derivation time, excluding rendering.
func (s Stats) Total() time.Duration {
	return s.BuildTime + s.LayoutTime + s.SceneTime
}

// sortedFormats returns the formats in [FormatNames] order, deduplicated.
func sortedFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range FormatNames() {
		if slices.Contains(formats, f) {
			out = append(out, f)
		}
	}
	return out
}
