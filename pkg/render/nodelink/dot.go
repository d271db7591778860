package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/hierarchy"
	"github.com/matzehuels/vamsha/pkg/scene"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds relation and life dates to node labels.
	// When false, labels carry the names only.
	Detailed bool

	// Selected highlights one member the way the editor does.
	Selected string
}

// ToDOT converts a family tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Members are drawn as rounded boxes in the card colours; women get the
// female avatar tint. A nil tree yields an empty graph.
func ToDOT(t *hierarchy.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=%q, color=%q, fontsize=16, margin=\"0.2,0.1\"];\n",
		scene.ColorCardFill, scene.ColorCardStroke)
	fmt.Fprintf(&buf, "  edge [arrowhead=none, color=%q, penwidth=2];\n", scene.ColorConnector)
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if t == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	t.Walk(func(n *hierarchy.Node) {
		label := fmtLabel(n.Member, opts.Detailed)
		attrs := fmtAttrs(n.Member, label, n.ID() == opts.Selected)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID(), strings.Join(attrs, ", "))
	})

	buf.WriteString("\n")
	for _, l := range t.Links() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", l.Parent.ID(), l.Child.ID())
	}

	buf.WriteString("}\n")
	return buf.String()
}

// DiagnosticDOT returns a graph holding msg as a single plain-text node, for
// members that do not form a tree.
func DiagnosticDOT(msg string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  diagnostic [shape=plaintext, fontsize=16, fontcolor=%q, label=%q];\n", scene.ColorDiagnostic, msg)
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(m family.Member, detailed bool) string {
	lines := []string{m.Name}
	if m.RegionalName != "" {
		lines = append(lines, m.RegionalName)
	}
	if m.HasSpouse() {
		spouse := "+ " + m.SpouseName
		if m.SpouseRegionalName != "" {
			spouse += " (" + m.SpouseRegionalName + ")"
		}
		lines = append(lines, spouse)
	}
	if !detailed {
		return strings.Join(lines, "\n")
	}

	if m.Relation != "" {
		lines = append(lines, "relation: "+m.Relation)
	}
	if m.BirthDate != "" || m.DeathDate != "" {
		lines = append(lines, strings.TrimSpace(m.BirthDate+" - "+m.DeathDate))
	}
	return strings.Join(lines, "\n")
}

func fmtAttrs(m family.Member, label string, selected bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if m.Gender == family.GenderFemale {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", scene.ColorAvatarFemale))
	}
	if selected {
		attrs = append(attrs, fmt.Sprintf("color=%q", scene.ColorSelectedStroke), "penwidth=3")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the document scales from
// the origin with pixel width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
