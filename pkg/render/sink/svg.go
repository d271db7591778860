package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/vamsha/pkg/fonts"
	"github.com/matzehuels/vamsha/pkg/scene"
)

const cardShadowFilter = `    <filter id="card-shadow" x="-10%" y="-10%" width="120%" height="130%">
      <feDropShadow dx="0" dy="4" stdDeviation="3" flood-color="#000000" flood-opacity="0.05"/>
    </filter>
`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	transform   *scene.Transform
	fitContent  bool
	padding     float64
	interactive bool
}

// WithTransform draws the scene under the given viewport transform.
func WithTransform(t scene.Transform) SVGOption {
	return func(r *svgRenderer) { r.transform = &t }
}

// WithContentBounds sizes the document to the drawn content plus padding.
func WithContentBounds(padding float64) SVGOption {
	return func(r *svgRenderer) { r.fitContent = true; r.padding = padding }
}

// WithPointerCursor marks cards as clickable for browsers.
func WithPointerCursor() SVGOption {
	return func(r *svgRenderer) { r.interactive = true }
}

// RenderSVG renders the scene as an SVG document.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	if r.fitContent && !s.Empty() {
		ext := s.Extent(r.padding)
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="%s %s %s %s" width="%.0f" height="%.0f" font-family="%s">`+"\n",
			num(ext.MinX), num(ext.MinY), num(ext.Width()), num(ext.Height()), ext.Width(), ext.Height(), EscapeXML(fonts.FontFamily))
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(ext.MinX), num(ext.MinY), num(ext.Width()), num(ext.Height()), scene.ColorBackground)
		r.renderDefs(&buf, s)
		buf.WriteString("  <g>\n")
	} else {
		fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %s %s" width="%.0f" height="%.0f" font-family="%s">`+"\n",
			num(s.Width), num(s.Height), s.Width, s.Height, EscapeXML(fonts.FontFamily))
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", scene.ColorBackground)
		if s.Diagnostic != "" {
			renderDiagnostic(&buf, s)
			buf.WriteString("</svg>\n")
			return buf.Bytes()
		}
		r.renderDefs(&buf, s)
		t := scene.DefaultTransform(s.Width)
		if r.transform != nil {
			t = *r.transform
		}
		fmt.Fprintf(&buf, `  <g transform="%s">`+"\n", t)
	}

	for _, c := range s.Connectors {
		renderConnector(&buf, c)
	}
	for _, c := range s.Cards {
		r.renderCard(&buf, c)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) renderDefs(buf *bytes.Buffer, s *scene.Scene) {
	buf.WriteString("  <defs>\n")
	buf.WriteString(cardShadowFilter)
	for _, c := range s.Cards {
		if c.Photo == "" {
			continue
		}
		fmt.Fprintf(buf, `    <clipPath id="%s"><circle cx="%s" cy="%s" r="%s"/></clipPath>`+"\n",
			clipID(c), num(c.Avatar.CX), num(c.Avatar.CY), num(c.Avatar.R))
	}
	buf.WriteString("  </defs>\n")
}

func renderDiagnostic(buf *bytes.Buffer, s *scene.Scene) {
	fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="middle" fill="%s">%s</text>`+"\n",
		num(s.Width/2), num(s.Height/2), scene.ColorDiagnostic, EscapeXML(s.Diagnostic))
}

func renderConnector(buf *bytes.Buffer, c scene.Connector) {
	cx0, cy0, cx1, cy1 := c.Controls()
	fmt.Fprintf(buf, `    <path class="link" d="M%s,%sC%s,%s,%s,%s,%s,%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
		num(c.X0), num(c.Y0), num(cx0), num(cy0), num(cx1), num(cy1), num(c.X1), num(c.Y1),
		c.Stroke, num(c.StrokeWidth))
}

func (r svgRenderer) renderCard(buf *bytes.Buffer, c scene.Card) {
	class := "node"
	if c.Selected {
		class += " selected"
	}
	cursor := ""
	if r.interactive {
		cursor = ` style="cursor: pointer"`
	}
	fmt.Fprintf(buf, `    <g id="node-%s" class="%s" transform="translate(%s,%s)"%s>`+"\n",
		EscapeXML(c.ID), class, num(c.X), num(c.Y), cursor)

	fmt.Fprintf(buf, `      <rect x="%s" y="%s" width="%s" height="%s" rx="%s" ry="%s" fill="%s" stroke="%s" stroke-width="%s" filter="url(#card-shadow)"/>`+"\n",
		num(-scene.CardWidth/2), num(-scene.CardHeight/2), num(scene.CardWidth), num(scene.CardHeight),
		num(scene.CardRadius), num(scene.CardRadius), c.Box.Fill, c.Box.Stroke, num(c.Box.StrokeWidth))

	a := c.Avatar
	fmt.Fprintf(buf, `      <circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="%s"/>`+"\n",
		num(a.CX), num(a.CY), num(a.R), a.Paint.Fill, a.Paint.Stroke, num(a.Paint.StrokeWidth))
	if c.Photo != "" {
		fmt.Fprintf(buf, `      <image href="%s" x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMidYMid slice" clip-path="url(#%s)"/>`+"\n",
			EscapeXML(c.Photo), num(a.CX-a.R), num(a.CY-a.R), num(2*a.R), num(2*a.R), clipID(c))
		fmt.Fprintf(buf, `      <circle cx="%s" cy="%s" r="%s" fill="none" stroke="%s" stroke-width="%s"/>`+"\n",
			num(a.CX), num(a.CY), num(a.R), a.Paint.Stroke, num(a.Paint.StrokeWidth))
	}

	for _, t := range c.Texts {
		if t.Content == "" {
			continue
		}
		attrs := ""
		if t.Font == fonts.Script {
			attrs = fmt.Sprintf(` class="lang-script" font-family="%s"`, EscapeXML(fonts.ScriptFontFamily))
		}
		if t.Weight != 400 {
			attrs += fmt.Sprintf(` font-weight="%d"`, t.Weight)
		}
		fmt.Fprintf(buf, `      <text x="0" y="%s" text-anchor="middle" font-size="%spx" fill="%s"%s>%s</text>`+"\n",
			num(t.Y), num(t.Size), t.Color, attrs, EscapeXML(t.Content))
	}
	buf.WriteString("    </g>\n")
}

func clipID(c scene.Card) string {
	return "avatar-" + strings.Map(func(r rune) rune {
		if r == '"' || r == '<' || r == '>' || r == '&' || r == '\'' || r == ' ' {
			return '_'
		}
		return r
	}, c.ID)
}

func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// EscapeXML escapes text for use in SVG content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
