package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/fonts"
	"github.com/matzehuels/vamsha/pkg/scene"
)

// DefaultPadding surrounds the content of exported rasters.
const DefaultPadding = 50.0

// DiagnosticSize is the font size of a diagnostic message in rasters.
const DiagnosticSize = 18.0

// ErrNothingToRender is returned by raster sinks for scenes with neither
// cards nor a diagnostic.
var ErrNothingToRender = errors.New(errors.ErrCodeNothingToExport, "scene has nothing to render")

// PhotoLoader returns the image for a member photo reference.
type PhotoLoader func(ref string) (image.Image, error)

// RasterOption configures [RenderRaster] and the sinks built on it.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	padding float64
	fonts   *fonts.Set
	photos  PhotoLoader
	faces   map[faceKey]font.Face
}

type faceKey struct {
	style fonts.Style
	size  float64
}

// WithPadding sets the margin around the content (default 50).
func WithPadding(p float64) RasterOption {
	return func(r *rasterRenderer) { r.padding = p }
}

// WithFonts draws text with the given font set instead of the embedded Go
// fonts.
func WithFonts(s *fonts.Set) RasterOption {
	return func(r *rasterRenderer) { r.fonts = s }
}

// WithPhotoLoader replaces the default photo loader. A nil loader disables
// photos.
func WithPhotoLoader(l PhotoLoader) RasterOption {
	return func(r *rasterRenderer) { r.photos = l }
}

// RenderRaster draws the scene over its content bounds plus padding, one
// pixel per scene unit, flattened onto white. A scene that only carries a
// diagnostic is drawn as the message centred on a Width×Height canvas.
func RenderRaster(s *scene.Scene, opts ...RasterOption) (image.Image, error) {
	r := rasterRenderer{padding: DefaultPadding, fonts: fonts.Default(), photos: LoadPhoto}
	for _, opt := range opts {
		opt(&r)
	}
	if r.fonts == nil {
		r.fonts = fonts.Default()
	}
	r.faces = make(map[faceKey]font.Face)

	if s.Empty() {
		if s == nil || s.Diagnostic == "" {
			return nil, ErrNothingToRender
		}
		return r.renderDiagnostic(s)
	}

	ext := s.Extent(r.padding)
	w, h := int(ext.Width()), int(ext.Height())
	if w <= 0 || h <= 0 {
		return nil, ErrNothingToRender
	}

	dc := gg.NewContext(w, h)
	dc.Translate(-ext.MinX, -ext.MinY)

	for _, c := range s.Connectors {
		cx0, cy0, cx1, cy1 := c.Controls()
		dc.MoveTo(c.X0, c.Y0)
		dc.CubicTo(cx0, cy0, cx1, cy1, c.X1, c.Y1)
		dc.SetHexColor(c.Stroke)
		dc.SetLineWidth(c.StrokeWidth)
		dc.Stroke()
	}
	for _, c := range s.Cards {
		r.drawCard(dc, c)
	}

	bg := imaging.New(w, h, color.White)
	return imaging.Overlay(bg, dc.Image(), image.Point{}, 1.0), nil
}

func (r *rasterRenderer) renderDiagnostic(s *scene.Scene) (image.Image, error) {
	w, h := int(s.Width), int(s.Height)
	if w <= 0 || h <= 0 {
		return nil, ErrNothingToRender
	}
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(r.face(fonts.Regular, DiagnosticSize))
	dc.SetHexColor(scene.ColorDiagnostic)
	dc.DrawStringWrapped(s.Diagnostic, s.Width/2, s.Height/2, 0.5, 0.5, s.Width-2*r.padding, 1.4, gg.AlignCenter)
	return dc.Image(), nil
}

func (r *rasterRenderer) drawCard(dc *gg.Context, c scene.Card) {
	dc.Push()
	defer dc.Pop()
	dc.Translate(c.X, c.Y)

	x, y := -scene.CardWidth/2, -scene.CardHeight/2

	// Soft drop shadow.
	dc.DrawRoundedRectangle(x, y+4, scene.CardWidth, scene.CardHeight, scene.CardRadius)
	dc.SetRGBA(0, 0, 0, 0.05)
	dc.Fill()

	dc.DrawRoundedRectangle(x, y, scene.CardWidth, scene.CardHeight, scene.CardRadius)
	dc.SetHexColor(c.Box.Fill)
	dc.FillPreserve()
	dc.SetHexColor(c.Box.Stroke)
	dc.SetLineWidth(c.Box.StrokeWidth)
	dc.Stroke()

	a := c.Avatar
	dc.DrawCircle(a.CX, a.CY, a.R)
	dc.SetHexColor(a.Paint.Fill)
	dc.Fill()
	hasPhoto := r.drawPhoto(dc, c)
	dc.DrawCircle(a.CX, a.CY, a.R)
	dc.SetHexColor(a.Paint.Stroke)
	dc.SetLineWidth(a.Paint.StrokeWidth)
	dc.Stroke()

	for _, t := range c.Texts {
		content := t.Content
		switch t.Role {
		case scene.RoleGlyph:
			if hasPhoto || !r.fonts.Covers(t.Font, content) {
				continue
			}
		case scene.RoleSpouse:
			// Drop the marker rather than draw a missing-glyph box.
			if !r.fonts.Covers(t.Font, scene.SpouseMarker) {
				content = strings.TrimPrefix(content, scene.SpouseMarker)
			}
		}
		if content == "" {
			continue
		}
		dc.SetFontFace(r.face(t.Font, t.Size))
		dc.SetHexColor(t.Color)
		dc.DrawStringAnchored(content, 0, t.Y, 0.5, 0)
	}
}

func (r *rasterRenderer) drawPhoto(dc *gg.Context, c scene.Card) bool {
	if c.Photo == "" || r.photos == nil {
		return false
	}
	img, err := r.photos(c.Photo)
	if err != nil {
		return false
	}
	a := c.Avatar
	d := int(2 * a.R)
	thumb := imaging.Fill(img, d, d, imaging.Center, imaging.Lanczos)

	dc.Push()
	dc.DrawCircle(a.CX, a.CY, a.R)
	dc.Clip()
	dc.DrawImageAnchored(thumb, int(a.CX), int(a.CY), 0.5, 0.5)
	dc.ResetClip()
	dc.Pop()
	return true
}

func (r *rasterRenderer) face(style fonts.Style, size float64) font.Face {
	key := faceKey{style: style, size: size}
	f, ok := r.faces[key]
	if !ok {
		f = r.fonts.NewFace(style, size)
		r.faces[key] = f
	}
	return f
}

// LoadPhoto opens a photo from a local path or a base64 data URI. Remote
// URLs are not fetched.
func LoadPhoto(ref string) (image.Image, error) {
	switch {
	case strings.HasPrefix(ref, "data:"):
		_, payload, ok := strings.Cut(ref, ";base64,")
		if !ok {
			return nil, errors.New(errors.ErrCodeUnsupported, "photo data URI is not base64")
		}
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode photo data URI")
		}
		return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return nil, errors.New(errors.ErrCodeUnsupported, "remote photo %s", ref)
	}
	img, err := imaging.Open(ref, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open photo: %w", err)
	}
	return img, nil
}
