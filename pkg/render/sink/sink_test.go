package sink

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/hierarchy"
	"github.com/matzehuels/vamsha/pkg/layout"
	"github.com/matzehuels/vamsha/pkg/scene"
)

func family3() family.Members {
	return family.Members{
		{ID: "1", Name: "Grandfather", RegionalName: "दादाजी", Gender: family.GenderMale, SpouseName: "Grandmother"},
		{ID: "2", ParentID: "1", Name: "Father", Gender: family.GenderMale, SpouseName: "Mother"},
		{ID: "3", ParentID: "1", Name: "Aunt <& Co>", Gender: family.GenderFemale},
	}
}

func buildScene(t *testing.T, ms family.Members, selected string) *scene.Scene {
	t.Helper()
	tree, err := hierarchy.Build(ms)
	if err != nil {
		t.Fatalf("hierarchy.Build: %v", err)
	}
	return scene.Build(layout.Compute(tree, layout.Options{}), tree, scene.Options{Selected: selected})
}

func TestRenderSVGSurfaceView(t *testing.T) {
	svg := string(RenderSVG(buildScene(t, family3(), "2")))

	for _, want := range []string{
		`viewBox="0 0 800 600"`,
		`<g transform="translate(400,80) scale(0.85)">`,
		`d="M0,0C0,80,-120,80,-120,160"`,
		`<g id="node-2" class="node selected" transform="translate(-120,160)">`,
		`stroke="#dc2626" stroke-width="3"`,
		`Aunt &lt;&amp; Co&gt;`,
		`fill="#fee2e2"`,
		`❤ Grandmother`,
		`class="lang-script"`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if n := strings.Count(svg, `class="node`); n != 3 {
		t.Errorf("nodes = %d, want 3", n)
	}
	if n := strings.Count(svg, `class="link"`); n != 2 {
		t.Errorf("links = %d, want 2", n)
	}
	// Empty regional names produce no text element.
	if n := strings.Count(svg, `class="lang-script"`); n != 1 {
		t.Errorf("regional texts = %d, want 1", n)
	}
}

func TestRenderSVGTransform(t *testing.T) {
	s := buildScene(t, family3(), "")
	svg := string(RenderSVG(s, WithTransform(scene.Transform{X: 10, Y: -5.5, K: 1.25})))
	if !strings.Contains(svg, `transform="translate(10,-5.5) scale(1.25)"`) {
		t.Error("custom transform not applied")
	}
}

func TestRenderSVGContentBounds(t *testing.T) {
	s := buildScene(t, family3(), "")
	svg := string(RenderSVG(s, WithContentBounds(50)))

	if !strings.Contains(svg, `viewBox="-280 -129 560 394" width="560" height="394"`) {
		t.Errorf("content viewBox wrong:\n%s", svg[:200])
	}
	if strings.Contains(svg, "scale(") {
		t.Error("content view should not carry the viewport transform")
	}
}

func TestRenderSVGDiagnostic(t *testing.T) {
	s := scene.Invalid(hierarchy.DiagnosticHeadline, 800, 600)
	svg := string(RenderSVG(s, WithContentBounds(50)))

	want := `<text x="400" y="300" text-anchor="middle" fill="#ef4444">Invalid Tree Structure. Ensure only one root exists.</text>`
	if !strings.Contains(svg, want) {
		t.Errorf("diagnostic missing:\n%s", svg)
	}
	if strings.Contains(svg, "node-") {
		t.Error("diagnostic scene drew nodes")
	}
}

func TestRenderRaster(t *testing.T) {
	s := buildScene(t, family3(), "2")
	img, err := RenderRaster(s)
	if err != nil {
		t.Fatalf("RenderRaster: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 560 || b.Dy() != 394 {
		t.Fatalf("size = %dx%d, want 560x394", b.Dx(), b.Dy())
	}

	// Scene point (x, y) maps to pixel (x+280, y+129).
	assertRGB(t, img, 0, 0, 255, 255, 255)
	assertRGB(t, img, 559, 393, 255, 255, 255)
	assertRGB(t, img, -120-90+280, 160+40+129, 0xfe, 0xf2, 0xf2) // selected card fill
	assertRGB(t, img, 120-90+280, 160+40+129, 0xff, 0xff, 0xff)  // default card fill
}

func assertRGB(t *testing.T, img image.Image, x, y int, r, g, b uint8) {
	t.Helper()
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	if c.R != r || c.G != g || c.B != b {
		t.Errorf("pixel (%d,%d) = %v, want (%d,%d,%d)", x, y, c, r, g, b)
	}
}

func TestRenderRasterPadding(t *testing.T) {
	s := buildScene(t, family.Members{{ID: "1", Name: "Solo"}}, "")
	img, err := RenderRaster(s, WithPadding(10))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 154 {
		t.Errorf("size = %dx%d, want 240x154", b.Dx(), b.Dy())
	}
}

func TestNothingToRender(t *testing.T) {
	for _, s := range []*scene.Scene{nil, scene.Invalid("", 800, 600), scene.Invalid("broken", 0, 0), scene.Build(layout.Layout{}, nil, scene.Options{})} {
		if _, err := RenderRaster(s); err != ErrNothingToRender {
			t.Errorf("RenderRaster error = %v", err)
		}
		if _, err := RenderJPEG(s, 90); !errors.Is(err, errors.ErrCodeNothingToExport) {
			t.Errorf("RenderJPEG error = %v", err)
		}
		if _, err := RenderPNG(s); err == nil {
			t.Error("RenderPNG error = nil")
		}
		if _, err := RenderPDF(s); err == nil {
			t.Error("RenderPDF error = nil")
		}
	}
}

func TestRenderRasterDiagnostic(t *testing.T) {
	s := scene.Invalid(hierarchy.DiagnosticHeadline, 800, 600)

	img, err := RenderRaster(s)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Fatalf("size = %dx%d, want 800x600", b.Dx(), b.Dy())
	}
	assertRGB(t, img, 0, 0, 255, 255, 255)
	assertRGB(t, img, 799, 599, 255, 255, 255)

	// The message is drawn in the diagnostic colour around the centre row.
	red := 0
	for y := 270; y < 330; y++ {
		for x := 0; x < 800; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.R > 200 && c.G < 140 && c.B < 140 {
				red++
			}
		}
	}
	if red == 0 {
		t.Error("no diagnostic text drawn near the centre")
	}

	for name, render := range map[string]func() ([]byte, error){
		"png":  func() ([]byte, error) { return RenderPNG(s) },
		"jpeg": func() ([]byte, error) { return RenderJPEG(s, 90) },
		"pdf":  func() ([]byte, error) { return RenderPDF(s) },
	} {
		data, err := render()
		if err != nil || len(data) == 0 {
			t.Errorf("%s: %d bytes, err = %v", name, len(data), err)
		}
	}
}

func TestEncodedRasters(t *testing.T) {
	s := buildScene(t, family3(), "")

	for name, render := range map[string]func() ([]byte, error){
		"png":  func() ([]byte, error) { return RenderPNG(s) },
		"jpeg": func() ([]byte, error) { return RenderJPEG(s, 0) },
	} {
		t.Run(name, func(t *testing.T) {
			data, err := render()
			if err != nil {
				t.Fatal(err)
			}
			img, err := imaging.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != 560 || b.Dy() != 394 {
				t.Errorf("size = %dx%d", b.Dx(), b.Dy())
			}
		})
	}
}

func TestRenderPDF(t *testing.T) {
	s := buildScene(t, family3(), "")
	data, err := RenderPDF(s)
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("not a PDF: %q", data[:8])
	}
	if !bytes.Contains(data, []byte("/MediaBox [0 0 560.00 394.00]")) {
		t.Error("page is not the raster size")
	}
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		w, h   int
		orient string
	}{
		{560, 394, "L"},
		{300, 900, "P"},
		{400, 400, "P"},
	}
	for _, tt := range tests {
		w, h, o := PageSize(tt.w, tt.h)
		if w != float64(tt.w) || h != float64(tt.h) || o != tt.orient {
			t.Errorf("PageSize(%d, %d) = %v, %v, %q", tt.w, tt.h, w, h, o)
		}
	}
}

func TestRasterPhoto(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	if err := imaging.Save(imaging.New(64, 80, color.NRGBA{B: 255, A: 255}), path); err != nil {
		t.Fatal(err)
	}

	s := buildScene(t, family.Members{{ID: "1", Name: "Solo", PhotoURL: path}}, "")
	img, err := RenderRaster(s)
	if err != nil {
		t.Fatal(err)
	}
	// Avatar centre (0, -55) maps to (160, 74); the padded extent starts at (-160, -129).
	c := color.NRGBAModel.Convert(img.At(160, 74)).(color.NRGBA)
	if c.B < 200 || c.R > 50 {
		t.Errorf("avatar centre = %v, want photo blue", c)
	}

	svg := string(RenderSVG(s))
	if !strings.Contains(svg, `clip-path="url(#avatar-1)"`) {
		t.Error("SVG photo not clipped to avatar")
	}

	// Missing photos fall back to the plain avatar.
	s = buildScene(t, family.Members{{ID: "1", Name: "Solo", PhotoURL: filepath.Join(dir, "missing.png")}}, "")
	img, err = RenderRaster(s)
	if err != nil {
		t.Fatal(err)
	}
	c = color.NRGBAModel.Convert(img.At(160, 74-16)).(color.NRGBA)
	if c != (color.NRGBA{0xf3, 0xf4, 0xf6, 0xff}) {
		t.Errorf("avatar = %v, want placeholder fill", c)
	}
}

func TestLoadPhoto(t *testing.T) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(4, 4, color.White), imaging.PNG); err != nil {
		t.Fatal(err)
	}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	img, err := LoadPhoto(uri)
	if err != nil {
		t.Fatalf("LoadPhoto(data URI): %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}

	if _, err := LoadPhoto("https://example.com/a.jpg"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("remote photo error = %v", err)
	}
	if _, err := LoadPhoto("data:image/png,raw"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("non-base64 error = %v", err)
	}
	if _, err := LoadPhoto(filepath.Join(t.TempDir(), "nope.jpg")); err == nil {
		t.Error("missing file error = nil")
	}
}

func TestRenderJSON(t *testing.T) {
	s := buildScene(t, family3(), "3")
	data, err := RenderJSON(s)
	if err != nil {
		t.Fatal(err)
	}
	var out struct {
		Cards []struct {
			ID       string `json:"id"`
			Selected bool   `json:"selected"`
		} `json:"cards"`
		Connectors []json.RawMessage `json:"connectors"`
		Transform  scene.Transform   `json:"transform"`
		Bounds     *layout.Rect      `json:"bounds"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Cards) != 3 || len(out.Connectors) != 2 {
		t.Errorf("cards=%d connectors=%d", len(out.Cards), len(out.Connectors))
	}
	if !out.Cards[2].Selected || out.Cards[2].ID != "3" {
		t.Errorf("selected card = %+v", out.Cards[2])
	}
	if out.Transform != scene.DefaultTransform(800) {
		t.Errorf("transform = %+v", out.Transform)
	}
	if out.Bounds == nil || out.Bounds.MinY != -79 {
		t.Errorf("bounds = %+v", out.Bounds)
	}

	data, err = RenderJSON(scene.Invalid("broken", 800, 600))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"diagnostic": "broken"`)) || !bytes.Contains(data, []byte(`"cards": []`)) {
		t.Errorf("invalid scene JSON:\n%s", data)
	}
}
