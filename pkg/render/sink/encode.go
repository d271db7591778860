package sink

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/vamsha/pkg/buildinfo"
	"github.com/matzehuels/vamsha/pkg/scene"
)

// DefaultJPEGQuality is the highest JPEG quality.
const DefaultJPEGQuality = 100

// RenderPNG renders the scene as a PNG image.
func RenderPNG(s *scene.Scene, opts ...RasterOption) ([]byte, error) {
	img, err := RenderRaster(s, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderJPEG renders the scene as a JPEG image. Quality outside 1..100
// uses [DefaultJPEGQuality].
func RenderJPEG(s *scene.Scene, quality int, opts ...RasterOption) ([]byte, error) {
	img, err := RenderRaster(s, opts...)
	if err != nil {
		return nil, err
	}
	return encodeJPEG(img, quality)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	if quality < 1 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// PageSize returns the PDF page size in points and its orientation for a
// raster of the given pixel size.
func PageSize(w, h int) (width, height float64, orientation string) {
	if w > h {
		return float64(w), float64(h), "L"
	}
	return float64(w), float64(h), "P"
}

// RenderPDF renders the scene as a single-page PDF holding the raster at
// full JPEG quality.
func RenderPDF(s *scene.Scene, opts ...RasterOption) ([]byte, error) {
	img, err := RenderRaster(s, opts...)
	if err != nil {
		return nil, err
	}
	jpg, err := encodeJPEG(img, DefaultJPEGQuality)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h, orientation := PageSize(b.Dx(), b.Dy())

	// fpdf swaps width and height for landscape pages.
	size := fpdf.SizeType{Wd: w, Ht: h}
	if orientation == "L" {
		size = fpdf.SizeType{Wd: h, Ht: w}
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{OrientationStr: orientation, UnitStr: "pt", Size: size})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("vamsha "+buildinfo.Version, true)
	pdf.SetTitle("Vamsha Vriksha", true)
	pdf.AddPage()

	imgOpts := fpdf.ImageOptions{ImageType: "JPG"}
	pdf.RegisterImageOptionsReader("tree", imgOpts, bytes.NewReader(jpg))
	pdf.ImageOptions("tree", 0, 0, w, h, false, imgOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}
