// Package export writes the current diagram to timestamped image and
// document files.
//
// Exports always use the content view: the drawn cards plus a margin,
// independent of how the editor is panned or zoomed. Asking to export a
// scene with nothing on it (no tree yet, or a broken tree) is not an
// error; [Exporter.Export] returns a [Result] with Written false and
// creates no file.
//
//	e := &export.Exporter{Dir: "."}
//	res, err := e.Export(ctx, s, export.FormatJPEG)
//	// res.Path == "VamshaVriksha_1718000000000.jpg"
package export

import (
	"context"
	"fmt"
	stdio "io"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/fonts"
	vio "github.com/matzehuels/vamsha/pkg/io"
	"github.com/matzehuels/vamsha/pkg/observability"
	"github.com/matzehuels/vamsha/pkg/render/sink"
	"github.com/matzehuels/vamsha/pkg/scene"
)

// Format is an export file type.
type Format string

const (
	FormatJPEG Format = "jpg"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatJPEG, FormatPDF}

// ParseFormat parses an export format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported export format %q (must be jpg or pdf)", s)
}

// Defaults.
const (
	DefaultProduct = "VamshaVriksha"
	DefaultQuality = sink.DefaultJPEGQuality
	DefaultPadding = sink.DefaultPadding
)

// Exporter writes scenes to files. The zero value exports into the
// working directory with the default name, quality and padding.
type Exporter struct {
	Dir     string           // output directory, "" for the working directory
	Product string           // file name prefix
	Quality int              // JPEG quality, 1..100
	Padding float64          // margin around the content
	Fonts   *fonts.Set       // nil uses the embedded Go fonts
	Now     func() time.Time // clock for file names
	Logger  *log.Logger
}

// Result describes a finished export.
type Result struct {
	Written bool
	Path    string
	Format  Format
	Size    int // bytes
	Width   int // pixels
	Height  int
}

// Filename returns the export file name for a product and instant.
func Filename(product string, f Format, t time.Time) string {
	return fmt.Sprintf("%s_%d.%s", product, t.UnixMilli(), f)
}

// Export renders s in the given format and writes it to a new timestamped
// file. A nil, empty or invalid scene is a no-op.
func (e *Exporter) Export(ctx context.Context, s *scene.Scene, format Format) (Result, error) {
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}
	if format != FormatJPEG && format != FormatPDF {
		return Result{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported export format %q", format)
	}
	if s.Empty() {
		logger.Debug("nothing to export", "format", format)
		observability.Export().OnExportSkipped(ctx, string(format))
		return Result{}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	product := e.Product
	if product == "" {
		product = DefaultProduct
	}
	if err := errors.ValidateProductName(product); err != nil {
		return Result{}, err
	}
	padding := e.Padding
	if padding <= 0 {
		padding = DefaultPadding
	}
	quality := e.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}

	start := time.Now()
	opts := []sink.RasterOption{sink.WithPadding(padding)}
	if e.Fonts != nil {
		opts = append(opts, sink.WithFonts(e.Fonts))
	}

	var data []byte
	var err error
	switch format {
	case FormatJPEG:
		data, err = sink.RenderJPEG(s, quality, opts...)
	case FormatPDF:
		data, err = sink.RenderPDF(s, opts...)
	}
	if err != nil {
		return Result{}, fmt.Errorf("render %s: %w", format, err)
	}

	path := filepath.Join(e.Dir, Filename(product, format, now()))
	err = vio.WriteFileAtomic(path, func(w stdio.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return Result{}, err
	}

	ext := s.Extent(padding)
	res := Result{
		Written: true,
		Path:    path,
		Format:  format,
		Size:    len(data),
		Width:   int(ext.Width()),
		Height:  int(ext.Height()),
	}
	elapsed := time.Since(start)
	observability.Export().OnExport(ctx, string(format), res.Size, elapsed)
	logger.Info("exported diagram", "path", path, "size", res.Size, "duration", elapsed)
	return res, nil
}
