package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/vamsha/pkg/render/nodelink"
	"github.com/matzehuels/vamsha/pkg/render/sink"
)

func renderFormat(ctx context.Context, v View, format string, opts RenderOptions) ([]byte, error) {
	padding := opts.Padding
	if padding <= 0 {
		padding = sink.DefaultPadding
	}
	rasterOpts := []sink.RasterOption{sink.WithPadding(padding), sink.WithFonts(opts.Fonts)}

	switch format {
	case FormatSVG:
		if opts.Transform != nil {
			return sink.RenderSVG(v.Scene, sink.WithTransform(*opts.Transform)), nil
		}
		return sink.RenderSVG(v.Scene, sink.WithContentBounds(padding)), nil
	case FormatPNG:
		return sink.RenderPNG(v.Scene, rasterOpts...)
	case FormatJPEG:
		return sink.RenderJPEG(v.Scene, opts.Quality, rasterOpts...)
	case FormatPDF:
		return sink.RenderPDF(v.Scene, rasterOpts...)
	case FormatJSON:
		var jsonOpts []sink.JSONOption
		if opts.Transform != nil {
			jsonOpts = append(jsonOpts, sink.WithJSONTransform(*opts.Transform))
		}
		return sink.RenderJSON(v.Scene, jsonOpts...)
	case FormatDOT, FormatNodelink:
		var dot string
		switch {
		case v.Valid():
			dot = nodelink.ToDOT(v.Tree, nodelink.Options{Detailed: opts.Detailed, Selected: selectedID(v)})
		case v.Scene != nil && v.Scene.Diagnostic != "":
			dot = nodelink.DiagnosticDOT(v.Scene.Diagnostic)
		case v.Err != nil:
			return nil, v.Err
		default:
			return nil, sink.ErrNothingToRender
		}
		if format == FormatDOT {
			return []byte(dot), nil
		}
		return nodelink.RenderSVG(ctx, dot)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}

func selectedID(v View) string {
	if c, ok := v.Scene.Selected(); ok {
		return c.ID
	}
	return ""
}
