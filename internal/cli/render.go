package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/hierarchy"
	vio "github.com/matzehuels/vamsha/pkg/io"
	"github.com/matzehuels/vamsha/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats
	selected string   // member to highlight
	width    float64  // surface width in pixels, 0 uses the config
	height   float64  // surface height in pixels, 0 uses the config
	padding  float64  // raster margin, 0 uses the config
	quality  int      // JPEG quality, 0 uses the config
	detailed bool     // dates and relations in node-link diagrams
	strict   bool     // fail on an invalid tree instead of drawing the diagnostic
}

// renderCommand creates the render command for writing a tree to files.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a family tree to SVG, PNG, JPEG, PDF, JSON or DOT",
		Long: `Render a member document (JSON or YAML) to one or more formats.

With a single format, --output names the file. With several, --output is a
base path and each format gets its own extension. Without --output, files
are written next to the input.

An invalid tree (no root, several roots, a cycle or a missing parent) is
drawn as a diagnostic message unless --strict is set.`,
		Example: `  vamsha render family.json
  vamsha render family.yaml -f svg,png,pdf -o out/family
  vamsha render family.json -f jpg --select member-42 --width 1280`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for i, f := range opts.formats {
				opts.formats[i] = pipeline.NormalizeFormat(f)
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidFormat, err, "render")
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (comma-separated, default svg)")
	cmd.Flags().StringVar(&opts.selected, "select", "", "highlight the member with this id")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "surface width (default from config)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "surface height (default from config)")
	cmd.Flags().Float64Var(&opts.padding, "padding", 0, "raster margin around the cards (default from config)")
	cmd.Flags().IntVar(&opts.quality, "quality", 0, "JPEG quality 1-100 (default from config)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show relations and dates (dot, nodelink)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when the members do not form a tree")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	members, err := loadMembers(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded members", "file", input, "count", len(members))

	width, height := opts.width, opts.height
	if width <= 0 {
		width = cfg.Render.Width
	}
	if height <= 0 {
		height = cfg.Render.Height
	}
	padding := opts.padding
	if padding <= 0 {
		padding = cfg.Export.Padding
	}
	quality := opts.quality
	if quality <= 0 {
		quality = cfg.Export.Quality
	}

	prog := newProgress(c.Logger)
	runner := c.newRunner(cfg)
	view := runner.Derive(ctx, members, pipeline.Options{
		Selected: opts.selected,
		Width:    width,
		Height:   height,
	})
	if view.Err != nil {
		if opts.strict {
			return view.Err
		}
		printWarning("%s", hierarchy.Diagnostic(view.Err))
	}

	artifacts, err := runner.Render(ctx, view, opts.formats, pipeline.RenderOptions{
		Padding:  padding,
		Quality:  quality,
		Detailed: opts.detailed,
	})
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, input, opts.formats)
	printSuccess("Rendered %s", filepath.Base(input))
	printStats(view.Stats.MemberCount, view.Stats.Depth, view.Stats.Total()+view.Stats.RenderTime)
	for _, format := range opts.formats {
		data := artifacts[format]
		path := paths[format]
		if err := vio.WriteFileAtomic(path, func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}); err != nil {
			return err
		}
		c.Logger.Debug("wrote output", "format", format, "path", path, "bytes", len(data))
		printFile(path)
	}
	prog.done("render finished", "files", len(paths))
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. A format
// extension on output is stripped as well.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[pipeline.NormalizeFormat(strings.TrimPrefix(ext, "."))] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths assigns a file to every format. A single format with an
// explicit output uses that path verbatim.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + pipeline.Extension(f)
	}
	return paths
}
