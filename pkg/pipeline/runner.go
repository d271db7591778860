package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/fonts"
	"github.com/matzehuels/vamsha/pkg/hierarchy"
	"github.com/matzehuels/vamsha/pkg/layout"
	"github.com/matzehuels/vamsha/pkg/observability"
	"github.com/matzehuels/vamsha/pkg/scene"
)

// Runner derives views and renders them.
//
// The Runner is stateless except for the logger and fonts - it doesn't
// store views. Multiple goroutines can safely use the same Runner.
type Runner struct {
	Logger *log.Logger
	Fonts  *fonts.Set // text measurement and raster faces
}

// NewRunner creates a runner. A nil logger uses log.Default(); nil fonts
// use the embedded Go fonts.
func NewRunner(logger *log.Logger, fs *fonts.Set) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if fs == nil {
		fs = fonts.Default()
	}
	return &Runner{Logger: logger, Fonts: fs}
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func (r *Runner) fontSet() *fonts.Set {
	if r.Fonts == nil {
		return fonts.Default()
	}
	return r.Fonts
}

// Derive runs build → layout → scene for members. It never fails: a
// collection that is not a tree yields a view whose scene shows the
// diagnostic.
func (r *Runner) Derive(ctx context.Context, members family.Members, opts Options) View {
	opts = opts.withDefaults()
	hooks := observability.Pipeline()
	v := View{Members: members, Stats: Stats{MemberCount: len(members)}}

	// Stage 1: Build
	buildStart := time.Now()
	hooks.OnBuildStart(ctx, len(members))
	tree, err := hierarchy.Build(members)
	v.Stats.BuildTime = time.Since(buildStart)
	nodes := 0
	if tree != nil {
		nodes = tree.Len()
	}
	hooks.OnBuildComplete(ctx, nodes, v.Stats.BuildTime, err)

	if err != nil {
		v.Err = err
		v.Scene = scene.Invalid(hierarchy.Diagnostic(err), opts.Width, opts.Height)
		r.logger().Debug("invalid tree structure", "members", len(members), "err", err)
		return v
	}
	v.Tree = tree
	v.Stats.Depth = tree.Depth()

	// Stage 2: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, tree.Len())
	v.Layout = layout.Compute(tree, layout.Options{Width: opts.Width, Height: opts.Height})
	v.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, v.Stats.LayoutTime)

	// Stage 3: Scene
	sceneStart := time.Now()
	v.Scene = scene.Build(v.Layout, tree, scene.Options{
		Selected: opts.Selected,
		Measurer: r.fontSet(),
		Width:    opts.Width,
		Height:   opts.Height,
	})
	v.Stats.SceneTime = time.Since(sceneStart)

	r.logger().Debug("derived view",
		"members", len(members),
		"depth", v.Stats.Depth,
		"duration", v.Stats.Total())
	return v
}

// Render generates artifacts for each requested format, keyed by format.
func (r *Runner) Render(ctx context.Context, v View, formats []string, opts RenderOptions) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}
	if v.Scene == nil {
		return nil, fmt.Errorf("render: view has no scene")
	}
	if opts.Fonts == nil {
		opts.Fonts = r.fontSet()
	}
	formats = sortedFormats(formats)

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
			return nil, err
		}
		data, err := renderFormat(ctx, v, format, opts)
		if err != nil {
			err = fmt.Errorf("render %s: %w", format, err)
			hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
			return nil, err
		}
		artifacts[format] = data
	}

	elapsed := time.Since(start)
	hooks.OnRenderComplete(ctx, formats, elapsed, nil)
	r.logger().Info("rendered outputs",
		"formats", formats,
		"duration", elapsed)
	return artifacts, nil
}
