// Package pkg provides the core libraries for Vamsha, a family-tree editor.
//
// # Overview
//
// A family is a flat collection of members, each naming its parent. The
// libraries turn that collection into a laid-out, styled tree and write it
// out as images or documents:
//
//	family.Members
//	     ↓
//	[hierarchy] (validate, build the rooted tree)
//	     ↓
//	[layout] (tidy-tree positions)
//	     ↓
//	[scene] (cards, connectors, viewport)
//	     ↓
//	[render/sink] and [export] (SVG, PNG, JPEG, PDF, JSON, DOT)
//
// [pipeline] runs the stages in order and is shared by the CLI and the
// interactive editor. [session] holds the editable state of one editor and
// applies results from [textgen] (translation and family stories) without
// overwriting newer edits.
//
// # Quick Start
//
//	members, _ := io.ImportFile("family.json")
//	runner := pipeline.NewRunner(nil, nil)
//	view := runner.Derive(ctx, members, pipeline.Options{})
//	out, _ := runner.Render(ctx, view, []string{"svg"}, pipeline.RenderOptions{})
//	os.WriteFile("family.svg", out["svg"], 0o644)
//
// # Supporting Packages
//
// [family] defines members, languages and collection edits. [config] loads
// the TOML configuration. [fonts] locates and loads faces for raster
// output. [io] reads and writes member documents in JSON or YAML. [errors]
// carries error codes with user-facing messages. [observability] exposes
// hooks for stage timings.
//
// [hierarchy]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/hierarchy
// [layout]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/layout
// [scene]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/scene
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/render/sink
// [export]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/pipeline
// [session]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/session
// [textgen]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/textgen
// [family]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/family
// [config]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/config
// [fonts]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/fonts
// [io]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/vamsha/pkg/observability
package pkg
