// Package cli implements the vamsha command-line interface.
//
// Commands render and export family trees, ask the text service for
// translations and family stories, and run an interactive terminal editor.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: write SVG, PNG, JPEG, PDF, JSON or DOT files for a tree
//   - export: write a timestamped JPEG or PDF the way the editor does
//   - translate: render a name in a language's script
//   - story: write a short narrative for a tree
//   - languages: list the supported languages
//   - edit: interactive editor
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/vamsha/config.toml or the file
// named by --config. See package config for the keys.
package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vamsha/pkg/buildinfo"
	"github.com/matzehuels/vamsha/pkg/config"
	"github.com/matzehuels/vamsha/pkg/export"
	"github.com/matzehuels/vamsha/pkg/family"
	"github.com/matzehuels/vamsha/pkg/fonts"
	vio "github.com/matzehuels/vamsha/pkg/io"
	"github.com/matzehuels/vamsha/pkg/pipeline"
	"github.com/matzehuels/vamsha/pkg/textgen"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "vamsha",
		Short:        "Vamsha draws and edits family trees",
		Long:         `Vamsha lays out family trees as connected member cards, exports them as images and documents, and writes names in twelve Indian scripts.`,
		Version:      buildinfo.Read().Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/vamsha/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.translateCommand())
	root.AddCommand(c.storyCommand())
	root.AddCommand(c.languagesCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Setup
// =============================================================================

// config loads the configuration once per process.
func (c *CLI) config() (config.Config, error) {
	if c.cfg != nil {
		return *c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	c.cfg = &cfg
	return cfg, nil
}

// fontSet loads the configured script font, falling back to the embedded
// fonts with a warning.
func (c *CLI) fontSet(cfg config.Config) *fonts.Set {
	fs, err := fonts.Load(cfg.Render.ScriptFont)
	if err != nil {
		c.Logger.Warn("script font unavailable, using default fonts", "font", cfg.Render.ScriptFont, "err", err)
		return fonts.Default()
	}
	return fs
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg config.Config) *pipeline.Runner {
	return pipeline.NewRunner(c.Logger, c.fontSet(cfg))
}

// newTextClient creates a text-service client. A missing API key yields a
// client whose requests fall back immediately.
func (c *CLI) newTextClient(ctx context.Context, cfg config.Config) *textgen.Client {
	if cfg.Text.APIKey == "" {
		return textgen.New(nil, c.Logger)
	}
	gen, err := textgen.NewGenAI(ctx, cfg.Text.APIKey, cfg.Text.Model)
	if err != nil {
		c.Logger.Warn("text service unavailable", "err", err)
		return textgen.New(nil, c.Logger)
	}
	return textgen.New(gen, c.Logger)
}

// newExporter creates an exporter from the [export] section. dir overrides
// the configured directory when set.
func (c *CLI) newExporter(cfg config.Config, fs *fonts.Set, dir string) *export.Exporter {
	if dir == "" {
		dir = cfg.Export.Dir
	}
	return &export.Exporter{
		Dir:     dir,
		Product: cfg.Export.Product,
		Quality: cfg.Export.Quality,
		Padding: cfg.Export.Padding,
		Fonts:   fs,
		Logger:  c.Logger,
	}
}

// language resolves a --lang flag against the configured default.
func language(flag string, cfg config.Config) (family.Language, error) {
	if flag == "" {
		return cfg.Lang(), nil
	}
	return family.ParseLanguage(flag)
}

// loadMembers reads a member document. An empty path starts from the seed
// tree.
func loadMembers(path string) (family.Members, error) {
	if path == "" {
		return family.Seed(), nil
	}
	return vio.ImportFile(path)
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
