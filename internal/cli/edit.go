package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/family"
	vio "github.com/matzehuels/vamsha/pkg/io"
	"github.com/matzehuels/vamsha/pkg/pipeline"
	"github.com/matzehuels/vamsha/pkg/session"
)

// editCommand creates the interactive editor command.
func (c *CLI) editCommand() *cobra.Command {
	var lang string

	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Edit a family tree interactively",
		Long: `Edit opens a terminal editor with an outline of the family, a map of the
tree and the selected member's details.

The map can be panned with the arrow keys or by dragging, zoomed with +/-
or the mouse wheel, and clicking a card selects it. Changes are written
back to the file with w. A file that does not exist yet is created on the
first write; without a file the editor starts from a single member.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return c.runEdit(cmd.Context(), path, lang)
		},
	}

	cmd.Flags().StringVarP(&lang, "lang", "l", "", "initial language (default from config)")
	_ = cmd.RegisterFlagCompletionFunc("lang", completeLanguages)

	return cmd
}

func (c *CLI) runEdit(ctx context.Context, path, langFlag string) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	lang, err := language(langFlag, cfg)
	if err != nil {
		return err
	}

	var members family.Members
	if path != "" {
		members, err = vio.ImportFile(path)
		if err != nil && !errors.Is(err, errors.ErrCodeFileNotFound) {
			return err
		}
	}

	fs := c.fontSet(cfg)
	logger, closeLog, err := c.editorLogger()
	if err != nil {
		return err
	}
	defer closeLog()
	ec := &CLI{Logger: logger}

	sess := session.New(members, pipeline.NewRunner(logger, fs), logger)
	if err := sess.SetLanguage(lang); err != nil {
		return err
	}
	if err := sess.SetDimensions(cfg.Render.Width, cfg.Render.Height); err != nil {
		return err
	}

	text := ec.newTextClient(ctx, cfg)
	model := newEditorModel(ctx, sess, text, ec.newExporter(cfg, fs, ""), path, logger)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("editor: %w", err)
	}

	if sess.Modified() {
		printWarning("Unsaved changes were discarded")
		if path != "" {
			printNextStep("Reopen the file", "vamsha edit "+path)
		}
	} else if path != "" {
		printInfo("Closed %s", path)
	}
	return nil
}

// editorLogger returns a logger that stays off the editor's screen. At
// debug level it writes to a file in the temp directory.
func (c *CLI) editorLogger() (*log.Logger, func(), error) {
	if c.Logger.GetLevel() > log.DebugLevel {
		return newLogger(io.Discard, c.Logger.GetLevel()), func() {}, nil
	}
	f, err := os.CreateTemp("", "vamsha-edit-*.log")
	if err != nil {
		return nil, nil, fmt.Errorf("create editor log: %w", err)
	}
	c.Logger.Debug("editor log", "path", f.Name())
	return newLogger(f, log.DebugLevel), func() { _ = f.Close() }, nil
}
