package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vamsha/pkg/export"
	"github.com/matzehuels/vamsha/pkg/hierarchy"
	"github.com/matzehuels/vamsha/pkg/pipeline"
)

// exportCommand creates the export command, which writes a timestamped
// JPEG or PDF of the whole tree.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		formatStr string
		dir       string
		selected  string
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a family tree as a timestamped JPEG or PDF",
		Long: `Export draws every card on a white background with a margin and writes
<product>_<unix millis>.jpg or .pdf into the export directory.

An invalid tree has nothing to export; the command then writes no file.`,
		Example: `  vamsha export family.json
  vamsha export family.json --format pdf --dir ~/Documents`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatStr)
			if err != nil {
				return err
			}
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return c.runExport(cmd.Context(), input, format, dir, selected)
		},
	}

	cmd.Flags().StringVar(&formatStr, "format", string(export.FormatJPEG), "export format: jpg, pdf")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default from config, else the working directory)")
	cmd.Flags().StringVar(&selected, "select", "", "highlight the member with this id")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{string(export.FormatJPEG), string(export.FormatPDF)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input string, format export.Format, dir, selected string) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	members, err := loadMembers(input)
	if err != nil {
		return err
	}

	fs := c.fontSet(cfg)
	view := pipeline.NewRunner(c.Logger, fs).Derive(ctx, members, pipeline.Options{
		Selected: selected,
		Width:    cfg.Render.Width,
		Height:   cfg.Render.Height,
	})

	exp := c.newExporter(cfg, fs, dir)
	if exp.Dir != "" {
		if err := os.MkdirAll(exp.Dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	res, err := exp.Export(ctx, view.Scene, format)
	if err != nil {
		return err
	}
	if !res.Written {
		if view.Err != nil {
			printWarning("Nothing to export: %s", hierarchy.Diagnostic(view.Err))
		} else {
			printWarning("Nothing to export")
		}
		return nil
	}
	printSuccess("Exported %dx%d %s", res.Width, res.Height, res.Format)
	printFile(res.Path)
	printDetail("%d bytes", res.Size)
	return nil
}
