package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/inkwell/internal/flags"
	"github.com/zjrosen/inkwell/internal/markdown"
	"github.com/zjrosen/inkwell/internal/richtext"
)

const defaultRenderWidth = 80

var (
	exportRender bool
	exportWidth  int
)

var exportCmd = &cobra.Command{
	Use:   "export <title>",
	Short: "Print a note as markdown",
	Long: `Print the note with the given title as markdown.

With --render the markdown is styled for the terminal using ui.markdown_style.
--width wraps the output; rendered output defaults to 80 columns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		stored, err := db.DocumentRepository().GetByTitle(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		reg := flags.New(cfg.Flags)
		md := richtext.ToMarkdown(stored.Document, richtext.MarkdownOptions{
			HTML: reg.Enabled(flags.FlagMarkdownHTML),
		})
		out, err := formatExport(md, exportRender, exportWidth, cfg.UI.MarkdownStyle)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	exportCmd.Flags().BoolVarP(&exportRender, "render", "r", false, "style the markdown for the terminal")
	exportCmd.Flags().IntVarP(&exportWidth, "width", "w", 0, "wrap width in columns")
	rootCmd.AddCommand(exportCmd)
}

// formatExport renders md with glamour, or word-wraps it when render is off.
func formatExport(md string, render bool, width int, style string) (string, error) {
	if !render {
		return markdown.Wrap(md, width), nil
	}
	if width <= 0 {
		width = defaultRenderWidth
	}
	r, err := markdown.New(style, width)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
