package cmd

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/zjrosen/inkwell/internal/infrastructure/sqlite"
)

const maxTitleWidth = 40

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored notes, most recently edited first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		docs, err := db.DocumentRepository().List(cmd.Context())
		if err != nil {
			return err
		}
		return printSummaries(cmd.OutOrStdout(), docs)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// printSummaries writes one aligned line per document.
func printSummaries(w io.Writer, docs []sqlite.Summary) error {
	if len(docs) == 0 {
		_, err := fmt.Fprintln(w, "No notes yet. Run `inkwell <title>` to create one.")
		return err
	}

	width := 0
	for _, d := range docs {
		width = max(width, min(runewidth.StringWidth(d.Title), maxTitleWidth))
	}
	for _, d := range docs {
		title := runewidth.Truncate(d.Title, maxTitleWidth, "…")
		title = runewidth.FillRight(title, width)
		if _, err := fmt.Fprintf(w, "%s  rev %-4d %s\n", title, d.Revision, d.UpdatedAt.Local().Format("2006-01-02 15:04")); err != nil {
			return err
		}
	}
	return nil
}
