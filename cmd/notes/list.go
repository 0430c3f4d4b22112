// ABOUTME: List command for displaying notes.
// ABOUTME: Newest first, optionally filtered by a search term.

package main

import (
	"fmt"
	"time"

	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Long:  `List notes newest first. --search keeps notes whose title or content contains the term, ignoring case.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		searchFlag, _ := cmd.Flags().GetString("search")
		limitFlag, _ := cmd.Flags().GetInt("limit")

		notes := noteStore.Filter(searchFlag)
		if len(notes) == 0 {
			fmt.Print(ui.FormatEmptyState(searchFlag))
			return nil
		}

		if limitFlag > 0 && len(notes) > limitFlag {
			notes = notes[:limitFlag]
		}

		now := time.Now()
		for _, note := range notes {
			fmt.Print(ui.FormatNoteListItem(note, now))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("search", "s", "", "filter by title or content")
	listCmd.Flags().IntP("limit", "n", 0, "max notes to show (0 for all)")
	rootCmd.AddCommand(listCmd)
}
