// ABOUTME: Edit command for changing a note's title or content.
// ABOUTME: Opens $EDITOR on the current content unless given --content or --file.

package main

import (
	"fmt"

	"github.com/harper/notes/internal/ui"
	"github.com/harper/notes/internal/view"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <id-prefix>",
	Short: "Edit a note",
	Long:  `Edit a note's content in $EDITOR, or set it with --content or --file. Use --title to rename.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := resolveNote(args[0])
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		titleFlag, _ := cmd.Flags().GetString("title")
		contentFlag, _ := cmd.Flags().GetString("content")
		fileFlag, _ := cmd.Flags().GetString("file")

		title, content := note.Title, note.Content
		if titleFlag != "" {
			title = titleFlag
		}
		// renaming alone shouldn't force an editor session
		if contentFlag != "" || fileFlag != "" || titleFlag == "" {
			content, err = readContent(contentFlag, fileFlag, note.Content)
			if err != nil {
				return err
			}
		}

		updated, err := noteStore.Update(note.ID, title, content)
		if err := persistWarning(err); err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("%s (%s)", view.SavedMessage(false), ui.ShortID(updated.ID))))
		return nil
	},
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "new title")
	editCmd.Flags().StringP("content", "c", "", "new content (inline)")
	editCmd.Flags().String("file", "", "read new content from file")
	rootCmd.AddCommand(editCmd)
}
