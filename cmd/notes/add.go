// ABOUTME: Add command for creating new notes.
// ABOUTME: Supports inline content, file input, or $EDITOR.

package main

import (
	"fmt"

	"github.com/harper/notes/internal/ui"
	"github.com/harper/notes/internal/view"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new note",
	Long:  `Create a new note with the given title. Content can be provided via --content, --file, or $EDITOR.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		contentFlag, _ := cmd.Flags().GetString("content")
		fileFlag, _ := cmd.Flags().GetString("file")

		content, err := readContent(contentFlag, fileFlag, "")
		if err != nil {
			return err
		}

		note, err := noteStore.Create(args[0], content)
		if err := persistWarning(err); err != nil {
			return fmt.Errorf("failed to create note: %w", err)
		}

		fmt.Println(ui.Success(fmt.Sprintf("%s (%s)", view.SavedMessage(true), ui.ShortID(note.ID))))
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("content", "c", "", "note content (inline)")
	addCmd.Flags().String("file", "", "read content from file")
	rootCmd.AddCommand(addCmd)
}
