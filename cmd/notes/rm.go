// ABOUTME: Remove command for deleting notes.
// ABOUTME: Includes confirmation prompt before deletion.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/harper/notes/internal/store"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id-prefix>",
	Short: "Remove a note",
	Long:  `Delete a note. Asks for confirmation unless --force is given.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		note, err := resolveNote(args[0])
		if errors.Is(err, store.ErrNoteNotFound) {
			fmt.Println(ui.Warning(fmt.Sprintf("No note matched %s; nothing deleted", args[0])))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get note: %w", err)
		}

		if !force && !confirm(fmt.Sprintf("Delete note %q (%s)?", note.Title, ui.ShortID(note.ID))) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := persistWarning(noteStore.Delete(note.ID)); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}

		fmt.Println(ui.Success("Note deleted successfully!"))
		return nil
	},
}

// confirm asks a y/N question on stdin. Anything but y or yes is no.
func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func init() {
	rmCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(rmCmd)
}
