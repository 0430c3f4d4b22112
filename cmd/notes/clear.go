// ABOUTME: Clear command for deleting every note at once.
// ABOUTME: Asks for confirmation unless --force is given.

package main

import (
	"fmt"

	"github.com/harper/notes/internal/ui"
	"github.com/harper/notes/internal/view"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all notes",
	Long:  `Delete every note in the store. This cannot be undone.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		n := noteStore.Len()
		if n == 0 {
			fmt.Println(ui.Warning(view.ErrNothingToClear.Error()))
			return nil
		}

		if !force && !confirm(fmt.Sprintf("Delete all %d notes? This action cannot be undone.", n)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := persistWarning(noteStore.Clear()); err != nil {
			return fmt.Errorf("failed to clear notes: %w", err)
		}

		fmt.Println(ui.Success("All notes cleared!"))
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolP("force", "f", false, "skip confirmation")
	rootCmd.AddCommand(clearCmd)
}
