// ABOUTME: TUI command for the interactive notes screen.
// ABOUTME: Same as running notes with no subcommand.

package main

import (
	"github.com/harper/notes/internal/tui"
	"github.com/harper/notes/internal/view"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive notes screen",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

func runTUI() error {
	return tui.Run(view.NewPresenter(noteStore), tui.WithLogger(logger))
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
