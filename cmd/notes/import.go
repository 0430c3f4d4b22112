// ABOUTME: Import command for restoring notes from backup.
// ABOUTME: Accepts a JSON export, a markdown file, or a directory of markdown files.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/harper/notes/internal/archive"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import notes",
	Long: `Import notes from a JSON file or directory of markdown files.

Imported notes go after the existing ones. Notes whose id is already
present are skipped, so importing the same export twice is harmless.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat path: %w", err)
		}

		now := time.Now()
		var notes []*models.Note
		var skipped []archive.Skipped

		switch {
		case info.IsDir():
			notes, skipped, err = archive.ReadMarkdownDir(path, now)
		case strings.HasSuffix(path, ".json"):
			notes, skipped, err = readJSONFile(path, now)
		default:
			var note *models.Note
			note, err = archive.ReadMarkdownFile(path, now)
			notes = []*models.Note{note}
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		for _, s := range skipped {
			fmt.Println(ui.Warning(fmt.Sprintf("skipped %s: %v", s.Source, s.Err)))
		}

		added, err := noteStore.Append(notes)
		if err := persistWarning(err); err != nil {
			return fmt.Errorf("failed to import notes: %w", err)
		}

		msg := fmt.Sprintf("Imported %d notes", added)
		if dup := len(notes) - added; dup > 0 {
			msg += fmt.Sprintf(" (%d already present)", dup)
		}
		fmt.Println(ui.Success(msg))
		return nil
	},
}

func readJSONFile(path string, now time.Time) ([]*models.Note, []archive.Skipped, error) {
	f, err := os.Open(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()
	return archive.ReadJSON(f, now)
}

func init() {
	rootCmd.AddCommand(importCmd)
}
