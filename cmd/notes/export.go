// ABOUTME: Export command for backing up notes.
// ABOUTME: Writes a JSON document or a directory of markdown files.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/harper/notes/internal/archive"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/ui"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export notes",
	Long:  `Export notes to JSON (stdout or --output file) or to a directory of markdown files.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outputPath, _ := cmd.Flags().GetString("output")
		notePrefix, _ := cmd.Flags().GetString("note")

		notes := noteStore.List()
		if notePrefix != "" {
			note, err := resolveNote(notePrefix)
			if err != nil {
				return fmt.Errorf("failed to get note: %w", err)
			}
			notes = []*models.Note{note}
		}

		switch format {
		case "json":
			return exportJSON(notes, outputPath)
		case "md":
			return exportMarkdown(notes, outputPath)
		default:
			return fmt.Errorf("unknown format: %s", format)
		}
	},
}

func exportJSON(notes []*models.Note, outputPath string) error {
	if outputPath == "" || outputPath == "-" {
		return archive.WriteJSON(os.Stdout, notes, time.Now())
	}

	f, err := os.Create(outputPath) //nolint:gosec // User-specified output path is expected CLI behavior
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := archive.WriteJSON(f, notes, time.Now()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, ui.Success(fmt.Sprintf("Exported %d notes to %s", len(notes), outputPath)))
	return nil
}

func exportMarkdown(notes []*models.Note, outputDir string) error {
	if outputDir == "" {
		outputDir = "export"
	}

	n, err := archive.WriteMarkdownDir(outputDir, notes)
	if err != nil {
		return fmt.Errorf("failed to export markdown: %w", err)
	}

	fmt.Println(ui.Success(fmt.Sprintf("Exported %d notes to %s", n, outputDir)))
	return nil
}

func init() {
	exportCmd.Flags().StringP("format", "f", "json", "export format (json|md)")
	exportCmd.Flags().StringP("output", "o", "", "output file (json) or directory (md)")
	exportCmd.Flags().StringP("note", "n", "", "single note ID to export")
	rootCmd.AddCommand(exportCmd)
}
