// ABOUTME: Export and import of notes as JSON documents or markdown files.
// ABOUTME: Markdown files carry id, title, and timestamps in YAML frontmatter.

package archive

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harper/notes/internal/models"
	"gopkg.in/yaml.v3"
)

const FormatVersion = "1.0"

type ExportNote struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content" yaml:"-"`
	CreatedAt time.Time `json:"created_at" yaml:"created"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated"`
}

type ExportData struct {
	ExportedAt time.Time    `json:"exported_at"`
	Version    string       `json:"version"`
	Notes      []ExportNote `json:"notes"`
}

// Skipped records an import entry that could not become a note.
type Skipped struct {
	Source string
	Err    error
}

func toExport(n *models.Note) ExportNote {
	return ExportNote{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// toNote validates an exported entry. Missing ids and timestamps are filled in.
func toNote(en ExportNote, now time.Time) (*models.Note, error) {
	in := models.NewInput(en.Title, en.Content)
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("invalid note: %w", err)
	}

	note := models.NewNote(in, now)
	if id := strings.TrimSpace(en.ID); id != "" {
		note.ID = id
	}
	if !en.CreatedAt.IsZero() {
		note.CreatedAt = en.CreatedAt
		note.UpdatedAt = en.CreatedAt
	}
	if !en.UpdatedAt.IsZero() {
		note.Touch(en.UpdatedAt)
	}
	return note, nil
}

func WriteJSON(w io.Writer, notes []*models.Note, now time.Time) error {
	export := ExportData{
		ExportedAt: now,
		Version:    FormatVersion,
		Notes:      make([]ExportNote, 0, len(notes)),
	}
	for _, n := range notes {
		export.Notes = append(export.Notes, toExport(n))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}

func ReadJSON(r io.Reader, now time.Time) ([]*models.Note, []Skipped, error) {
	var export ExportData
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, nil, fmt.Errorf("parse export: %w", err)
	}

	var notes []*models.Note
	var skipped []Skipped
	for _, en := range export.Notes {
		note, err := toNote(en, now)
		if err != nil {
			skipped = append(skipped, Skipped{Source: en.Title, Err: err})
			continue
		}
		notes = append(notes, note)
	}
	return notes, skipped, nil
}

// MarkdownFilename includes a short id so notes sharing a title don't collide.
func MarkdownFilename(n *models.Note) string {
	short := n.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return sanitizeFilename(n.Title) + "-" + short + ".md"
}

func WriteMarkdownDir(dir string, notes []*models.Note) (int, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return 0, err
	}

	for i, n := range notes {
		frontmatter, err := yaml.Marshal(toExport(n))
		if err != nil {
			return i, err
		}

		var sb strings.Builder
		sb.WriteString("---\n")
		sb.Write(frontmatter)
		sb.WriteString("---\n\n")
		sb.WriteString(n.Content)
		sb.WriteString("\n")

		path := filepath.Join(dir, MarkdownFilename(n))
		if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
			return i, err
		}
	}
	return len(notes), nil
}

// ReadMarkdownFile parses one note. Without frontmatter the file name is the title.
func ReadMarkdownFile(path string, now time.Time) (*models.Note, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-specified file path is expected CLI behavior
	if err != nil {
		return nil, err
	}

	content := string(data)
	var en ExportNote

	if strings.HasPrefix(content, "---\n") {
		parts := strings.SplitN(content, "---\n", 3)
		if len(parts) == 3 {
			if err := yaml.Unmarshal([]byte(parts[1]), &en); err == nil {
				content = parts[2]
			}
		}
	}

	if strings.TrimSpace(en.Title) == "" {
		en.Title = strings.TrimSuffix(filepath.Base(path), ".md")
	}
	en.Content = content

	return toNote(en, now)
}

func ReadMarkdownDir(dir string, now time.Time) ([]*models.Note, []Skipped, error) {
	var notes []*models.Note
	var skipped []Skipped

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}

		note, err := ReadMarkdownFile(path, now)
		if err != nil {
			skipped = append(skipped, Skipped{Source: path, Err: err})
			return nil
		}
		notes = append(notes, note)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return notes, skipped, nil
}

func sanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "-",
		"?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	name = replacer.Replace(name)
	if r := []rune(name); len(r) > 100 {
		name = string(r[:100])
	}
	return name
}
