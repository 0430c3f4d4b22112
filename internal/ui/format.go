// ABOUTME: Terminal formatting for notes output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/notes/internal/models"
)

// CardExcerptLen is how many runes of content a card shows.
const CardExcerptLen = 150

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
)

// Truncate cuts text to max runes and appends "..." when it was longer.
func Truncate(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max]) + "..."
}

// DateLine is the footer of a note card, e.g. "Updated Yesterday".
func DateLine(note *models.Note, now time.Time) string {
	label := "Created"
	if note.Edited() {
		label = "Updated"
	}
	return label + " " + FormatDate(note.UpdatedAt, now)
}

func ShortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}

func FormatNoteListItem(note *models.Note, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(ShortID(note.ID)), bold(note.Title)))

	excerpt := strings.ReplaceAll(Truncate(note.Content, CardExcerptLen), "\n", " ")
	sb.WriteString(fmt.Sprintf("            %s\n", excerpt))
	sb.WriteString(fmt.Sprintf("            %s\n", faint(DateLine(note, now))))

	return sb.String()
}

// FormatNoteContent renders markdown for the terminal. It falls back to the raw
// text when glamour can't render.
func FormatNoteContent(content string, width int) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content + "\n"
	}

	out, err := renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return out
}

// PreviewDates lists Created, and Updated only when it differs.
func PreviewDates(note *models.Note, now time.Time) []string {
	lines := []string{"Created: " + FormatDate(note.CreatedAt, now)}
	if note.Edited() {
		lines = append(lines, "Updated: "+FormatDate(note.UpdatedAt, now))
	}
	return lines
}

func FormatNoteHeader(note *models.Note, now time.Time) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Title)))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID)))
	for _, line := range PreviewDates(note, now) {
		label, value, _ := strings.Cut(line, " ")
		sb.WriteString(fmt.Sprintf("%s %s\n", faint(label), cyan(value)))
	}

	sb.WriteString(Separator())
	return sb.String()
}

// EmptyState returns the heading and hint shown when no notes are visible.
func EmptyState(term string) (string, string) {
	if term != "" {
		return "No notes found", fmt.Sprintf("No notes match %q. Try a different search term.", term)
	}
	return "No notes yet", "Create your first note to get started!"
}

func FormatEmptyState(term string) string {
	title, desc := EmptyState(term)
	return fmt.Sprintf("%s\n%s\n", bold(title), faint(desc))
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Warning(msg string) string {
	return color.New(color.FgYellow).Sprint("! ") + msg
}
