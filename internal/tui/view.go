// ABOUTME: Rendering for the notes screen: card grid, form modal, preview modal.
// ABOUTME: Pure functions of the presenter and widget state.

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/ui"
	"github.com/harper/notes/internal/view"
)

const cardWidth = 38

var (
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")).MarginBottom(1)
	helpStyle    = blurredStyle
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(cardWidth)
	selectedCardStyle = cardStyle.BorderForeground(lipgloss.Color("205"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(1, 2)
)

func (m *Model) View() string {
	var body string
	switch m.p.Mode() {
	case view.Editing:
		body = m.formView()
	case view.Previewing:
		body = m.previewView()
	default:
		body = m.gridView()
	}

	var sb strings.Builder
	sb.WriteString(body)
	sb.WriteString("\n")
	sb.WriteString(m.statusView())
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(m.helpText()))
	return sb.String()
}

func (m *Model) gridView() string {
	var sb strings.Builder

	heading := fmt.Sprintf("Notes (%d)", m.p.Total())
	sb.WriteString(headerStyle.Render(heading))
	sb.WriteString("\n")
	if m.searching || m.p.Search() != "" {
		sb.WriteString(m.search.View())
		sb.WriteString("\n\n")
	}

	notes := m.p.Notes()
	if len(notes) == 0 {
		title, desc := m.p.EmptyState()
		sb.WriteString(titleStyle.Render(title))
		sb.WriteString("\n")
		sb.WriteString(blurredStyle.Render(desc))
		sb.WriteString("\n")
		return sb.String()
	}

	cols := max((m.width-2)/(cardWidth+4), 1)
	now := m.p.Now()

	var row []string
	for i, note := range notes {
		row = append(row, renderCard(note, i == m.cursor, now))
		if len(row) == cols {
			sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
			sb.WriteString("\n")
			row = nil
		}
	}
	if len(row) > 0 {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderCard(note *models.Note, selected bool, now time.Time) string {
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	excerpt := strings.ReplaceAll(ui.Truncate(note.Content, ui.CardExcerptLen), "\n", " ")
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(ui.Truncate(note.Title, cardWidth-5)),
		excerpt,
		blurredStyle.Render(ui.DateLine(note, now)),
	)
	return style.Render(body)
}

func (m *Model) formView() string {
	heading, button := m.p.FormLabels()

	labelStyle := blurredStyle
	if m.focus == focusTitle {
		labelStyle = focusedStyle
	}
	contentLabel := blurredStyle
	if m.focus == focusContent {
		contentLabel = focusedStyle
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(heading))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("Title"))
	sb.WriteString("\n")
	sb.WriteString(m.title.View())
	sb.WriteString("\n\n")
	sb.WriteString(contentLabel.Render("Content"))
	sb.WriteString("\n")
	sb.WriteString(m.content.View())
	sb.WriteString("\n\n")
	sb.WriteString(focusedStyle.Render("[ " + button + " ]"))
	sb.WriteString(blurredStyle.Render("  ctrl+s"))

	return modalStyle.Render(sb.String())
}

func (m *Model) previewView() string {
	note := m.p.Current()
	if note == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render(note.Title))
	sb.WriteString("\n")
	sb.WriteString(m.preview.View())
	sb.WriteString("\n")
	sb.WriteString(blurredStyle.Render(strings.Join(ui.PreviewDates(note, m.p.Now()), "   ")))

	return modalStyle.Render(sb.String())
}

func (m *Model) statusView() string {
	if m.confirm == confirmDelete {
		return errStyle.Render("Are you sure you want to delete this note? (y/N)")
	}
	if m.confirm == confirmClear {
		return errStyle.Render("Are you sure you want to delete all notes? This action cannot be undone. (y/N)")
	}
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errStyle.Render(ui.Error(m.status))
	}
	return okStyle.Render(ui.Success(m.status))
}

func (m *Model) helpText() string {
	switch {
	case m.p.Mode() == view.Editing:
		return "tab: switch field • ctrl+s: save • esc: cancel"
	case m.p.Mode() == view.Previewing:
		return "↑/↓: scroll • e: edit • esc: close"
	case m.searching:
		return "type to filter • enter/esc: done"
	default:
		return "n: new • e: edit • enter: preview • d: delete • C: clear all • /: search • q: quit"
	}
}
