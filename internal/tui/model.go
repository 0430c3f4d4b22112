// ABOUTME: Bubbletea model for the interactive notes screen.
// ABOUTME: Maps key presses onto presenter commands and keeps widget state.

package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/store"
	"github.com/harper/notes/internal/ui"
	"github.com/harper/notes/internal/view"
	"go.uber.org/zap"
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmClear
)

const (
	focusTitle = iota
	focusContent
)

type Model struct {
	p      *view.Presenter
	logger *zap.Logger

	cursor    int
	searching bool
	search    textinput.Model

	title   textinput.Model
	content textarea.Model
	focus   int

	preview viewport.Model

	confirm   confirmKind
	confirmID string

	status    string
	statusErr bool

	width  int
	height int
}

type Option func(*Model)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func New(p *view.Presenter, opts ...Option) *Model {
	search := textinput.New()
	search.Placeholder = "Search notes..."
	search.Prompt = "/ "
	search.CharLimit = 100

	title := textinput.New()
	title.Placeholder = "Note title"
	title.CharLimit = 200
	title.Cursor.Style = focusedStyle

	content := textarea.New()
	content.Placeholder = "Write your note..."
	content.ShowLineNumbers = false
	content.CharLimit = 0

	m := &Model{
		p:       p,
		logger:  zap.NewNop(),
		search:  search,
		title:   title,
		content: content,
		preview: viewport.New(80, 20),
		width:   80,
		height:  24,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.resize()
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(p *view.Presenter, opts ...Option) error {
	_, err := tea.NewProgram(New(p, opts...), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		if m.p.Mode() == view.Previewing {
			m.loadPreview()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.confirm != confirmNone {
			return m.updateConfirm(msg)
		}
		switch m.p.Mode() {
		case view.Editing:
			return m.updateForm(msg)
		case view.Previewing:
			return m.updatePreview(msg)
		default:
			if m.searching {
				return m.updateSearch(msg)
			}
			return m.updateGrid(msg)
		}
	}

	return m.forward(msg)
}

// forward hands non-key messages (cursor blink and the like) to the active widget.
func (m *Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.p.Mode() == view.Editing && m.focus == focusTitle:
		m.title, cmd = m.title.Update(msg)
	case m.p.Mode() == view.Editing:
		m.content, cmd = m.content.Update(msg)
	case m.searching:
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateGrid(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	notes := m.p.Notes()

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(notes)-1 {
			m.cursor++
		}
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "n", "ctrl+n":
		m.p.NewNote()
		return m, m.openForm()
	case "e":
		if note := selected(notes, m.cursor); note != nil {
			if err := m.p.Edit(note.ID); err != nil {
				m.setError(err)
				return m, nil
			}
			return m, m.openForm()
		}
	case "enter", "p":
		if note := selected(notes, m.cursor); note != nil {
			if err := m.p.Preview(note.ID); err != nil {
				m.setError(err)
				return m, nil
			}
			m.loadPreview()
		}
	case "d":
		if note := selected(notes, m.cursor); note != nil {
			m.confirm = confirmDelete
			m.confirmID = note.ID
		}
	case "C":
		if m.p.Total() == 0 {
			m.setError(view.ErrNothingToClear)
			return m, nil
		}
		m.confirm = confirmClear
	case "esc":
		if m.p.Search() != "" {
			m.search.SetValue("")
			m.p.SetSearch("")
			m.clampCursor()
		}
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.p.SetSearch(m.search.Value())
	m.clampCursor()
	return m, cmd
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kind, id := m.confirm, m.confirmID
	m.confirm, m.confirmID = confirmNone, ""

	if msg.String() != "y" && msg.String() != "Y" {
		return m, nil
	}

	switch kind {
	case confirmDelete:
		if err := m.p.Delete(id); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Note deleted successfully!")
		}
	case confirmClear:
		if err := m.p.ClearAll(); err != nil {
			m.setError(err)
		} else {
			m.setStatus("All notes cleared!")
		}
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeForm()
		return m, nil
	case tea.KeyCtrlS:
		return m.submit()
	case tea.KeyTab, tea.KeyShiftTab:
		return m, m.toggleFocus()
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		if msg.Type == tea.KeyEnter {
			return m, m.toggleFocus()
		}
		m.title, cmd = m.title.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

func (m *Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.p.Close()
		return m, nil
	case "e":
		if err := m.p.EditFromPreview(); err != nil {
			m.p.Close()
			m.setError(err)
			return m, nil
		}
		return m, m.openForm()
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	created := m.p.Creating()
	_, err := m.p.Submit(m.title.Value(), m.content.Value())
	switch {
	case errors.Is(err, store.ErrPersist):
		m.logger.Warn("note kept in memory only", zap.Error(err))
		m.setError(fmt.Errorf("saved for this session only: %w", err))
	case err != nil:
		m.setError(err)
		return m, nil
	default:
		m.setStatus(view.SavedMessage(created))
	}

	if created && m.p.Search() == "" {
		m.cursor = 0
	}
	m.closeForm()
	return m, nil
}

func (m *Model) openForm() tea.Cmd {
	m.title.Reset()
	m.content.Reset()
	if note := m.p.Current(); note != nil {
		m.title.SetValue(note.Title)
		m.content.SetValue(note.Content)
	}
	m.focus = focusContent
	return m.toggleFocus()
}

func (m *Model) closeForm() {
	m.p.Close()
	m.title.Blur()
	m.content.Blur()
	m.title.Reset()
	m.content.Reset()
	m.clampCursor()
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusTitle {
		m.focus = focusContent
		m.title.Blur()
		return m.content.Focus()
	}
	m.focus = focusTitle
	m.content.Blur()
	return m.title.Focus()
}

func (m *Model) loadPreview() {
	note := m.p.Current()
	if note == nil {
		return
	}
	m.preview.SetContent(ui.FormatNoteContent(note.Content, m.preview.Width))
	m.preview.GotoTop()
}

func (m *Model) resize() {
	inner := m.width - 8
	if inner < 20 {
		inner = 20
	}
	m.search.Width = inner / 2
	m.title.Width = inner
	m.content.SetWidth(inner)
	m.content.SetHeight(max(m.height-14, 3))
	m.preview.Width = inner
	m.preview.Height = max(m.height-12, 3)
}

func (m *Model) clampCursor() {
	n := len(m.p.Notes())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	if errors.Is(err, store.ErrValidation) {
		m.status = store.ErrValidation.Error()
	}
	m.statusErr = true
}

func selected(notes []*models.Note, i int) *models.Note {
	if i < 0 || i >= len(notes) {
		return nil
	}
	return notes[i]
}
