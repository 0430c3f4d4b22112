// ABOUTME: Presentation state machine over the note store.
// ABOUTME: Tracks idle/editing/previewing mode, search term, and the target note.

// Package view holds UI state that is independent of any rendering toolkit.
// The presenter never keeps a writable copy of a note, only its id.
package view

import (
	"errors"
	"time"

	"github.com/harper/notes/internal/models"
	"github.com/harper/notes/internal/store"
	"github.com/harper/notes/internal/ui"
)

type Mode int

const (
	Idle Mode = iota
	Editing
	Previewing
)

func (m Mode) String() string {
	switch m {
	case Editing:
		return "editing"
	case Previewing:
		return "previewing"
	default:
		return "idle"
	}
}

var (
	ErrNothingToClear = errors.New("no notes to clear")
	ErrNotEditing     = errors.New("no note form is open")
)

// Presenter is driven by user commands and read by a renderer.
type Presenter struct {
	store  *store.Store
	now    func() time.Time
	mode   Mode
	target string // note id; empty while creating
	search string
}

type Option func(*Presenter)

func WithClock(now func() time.Time) Option {
	return func(p *Presenter) {
		p.now = now
	}
}

func NewPresenter(s *store.Store, opts ...Option) *Presenter {
	p := &Presenter{store: s, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Presenter) Mode() Mode {
	return p.mode
}

// Creating reports whether the form is open for a new note.
func (p *Presenter) Creating() bool {
	return p.mode == Editing && p.target == ""
}

// Current returns the note being edited or previewed, nil when idle or
// creating. A note deleted underneath the presenter also yields nil.
func (p *Presenter) Current() *models.Note {
	if p.target == "" {
		return nil
	}
	note, err := p.store.Get(p.target)
	if err != nil {
		return nil
	}
	return note
}

func (p *Presenter) NewNote() {
	p.mode = Editing
	p.target = ""
}

func (p *Presenter) Edit(id string) error {
	if _, err := p.store.Get(id); err != nil {
		return err
	}
	p.mode = Editing
	p.target = id
	return nil
}

func (p *Presenter) Preview(id string) error {
	if _, err := p.store.Get(id); err != nil {
		return err
	}
	p.mode = Previewing
	p.target = id
	return nil
}

// EditFromPreview switches the open preview to the edit form.
func (p *Presenter) EditFromPreview() error {
	if p.mode != Previewing {
		return nil
	}
	return p.Edit(p.target)
}

func (p *Presenter) Close() {
	p.mode = Idle
	p.target = ""
}

// Escape closes whichever modal is open.
func (p *Presenter) Escape() {
	p.Close()
}

// Submit saves the form. Validation and not-found errors keep the form open;
// a persistence error still closes it because the note was saved in memory.
func (p *Presenter) Submit(title, content string) (*models.Note, error) {
	if p.mode != Editing {
		return nil, ErrNotEditing
	}

	var note *models.Note
	var err error
	if p.target == "" {
		note, err = p.store.Create(title, content)
	} else {
		note, err = p.store.Update(p.target, title, content)
	}
	if err != nil && !errors.Is(err, store.ErrPersist) {
		return nil, err
	}
	p.Close()
	return note, err
}

func (p *Presenter) Delete(id string) error {
	err := p.store.Delete(id)
	if id == p.target {
		p.Close()
	}
	return err
}

func (p *Presenter) ClearAll() error {
	if p.store.Len() == 0 {
		return ErrNothingToClear
	}
	p.Close()
	return p.store.Clear()
}

func (p *Presenter) SetSearch(term string) {
	p.search = term
}

func (p *Presenter) Search() string {
	return p.search
}

// Notes is what the grid shows.
func (p *Presenter) Notes() []*models.Note {
	return p.store.Filter(p.search)
}

// Total is the unfiltered note count.
func (p *Presenter) Total() int {
	return p.store.Len()
}

func (p *Presenter) EmptyState() (string, string) {
	return ui.EmptyState(p.search)
}

// FormLabels returns the modal heading and submit button text.
func (p *Presenter) FormLabels() (string, string) {
	if p.Creating() {
		return "Add New Note", "Save Note"
	}
	return "Edit Note", "Update Note"
}

// SavedMessage is the confirmation shown after Submit succeeds.
func SavedMessage(created bool) string {
	if created {
		return "Note created successfully!"
	}
	return "Note updated successfully!"
}

func (p *Presenter) Now() time.Time {
	return p.now()
}
