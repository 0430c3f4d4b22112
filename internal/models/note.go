// ABOUTME: Note model representing a titled text note with timestamps.
// ABOUTME: Provides constructor, input validation, and lifecycle helpers.

package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Note is the persisted record. JSON field names match the stored layout.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteInput is user-supplied title and content before validation.
type NoteInput struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

// NewInput trims both fields.
func NewInput(title, content string) NoteInput {
	return NoteInput{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
}

// Validate reports the first empty field.
func (in NoteInput) Validate() error {
	return validate.Struct(in)
}

// NewID returns a random UUID. Leading characters must be random so short
// prefixes stay unambiguous.
func NewID() string {
	return uuid.NewString()
}

func NewNote(in NoteInput, now time.Time) *Note {
	return &Note{
		ID:        NewID(),
		Title:     in.Title,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch sets UpdatedAt, never earlier than CreatedAt.
func (n *Note) Touch(now time.Time) {
	if now.Before(n.CreatedAt) {
		now = n.CreatedAt
	}
	n.UpdatedAt = now
}

// Edited reports whether the note changed after creation.
func (n *Note) Edited() bool {
	return !n.UpdatedAt.Equal(n.CreatedAt)
}

func (n *Note) Clone() *Note {
	c := *n
	return &c
}

// Valid checks a record read from storage.
func (n *Note) Valid() bool {
	if n.ID == "" || n.CreatedAt.IsZero() || n.UpdatedAt.Before(n.CreatedAt) {
		return false
	}
	return NewInput(n.Title, n.Content).Validate() == nil
}
