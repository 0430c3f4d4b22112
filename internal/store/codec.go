// ABOUTME: JSON encoding of the note collection and the first-run welcome note.
// ABOUTME: Decoding drops records that would break collection invariants.

package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/notes/internal/models"
	"go.uber.org/zap"
)

const welcomeTitle = "Welcome to Notes!"

const welcomeContent = `This is your first note. You can:

• Add new notes
• Edit existing notes
• Delete notes you no longer need
• Search through your notes

Enjoy organizing your thoughts!`

func welcomeNote(now time.Time) *models.Note {
	return models.NewNote(models.NewInput(welcomeTitle, welcomeContent), now)
}

func encode(notes []*models.Note) ([]byte, error) {
	if notes == nil {
		notes = []*models.Note{}
	}
	return json.Marshal(notes)
}

// decode parses the stored array. Entries that are null, invalid, or repeat an
// earlier id are dropped and logged; the rest load. Only data that is not a
// JSON array fails.
func decode(data []byte, logger *zap.Logger) ([]*models.Note, error) {
	var raw []*models.Note
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal notes: %w", err)
	}

	notes := make([]*models.Note, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, n := range raw {
		switch {
		case n == nil || !n.Valid():
			logger.Warn("dropping invalid stored note", zap.Int("index", i))
		case seen[n.ID]:
			logger.Warn("dropping duplicate stored note", zap.Int("index", i), zap.String("id", n.ID))
		default:
			seen[n.ID] = true
			notes = append(notes, n)
		}
	}
	return notes, nil
}
