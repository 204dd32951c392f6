package dto

import (
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/pkg/timefmt"
)

// Note - представление заметки в ответе.
type Note struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Level       *string `json:"level"`
	CreatedAt   string  `json:"createdAt"`
}

// FromEntity преобразует заметку в DTO, форматируя createdAt через clock.
func FromEntity(clock *timefmt.Formatter, note *entities.Note) Note {
	out := Note{
		ID:          note.ID,
		Title:       note.Title,
		Description: note.Description,
		CreatedAt:   clock.Format(note.CreatedAt),
	}
	if note.Level != "" {
		level := string(note.Level)
		out.Level = &level
	}
	return out
}

// FromEntities преобразует список заметок. Результат не nil.
func FromEntities(clock *timefmt.Formatter, notes []*entities.Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, FromEntity(clock, n))
	}
	return out
}
