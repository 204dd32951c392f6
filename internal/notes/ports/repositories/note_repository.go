// Package repositories defines repository interfaces for the notes service.
package repositories

import (
	"context"
	"errors"

	"notekeeper/internal/notes/domain/entities"
)

// Ошибки хранилища.
var (
	ErrNoteNotFound        = errors.New("note not found")
	ErrConstraintViolation = errors.New("note violates a storage constraint")
)

// NoteRepository определяет интерфейс хранилища заметок.
// Каждый вызов атомарен относительно хранилища.
type NoteRepository interface {
	FindAll(ctx context.Context) ([]*entities.Note, error)
	FindByLevel(ctx context.Context, level entities.Level) ([]*entities.Note, error)
	// FindByID возвращает nil, nil если заметки нет.
	FindByID(ctx context.Context, id int64) (*entities.Note, error)
	// Save вставляет заметку при ID == 0, иначе обновляет title, description и level.
	Save(ctx context.Context, note *entities.Note) (*entities.Note, error)
	Delete(ctx context.Context, note *entities.Note) error
	DeleteByID(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
