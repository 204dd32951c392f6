// Package api defines the application interfaces consumed by the transport layer.
package api

import (
	"context"

	"notekeeper/internal/notes/app/dto"
	"notekeeper/internal/notes/domain/entities"
)

// NoteService определяет операции над заметками. Каждая операция
// возвращает готовый ответ-обертку.
type NoteService interface {
	List(ctx context.Context) (*dto.Response, error)
	Filter(ctx context.Context, level entities.Level) (*dto.Response, error)
	Create(ctx context.Context, note *entities.Note) (*dto.Response, error)
	Update(ctx context.Context, note *entities.Note) (*dto.Response, error)
	Delete(ctx context.Context, id int64) (*dto.Response, error)
}
