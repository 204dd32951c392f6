package dto

import (
	"strings"

	"notekeeper/internal/notes/domain/entities"
)

// Сообщения о нарушениях полей.
const (
	MsgTitleNull        = "Title of this note cannot be null"
	MsgTitleEmpty       = "Title of this note cannot be empty"
	MsgDescriptionNull  = "Description of this note cannot be null"
	MsgDescriptionEmpty = "Description of this note cannot be empty"

	invalidFieldsPrefix = "Invalid fields: "
)

// NoteRequest - тело запросов создания и обновления.
// createdAt клиента не принимается.
type NoteRequest struct {
	ID          *int64  `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Level       *string `json:"level"`
}

// ValidationError содержит сообщения обо всех нарушенных полях.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// Reason возвращает текст для поля reason ответа.
func (e *ValidationError) Reason() string {
	return invalidFieldsPrefix + e.Error()
}

// Validate проверяет обязательные поля и возвращает *ValidationError,
// если хотя бы одно нарушено.
func (r *NoteRequest) Validate() error {
	var violations []string
	violations = appendRequired(violations, r.Title, MsgTitleNull, MsgTitleEmpty)
	violations = appendRequired(violations, r.Description, MsgDescriptionNull, MsgDescriptionEmpty)
	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// отсутствующее поле нарушает и NotNull, и NotEmpty
func appendRequired(violations []string, value *string, nullMsg, emptyMsg string) []string {
	switch {
	case value == nil:
		return append(violations, nullMsg, emptyMsg)
	case *value == "":
		return append(violations, emptyMsg)
	default:
		return violations
	}
}

// ToEntity собирает заметку из запроса. Level разбирается строго,
// неизвестное значение дает *entities.ErrUnknownLevel.
func (r *NoteRequest) ToEntity() (*entities.Note, error) {
	note := &entities.Note{}
	if r.ID != nil {
		note.ID = *r.ID
	}
	if r.Title != nil {
		note.Title = *r.Title
	}
	if r.Description != nil {
		note.Description = *r.Description
	}
	if r.Level != nil && *r.Level != "" {
		level, err := entities.ParseLevel(*r.Level)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		note.Level = level
	}
	return note, nil
}
