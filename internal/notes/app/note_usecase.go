// Package app implements application business logic for the notes service.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"

	"go.uber.org/zap"

	"notekeeper/internal/notes/app/dto"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/api"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/logger"
	"notekeeper/pkg/timefmt"
)

// Ошибки уровня бизнес-логики.
var (
	ErrNoteNotFound = errors.New("The note was not found on the server") //nolint:staticcheck,revive
	ErrMissingID    = errors.New("The given id must not be null")        //nolint:staticcheck,revive
)

// Названия операций для логов и метрик.
const (
	OpList   = "list"
	OpFilter = "filter"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Сообщения ответов.
const (
	msgNoNotes     = "No notes to display"
	msgNotesFmt    = "%d notes retrieved"
	msgFilteredFmt = "%d notes are of %s importance"
	msgNoteCreated = "Note created successfully"
	msgNoteUpdated = "Note updated successfully"
	msgNoteDeleted = "Note deleted successfully"
)

// Константы для сообщений logger.
const (
	logListing       = "listing notes"
	logFiltering     = "filtering notes by level"
	logCreating      = "creating note"
	logUpdating      = "updating note"
	logDeleting      = "deleting note"
	logNoteNotFound  = "note not found"
	logOperationDone = "note operation completed"
)

// Константы для сообщений об ошибках.
const (
	errCtxListing   = "listing notes"
	errCtxCounting  = "counting notes"
	errCtxFiltering = "filtering notes"
	errCtxCreating  = "creating note"
	errCtxFinding   = "finding note"
	errCtxUpdating  = "updating note"
	errCtxDeleting  = "deleting note"
)

// OperationObserver получает результат каждой операции.
type OperationObserver interface {
	ObserveOperation(operation string, err error)
}

// NoteUseCase реализует api.NoteService.
type NoteUseCase struct {
	repo     repositories.NoteRepository
	clock    *timefmt.Formatter
	observer OperationObserver
}

// Option настраивает NoteUseCase.
type Option func(*NoteUseCase)

// WithObserver подключает наблюдателя операций, например метрики.
func WithObserver(o OperationObserver) Option {
	return func(uc *NoteUseCase) {
		uc.observer = o
	}
}

// NewNoteUseCase создает новый экземпляр NoteUseCase.
func NewNoteUseCase(repo repositories.NoteRepository, clock *timefmt.Formatter, opts ...Option) api.NoteService {
	uc := &NoteUseCase{repo: repo, clock: clock}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// List возвращает все заметки, новые первыми.
func (uc *NoteUseCase) List(ctx context.Context) (resp *dto.Response, err error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.List"))
	log.Debug(ctx, logListing)
	defer uc.observe(ctx, OpList, &err)

	notes, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxListing, err)
	}
	total, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCounting, err)
	}

	message := msgNoNotes
	if total > 0 {
		message = fmt.Sprintf(msgNotesFmt, total)
	}

	sortNewestFirst(notes)
	return dto.NewResponse(uc.clock, http.StatusOK, message, dto.FromEntities(uc.clock, notes)), nil
}

// Filter возвращает заметки уровня level, новые первыми.
// Пустой результат не является ошибкой.
func (uc *NoteUseCase) Filter(ctx context.Context, level entities.Level) (resp *dto.Response, err error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Filter"))
	log.Debug(ctx, logFiltering, zap.String("level", string(level)))
	defer uc.observe(ctx, OpFilter, &err)

	notes, err := uc.repo.FindByLevel(ctx, level)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFiltering, err)
	}

	sortNewestFirst(notes)
	message := fmt.Sprintf(msgFilteredFmt, len(notes), level)
	return dto.NewResponse(uc.clock, http.StatusOK, message, dto.FromEntities(uc.clock, notes)), nil
}

// Create сохраняет новую заметку. ID клиента игнорируется,
// время создания ставится по часам сервиса.
func (uc *NoteUseCase) Create(ctx context.Context, note *entities.Note) (resp *dto.Response, err error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Create"))
	log.Debug(ctx, logCreating)
	defer uc.observe(ctx, OpCreate, &err)

	fresh := entities.NewNote(note.Title, note.Description, note.Level, uc.clock.Now())
	saved, err := uc.repo.Save(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxCreating, err)
	}

	return dto.NewResponse(uc.clock, http.StatusCreated, msgNoteCreated,
		[]dto.Note{dto.FromEntity(uc.clock, saved)}), nil
}

// Update переписывает title, description и level существующей заметки.
// Время создания сохраняется.
func (uc *NoteUseCase) Update(ctx context.Context, note *entities.Note) (resp *dto.Response, err error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Update"), zap.Int64("noteID", note.ID))
	log.Debug(ctx, logUpdating)
	defer uc.observe(ctx, OpUpdate, &err)

	if note.ID == 0 {
		return nil, ErrMissingID
	}

	existing, err := uc.find(ctx, note.ID)
	if err != nil {
		return nil, err
	}

	existing.ID = note.ID
	existing.Title = note.Title
	existing.Description = note.Description
	existing.Level = note.Level

	saved, err := uc.repo.Save(ctx, existing)
	if err != nil {
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("%s: %w", errCtxUpdating, err)
	}

	return dto.NewResponse(uc.clock, http.StatusOK, msgNoteUpdated,
		[]dto.Note{dto.FromEntity(uc.clock, saved)}), nil
}

// Delete удаляет заметку и возвращает ее данные, снятые до удаления.
func (uc *NoteUseCase) Delete(ctx context.Context, id int64) (resp *dto.Response, err error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteUseCase.Delete"), zap.Int64("noteID", id))
	log.Debug(ctx, logDeleting)
	defer uc.observe(ctx, OpDelete, &err)

	existing, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	snapshot := dto.FromEntity(uc.clock, existing)

	if err := uc.repo.Delete(ctx, existing); err != nil {
		if errors.Is(err, repositories.ErrNoteNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("%s: %w", errCtxDeleting, err)
	}

	return dto.NewResponse(uc.clock, http.StatusOK, msgNoteDeleted, []dto.Note{snapshot}), nil
}

func (uc *NoteUseCase) find(ctx context.Context, id int64) (*entities.Note, error) {
	note, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxFinding, err)
	}
	if note == nil {
		logger.Log(ctx).Debug(ctx, logNoteNotFound, zap.Int64("noteID", id))
		return nil, ErrNoteNotFound
	}
	return note, nil
}

func (uc *NoteUseCase) observe(ctx context.Context, op string, errp *error) {
	logger.Log(ctx).Debug(ctx, logOperationDone, zap.String("operation", op), zap.Bool("failed", *errp != nil))
	if uc.observer != nil {
		uc.observer.ObserveOperation(op, *errp)
	}
}

// сортировка только по createdAt, порядок равных меток не определен
func sortNewestFirst(notes []*entities.Note) {
	slices.SortStableFunc(notes, func(a, b *entities.Note) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}
