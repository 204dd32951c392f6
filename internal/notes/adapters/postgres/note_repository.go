// Package postgres provides PostgreSQL implementations of repositories.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/logger"
)

// SQL-запросы.
const (
	queryFindAll     = `SELECT id, title, description, level, created_at FROM notes`
	queryFindByLevel = `SELECT id, title, description, level, created_at FROM notes WHERE level = $1`
	queryFindByID    = `SELECT id, title, description, level, created_at FROM notes WHERE id = $1`
	queryInsert      = `INSERT INTO notes (title, description, level, created_at) VALUES ($1, $2, $3, $4) RETURNING id`
	queryUpdate      = `UPDATE notes SET title = $1, description = $2, level = $3 WHERE id = $4`
	queryDelete      = `DELETE FROM notes WHERE id = $1`
	queryCount       = `SELECT COUNT(*) FROM notes`
)

// Константы для сообщений об ошибках.
const (
	ErrListNotes   = "failed to list notes"
	ErrScanNote    = "failed to scan note"
	ErrIterateRows = "error iterating rows"
	ErrGetNote     = "failed to get note"
	ErrCreateNote  = "failed to create note"
	ErrUpdateNote  = "failed to update note"
	ErrDeleteNote  = "failed to delete note"
	ErrCountNotes  = "failed to count notes"
)

// DBTX - подмножество pgxpool.Pool, нужное репозиторию.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NoteRepository реализует интерфейс repositories.NoteRepository.
type NoteRepository struct {
	db DBTX
}

// NewNoteRepository создает новый репозиторий заметок.
func NewNoteRepository(db DBTX) repositories.NoteRepository {
	return &NoteRepository{db: db}
}

// FindAll возвращает все заметки.
func (r *NoteRepository) FindAll(ctx context.Context) ([]*entities.Note, error) {
	logger.Log(ctx).Debug(ctx, "listing notes", zap.String("method", "NoteRepository.FindAll"))
	return r.list(ctx, queryFindAll)
}

// FindByLevel возвращает заметки с уровнем level.
func (r *NoteRepository) FindByLevel(ctx context.Context, level entities.Level) ([]*entities.Note, error) {
	logger.Log(ctx).Debug(ctx, "listing notes by level",
		zap.String("method", "NoteRepository.FindByLevel"),
		zap.String("level", string(level)))
	return r.list(ctx, queryFindByLevel, string(level))
}

func (r *NoteRepository) list(ctx context.Context, query string, args ...any) ([]*entities.Note, error) {
	log := logger.Log(ctx)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, ErrListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrListNotes, err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error(ctx, ErrScanNote, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", ErrScanNote, err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, ErrIterateRows, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrIterateRows, err)
	}

	return notes, nil
}

// FindByID возвращает заметку по ID или nil, если ее нет.
func (r *NoteRepository) FindByID(ctx context.Context, id int64) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.FindByID"))
	log.Debug(ctx, "getting note", zap.Int64("noteID", id))

	note, err := scanNote(r.db.QueryRow(ctx, queryFindByID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.Int64("noteID", id))
			return nil, nil
		}
		log.Error(ctx, ErrGetNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrGetNote, err)
	}

	return note, nil
}

// Save вставляет новую заметку или обновляет существующую.
// created_at при обновлении не меняется.
func (r *NoteRepository) Save(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	if note.ID == 0 {
		return r.insert(ctx, note)
	}
	return r.update(ctx, note)
}

func (r *NoteRepository) insert(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.insert"))
	log.Debug(ctx, "creating new note")

	saved := note.Clone()
	err := r.db.QueryRow(ctx, queryInsert,
		note.Title, note.Description, nullableLevel(note.Level), note.CreatedAt,
	).Scan(&saved.ID)
	if err != nil {
		log.Error(ctx, ErrCreateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrCreateNote, classify(err))
	}

	log.Debug(ctx, "note created", zap.Int64("noteID", saved.ID))
	return saved, nil
}

func (r *NoteRepository) update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.update"))
	log.Debug(ctx, "updating note", zap.Int64("noteID", note.ID))

	result, err := r.db.Exec(ctx, queryUpdate,
		note.Title, note.Description, nullableLevel(note.Level), note.ID,
	)
	if err != nil {
		log.Error(ctx, ErrUpdateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrUpdateNote, classify(err))
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.Int64("noteID", note.ID))
		return nil, repositories.ErrNoteNotFound
	}

	return note.Clone(), nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, note *entities.Note) error {
	return r.DeleteByID(ctx, note.ID)
}

// DeleteByID удаляет заметку по ID.
func (r *NoteRepository) DeleteByID(ctx context.Context, id int64) error {
	log := logger.Log(ctx).With(zap.String("method", "NoteRepository.DeleteByID"))
	log.Debug(ctx, "deleting note", zap.Int64("noteID", id))

	result, err := r.db.Exec(ctx, queryDelete, id)
	if err != nil {
		log.Error(ctx, ErrDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrDeleteNote, err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found", zap.Int64("noteID", id))
		return repositories.ErrNoteNotFound
	}

	return nil
}

// Count возвращает количество заметок.
func (r *NoteRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, queryCount).Scan(&total); err != nil {
		logger.Log(ctx).Error(ctx, ErrCountNotes, zap.Error(err))
		return 0, fmt.Errorf("%s: %w", ErrCountNotes, err)
	}
	return total, nil
}

func scanNote(row pgx.Row) (*entities.Note, error) {
	var (
		note  entities.Note
		level *string
	)
	if err := row.Scan(&note.ID, &note.Title, &note.Description, &level, &note.CreatedAt); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if level != nil {
		note.Level = entities.Level(*level)
	}
	return &note, nil
}

func nullableLevel(level entities.Level) any {
	if level == "" {
		return nil
	}
	return string(level)
}

// classify помечает нарушения ограничений схемы как repositories.ErrConstraintViolation.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation, pgerrcode.StringDataRightTruncationDataException:
		return fmt.Errorf("%w: %s", repositories.ErrConstraintViolation, pgErr.Message)
	default:
		return err
	}
}
