package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notes/adapters/postgres"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/repositories"
	"notekeeper/pkg/logger"
)

var (
	sqlFindAll     = regexp.QuoteMeta(`SELECT id, title, description, level, created_at FROM notes`)
	sqlFindByLevel = regexp.QuoteMeta(`SELECT id, title, description, level, created_at FROM notes WHERE level = $1`)
	sqlFindByID    = regexp.QuoteMeta(`SELECT id, title, description, level, created_at FROM notes WHERE id = $1`)
	sqlInsert      = regexp.QuoteMeta(`INSERT INTO notes (title, description, level, created_at) VALUES ($1, $2, $3, $4) RETURNING id`)
	sqlUpdate      = regexp.QuoteMeta(`UPDATE notes SET title = $1, description = $2, level = $3 WHERE id = $4`)
	sqlDelete      = regexp.QuoteMeta(`DELETE FROM notes WHERE id = $1`)
	sqlCount       = regexp.QuoteMeta(`SELECT COUNT(*) FROM notes`)

	noteColumns = []string{"id", "title", "description", "level", "created_at"}

	errDatabaseConnection = errors.New("database connection failed")
)

func strPtr(s string) *string { return &s }

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestNewNoteRepository(t *testing.T) {
	repo := postgres.NewNoteRepository(newMock(t))

	assert.NotNil(t, repo)
	assert.Implements(t, (*repositories.NoteRepository)(nil), repo)
}

func TestNoteRepository_FindAll(t *testing.T) {
	ctx := testContext(t)
	created := time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

	t.Run("returns all rows including null level", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlFindAll).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow(int64(1), "First", "first description", strPtr("HIGH"), created).
				AddRow(int64(2), "Second", "second description", nil, created.Add(time.Hour)))

		notes, err := postgres.NewNoteRepository(mock).FindAll(ctx)

		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, int64(1), notes[0].ID)
		assert.Equal(t, entities.LevelHigh, notes[0].Level)
		assert.Equal(t, created, notes[0].CreatedAt)
		assert.Equal(t, entities.Level(""), notes[1].Level)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty table yields empty slice", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlFindAll).WillReturnRows(pgxmock.NewRows(noteColumns))

		notes, err := postgres.NewNoteRepository(mock).FindAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlFindAll).WillReturnError(errDatabaseConnection)

		notes, err := postgres.NewNoteRepository(mock).FindAll(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrListNotes)
		assert.Nil(t, notes)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("row error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlFindAll).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow(int64(1), "First", "first description", strPtr("LOW"), created).
				RowError(0, errDatabaseConnection))

		_, err := postgres.NewNoteRepository(mock).FindAll(ctx)

		require.Error(t, err)
		assert.ErrorIs(t, err, errDatabaseConnection)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_FindByLevel(t *testing.T) {
	ctx := testContext(t)
	created := time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

	mock := newMock(t)
	mock.ExpectQuery(sqlFindByLevel).
		WithArgs("HIGH").
		WillReturnRows(pgxmock.NewRows(noteColumns).
			AddRow(int64(3), "Urgent", "do it now", strPtr("HIGH"), created))

	notes, err := postgres.NewNoteRepository(mock).FindByLevel(ctx, entities.LevelHigh)

	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Urgent", notes[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteRepository_FindByID(t *testing.T) {
	ctx := testContext(t)
	created := time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlFindByID).
			WithArgs(int64(7)).
			WillReturnRows(pgxmock.NewRows(noteColumns).
				AddRow(int64(7), "Seven", "lucky", strPtr("MEDIUM"), created))

		note, err := postgres.NewNoteRepository(mock).FindByID(ctx, 7)

		require.NoError(t, err)
		require.NotNil(t, note)
		assert.Equal(t, entities.LevelMedium, note.Level)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found returns nil without error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlFindByID).
			WithArgs(int64(9999)).
			WillReturnRows(pgxmock.NewRows(noteColumns))

		note, err := postgres.NewNoteRepository(mock).FindByID(ctx, 9999)

		require.NoError(t, err)
		assert.Nil(t, note)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlFindByID).
			WithArgs(int64(7)).
			WillReturnError(errDatabaseConnection)

		note, err := postgres.NewNoteRepository(mock).FindByID(ctx, 7)

		require.Error(t, err)
		assert.Contains(t, err.Error(), postgres.ErrGetNote)
		assert.Nil(t, note)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Save(t *testing.T) {
	ctx := testContext(t)
	created := time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)

	t.Run("insert assigns id", func(t *testing.T) {
		mock := newMock(t)
		input := entities.NewNote("Title", "Description", entities.LevelLow, created)

		mock.ExpectQuery(sqlInsert).
			WithArgs("Title", "Description", "LOW", created).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

		saved, err := postgres.NewNoteRepository(mock).Save(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, int64(42), saved.ID)
		assert.Equal(t, created, saved.CreatedAt)
		assert.Zero(t, input.ID, "input note must not be mutated")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert constraint violation", func(t *testing.T) {
		mock := newMock(t)
		input := entities.NewNote("Title", "Description", entities.LevelLow, created)

		mock.ExpectQuery(sqlInsert).
			WithArgs("Title", "Description", "LOW", created).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.CheckViolation, Message: "violates check constraint"})

		saved, err := postgres.NewNoteRepository(mock).Save(ctx, input)

		require.Error(t, err)
		assert.ErrorIs(t, err, repositories.ErrConstraintViolation)
		assert.Contains(t, err.Error(), postgres.ErrCreateNote)
		assert.Nil(t, saved)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update existing row", func(t *testing.T) {
		mock := newMock(t)
		input := &entities.Note{ID: 5, Title: "New", Description: "Updated", Level: entities.LevelHigh, CreatedAt: created}

		mock.ExpectExec(sqlUpdate).
			WithArgs("New", "Updated", "HIGH", int64(5)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		saved, err := postgres.NewNoteRepository(mock).Save(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, input, saved)
		assert.NotSame(t, input, saved)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update missing row", func(t *testing.T) {
		mock := newMock(t)
		input := &entities.Note{ID: 9999, Title: "New", Description: "Updated", Level: entities.LevelHigh}

		mock.ExpectExec(sqlUpdate).
			WithArgs("New", "Updated", "HIGH", int64(9999)).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		saved, err := postgres.NewNoteRepository(mock).Save(ctx, input)

		require.ErrorIs(t, err, repositories.ErrNoteNotFound)
		assert.Nil(t, saved)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update database error", func(t *testing.T) {
		mock := newMock(t)
		input := &entities.Note{ID: 5, Title: "New", Description: "Updated", Level: entities.LevelHigh}

		mock.ExpectExec(sqlUpdate).
			WithArgs("New", "Updated", "HIGH", int64(5)).
			WillReturnError(errDatabaseConnection)

		_, err := postgres.NewNoteRepository(mock).Save(ctx, input)

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrUpdateNote)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	t.Run("delete by entity", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(sqlDelete).
			WithArgs(int64(3)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		err := postgres.NewNoteRepository(mock).Delete(ctx, &entities.Note{ID: 3})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(sqlDelete).
			WithArgs(int64(3)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := postgres.NewNoteRepository(mock).DeleteByID(ctx, 3)

		require.ErrorIs(t, err, repositories.ErrNoteNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectExec(sqlDelete).
			WithArgs(int64(3)).
			WillReturnError(errDatabaseConnection)

		err := postgres.NewNoteRepository(mock).DeleteByID(ctx, 3)

		require.ErrorIs(t, err, errDatabaseConnection)
		assert.Contains(t, err.Error(), postgres.ErrDeleteNote)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNoteRepository_Count(t *testing.T) {
	ctx := testContext(t)

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlCount).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

		total, err := postgres.NewNoteRepository(mock).Count(ctx)

		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(sqlCount).WillReturnError(errDatabaseConnection)

		total, err := postgres.NewNoteRepository(mock).Count(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), postgres.ErrCountNotes)
		assert.Zero(t, total)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
