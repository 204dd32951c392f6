// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notes/adapters/http/middleware"
	"notekeeper/internal/notes/app/dto"
	"notekeeper/internal/notes/domain/entities"
	"notekeeper/internal/notes/ports/api"
	"notekeeper/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerFilter     = "handling filter notes request"
	LogHandlerCreateNote = "handling create note request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"

	ErrMsgMissingLevel       = "Required request parameter 'level' is not present"
	ErrMsgInvalidNoteIDFmt   = "Note id must be an integer, got %q"
	ErrMsgInvalidRequestBody = "Malformed JSON request body"
	ErrSendResponse          = "error sending response"
)

// PathAll - путь списка заметок, на него указывает Location после создания.
const PathAll = "/note/all"

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	notesService api.NoteService
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(notesService api.NoteService) *Handler {
	return &Handler{
		notesService: notesService,
	}
}

// List обрабатывает GET /note/all.
func (h *Handler) List(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListNotes, zap.String("handler", "Handler.List"))

	resp, err := h.notesService.List(requestCtx)
	if err != nil {
		return err //nolint:wrapcheck
	}
	return send(ctx, resp)
}

// Filter обрабатывает GET /note/filter?level=.
func (h *Handler) Filter(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	raw := ctx.Query("level")
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerFilter,
		zap.String("handler", "Handler.Filter"), zap.String("level", raw))

	if raw == "" {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgMissingLevel)
	}
	level, err := entities.ParseLevel(raw)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	resp, err := h.notesService.Filter(requestCtx, level)
	if err != nil {
		return err //nolint:wrapcheck
	}
	return send(ctx, resp)
}

// Create обрабатывает POST /note/add.
func (h *Handler) Create(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCreateNote, zap.String("handler", "Handler.Create"))

	note, err := bindNote(ctx)
	if err != nil {
		return err
	}

	resp, err := h.notesService.Create(requestCtx, note)
	if err != nil {
		return err //nolint:wrapcheck
	}

	ctx.Location(ctx.BaseURL() + PathAll)
	return send(ctx, resp)
}

// Update обрабатывает PUT /note/update.
func (h *Handler) Update(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerUpdateNote, zap.String("handler", "Handler.Update"))

	note, err := bindNote(ctx)
	if err != nil {
		return err
	}

	resp, err := h.notesService.Update(requestCtx, note)
	if err != nil {
		return err //nolint:wrapcheck
	}
	return send(ctx, resp)
}

// Delete обрабатывает DELETE /note/delete/:noteId.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	raw := ctx.Params("noteId")
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteNote,
		zap.String("handler", "Handler.Delete"), zap.String("noteID", raw))

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidNoteIDFmt, raw))
	}

	resp, err := h.notesService.Delete(requestCtx, id)
	if err != nil {
		return err //nolint:wrapcheck
	}
	return send(ctx, resp)
}

// bindNote разбирает и проверяет тело запроса. Ошибки проверки
// возвращаются как *dto.ValidationError.
func bindNote(ctx fiber.Ctx) (*entities.Note, error) {
	var req dto.NoteRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if err := req.Validate(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	note, err := req.ToEntity()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return note, nil
}

func send(ctx fiber.Ctx, resp *dto.Response) error {
	if err := ctx.Status(resp.StatusCode).JSON(resp); err != nil {
		return fmt.Errorf("%s: %w", ErrSendResponse, err)
	}
	return nil
}
