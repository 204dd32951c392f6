// Package errorhandler переводит любые ошибки HTTP-слоя в единый ответ-обертку.
package errorhandler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notes/adapters/http/middleware"
	"notekeeper/internal/notes/app"
	"notekeeper/internal/notes/app/dto"
	"notekeeper/pkg/logger"
	"notekeeper/pkg/timefmt"
)

// Константы для сообщений logger.
const (
	LogRequestFailed = "request failed"
)

// RouteError возвращается, когда для метода и пути нет обработчика.
type RouteError struct {
	Method string
}

func (e *RouteError) Error() string {
	return fmt.Sprintf("There is no mapping for a %s request for this path on the server", e.Method)
}

// NoRoute - обработчик для несуществующих маршрутов и /error.
func NoRoute(ctx fiber.Ctx) error {
	return &RouteError{Method: strings.Clone(ctx.Method())}
}

// Translate строит ответ-обертку для ошибки.
func Translate(clock *timefmt.Formatter, err error) *dto.Response {
	var (
		validationErr *dto.ValidationError
		routeErr      *RouteError
		fiberErr      *fiber.Error
	)

	switch {
	case errors.As(err, &validationErr):
		return dto.NewErrorResponse(clock, fiber.StatusBadRequest, validationErr.Reason(), validationErr.Error())
	case errors.Is(err, app.ErrNoteNotFound):
		return dto.NewErrorResponse(clock, fiber.StatusBadRequest, app.ErrNoteNotFound.Error(), err.Error())
	case errors.As(err, &routeErr):
		return dto.NewErrorResponse(clock, fiber.StatusNotFound, routeErr.Error(), routeErr.Error())
	case errors.As(err, &fiberErr):
		return dto.NewErrorResponse(clock, fiberErr.Code, fiberErr.Message, fiberErr.Message)
	default:
		return dto.NewErrorResponse(clock, fiber.StatusBadRequest, err.Error(), err.Error())
	}
}

// New возвращает fiber.ErrorHandler, который логирует ошибку и отвечает оберткой.
func New(clock *timefmt.Formatter) fiber.ErrorHandler {
	return func(ctx fiber.Ctx, err error) error {
		requestCtx := middleware.RequestContext(ctx)
		resp := Translate(clock, err)

		logger.Log(requestCtx).Error(requestCtx, LogRequestFailed,
			zap.Int("status", resp.StatusCode),
			zap.String("reason", resp.Reason),
			zap.Error(err))

		if sendErr := ctx.Status(resp.StatusCode).JSON(resp); sendErr != nil {
			return fmt.Errorf("sending error response: %w", sendErr)
		}
		return nil
	}
}
