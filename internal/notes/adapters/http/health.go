package http

import (
	"github.com/gofiber/fiber/v3"

	"notekeeper/internal/notes/adapters/http/middleware"
	"notekeeper/internal/notes/app/dto"
	"notekeeper/pkg/timefmt"
)

// Сообщения проверки состояния.
const (
	msgHealthy     = "Service is healthy"
	errMsgDBFailed = "Database is unreachable"
)

func newHealthHandler(clock *timefmt.Formatter, pinger Pinger) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if err := pinger.Ping(middleware.RequestContext(ctx)); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, errMsgDBFailed+": "+err.Error())
		}
		resp := dto.NewResponse(clock, fiber.StatusOK, msgHealthy, nil)
		return ctx.Status(resp.StatusCode).JSON(resp) //nolint:wrapcheck
	}
}
