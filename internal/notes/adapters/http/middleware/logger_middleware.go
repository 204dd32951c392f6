package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogRequestStarted   = "request started"
	LogRequestCompleted = "request completed"
	LogErrorHandlerFail = "error handler failed"
)

// NewLoggerMiddleware логирует запросы. Ошибку цепочки сразу отдает в ErrorHandler
// приложения, поэтому внешние middleware видят итоговый статус ответа.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := RequestContext(ctx)
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("path", ctx.Path()),
			zap.String("method", ctx.Method()),
			zap.String("ip", ctx.IP()),
		)

		log.Debug(requestCtx, LogRequestStarted)

		if chainErr := ctx.Next(); chainErr != nil {
			if err := ctx.App().ErrorHandler(ctx, chainErr); err != nil {
				log.Error(requestCtx, LogErrorHandlerFail, zap.Error(err))
				_ = ctx.SendStatus(fiber.StatusInternalServerError)
			}
		}

		log.Info(requestCtx, LogRequestCompleted,
			zap.Int("status", ctx.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)))
		return nil
	}
}
