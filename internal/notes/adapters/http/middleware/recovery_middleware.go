package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notekeeper/internal/notes/metrics"
	"notekeeper/pkg/logger"
)

// LogServerPanic - сообщение о перехваченной панике.
const LogServerPanic = "server panic"

// PanicError - паника обработчика, превращенная в ошибку.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	if err, ok := e.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(e.Value)
}

// Unwrap возвращает исходную ошибку, если паника была вызвана с error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// NewRecoveryMiddleware перехватывает панику и возвращает ее как *PanicError,
// чтобы ответ сформировал общий ErrorHandler. m может быть nil.
func NewRecoveryMiddleware(m *metrics.Manager) fiber.Handler {
	return func(ctx fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				requestCtx := RequestContext(ctx)
				logger.Log(requestCtx).Error(requestCtx, LogServerPanic,
					zap.String("error", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)
				if m != nil {
					m.CounterHandleRequestPanic.Inc()
				}
				err = &PanicError{Value: r}
			}
		}()

		return ctx.Next()
	}
}
