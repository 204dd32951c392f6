package middleware

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"notekeeper/internal/notes/metrics"
)

// NewMetricsMiddleware считает запросы, их длительность и число одновременных запросов.
// Путь берется из шаблона маршрута, а не из URL.
func NewMetricsMiddleware(m *metrics.Manager) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		m.GaugeRequests.Inc()
		defer m.GaugeRequests.Dec()

		start := time.Now()
		err := ctx.Next()

		method := strings.Clone(ctx.Method())
		path := ctx.Route().Path
		m.HistRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		m.CounterRequests.WithLabelValues(method, path, strconv.Itoa(ctx.Response().StatusCode())).Inc()

		return err
	}
}
