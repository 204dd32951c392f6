// Package http содержит компоненты для HTTP сервера.
package http

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"notekeeper/internal/notes/adapters/http/errorhandler"
	"notekeeper/internal/notes/adapters/http/middleware"
	"notekeeper/internal/notes/adapters/http/notes"
	"notekeeper/internal/notes/metrics"
	"notekeeper/internal/notes/ports/api"
	"notekeeper/pkg/timefmt"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options - зависимости маршрутизатора.
type Options struct {
	Clock *timefmt.Formatter
	// Metrics и Gatherer равны nil, если метрики выключены.
	Metrics     *metrics.Manager
	Gatherer    prometheus.Gatherer
	MetricsPath string
	// Health может быть nil, тогда /health не регистрируется.
	Health Pinger
}

// NewApp создает fiber.App с общим обработчиком ошибок.
func NewApp(clock *timefmt.Formatter, readTimeout, writeTimeout time.Duration) *fiber.App {
	return fiber.New(fiber.Config{
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		ErrorHandler: errorhandler.New(clock),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})
}

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, notesService api.NoteService, opts Options) {
	notesHandler := notes.NewHandler(notesService)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	if opts.Metrics != nil {
		app.Use(middleware.NewMetricsMiddleware(opts.Metrics))
	}
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware(opts.Metrics))

	if opts.Metrics != nil && opts.Gatherer != nil {
		app.Get(opts.MetricsPath, adaptor.HTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	if opts.Health != nil {
		app.Get("/health", newHealthHandler(opts.Clock, opts.Health))
	}

	// Маршруты заметок.
	noteRoutes := app.Group("/note")
	noteRoutes.Get("/all", notesHandler.List)
	noteRoutes.Get("/filter", notesHandler.Filter)
	noteRoutes.Post("/add", notesHandler.Create)
	noteRoutes.Put("/update", notesHandler.Update)
	noteRoutes.Delete("/delete/:noteId", notesHandler.Delete)

	app.All("/error", errorhandler.NoRoute)

	// Обработчик для несуществующих маршрутов.
	app.Use(fiber.Handler(errorhandler.NoRoute))
}
