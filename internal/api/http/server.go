package httpapi

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/i474232898/iss-finder/internal/metrics"
	"github.com/i474232898/iss-finder/internal/sky"
	"github.com/i474232898/iss-finder/internal/views"
)

// NewApp builds the Fiber app with middleware, static assets and routes.
// Access log lines go to accessLog.
func NewApp(service *sky.Service, log *slog.Logger, accessLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "issfinder",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          ErrorHandler(log),
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${latency} ${method} ${path}\n",
		Output: accessLog,
	}))
	app.Use(metrics.Middleware())
	app.Use(recover.New())

	app.Use("/static", filesystem.New(filesystem.Config{
		Root: http.FS(views.Static()),
	}))

	RegisterRoutes(app, service, log)
	return app
}
