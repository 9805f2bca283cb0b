package httpapi

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/iss-finder/internal/sky"
)

// classify maps an error onto the HTTP status and the message shown to the
// client. Upstream details stay in the logs: the request URL of a failed
// weather call carries the API key.
func classify(err error) (int, string) {
	var (
		fe *fiber.Error
		ue *sky.UpstreamError
		me *sky.MalformedRequestError
	)
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.As(err, &ue):
		return fiber.StatusBadGateway, "upstream provider " + ue.Provider + " is unavailable"
	case errors.As(err, &me):
		return fiber.StatusBadRequest, me.Error()
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}

// ErrorHandler is the centralized Fiber error handler.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, msg := classify(err)
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"error", err,
			)
		}
		return c.Status(code).JSON(fiber.Map{
			"error":   true,
			"message": msg,
		})
	}
}
