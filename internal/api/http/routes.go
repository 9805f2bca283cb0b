package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/iss-finder/internal/metrics"
	"github.com/i474232898/iss-finder/internal/sky"
	"github.com/i474232898/iss-finder/internal/views"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names instead of Go struct field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type handlers struct {
	service *sky.Service
	logger  *slog.Logger
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *sky.Service, logger *slog.Logger) {
	h := &handlers{service: service, logger: logger}

	app.Get("/", h.index)
	app.Get("/refresh_iss_position", h.refreshISSPosition)
	app.Post("/update_location", h.updateLocation)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "issfinder",
		})
	})
	app.Get("/metrics", metrics.Handler())
}

func (h *handlers) index(c *fiber.Ctx) error {
	ov, err := h.service.Overview(c.UserContext())
	if err != nil {
		return h.renderErrorPage(c, err)
	}

	var buf bytes.Buffer
	if err := views.RenderIndex(&buf, views.NewIndexData(ov)); err != nil {
		h.logger.Error("index template render failed", "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render page")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// renderErrorPage answers a failed page load with an HTML body; the JSON
// error handler is the fallback when even that cannot be rendered.
func (h *handlers) renderErrorPage(c *fiber.Ctx, cause error) error {
	code, msg := classify(cause)

	var buf bytes.Buffer
	if err := views.RenderError(&buf, &views.ErrorData{Status: code, Message: msg}); err != nil {
		h.logger.Error("error template render failed", "error", err)
		return cause
	}
	c.Type("html", "utf-8")
	return c.Status(code).Send(buf.Bytes())
}

type refreshResponse struct {
	ISSLatitude  float64 `json:"iss_latitude"`
	ISSLongitude float64 `json:"iss_longitude"`
}

func (h *handlers) refreshISSPosition(c *fiber.Ctx) error {
	pos, err := h.service.ISSPosition(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(refreshResponse{
		ISSLatitude:  pos.Latitude,
		ISSLongitude: pos.Longitude,
	})
}

func (h *handlers) updateLocation(c *fiber.Ctx) error {
	loc, err := parseLocationUpdate(c.Body())
	if err != nil {
		return err
	}

	h.service.UpdateLocation(loc)
	metrics.IncLocationUpdates()
	return c.JSON(fiber.Map{"status": "success"})
}

// locationUpdate is the POST /update_location body. Pointers tell a missing
// key apart from an explicit zero.
type locationUpdate struct {
	Lat *float64 `json:"lat" validate:"required"`
	Lon *float64 `json:"lon" validate:"required"`
}

// parseLocationUpdate decodes and validates the body. Only presence and type
// are checked; coordinates outside the valid ranges are accepted.
func parseLocationUpdate(body []byte) (sky.Coordinates, error) {
	var req locationUpdate
	if err := json.Unmarshal(body, &req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return sky.Coordinates{}, &sky.MalformedRequestError{
				Field: typeErr.Field,
				Err:   fmt.Errorf("expected number, got %s", typeErr.Value),
			}
		}
		return sky.Coordinates{}, &sky.MalformedRequestError{Err: err}
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return sky.Coordinates{}, &sky.MalformedRequestError{
				Field: verrs[0].Field(),
				Err:   fmt.Errorf("failed %q validation", verrs[0].Tag()),
			}
		}
		return sky.Coordinates{}, &sky.MalformedRequestError{Err: err}
	}

	return sky.Coordinates{Latitude: *req.Lat, Longitude: *req.Lon}, nil
}
