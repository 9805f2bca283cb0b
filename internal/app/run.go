package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	httpapi "github.com/i474232898/iss-finder/internal/api/http"
	"github.com/i474232898/iss-finder/internal/config"
	"github.com/i474232898/iss-finder/internal/sky"
	"github.com/i474232898/iss-finder/internal/sky/providers"
	"github.com/i474232898/iss-finder/internal/store"
	"github.com/i474232898/iss-finder/internal/views"
)

// NewService wires the providers and the viewer location store.
func NewService(cfg *config.AppConfig, logger *slog.Logger) *sky.Service {
	// Shared HTTP client for outbound provider calls.
	client := providers.NewHTTPClient(cfg.HTTPTimeout)

	if cfg.OpenWeatherAPIKey == "" {
		logger.Warn("OW_API_KEY is not set; weather lookups will fail")
	}

	return sky.NewService(
		store.NewMemoryLocationStore(cfg.DefaultLocation),
		providers.NewOpenNotifyProvider(client, cfg.ISSURL, providers.DefaultBreaker),
		providers.NewSunriseSunsetProvider(client, cfg.SunURL, providers.DefaultBreaker),
		providers.NewOpenWeatherProvider(client, cfg.WeatherURL, cfg.OpenWeatherAPIKey, cfg.WeatherUnits, providers.DefaultBreaker),
		logger,
	)
}

// NewServer loads templates and builds the HTTP app.
func NewServer(cfg *config.AppConfig, logger *slog.Logger, accessLog io.Writer) (*fiber.App, error) {
	if err := views.LoadTemplates(); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	return httpapi.NewApp(NewService(cfg, logger), logger, accessLog), nil
}

// Serve runs the HTTP server on addr until ctx is cancelled, then shuts down
// gracefully.
func Serve(ctx context.Context, srv *fiber.App, addr string, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr)
		errCh <- srv.Listen(addr)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
