package sky

import (
	"context"
	"log/slog"
	"time"
)

// Service composes the upstream providers and the viewer location store.
type Service struct {
	store     LocationStore
	satellite SatelliteProvider
	sun       SunProvider
	weather   WeatherProvider
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new Service.
func NewService(store LocationStore, satellite SatelliteProvider, sun SunProvider, weather WeatherProvider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		satellite: satellite,
		sun:       sun,
		weather:   weather,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for the night check.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Overview fetches weather, satellite position and sun window one after the
// other for the current viewer location. The first failure aborts the rest;
// nothing partial is returned.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	viewer := s.store.Get()

	w, err := s.weather.Current(ctx, viewer)
	if err != nil {
		s.logger.Warn("weather fetch failed", "provider", s.weather.Name(), "error", err)
		return Overview{}, err
	}

	iss, err := s.satellite.Position(ctx)
	if err != nil {
		s.logger.Warn("satellite fetch failed", "provider", s.satellite.Name(), "error", err)
		return Overview{}, err
	}

	sun, err := s.sun.SunWindow(ctx, viewer)
	if err != nil {
		s.logger.Warn("sun window fetch failed", "provider", s.sun.Name(), "error", err)
		return Overview{}, err
	}

	return Overview{
		Weather: w,
		ISS:     iss,
		Viewer:  viewer,
		Sun:     sun,
		Advice:  Advise(s.now(), w, viewer, iss, sun),
	}, nil
}

// ISSPosition fetches only the satellite position.
func (s *Service) ISSPosition(ctx context.Context) (Coordinates, error) {
	pos, err := s.satellite.Position(ctx)
	if err != nil {
		s.logger.Warn("satellite fetch failed", "provider", s.satellite.Name(), "error", err)
		return Coordinates{}, err
	}
	return pos, nil
}

// Viewer returns the current viewer location.
func (s *Service) Viewer() Coordinates {
	return s.store.Get()
}

// UpdateLocation overwrites the viewer location. Values are stored as given,
// without range checks.
func (s *Service) UpdateLocation(loc Coordinates) {
	s.store.Set(loc)
	s.logger.Debug("viewer location updated", "lat", loc.Latitude, "lon", loc.Longitude)
}
