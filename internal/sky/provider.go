package sky

import "context"

// SatelliteProvider returns the current position of the tracked satellite.
type SatelliteProvider interface {
	Name() string
	Position(ctx context.Context) (Coordinates, error)
}

// SunProvider returns the sunrise/sunset window for a location.
type SunProvider interface {
	Name() string
	SunWindow(ctx context.Context, loc Coordinates) (SunWindow, error)
}

// WeatherProvider returns the current weather for a location.
type WeatherProvider interface {
	Name() string
	Current(ctx context.Context, loc Coordinates) (WeatherSnapshot, error)
}

// LocationStore holds the viewer location shared by all requests.
type LocationStore interface {
	Get() Coordinates
	Set(loc Coordinates)
}
