package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/iss-finder/internal/sky"
)

// DefaultSunriseSunsetURL is the sunrise-sunset.org JSON endpoint.
const DefaultSunriseSunsetURL = "https://api.sunrise-sunset.org/json"

// SunriseSunsetProvider implements sky.SunProvider for sunrise-sunset.org.
type SunriseSunsetProvider struct {
	name    string
	baseURL string
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
}

func NewSunriseSunsetProvider(client *resty.Client, baseURL string, breaker BreakerConfig) *SunriseSunsetProvider {
	if baseURL == "" {
		baseURL = DefaultSunriseSunsetURL
	}
	return &SunriseSunsetProvider{
		name:    "sunrise-sunset",
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("sunrise-sunset", breaker),
	}
}

func (p *SunriseSunsetProvider) Name() string {
	return p.name
}

// SunWindow asks for unformatted (ISO-8601) times and applies the display-hour rule.
func (p *SunriseSunsetProvider) SunWindow(ctx context.Context, loc sky.Coordinates) (sky.SunWindow, error) {
	values := url.Values{}
	values.Set("lat", formatCoord(loc.Latitude))
	values.Set("lng", formatCoord(loc.Longitude))
	values.Set("formatted", "0")

	body, err := doGet(ctx, p.client, p.circuit, p.name, p.baseURL, values)
	if err != nil {
		return sky.SunWindow{}, err
	}

	var payload struct {
		Results *struct {
			Sunrise string `json:"sunrise"`
			Sunset  string `json:"sunset"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return sky.SunWindow{}, p.fail(fmt.Errorf("decode body: %w", err))
	}
	if payload.Results == nil {
		return sky.SunWindow{}, p.fail(fmt.Errorf("%w: results", errMissingField))
	}

	win, err := sky.TransformSunWindow(payload.Results.Sunrise, payload.Results.Sunset)
	if err != nil {
		return sky.SunWindow{}, p.fail(err)
	}
	return win, nil
}

func (p *SunriseSunsetProvider) fail(err error) error {
	return &sky.UpstreamError{Provider: p.name, Err: err}
}
