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

// DefaultOpenWeatherURL is the OpenWeatherMap current-weather endpoint.
const DefaultOpenWeatherURL = "http://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements sky.WeatherProvider for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	units   string
	baseURL string
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *resty.Client, baseURL, apiKey, units string, breaker BreakerConfig) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	if units == "" {
		units = "metric"
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		units:   units,
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("openweathermap", breaker),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Current returns the first reported weather condition for loc.
func (p *OpenWeatherProvider) Current(ctx context.Context, loc sky.Coordinates) (sky.WeatherSnapshot, error) {
	if p.apiKey == "" {
		return sky.WeatherSnapshot{}, p.fail(errMissingAPIKey)
	}

	values := url.Values{}
	values.Set("lat", formatCoord(loc.Latitude))
	values.Set("lon", formatCoord(loc.Longitude))
	values.Set("units", p.units)
	values.Set("APPID", p.apiKey)

	body, err := doGet(ctx, p.client, p.circuit, p.name, p.baseURL, values)
	if err != nil {
		return sky.WeatherSnapshot{}, err
	}

	var payload struct {
		Weather []struct {
			ID          *int   `json:"id"`
			Description string `json:"description"`
		} `json:"weather"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return sky.WeatherSnapshot{}, p.fail(fmt.Errorf("decode body: %w", err))
	}
	if len(payload.Weather) == 0 {
		return sky.WeatherSnapshot{}, p.fail(errEmptyConditions)
	}

	first := payload.Weather[0]
	if first.ID == nil {
		return sky.WeatherSnapshot{}, p.fail(fmt.Errorf("%w: weather[0].id", errMissingField))
	}

	return sky.WeatherSnapshot{
		ConditionCode: *first.ID,
		Description:   first.Description,
	}, nil
}

func (p *OpenWeatherProvider) fail(err error) error {
	return &sky.UpstreamError{Provider: p.name, Err: err}
}
