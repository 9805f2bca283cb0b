package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/iss-finder/internal/sky"
)

// DefaultOpenNotifyURL is the open-notify "ISS now" endpoint.
const DefaultOpenNotifyURL = "http://api.open-notify.org/iss-now.json"

// OpenNotifyProvider implements sky.SatelliteProvider for open-notify.org.
type OpenNotifyProvider struct {
	name    string
	baseURL string
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenNotifyProvider(client *resty.Client, baseURL string, breaker BreakerConfig) *OpenNotifyProvider {
	if baseURL == "" {
		baseURL = DefaultOpenNotifyURL
	}
	return &OpenNotifyProvider{
		name:    "open-notify",
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("open-notify", breaker),
	}
}

func (p *OpenNotifyProvider) Name() string {
	return p.name
}

// Position returns the current ISS latitude/longitude. The upstream sends
// both as decimal strings.
func (p *OpenNotifyProvider) Position(ctx context.Context) (sky.Coordinates, error) {
	body, err := doGet(ctx, p.client, p.circuit, p.name, p.baseURL, nil)
	if err != nil {
		return sky.Coordinates{}, err
	}

	var payload struct {
		ISSPosition *struct {
			Latitude  string `json:"latitude"`
			Longitude string `json:"longitude"`
		} `json:"iss_position"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return sky.Coordinates{}, p.fail(fmt.Errorf("decode body: %w", err))
	}
	if payload.ISSPosition == nil {
		return sky.Coordinates{}, p.fail(fmt.Errorf("%w: iss_position", errMissingField))
	}

	lat, err := strconv.ParseFloat(payload.ISSPosition.Latitude, 64)
	if err != nil {
		return sky.Coordinates{}, p.fail(fmt.Errorf("parse latitude: %w", err))
	}
	lon, err := strconv.ParseFloat(payload.ISSPosition.Longitude, 64)
	if err != nil {
		return sky.Coordinates{}, p.fail(fmt.Errorf("parse longitude: %w", err))
	}

	return sky.Coordinates{Latitude: lat, Longitude: lon}, nil
}

func (p *OpenNotifyProvider) fail(err error) error {
	return &sky.UpstreamError{Provider: p.name, Err: err}
}
