package providers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/i474232898/iss-finder/internal/metrics"
	"github.com/i474232898/iss-finder/internal/sky"
)

// BreakerConfig controls when a provider's circuit breaker opens.
type BreakerConfig struct {
	ConsecutiveFailures uint32
	OpenTimeout         time.Duration
}

// DefaultBreaker opens after five straight failures and probes again after 30s.
var DefaultBreaker = BreakerConfig{
	ConsecutiveFailures: 5,
	OpenTimeout:         30 * time.Second,
}

var (
	errNoHTTPClient     = errors.New("http client not configured")
	errUnexpectedStatus = errors.New("unexpected status code")
	errMissingAPIKey    = errors.New("api key is not configured")
	errEmptyConditions  = errors.New("weather conditions list is empty")
	errMissingField     = errors.New("missing field")
)

// NewHTTPClient builds the shared resty client used for outbound provider calls.
// Retries stay disabled: every provider call is exactly one round trip.
func NewHTTPClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
}

func newCircuitBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	threshold := cfg.ConsecutiveFailures
	if threshold == 0 {
		threshold = DefaultBreaker.ConsecutiveFailures
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	})
}

// doGet issues a single GET through the circuit breaker and returns the body
// of a 2xx response. Every failure comes back as *sky.UpstreamError.
func doGet(
	ctx context.Context,
	client *resty.Client,
	cb *gobreaker.CircuitBreaker,
	provider string,
	endpoint string,
	params url.Values,
) (body []byte, err error) {
	start := time.Now()
	outcome := metrics.OutcomeSuccess
	defer func() {
		metrics.ObserveUpstream(provider, outcome, time.Since(start))
	}()

	if client == nil {
		outcome = metrics.OutcomeError
		return nil, &sky.UpstreamError{Provider: provider, Err: errNoHTTPClient}
	}

	status := 0
	result, err := cb.Execute(func() (interface{}, error) {
		resp, reqErr := client.R().
			SetContext(ctx).
			SetQueryParamsFromValues(params).
			Get(endpoint)
		if reqErr != nil {
			// Drop the request URL; it carries the API key for some providers.
			var uerr *url.Error
			if errors.As(reqErr, &uerr) {
				return nil, fmt.Errorf("%s: %w", uerr.Op, uerr.Err)
			}
			return nil, reqErr
		}
		status = resp.StatusCode()
		if !resp.IsSuccess() {
			return nil, fmt.Errorf("%w: %s", errUnexpectedStatus, strings.TrimSpace(string(resp.Body())))
		}
		return resp.Body(), nil
	})
	if err != nil {
		outcome = metrics.OutcomeError
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = metrics.OutcomeCircuitOpen
			status = 0
		}
		return nil, &sky.UpstreamError{Provider: provider, StatusCode: status, Err: err}
	}

	b, ok := result.([]byte)
	if !ok {
		outcome = metrics.OutcomeError
		return nil, &sky.UpstreamError{Provider: provider, StatusCode: status, Err: fmt.Errorf("unexpected result type from circuit breaker")}
	}
	return b, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
