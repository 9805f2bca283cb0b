package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/i474232898/iss-finder/internal/sky"
	"github.com/i474232898/iss-finder/internal/sky/providers"
)

// Built-in defaults used when neither the config file nor the environment
// sets a value.
const (
	DefaultLatitude    = -27.407260
	DefaultLongitude   = 152.919906
	DefaultPort        = "8080"
	DefaultUnits       = "metric"
	DefaultHTTPTimeout = 10 * time.Second
)

type AppConfig struct {
	AppEnv   string
	LogLevel slog.Level
	Port     string

	OpenWeatherAPIKey string
	WeatherUnits      string

	// Upstream endpoints.
	WeatherURL string
	ISSURL     string
	SunURL     string

	// DefaultLocation seeds the viewer location at startup.
	DefaultLocation sky.Coordinates

	HTTPTimeout time.Duration
}

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	AppEnv            string `yaml:"app_env"`
	LogLevel          string `yaml:"log_level"`
	Port              string `yaml:"port"`
	OpenWeatherAPIKey string `yaml:"openweather_api_key"`
	WeatherUnits      string `yaml:"weather_units"`
	HTTPTimeout       string `yaml:"http_timeout"`
	URLs              struct {
		Weather string `yaml:"weather"`
		ISS     string `yaml:"iss"`
		Sun     string `yaml:"sun"`
	} `yaml:"urls"`
	DefaultLocation struct {
		Lat *float64 `yaml:"lat"`
		Lon *float64 `yaml:"lon"`
	} `yaml:"default_location"`
}

// Load builds the configuration. Precedence, highest first: environment
// (including a .env file in the working directory), the YAML file at path
// when path is non-empty, then the built-in defaults.
func Load(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &AppConfig{
		AppEnv:       "dev",
		LogLevel:     slog.LevelInfo,
		Port:         DefaultPort,
		WeatherUnits: DefaultUnits,
		WeatherURL:   providers.DefaultOpenWeatherURL,
		ISSURL:       providers.DefaultOpenNotifyURL,
		SunURL:       providers.DefaultSunriseSunsetURL,
		DefaultLocation: sky.Coordinates{
			Latitude:  DefaultLatitude,
			Longitude: DefaultLongitude,
		},
		HTTPTimeout: DefaultHTTPTimeout,
	}

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.AppEnv != "" {
		c.AppEnv = fc.AppEnv
	}
	if fc.LogLevel != "" {
		level, err := parseLogLevel(fc.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}
	if fc.Port != "" {
		c.Port = fc.Port
	}
	if fc.OpenWeatherAPIKey != "" {
		c.OpenWeatherAPIKey = fc.OpenWeatherAPIKey
	}
	if fc.WeatherUnits != "" {
		c.WeatherUnits = fc.WeatherUnits
	}
	if fc.HTTPTimeout != "" {
		d, err := time.ParseDuration(fc.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("invalid http_timeout: %w", err)
		}
		c.HTTPTimeout = d
	}
	if fc.URLs.Weather != "" {
		c.WeatherURL = fc.URLs.Weather
	}
	if fc.URLs.ISS != "" {
		c.ISSURL = fc.URLs.ISS
	}
	if fc.URLs.Sun != "" {
		c.SunURL = fc.URLs.Sun
	}
	if fc.DefaultLocation.Lat != nil {
		c.DefaultLocation.Latitude = *fc.DefaultLocation.Lat
	}
	if fc.DefaultLocation.Lon != nil {
		c.DefaultLocation.Longitude = *fc.DefaultLocation.Lon
	}
	return nil
}

func (c *AppConfig) applyEnv() error {
	c.AppEnv = getenvDefault("APP_ENV", c.AppEnv)
	switch c.AppEnv {
	case "dev", "prod":
	default:
		return fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", c.AppEnv)
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return err
		}
		c.LogLevel = level
	}

	c.Port = getenvDefault("PORT", c.Port)
	c.OpenWeatherAPIKey = getenvDefault("OW_API_KEY", getenvDefault("OPENWEATHER_API_KEY", c.OpenWeatherAPIKey))
	c.WeatherUnits = getenvDefault("WEATHER_UNITS", c.WeatherUnits)
	c.WeatherURL = getenvDefault("WEATHER_URL", c.WeatherURL)
	c.ISSURL = getenvDefault("ISS_URL", c.ISSURL)
	c.SunURL = getenvDefault("SUN_URL", c.SunURL)

	timeoutStr := getenvDefault("HTTP_TIMEOUT", c.HTTPTimeout.String())
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	c.HTTPTimeout = timeout

	lat, err := getenvFloat("DEFAULT_LAT", c.DefaultLocation.Latitude)
	if err != nil {
		return err
	}
	lon, err := getenvFloat("DEFAULT_LON", c.DefaultLocation.Longitude)
	if err != nil {
		return err
	}
	c.DefaultLocation = sky.Coordinates{Latitude: lat, Longitude: lon}

	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", s)
	}
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return f, nil
}
