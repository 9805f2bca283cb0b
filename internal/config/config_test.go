package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/i474232898/iss-finder/internal/sky/providers"
)

// clearEnv blanks every variable Load reads so the host environment does
// not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "PORT", "OW_API_KEY", "OPENWEATHER_API_KEY",
		"WEATHER_UNITS", "WEATHER_URL", "ISS_URL", "SUN_URL", "HTTP_TIMEOUT",
		"DEFAULT_LAT", "DEFAULT_LON",
	} {
		t.Setenv(k, "")
	}
	// Run from an empty dir so no stray .env is picked up.
	testChdir(t, t.TempDir())
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultLocation.Latitude != DefaultLatitude || cfg.DefaultLocation.Longitude != DefaultLongitude {
		t.Errorf("DefaultLocation = %+v", cfg.DefaultLocation)
	}
	if cfg.Port != "8080" || cfg.AppEnv != "dev" || cfg.LogLevel != slog.LevelInfo {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.WeatherURL != providers.DefaultOpenWeatherURL || cfg.ISSURL != providers.DefaultOpenNotifyURL || cfg.SunURL != providers.DefaultSunriseSunsetURL {
		t.Errorf("unexpected default URLs: %+v", cfg)
	}
	if cfg.HTTPTimeout != 10*time.Second || cfg.WeatherUnits != "metric" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.OpenWeatherAPIKey != "" {
		t.Errorf("OpenWeatherAPIKey = %q; want empty", cfg.OpenWeatherAPIKey)
	}
}

func TestLoad_envOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
app_env: prod
log_level: warn
port: "9000"
openweather_api_key: from-file
http_timeout: 3s
urls:
  iss: http://file.example/iss
default_location:
  lat: 1.5
  lon: 2.5
`)
	t.Setenv("OW_API_KEY", "from-env")
	t.Setenv("DEFAULT_LON", "-120.25")
	t.Setenv("SUN_URL", "http://env.example/sun")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AppEnv != "prod" || cfg.LogLevel != slog.LevelWarn || cfg.Port != "9000" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.OpenWeatherAPIKey != "from-env" {
		t.Errorf("OpenWeatherAPIKey = %q; want from-env", cfg.OpenWeatherAPIKey)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %v; want 3s", cfg.HTTPTimeout)
	}
	if cfg.ISSURL != "http://file.example/iss" || cfg.SunURL != "http://env.example/sun" {
		t.Errorf("URLs = %q %q", cfg.ISSURL, cfg.SunURL)
	}
	if cfg.DefaultLocation.Latitude != 1.5 || cfg.DefaultLocation.Longitude != -120.25 {
		t.Errorf("DefaultLocation = %+v", cfg.DefaultLocation)
	}
}

func TestLoad_legacyAPIKeyName(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENWEATHER_API_KEY", "legacy")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OpenWeatherAPIKey != "legacy" {
		t.Errorf("OpenWeatherAPIKey = %q; want legacy", cfg.OpenWeatherAPIKey)
	}
}

func TestLoad_invalid(t *testing.T) {
	cases := map[string]string{
		"APP_ENV":      "staging",
		"LOG_LEVEL":    "loud",
		"HTTP_TIMEOUT": "soon",
		"DEFAULT_LAT":  "north",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := Load(""); err == nil {
				t.Fatalf("Load() with %s=%q = nil error; want error", key, value)
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load(missing file) = nil error; want error")
	}
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which requires Go 1.24).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
