package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/i474232898/iss-finder/internal/sky"
)

func fakeProviders(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/iss":
			_, _ = io.WriteString(w, `{"iss_position":{"latitude":"12.34","longitude":"-56.78"}}`)
		case "/sun":
			_, _ = io.WriteString(w, `{"results":{"sunrise":"2024-01-01T05:10:00+00:00","sunset":"2024-01-01T19:45:00+00:00"}}`)
		case "/weather":
			if r.URL.Query().Get("APPID") != "cli-key" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			_, _ = io.WriteString(w, `{"weather":[{"id":801,"description":"few clouds"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setEnv(t *testing.T, srvURL string) {
	t.Helper()
	testChdir(t, t.TempDir())
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("OW_API_KEY", "cli-key")
	t.Setenv("OPENWEATHER_API_KEY", "")
	t.Setenv("ISS_URL", srvURL+"/iss")
	t.Setenv("SUN_URL", srvURL+"/sun")
	t.Setenv("WEATHER_URL", srvURL+"/weather")
	t.Setenv("DEFAULT_LAT", "")
	t.Setenv("DEFAULT_LON", "")
	t.Setenv("HTTP_TIMEOUT", "2s")
}

func TestStatusCommand(t *testing.T) {
	srv := fakeProviders(t)
	setEnv(t, srv.URL)

	var out bytes.Buffer
	cmd := New()
	cmd.SetArgs([]string{"status", "--lat", "10"})
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("status: %v", err)
	}

	var ov sky.Overview
	if err := json.Unmarshal(out.Bytes(), &ov); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	if ov.Weather.ConditionCode != 801 || ov.Weather.Description != "few clouds" {
		t.Errorf("Weather = %+v", ov.Weather)
	}
	if ov.ISS.Latitude != 12.34 || ov.ISS.Longitude != -56.78 {
		t.Errorf("ISS = %+v", ov.ISS)
	}
	if ov.Viewer.Latitude != 10 || ov.Viewer.Longitude != 152.919906 {
		t.Errorf("Viewer = %+v; want lat override with default lon", ov.Viewer)
	}
	if ov.Sun.SunriseDisplayHour != 15 || ov.Sun.SunsetDisplayHour != 5 || ov.Sun.SunsetDisplayMinute != 45 {
		t.Errorf("Sun = %+v", ov.Sun)
	}
}

func TestStatusCommand_upstreamFailure(t *testing.T) {
	srv := fakeProviders(t)
	setEnv(t, srv.URL)
	t.Setenv("OW_API_KEY", "wrong-key")

	cmd := New()
	cmd.SetArgs([]string{"status"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(context.Background())
	if !sky.IsUpstream(err) {
		t.Fatalf("status error = %v; want upstream error", err)
	}
}

func TestRootRejectsArgs(t *testing.T) {
	cmd := New()
	cmd.SetArgs([]string{"bogus"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(context.Background())
	if err == nil || !strings.Contains(err.Error(), "bogus") {
		t.Fatalf("err = %v; want unknown command error", err)
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
