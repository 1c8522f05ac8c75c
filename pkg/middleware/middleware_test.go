package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/device-inventory/pkg/middleware"
)

func ok() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if buf.Len() > 0 {
			t.Error("log was written before handler completed")
		}
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/devices?x=1", nil))

	out := buf.String()
	for _, want := range []string{"request", "method=GET", "/api/devices?x=1", "status=418", "duration"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestCORS(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           600,
	}

	tests := []struct {
		name       string
		cfg        *middleware.CORSConfig
		method     string
		origin     string
		wantOrigin string
		wantCalled bool
	}{
		{"allowed origin", cfg, http.MethodGet, "http://localhost:3000", "http://localhost:3000", true},
		{"disallowed origin", cfg, http.MethodGet, "http://evil.example", "", true},
		{"no origin", cfg, http.MethodGet, "", "", true},
		{"disabled", &middleware.CORSConfig{Origins: cfg.Origins}, http.MethodGet, "http://localhost:3000", "", true},
		{"preflight", cfg, http.MethodOptions, "http://localhost:3000", "http://localhost:3000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := middleware.CORS(tt.cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(tt.method, "/", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called = %v, want %v", called, tt.wantCalled)
			}
			if tt.method == http.MethodOptions && w.Code != http.StatusOK {
				t.Errorf("preflight status = %d, want 200", w.Code)
			}
			if tt.wantOrigin != "" {
				h := w.Header()
				if h.Get("Access-Control-Allow-Methods") != "GET, POST" {
					t.Errorf("Allow-Methods = %q", h.Get("Access-Control-Allow-Methods"))
				}
				if h.Get("Access-Control-Allow-Credentials") != "true" {
					t.Error("Allow-Credentials not set")
				}
				if h.Get("Access-Control-Max-Age") != "600" {
					t.Errorf("Max-Age = %q, want 600", h.Get("Access-Control-Max-Age"))
				}
			}
		})
	}
}

func TestCORSConfig_Finalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := &middleware.CORSConfig{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if len(cfg.AllowedMethods) == 0 || len(cfg.AllowedHeaders) == 0 || cfg.MaxAge != 3600 {
			t.Errorf("defaults not applied: %+v", cfg)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_CORS_ENABLED", "true")
		t.Setenv("TEST_CORS_ORIGINS", "http://a.example, http://b.example ,")
		t.Setenv("TEST_CORS_MAX_AGE", "60")

		cfg := &middleware.CORSConfig{}
		env := &middleware.CORSEnv{
			Enabled: "TEST_CORS_ENABLED",
			Origins: "TEST_CORS_ORIGINS",
			MaxAge:  "TEST_CORS_MAX_AGE",
		}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}

		if !cfg.Enabled {
			t.Error("Enabled = false, want true")
		}
		if len(cfg.Origins) != 2 || cfg.Origins[0] != "http://a.example" || cfg.Origins[1] != "http://b.example" {
			t.Errorf("Origins = %v", cfg.Origins)
		}
		if cfg.MaxAge != 60 {
			t.Errorf("MaxAge = %d, want 60", cfg.MaxAge)
		}
	})
}

func TestCORSConfig_Merge(t *testing.T) {
	base := &middleware.CORSConfig{
		Origins:        []string{"http://base"},
		AllowedMethods: []string{"GET"},
		MaxAge:         3600,
	}

	base.Merge(&middleware.CORSConfig{Enabled: true, Origins: []string{"http://overlay"}})

	if !base.Enabled {
		t.Error("Enabled not merged")
	}
	if base.Origins[0] != "http://overlay" {
		t.Errorf("Origins = %v", base.Origins)
	}
	if len(base.AllowedMethods) != 1 || base.AllowedMethods[0] != "GET" {
		t.Errorf("AllowedMethods = %v, want base preserved", base.AllowedMethods)
	}
	if base.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want base preserved", base.MaxAge)
	}
}
