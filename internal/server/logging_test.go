package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })
	return &buf
}

func TestSlogMiddleware_LogsRequest(t *testing.T) {
	buf := captureLogs(t)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(slogMiddleware)
	r.Get("/p/{slug}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("hello"))
	})

	req := httptest.NewRequest(http.MethodGet, "/p/1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	output := buf.String()
	if output == "" {
		t.Fatal("expected log output, got empty string")
	}

	expectedFields := []string{
		"method=GET",
		"path=/p/1",
		"status=200",
		"bytes=5",
		"request_id=",
		"remote_addr=",
		"duration_ms=",
	}
	for _, field := range expectedFields {
		if !bytes.Contains([]byte(output), []byte(field)) {
			t.Errorf("expected log to contain %q, got: %s", field, output)
		}
	}
}

func TestSlogMiddleware_SkipsQuietPaths(t *testing.T) {
	for _, path := range []string{"/api/health", "/admin/assets/app.js"} {
		t.Run(path, func(t *testing.T) {
			buf := captureLogs(t)

			r := chi.NewRouter()
			r.Use(slogMiddleware)
			r.Get(path, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			if rec.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", rec.Code)
			}
			if buf.String() != "" {
				t.Errorf("expected no log output for %s, got: %s", path, buf.String())
			}
		})
	}
}

func TestSlogMiddleware_LogsRedirectStatus(t *testing.T) {
	buf := captureLogs(t)

	r := chi.NewRouter()
	r.Use(slogMiddleware)
	r.Get("/p/{slug}/click", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "https://www.tiktok.com/", http.StatusFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/p/1/click", nil))

	if !bytes.Contains(buf.Bytes(), []byte("status=302")) {
		t.Errorf("expected log to contain status=302, got: %s", buf.String())
	}
}
