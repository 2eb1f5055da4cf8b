package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"imagesearch/internal/contextutil"
)

func TestLoggerMiddleware(t *testing.T) {
	var capturedCtx context.Context
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedCtx = r.Context()
		w.WriteHeader(http.StatusOK)
	})

	middleware := LoggerMiddleware(handler)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	middleware.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("LoggerMiddleware() status = %v, want %v", w.Code, http.StatusOK)
	}

	if capturedCtx == nil {
		t.Fatal("LoggerMiddleware() should capture context")
	}
	// The handler-facing accessor must see the request logger, not the default
	logger := contextutil.LoggerFromContext(capturedCtx)
	if logger == slog.Default() {
		t.Error("LoggerMiddleware() should add a request logger to the context")
	}
}

func TestCORS(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		method     string
		origin     string
		wantStatus int
		wantOrigin string
	}{
		{
			name:       "request with origin",
			method:     http.MethodPost,
			origin:     "https://app.example.com",
			wantStatus: http.StatusOK,
			wantOrigin: "https://app.example.com",
		},
		{
			name:       "request without origin",
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
			wantOrigin: "*",
		},
		{
			name:       "preflight short-circuits",
			method:     http.MethodOptions,
			origin:     "https://app.example.com",
			wantStatus: http.StatusNoContent,
			wantOrigin: "https://app.example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/search", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()

			CORS(handler).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("CORS() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}
