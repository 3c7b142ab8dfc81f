package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Lixing-Zhang/online-store/pkg/logger"
)

// mockCounter implements productCounter for testing
type mockCounter struct {
	count int
	err   error
}

func (m *mockCounter) CountProducts(ctx context.Context) (int, error) {
	return m.count, m.err
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler(&mockCounter{count: 7}, logger.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "healthy" || response.Version != Version || response.Products != 7 {
		t.Errorf("unexpected health response: %+v", response)
	}
	if response.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestHealthHandler_CounterFailure(t *testing.T) {
	handler := NewHealthHandler(&mockCounter{err: errors.New("unavailable")}, logger.New("error"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
}

func TestIndexHandler(t *testing.T) {
	handler := NewIndexHandler(&mockCounter{count: 5}, logger.New("error"))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %s", ct)
	}

	body := w.Body.String()
	for _, want := range []string{"Products in catalog: 5", "/api/products", "/api/categories"} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	NotFound(logger.New("error"))(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if msg := decodeError(t, w); msg != "route not found" {
		t.Errorf("error = %q, want route not found", msg)
	}
}
