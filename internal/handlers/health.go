package handlers

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health and index endpoints
const Version = "1.0.0"

// productCounter is the interface for reading the catalog size
type productCounter interface {
	CountProducts(ctx context.Context) (int, error)
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	counter productCounter
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(counter productCounter, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		counter: counter,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Products  int       `json:"products"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	count, err := h.counter.CountProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to count products", "error", err)
		WriteError(w, http.StatusInternalServerError, msgInternalError, h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Products:  count,
	}, h.logger)
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Catalog API</title></head>
<body>
<h1>Catalog API</h1>
<p>Server is running (v{{.Version}}).</p>
<p>Available endpoints:</p>
<ul>
{{range .Endpoints}}<li><strong>{{.Method}} {{.Path}}</strong> - {{.Summary}}</li>
{{end}}</ul>
<p>Products in catalog: {{.Count}}</p>
</body>
</html>
`))

type endpoint struct {
	Method  string
	Path    string
	Summary string
}

var endpoints = []endpoint{
	{"GET", "/api/products", "list products (category, minPrice, maxPrice, inStock)"},
	{"GET", "/api/products/{id}", "get a product"},
	{"POST", "/api/products", "create a product"},
	{"PATCH", "/api/products/{id}", "update a product"},
	{"DELETE", "/api/products/{id}", "delete a product"},
	{"GET", "/api/categories", "list categories"},
	{"GET", "/health", "health check"},
}

// IndexHandler serves the HTML landing page
type IndexHandler struct {
	counter productCounter
	logger  *slog.Logger
}

// NewIndexHandler creates a new index handler
func NewIndexHandler(counter productCounter, logger *slog.Logger) *IndexHandler {
	return &IndexHandler{
		counter: counter,
		logger:  logger,
	}
}

// ServeHTTP renders the endpoint list and current product count
func (h *IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	count, err := h.counter.CountProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to count products", "error", err)
		WriteError(w, http.StatusInternalServerError, msgInternalError, h.logger)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	data := struct {
		Version   string
		Endpoints []endpoint
		Count     int
	}{Version, endpoints, count}

	if err := indexTemplate.Execute(w, data); err != nil {
		h.logger.Error("failed to render index page", "error", err)
	}
}
