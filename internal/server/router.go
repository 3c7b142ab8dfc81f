// Package server assembles the catalog API router.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/online-store/internal/handlers"
	"github.com/Lixing-Zhang/online-store/internal/middleware"
	"github.com/Lixing-Zhang/online-store/internal/service"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options configures the router
type Options struct {
	AllowedOrigin  string
	RequestTimeout time.Duration
}

// NewRouter wires middleware and routes around the product service
func NewRouter(productService *service.ProductService, log *slog.Logger, opts Options) http.Handler {
	healthHandler := handlers.NewHealthHandler(productService, log)
	indexHandler := handlers.NewIndexHandler(productService, log)
	productHandler := handlers.NewProductHandler(productService, log)
	notFound := handlers.NotFound(log)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recoverer(log))
	if opts.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(opts.RequestTimeout))
	}

	// CORS configuration: only the storefront origin
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Get("/", indexHandler.ServeHTTP)
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.ListProducts)
		r.Post("/products", productHandler.CreateProduct)
		r.Get("/products/{productId}", productHandler.GetProduct)
		r.Patch("/products/{productId}", productHandler.UpdateProduct)
		r.Delete("/products/{productId}", productHandler.DeleteProduct)

		r.Get("/categories", productHandler.ListCategories)
	})

	return r
}
