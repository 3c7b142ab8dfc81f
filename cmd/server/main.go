package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/online-store/internal/config"
	"github.com/Lixing-Zhang/online-store/internal/models"
	"github.com/Lixing-Zhang/online-store/internal/repository"
	"github.com/Lixing-Zhang/online-store/internal/seed"
	"github.com/Lixing-Zhang/online-store/internal/server"
	"github.com/Lixing-Zhang/online-store/internal/service"
	"github.com/Lixing-Zhang/online-store/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting online store api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Seed the catalog
	products, err := loadCatalog(context.Background(), cfg, log)
	if err != nil {
		log.Error("failed to load seed catalog", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	productRepo := repository.NewInMemoryProductRepository(repository.WithProducts(products))

	// Initialize services
	productService := service.NewProductService(productRepo,
		service.WithPlaceholderImage(cfg.Catalog.PlaceholderImage),
	)

	// Create router
	handler := server.NewRouter(productService, log, server.Options{
		AllowedOrigin:  cfg.CORS.AllowedOrigin,
		RequestTimeout: time.Duration(cfg.Server.RequestTimeout) * time.Second,
	})

	// Create HTTP server
	addr := cfg.Address()
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

func loadCatalog(ctx context.Context, cfg *config.Config, log *slog.Logger) ([]models.Product, error) {
	if len(cfg.Catalog.SeedSources) == 0 {
		products := seed.DemoCatalog()
		log.Info("using built-in demo catalog", "products", len(products))
		return products, nil
	}

	log.Info("loading seed catalog...", "sources", len(cfg.Catalog.SeedSources))
	products, err := seed.NewLoader(nil).Load(ctx, cfg.Catalog.SeedSources)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if products[i].Image == "" {
			products[i].Image = cfg.Catalog.PlaceholderImage
		}
	}

	log.Info("seed catalog loaded successfully", "products", len(products))
	return products, nil
}
