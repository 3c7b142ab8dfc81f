package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/online-store/internal/catalogclient"
	"github.com/Lixing-Zhang/online-store/internal/storefront"
	"github.com/Lixing-Zhang/online-store/pkg/logger"
)

func main() {
	apiURL := flag.String("api", "http://localhost:3000/api", "catalog API base URL")
	themeName := flag.String("theme", string(storefront.ThemeDark), "initial theme (dark or light)")
	logLevel := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	timeout := flag.Duration("timeout", 10*time.Second, "per-request timeout")
	flag.Parse()

	log := logger.NewWithWriter(os.Stderr, *logLevel)

	theme, err := storefront.ParseTheme(*themeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid theme: %v\n", err)
		os.Exit(2)
	}

	client, err := catalogclient.New(*apiURL, catalogclient.WithHTTPClient(&http.Client{Timeout: *timeout}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid API URL: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sh := newShell(os.Stdin, os.Stdout)
	sh.page = storefront.NewPage(client,
		storefront.WithAlerter(sh),
		storefront.WithConfirmer(sh),
		storefront.WithLogger(log),
		storefront.WithTheme(theme),
	)

	err = sh.run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stdout)
		return
	}
	if err != nil {
		log.Error("storefront stopped", "error", err)
		os.Exit(1)
	}
}
