// Package seed loads the startup catalog from local files or URLs.
package seed

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/Lixing-Zhang/online-store/internal/models"
)

// Loader reads product seed documents. A document is either a JSON array of
// products or a listing body ({"count": n, "products": [...]}), optionally gzipped.
type Loader struct {
	client *http.Client
}

// sourceResult holds the result of loading a single source
type sourceResult struct {
	index    int
	products []models.Product
	err      error
}

// NewLoader creates a loader using client for http(s) sources; nil means a default client
func NewLoader(client *http.Client) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Loader{client: client}
}

// Load reads all sources concurrently and concatenates their products in source order.
// Returns error if any source fails to load.
func (l *Loader) Load(ctx context.Context, sources []string) ([]models.Product, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no seed sources provided")
	}

	resultChan := make(chan sourceResult, len(sources))
	var wg sync.WaitGroup

	for i, source := range sources {
		wg.Add(1)
		go func(index int, src string) {
			defer wg.Done()

			products, err := l.loadSource(ctx, src)
			resultChan <- sourceResult{
				index:    index,
				products: products,
				err:      err,
			}
		}(i, source)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	// Collect results maintaining order
	results := make([]sourceResult, len(sources))
	for result := range resultChan {
		results[result.index] = result
	}

	var products []models.Product
	for i, result := range results {
		if result.err != nil {
			return nil, fmt.Errorf("failed to load seed %s: %w", sources[i], result.err)
		}
		products = append(products, result.products...)
	}

	return products, nil
}

func (l *Loader) loadSource(ctx context.Context, source string) ([]models.Product, error) {
	rc, err := l.open(ctx, source)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if strings.HasSuffix(strings.ToLower(source), ".gz") {
		gzReader, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		r = gzReader
	}

	return parseProducts(r)
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download seed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// record is a seed entry. The id may be a JSON string or number.
type record struct {
	models.Product
	ID flexibleID `json:"id"`
}

type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number")
	}
	*id = flexibleID(n.String())
	return nil
}

// parseProducts accepts either a bare array or a listing object.
// Every entry must satisfy models.Product.Validate.
func parseProducts(r io.Reader) ([]models.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading seed: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var records []record
	if data[0] == '[' {
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("invalid seed document: %w", err)
		}
	} else {
		var list struct {
			Products []record `json:"products"`
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("invalid seed document: %w", err)
		}
		records = list.Products
	}

	products := make([]models.Product, 0, len(records))
	for i, rec := range records {
		p := rec.Product
		p.ID = strings.TrimSpace(string(rec.ID))
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("seed entry %d (id %q): %w", i, p.ID, err)
		}
		products = append(products, p)
	}
	return products, nil
}
