// Package catalogclient is an HTTP client for the catalog API.
package catalogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Lixing-Zhang/online-store/internal/models"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithHeaders assigns default headers added to every request.
func WithHeaders(h http.Header) Option {
	return func(c *Client) {
		for k, values := range h {
			for _, v := range values {
				c.headers.Add(k, v)
			}
		}
	}
}

// Client talks to the catalog API rooted at a base URL such as http://localhost:3000/api.
// Requests are not retried.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	headers    http.Header
}

// New creates a Client for the provided base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("catalogclient: base URL is required")
	}

	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("catalogclient: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL: parsed,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		headers: make(http.Header),
	}
	c.headers.Set("Accept", "application/json")

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListProducts fetches the products matching filter.
func (c *Client) ListProducts(ctx context.Context, filter models.ProductFilter) (*models.ProductList, error) {
	var list models.ProductList
	if err := c.do(ctx, http.MethodGet, "products", filterQuery(filter), nil, &list); err != nil {
		return nil, err
	}
	if list.Products == nil {
		list.Products = []models.Product{}
	}
	return &list, nil
}

// GetProduct fetches a single product.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, productPath(id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct posts a new product and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, input models.ProductFields) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "products", nil, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct patches the fields present in input.
func (c *Client) UpdateProduct(ctx context.Context, id string, input models.ProductFields) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPatch, productPath(id), nil, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, productPath(id), nil, nil, nil)
}

// Categories fetches the distinct category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.do(ctx, http.MethodGet, "categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var reader io.Reader
	if body != nil {
		data, err := jsonMarshal(body)
		if err != nil {
			return fmt.Errorf("catalogclient: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	fullURL, err := c.buildURL(path, query)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return err
	}
	req.Header = cloneHeader(c.headers)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return handleError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("catalogclient: decode response: %w", err)
	}
	return nil
}

func (c *Client) buildURL(path string, q url.Values) (string, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return "", err
	}
	if len(q) > 0 {
		ref.RawQuery = q.Encode()
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

func productPath(id string) string {
	return "products/" + url.PathEscape(id)
}

// filterQuery mirrors how the storefront sends filters: only enabled predicates
func filterQuery(f models.ProductFilter) url.Values {
	q := url.Values{}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.InStock {
		q.Set("inStock", "true")
	}
	return q
}

func cloneHeader(src http.Header) http.Header {
	dst := make(http.Header, len(src))
	for k, values := range src {
		vCopy := make([]string, len(values))
		copy(vCopy, values)
		dst[k] = vCopy
	}
	return dst
}

func jsonMarshal(v any) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
