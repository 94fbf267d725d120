// Package backend is the REST client for the bus booking backend.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"busdash/internal/config"
	"busdash/internal/metrics"
	"busdash/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	pathBuses        = "/buses"
	pathTourPackages = "/tour-packages"
	pathBookings     = "/bookings"

	maxErrorBody = 64 << 10
)

// Client calls the backend with a fixed base URL, JSON bodies and a
// bounded request timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger

	redis    *redis.Client
	cacheTTL time.Duration
	cache    cacheState
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = *logger
		}
	}
}

func New(cfg config.BackendConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = models.DefaultRequestTimeout
	}
	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UseRedisCache configures optional Redis caching for list endpoints.
func (c *Client) UseRedisCache(redisClient *redis.Client, ttl time.Duration) {
	c.redis = redisClient
	c.cacheTTL = ttl
}

func (c *Client) ListBuses(ctx context.Context) ([]models.Bus, error) {
	var out []models.Bus
	if err := c.list(ctx, models.CollectionBuses, pathBuses, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBus(ctx context.Context, in models.BusInput) (*models.Bus, error) {
	var out models.Bus
	if err := c.mutate(ctx, http.MethodPost, models.CollectionBuses, pathBuses, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateBus replaces the mutable fields of bus id.
func (c *Client) UpdateBus(ctx context.Context, id int64, in models.BusInput) (*models.Bus, error) {
	var out models.Bus
	if err := c.mutate(ctx, http.MethodPut, models.CollectionBuses, entityPath(pathBuses, id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBus(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, models.CollectionBuses, entityPath(pathBuses, id), nil, nil)
}

func (c *Client) ListTourPackages(ctx context.Context) ([]models.TourPackage, error) {
	var out []models.TourPackage
	if err := c.list(ctx, models.CollectionTourPackages, pathTourPackages, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTourPackage(ctx context.Context, in models.TourPackageInput) (*models.TourPackage, error) {
	var out models.TourPackage
	if err := c.mutate(ctx, http.MethodPost, models.CollectionTourPackages, pathTourPackages, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTourPackage(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, models.CollectionTourPackages, entityPath(pathTourPackages, id), nil, nil)
}

func (c *Client) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var out []models.Booking
	if err := c.list(ctx, models.CollectionBookings, pathBookings, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error) {
	var out models.Booking
	if err := c.mutate(ctx, http.MethodPost, models.CollectionBookings, pathBookings, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	return c.mutate(ctx, http.MethodDelete, models.CollectionBookings, entityPath(pathBookings, id), nil, nil)
}

// list fetches a collection. A body that is not a JSON array decodes to
// an empty collection rather than an error.
func (c *Client) list(ctx context.Context, collection models.Collection, path string, out any) error {
	key := cacheKey(collection)
	if raw, ok := c.readCache(ctx, key); ok {
		return decodeList(raw, out)
	}

	raw, err := c.do(ctx, http.MethodGet, collection, path, nil)
	if err != nil {
		return err
	}
	if err := decodeList(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	c.writeCache(ctx, key, raw)
	return nil
}

func (c *Client) mutate(ctx context.Context, method string, collection models.Collection, path string, body, out any) error {
	raw, err := c.do(ctx, method, collection, path, body)
	if err != nil {
		return err
	}
	c.DropCache(ctx)

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// The mutation went through; an unexpected echo body is not fatal.
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("ignore undecodable response body")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method string, collection models.Collection, path string, body any) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ObserveBackend(method, string(collection), "transport_error", time.Since(start))
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("backend request failed")
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		metrics.ObserveBackend(method, string(collection), "http_error", time.Since(start))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     method,
			Path:       path,
			Message:    extractMessage(errBody),
		}
		c.logger.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("backend rejected request")
		return nil, apiErr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ObserveBackend(method, string(collection), "transport_error", time.Since(start))
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}

	took := time.Since(start)
	metrics.ObserveBackend(method, string(collection), "ok", took)
	c.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Dur("took", took).Msg("backend request")
	return raw, nil
}

func decodeList(raw []byte, out any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}
	return json.Unmarshal(trimmed, out)
}

func entityPath(base string, id int64) string {
	return fmt.Sprintf("%s/%d", base, id)
}
