// Package api is the JSON-over-HTTP client for the food backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"food-details/models"

	"github.com/google/uuid"
)

// RequestIDHeader is read by the backend's request-id middleware.
const RequestIDHeader = "X-Request-Id"

// ErrNotFound is returned (wrapped in a StatusError) for 404 responses.
var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// Unwrap lets errors.Is(err, ErrNotFound) work on 404s.
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL (no trailing slash). timeout <= 0 means 10s.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// GetFood loads a food with its extras (GET foods/{id}).
func (c *Client) GetFood(ctx context.Context, id int64) (models.Food, error) {
	var f models.Food
	err := c.do(ctx, http.MethodGet, "foods/"+strconv.FormatInt(id, 10), nil, &f)
	return f, err
}

// ListFavorites loads the user's favorites (GET favorites).
func (c *Client) ListFavorites(ctx context.Context) ([]models.Favorite, error) {
	var favs []models.Favorite
	if err := c.do(ctx, http.MethodGet, "favorites", nil, &favs); err != nil {
		return nil, err
	}
	return favs, nil
}

// AddFavorite creates a favorite record (POST favorites).
func (c *Client) AddFavorite(ctx context.Context, fav models.Favorite) error {
	return c.do(ctx, http.MethodPost, "favorites", fav, nil)
}

// RemoveFavorite deletes a favorite by food id (DELETE favorites/{id}).
func (c *Client) RemoveFavorite(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "favorites/"+strconv.FormatInt(id, 10), nil, nil)
}

// CreateOrder posts one order line (POST orders).
func (c *Client) CreateOrder(ctx context.Context, o models.Order) error {
	return c.do(ctx, http.MethodPost, "orders", o, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(bytes.TrimSpace(raw))}
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", method, path, err)
	}
	return nil
}
