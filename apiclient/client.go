// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agroconnect/agroconnect/models"
)

// maxErrorBody caps how much of an error response is read
const maxErrorBody = 64 << 10

// Client is safe for concurrent use
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

type Option func(*Client)

// WithTimeout bounds every call. Zero, the default, means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the backend at baseURL, e.g. http://localhost:8001
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address without the /api prefix
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchFilter narrows ListCrops. Empty fields are not sent.
type SearchFilter struct {
	CropType string
	Location string
}

// Query encodes the non-empty filters
func (f SearchFilter) Query() url.Values {
	q := url.Values{}
	if v := strings.TrimSpace(f.CropType); v != "" {
		q.Set("crop_type", v)
	}
	if v := strings.TrimSpace(f.Location); v != "" {
		q.Set("location", v)
	}
	return q
}

// Login handles POST /api/auth/login
func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, "",
		models.LoginRequest{Email: email, Password: password}, &resp)
	return resp, err
}

// Register handles POST /api/auth/register
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, "", req, &resp)
	return resp, err
}

// ListCrops returns available listings matching filter
func (c *Client) ListCrops(ctx context.Context, filter SearchFilter) ([]models.Crop, error) {
	var crops []models.Crop
	err := c.do(ctx, http.MethodGet, "/crops", filter.Query(), "", nil, &crops)
	return crops, err
}

// MyCrops returns every listing owned by the token's farmer
func (c *Client) MyCrops(ctx context.Context, token string) ([]models.Crop, error) {
	var crops []models.Crop
	err := c.do(ctx, http.MethodGet, "/crops/my-crops", nil, token, nil, &crops)
	return crops, err
}

func (c *Client) CreateCrop(ctx context.Context, token string, req models.CreateCropRequest) (models.Crop, error) {
	var crop models.Crop
	err := c.do(ctx, http.MethodPost, "/crops", nil, token, req, &crop)
	return crop, err
}

func (c *Client) DeleteCrop(ctx context.Context, token, cropID string) error {
	return c.do(ctx, http.MethodDelete, "/crops/"+url.PathEscape(cropID), nil, token, nil, nil)
}

// UpdateCropStatus sets status and returns the updated listing
func (c *Client) UpdateCropStatus(ctx context.Context, token, cropID, status string) (models.Crop, error) {
	var crop models.Crop
	q := url.Values{"status": {status}}
	err := c.do(ctx, http.MethodPut, "/crops/"+url.PathEscape(cropID)+"/status", q, token, nil, &crop)
	return crop, err
}

func (c *Client) MarketPrices(ctx context.Context) ([]models.MarketPrice, error) {
	var prices []models.MarketPrice
	err := c.do(ctx, http.MethodGet, "/market-prices", nil, "", nil, &prices)
	return prices, err
}

// InitMarketPrices asks the backend to seed its default prices and returns
// the backend's status message
func (c *Client) InitMarketPrices(ctx context.Context) (string, error) {
	var resp models.StatusMessageResponse
	err := c.do(ctx, http.MethodPost, "/init-market-prices", nil, "", nil, &resp)
	return resp.Message, err
}

func (c *Client) ReceivedMessages(ctx context.Context, token string) ([]models.Message, error) {
	var messages []models.Message
	err := c.do(ctx, http.MethodGet, "/messages/received", nil, token, nil, &messages)
	return messages, err
}

func (c *Client) SendMessage(ctx context.Context, token string, req models.SendMessageRequest) (models.Message, error) {
	var msg models.Message
	err := c.do(ctx, http.MethodPost, "/messages", nil, token, req, &msg)
	return msg, err
}

// do sends one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, token string, body, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + "/api" + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnreachable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return parseAPIError(resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}
