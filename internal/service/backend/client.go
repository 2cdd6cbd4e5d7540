package backend

import (
	"HayatAdmin/internal/lib/sl"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Client is the transport shared by all resources of one backend.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.With(sl.Module("backend client")),
	}
}

// WithBaseURL returns a client for another origin that shares the transport.
func (c *Client) WithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    c.http,
		log:     c.log,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	t1 := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.With(
			slog.String("method", method),
			slog.String("url", url),
			sl.Err(err),
		).Error("send request")
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	logger := c.log.With(
		slog.String("method", method),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Float64("duration", time.Since(t1).Seconds()),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := newStatusError(method, url, resp.StatusCode, data)
		logger.With(sl.Err(statusErr)).Warn("non-2xx response")
		return nil, statusErr
	}

	logger.Debug("backend request")
	return data, nil
}
