// Package rest holds the HTTP clients for the customer and contract services.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/middleware"
)

// errRemoteNotFound is returned by getJSON for a 404 so callers can pick their own not-found kind.
var errRemoteNotFound = errors.New("remote resource not found")

const maxErrorBody = 512

type jsonClient struct {
	name    string
	baseURL string
	client  *http.Client
}

func newJSONClient(name, baseURL string, timeout time.Duration) jsonClient {
	return jsonClient{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// getJSON issues GET baseURL+path and decodes a 2xx body into out.
// Transport errors, timeouts and non-404 failures are wrapped in apperrors.ErrUnavailable.
func (c jsonClient) getJSON(ctx context.Context, path string, out any) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: build request: %v", apperrors.ErrUnavailable, c.name, err)
	}
	req.Header.Set("Accept", "application/json")
	if id := middleware.GetRequestIDFromCtx(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Warn("Collaborator call failed", slog.String("service", c.name), slog.String("url", url), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %s: %v", apperrors.ErrUnavailable, c.name, err)
	}
	defer resp.Body.Close()

	logger.Debug("Collaborator call",
		slog.String("service", c.name),
		slog.String("url", url),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errRemoteNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: %s returned %d: %s", apperrors.ErrUnavailable, c.name, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: decode response: %v", apperrors.ErrUnavailable, c.name, err)
	}
	return nil
}
