// Package rest implements the gateway ports against the ERP backend's JSON
// API. Responses are decoded into local DTOs and validated before anything
// reaches the domain: a shape mismatch is surfaced as ErrMalformedResponse
// instead of silently producing zero values.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hollpacas/erp-console/internal/core/domain"
	"github.com/hollpacas/erp-console/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// Client is the shared HTTP transport for all gateways. The token store is
// injected once; every authenticated request reads the current token from it,
// so the client never holds a stale copy.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   ports.TokenStore
	validate *validator.Validate
	log      zerolog.Logger
}

// NewClient builds a Client for baseURL. Trailing slashes are trimmed so
// path joining stays predictable.
func NewClient(baseURL string, tokens ports.TokenStore, log zerolog.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: defaultTimeout},
		tokens:   tokens,
		validate: validator.New(),
		log:      log,
	}
}

// statusError carries a non-2xx answer. Gateways map it onto domain errors;
// it never leaves this package.
type statusError struct {
	status int
	detail string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.status, e.detail)
}

// backendError is the error envelope the backend uses (FastAPI-style
// "detail", with "error" accepted for compatibility).
type backendError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// doJSON performs one request. body may be nil; out may be nil for calls
// whose payload is irrelevant. When authed is set the stored token rides
// along as a bearer credential — absence of a token is not an error here,
// the backend answers 401 and the guard handles it.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend call")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope backendError
		_ = json.Unmarshal(raw, &envelope)
		detail := envelope.Detail
		if detail == "" {
			detail = envelope.Error
		}
		return &statusError{status: resp.StatusCode, detail: detail}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}

// check validates a decoded DTO; failures are malformed-response errors.
func (c *Client) check(dto any) error {
	if err := c.validate.Struct(dto); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}

// checkSlice validates every element of a decoded slice.
func checkSlice[T any](c *Client, items []T) error {
	for i := range items {
		if err := c.validate.Struct(&items[i]); err != nil {
			return fmt.Errorf("%w: item %d: %v", domain.ErrMalformedResponse, i, err)
		}
	}
	return nil
}
