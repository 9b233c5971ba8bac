// internal/common/http/client.go
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrNoBaseURL is returned when a client is asked for a path without any base URL configured.
var ErrNoBaseURL = errors.New("no base url configured")

type Client struct {
	httpClient *http.Client
	baseURLs   []string
}

// NewClient builds a client that resolves paths against baseURLs in order.
func NewClient(timeout time.Duration, baseURLs ...string) *Client {
	bases := make([]string, 0, len(baseURLs))
	for _, b := range baseURLs {
		b = strings.TrimRight(strings.TrimSpace(b), "/")
		if b != "" {
			bases = append(bases, b)
		}
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURLs: bases,
	}
}

func (c *Client) BaseURLs() []string {
	return append([]string(nil), c.baseURLs...)
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.httpClient.Do(req)
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	return c.httpClient.Do(req)
}

// GetJSON issues GET {base}{path}?{query} against each base URL until one
// answers 2xx with a body that decodes into out. The last error is returned
// when every base fails.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	if len(c.baseURLs) == 0 {
		return ErrNoBaseURL
	}

	var lastErr error
	for _, base := range c.baseURLs {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := c.getJSON(ctx, base, path, query, out)
		if err == nil {
			return nil
		}
		lastErr = fmt.Errorf("%s: %w", base, err)
	}
	return lastErr
}

func (c *Client) getJSON(ctx context.Context, base, path string, query url.Values, out interface{}) error {
	target := base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}
