// Package restapi implements the backend port against the property REST API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Mutombe/propdesk/internal/domain"
	"github.com/Mutombe/propdesk/internal/resilience"
)

// Client talks to the property-management REST backend. All authoritative
// state lives behind it; the client performs no local persistence.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	breaker    *resilience.Breaker
}

// NewClient creates a backend client. Outgoing requests are traced via
// otelhttp.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// SetBreaker attaches a circuit breaker to all outgoing calls.
func (c *Client) SetBreaker(b *resilience.Breaker) {
	c.breaker = b
}

// Error is a backend error carrying the HTTP status and a human-readable
// message parsed from the error payload.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
}

// Reason returns the parsed payload message, used for error notifications.
func (e *Error) Reason() string {
	return e.Message
}

// Is maps backend errors onto the domain sentinels so callers can use
// errors.Is without importing this package.
func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrBackend:
		return true
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	case domain.ErrValidation:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// parseErrorMessage extracts a human-readable message from an error payload.
// The backend emits {"detail": ...}, {"error": ...}, {"message": ...} or a
// field-error map; anything else falls back to the raw body or status text.
func parseErrorMessage(status int, body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			var msg string
			if raw, ok := payload[key]; ok && json.Unmarshal(raw, &msg) == nil && msg != "" {
				return msg
			}
		}
		// Field errors: {"field": ["msg", ...]} or {"field": "msg"}.
		for field, raw := range payload {
			var msgs []string
			if json.Unmarshal(raw, &msgs) == nil && len(msgs) > 0 {
				return field + ": " + msgs[0]
			}
			var msg string
			if json.Unmarshal(raw, &msg) == nil && msg != "" {
				return field + ": " + msg
			}
		}
	}

	if trimmed := strings.TrimSpace(string(body)); trimmed != "" && len(trimmed) <= 200 {
		return trimmed
	}
	return http.StatusText(status)
}

// do performs a JSON request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	var result []byte
	call := func() error {
		var bodyReader io.Reader
		if body != nil {
			bodyReader = bytes.NewReader(body)
		}

		req, err := c.newRequest(ctx, method, path, query, bodyReader)
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		data, err := c.send(req)
		if err != nil {
			return err
		}
		result = data
		return nil
	}

	if c.breaker != nil {
		if err := c.breaker.Execute(call); err != nil {
			return nil, err
		}
		return result, nil
	}
	if err := call(); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &Error{Status: resp.StatusCode, Message: parseErrorMessage(resp.StatusCode, data)}
	}
	return data, nil
}
