// Package backend is the outbound HTTP client shared by every service that
// talks to a MediSupply microservice.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	maxErrorBody    = 4 << 10
	maxResponseBody = 16 << 20
)

// Client issues JSON requests against one microservice base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	service    string
	anonymous  bool
}

// Config configures a Client. Service labels metrics and logs.
type Config struct {
	Service    string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	// Anonymous clients never forward the session token (third-party APIs).
	Anonymous bool
}

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		service:    cfg.Service,
		anonymous:  cfg.Anonymous,
	}
}

// Service returns the metrics label of the client.
func (c *Client) Service() string { return c.service }

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// IsStatus reports whether err is a StatusError carrying status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

// Get decodes the JSON response of GET path?query into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.DoJSON(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.DoJSON(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.DoJSON(ctx, http.MethodPatch, path, nil, body, out)
}

// DoJSON encodes body (when non-nil) as JSON, sends the request and decodes a
// 2xx response into out (when non-nil).
func (c *Client) DoJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("backend: marshal request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, query, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	raw, err := c.send(req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("backend: decode %s %s: %w", method, req.URL.Path, err)
	}
	return nil
}

// GetBytes returns the raw body of GET path?query along with its content type.
func (c *Client) GetBytes(ctx context.Context, path string, query url.Values) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, "", err
	}
	var contentType string
	raw, err := c.sendWith(req, func(resp *http.Response) { contentType = resp.Header.Get("Content-Type") })
	return raw, contentType, err
}

// Upload posts a multipart form with a single file part named field.
func (c *Client) Upload(ctx context.Context, path, field, filename string, file io.Reader, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("backend: create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("backend: copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("backend: close multipart: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	raw, err := c.send(req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	return json.Unmarshal(raw, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	if token := AccessToken(ctx); token != "" && !c.anonymous {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if rid := RequestID(ctx); rid != "" {
		req.Header.Set("X-Request-ID", rid)
	}
	return req, nil
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	return c.sendWith(req, nil)
}

func (c *Client) sendWith(req *http.Request, inspect func(*http.Response)) ([]byte, error) {
	start := time.Now()
	outcome := "error"
	defer func() { observe(c.service, outcome, time.Since(start)) }()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend: %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		outcome = fmt.Sprintf("%dxx", resp.StatusCode/100)
		return nil, &StatusError{
			Method: req.Method,
			URL:    req.URL.Path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("backend: read body: %w", err)
	}
	outcome = "ok"
	if inspect != nil {
		inspect(resp)
	}
	return raw, nil
}
