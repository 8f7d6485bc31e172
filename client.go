package easel

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the remote template service. When a token is configured it
// is attached as a bearer credential on every request; otherwise the client
// operates anonymously.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
	log     *zap.Logger
}

type ClientOption func(*Client)

// WithToken configures the bearer credential for authenticated requests.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.hc = hc
	}
}

func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// StatusError is returned when the service answers with an unexpected status.
type StatusError struct {
	Method string
	Path   string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
}

// ListTemplates fetches the summaries of every custom template.
func (c *Client) ListTemplates(ctx context.Context) ([]TemplateSummary, error) {
	body, err := c.get(ctx, "/v1/custom-templates")
	if err != nil {
		return nil, err
	}

	summaries, err := decodeResponse[[]TemplateSummary](templateSummariesSchema, body)
	if err != nil {
		return nil, err
	}

	return *summaries, nil
}

// GetTemplate fetches the full detail of one template: metadata plus the raw
// layout definitions awaiting compilation.
func (c *Client) GetTemplate(ctx context.Context, id string) (*TemplateDetailResponse, error) {
	body, err := c.get(ctx, "/v1/custom-templates/"+url.PathEscape(id))
	if err != nil {
		return nil, err
	}

	return decodeResponse[TemplateDetailResponse](templateDetailSchema, body)
}

// DeleteTemplate removes a template on the service.
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	path := "/v1/custom-templates/" + url.PathEscape(id)

	req, err := c.newRequest(ctx, http.MethodDelete, path)
	if err != nil {
		return err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusNoContent {
		return &StatusError{Method: http.MethodDelete, Path: path, Code: res.StatusCode}
	}

	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, &StatusError{Method: http.MethodGet, Path: path, Code: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("unable to read the body: %w", err)
	}

	return body, nil
}

func (c *Client) newRequest(ctx context.Context, method string, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}
