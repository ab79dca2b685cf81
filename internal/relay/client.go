// Package relay posts contact submissions to the FormSubmit AJAX endpoint.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the FormSubmit AJAX API root.
const DefaultBaseURL = "https://formsubmit.co/ajax"

// Fixed relay control values.
const (
	CaptchaDisabled = "false"
	TemplateTable   = "table"
)

// Payload is one contact submission in the shape the relay expects.
type Payload struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
	Newsletter bool   `json:"newsletter"`
	Subject    string `json:"_subject"`
	Captcha    string `json:"_captcha"`
	Template   string `json:"_template"`
}

// Response is the part of the relay answer we rely on.
type Response struct {
	Success bool   `json:"-"`
	Message string `json:"message,omitempty"`
}

// FormSubmit returns success as either a bool or the string "true".
type rawResponse struct {
	Success json.RawMessage `json:"success"`
	Message string          `json:"message"`
}

func (r rawResponse) success() bool {
	s := strings.Trim(strings.TrimSpace(string(r.Success)), `"`)
	return strings.EqualFold(s, "true")
}

// Sender delivers a payload to the relay.
type Sender interface {
	Send(ctx context.Context, p *Payload) (*Response, error)
}

// Client handles sending submissions to FormSubmit
type Client struct {
	baseURL string
	owner   string
	client  *http.Client
	tracer  trace.Tracer
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at another relay root, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.client = hc
		}
	}
}

// WithTimeout sets the request timeout. Zero leaves timing out to the
// transport and the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// NewClient creates a relay client that forwards to owner's inbox.
func NewClient(owner string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		owner:   strings.TrimSpace(owner),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		tracer: otel.Tracer("github.com/osa911/formrelay/internal/relay"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint is the URL submissions are posted to.
func (c *Client) Endpoint() string {
	return c.baseURL + "/" + url.PathEscape(c.owner)
}

// Send posts one payload. It makes exactly one request and never retries.
func (c *Client) Send(ctx context.Context, p *Payload) (resp *Response, err error) {
	ctx, span := c.tracer.Start(ctx, "relay.Send", trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if c.owner == "" {
		return nil, ErrNoOwner
	}

	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	span.SetAttributes(
		attribute.String("http.request.method", http.MethodPost),
		attribute.String("url.full", c.Endpoint()),
		attribute.Bool("contact.newsletter", p.Newsletter),
	)

	httpResp, err := c.client.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "request", Err: err}
	}
	defer httpResp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", httpResp.StatusCode))

	var raw rawResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&raw); err != nil {
		return nil, &TransportError{Op: "decode", Err: err}
	}

	resp = &Response{Success: raw.success(), Message: raw.Message}

	ok := httpResp.StatusCode >= 200 && httpResp.StatusCode < 300
	if !ok || !resp.Success {
		return resp, &ServiceError{Status: httpResp.StatusCode, Message: resp.Message}
	}

	return resp, nil
}
