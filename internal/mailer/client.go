// Package mailer talks to the ConvertKit v3 API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL = "https://api.convertkit.com"
	DefaultTimeout = 10 * time.Second

	tracerName = "github.com/akeren/waitlist-api/internal/mailer"
)

type Config struct {
	BaseURL    string
	APISecret  string
	FormID     string
	SequenceID string
	Timeout    time.Duration
}

// IsConfigured reports whether form subscription can be attempted.
func (c Config) IsConfigured() bool {
	return strings.TrimSpace(c.APISecret) != "" && strings.TrimSpace(c.FormID) != ""
}

// Client is a thin ConvertKit client. It never retries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiSecret  string
	formID     string
	sequenceID string
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		httpClient: newHTTPClient(timeout),
		baseURL:    baseURL,
		apiSecret:  cfg.APISecret,
		formID:     cfg.FormID,
		sequenceID: cfg.SequenceID,
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   5 * time.Second,
			ResponseHeaderTimeout: timeout,
			MaxIdleConns:          20,
			MaxIdleConnsPerHost:   10,
			IdleConnTimeout:       90 * time.Second,
		},
	}
}

func (c *Client) HasSequence() bool {
	return strings.TrimSpace(c.sequenceID) != ""
}

type subscribeRequest struct {
	APISecret string `json:"api_secret"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
}

type subscribeResponse struct {
	Subscription struct {
		Subscriber struct {
			ID json.Number `json:"id"`
		} `json:"subscriber"`
	} `json:"subscription"`
}

// APIError is a non-2xx answer from ConvertKit.
type APIError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("convertkit %s returned %d: %s", e.Path, e.StatusCode, e.Body)
}

// SubscribeToForm adds the email to the configured form and returns the ConvertKit subscriber id.
// The id is empty when the API omits it.
func (c *Client) SubscribeToForm(ctx context.Context, email, firstName string) (string, error) {
	path := fmt.Sprintf("/v3/forms/%s/subscribe", c.formID)

	var out subscribeResponse
	if err := c.post(ctx, "convertkit.form.subscribe", path, email, firstName, &out); err != nil {
		return "", err
	}

	return out.Subscription.Subscriber.ID.String(), nil
}

// SubscribeToSequence enrolls the email into the welcome sequence.
func (c *Client) SubscribeToSequence(ctx context.Context, email, firstName string) error {
	path := fmt.Sprintf("/v3/sequences/%s/subscribe", c.sequenceID)
	return c.post(ctx, "convertkit.sequence.subscribe", path, email, firstName, nil)
}

func (c *Client) post(ctx context.Context, spanName, path, email, firstName string, out any) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.route", path)),
	)
	defer span.End()

	err := c.doPost(ctx, path, email, firstName, out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

func (c *Client) doPost(ctx context.Context, path, email, firstName string, out any) error {
	body, err := json.Marshal(subscribeRequest{
		APISecret: c.apiSecret,
		Email:     email,
		FirstName: firstName,
	})
	if err != nil {
		return fmt.Errorf("convertkit %s: encode: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("convertkit %s: build request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("convertkit %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Path: path, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("convertkit %s: decode: %w", path, err)
	}

	return nil
}
