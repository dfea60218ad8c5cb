// Package client is a Go SDK for the KeyIP patent API server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

const Version = "0.1.0"

// Logger defines the logging interface used by the Client.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Infof(format string, args ...interface{})  {}
func (noopLogger) Errorf(format string, args ...interface{}) {}

// Client talks to one API server.  It is safe for concurrent use.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	apiKey       string
	userAgent    string
	logger       Logger
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	rest *resty.Client

	applications     *ApplicationsClient
	applicationsOnce sync.Once
}

// APIError is a non-2xx answer.  A 207 answer is reported as an APIError with
// code QRY_005 alongside the records that did resolve.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	RequestID  string `json:"request_id"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return fmt.Sprintf("keyip: %s (HTTP %d): %s [request_id=%s]", e.Code, e.StatusCode, msg, e.RequestID)
}

func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

func (e *APIError) IsPartial() bool {
	return e.StatusCode == http.StatusMultiStatus
}

// NewClient validates baseURL and applies opts.  The API key is optional
// and sent as a bearer token when set.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New(errors.ErrCodeConfig, "base URL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfig, "invalid base URL")
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New(errors.ErrCodeConfig, "base URL scheme must be http or https").WithDetail(baseURL)
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 5 * time.Minute},
		userAgent:    fmt.Sprintf("keyip-go-sdk/%s", Version),
		logger:       noopLogger{},
		retryMax:     3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.rest = resty.NewWithClient(c.httpClient).
		SetBaseURL(c.baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", c.userAgent).
		SetRetryCount(c.retryMax).
		SetRetryWaitTime(c.retryWaitMin).
		SetRetryMaxWaitTime(c.retryWaitMax).
		AddRetryCondition(shouldRetry)
	if c.apiKey != "" {
		c.rest.SetAuthToken(c.apiKey)
	}
	return c, nil
}

// Applications returns the applications sub-client.
func (c *Client) Applications() *ApplicationsClient {
	c.applicationsOnce.Do(func() {
		c.applications = &ApplicationsClient{client: c}
	})
	return c.applications
}

// get issues GET path and decodes a 2xx body into result.  A 207 body is
// decoded too and the partial APIError is returned with it.
func (c *Client) get(ctx context.Context, path string, query url.Values, result interface{}) error {
	requestID := uuid.NewString()
	start := time.Now()

	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID).
		SetQueryParamsFromValues(query).
		Get(path)
	if err != nil {
		c.logger.Errorf("request failed: %v", err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "keyip API unreachable")
	}
	c.logger.Debugf("GET %s %d (%v)", path, resp.StatusCode(), time.Since(start))

	status := resp.StatusCode()
	if status >= 400 {
		return decodeError(resp, requestID)
	}
	if result != nil && len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), result); err != nil {
			return errors.Wrap(err, errors.ErrCodeSerialization, "failed to decode response")
		}
	}
	if status == http.StatusMultiStatus {
		return &APIError{
			StatusCode: status,
			Code:       string(errors.ErrCodePartialResolution),
			Message:    errors.DefaultMessageForCode(errors.ErrCodePartialResolution),
			RequestID:  requestID,
		}
	}
	return nil
}

func decodeError(resp *resty.Response, requestID string) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode(), RequestID: requestID}
	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Code != "" {
		apiErr.Code, apiErr.Message, apiErr.Detail = body.Code, body.Message, body.Detail
	} else {
		apiErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	return apiErr
}

// shouldRetry retries transport failures and 5xx answers other than 503,
// which the server uses for an unavailable upstream.
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	s := resp.StatusCode()
	return s >= 500 && s < 600 && s != http.StatusServiceUnavailable
}

//Personal.AI order the ending
