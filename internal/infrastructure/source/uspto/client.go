// Package uspto is the record store backed by the USPTO Patent Examination
// Data System: a search endpoint answering with JSON documents, and a bulk
// package flow that prepares, then serves, a zip of XML records.
package uspto

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/turtacn/KeyIP-PatentClient/internal/config"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/KeyIP-PatentClient/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/KeyIP-PatentClient/pkg/errors"
)

const (
	backendName = "uspto"

	jobCompleted = "COMPLETED"
	jobFailed    = "FAILED"

	offlineMarker = "requested resource is not available"
)

// transientError marks a failure worth another attempt.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Client issues the raw upstream calls.  Every call waits on the rate
// limiter and is retried with exponential backoff on transport errors,
// 429 and 5xx answers.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	httpCfg config.HTTPConfig
	logger  logging.Logger
	metrics *prometheus.AppMetrics
}

func NewClient(baseURL string, httpCfg config.HTTPConfig, logger logging.Logger, metrics *prometheus.AppMetrics) *Client {
	hc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(httpCfg.Timeout).
		SetHeader("User-Agent", httpCfg.UserAgent).
		SetHeader("Accept", "application/json")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if httpCfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(httpCfg.RateLimit), max(httpCfg.Burst, 1))
	}

	return &Client{
		http:    hc,
		limiter: limiter,
		httpCfg: httpCfg,
		logger:  logger.Named(backendName),
		metrics: metrics,
	}
}

// Search posts the query and returns the raw JSON answer.
func (c *Client) Search(ctx context.Context, params searchParams) ([]byte, error) {
	resp, err := c.execute(ctx, "search", func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(params).Post("/queries")
	})
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

// RequestPackage asks the service to prepare the XML package of a query.
func (c *Client) RequestPackage(ctx context.Context, queryID string) error {
	_, err := c.execute(ctx, "package", func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("queryId", queryID).SetQueryParam("format", "XML").Put("/queries/{queryId}/package")
	})
	return err
}

// PackageStatus returns the job status of a requested package.
func (c *Client) PackageStatus(ctx context.Context, queryID string) (string, error) {
	resp, err := c.execute(ctx, "status", func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("queryId", queryID).Get("/queries/{queryId}")
	})
	if err != nil {
		return "", err
	}
	return jobStatus(resp.Body())
}

// Download fetches the prepared zip archive.
func (c *Client) Download(ctx context.Context, queryID string) ([]byte, error) {
	resp, err := c.execute(ctx, "download", func(r *resty.Request) (*resty.Response, error) {
		return r.SetPathParam("queryId", queryID).
			SetQueryParam("format", "XML").
			SetHeader("Accept", "application/zip, application/octet-stream").
			Get("/queries/{queryId}/download")
	})
	if err != nil {
		return nil, err
	}
	return resp.Body(), nil
}

func (c *Client) execute(ctx context.Context, op string, send func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	start := time.Now()

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.httpCfg.InitialBackoff
	exp.MaxInterval = c.httpCfg.MaxBackoff
	exp.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(c.httpCfg.MaxRetries)), ctx)

	attempt := 0
	var resp *resty.Response
	operation := func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		c.logger.Debug("upstream request",
			logging.String("backend", backendName),
			logging.String("op", op),
			logging.Int("attempt", attempt),
		)
		r, err := send(c.http.R().SetContext(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return &transientError{err: err}
		}
		if err := classify(op, r); err != nil {
			return err
		}
		resp = r
		return nil
	}
	notify := func(err error, wait time.Duration) {
		prometheus.RecordSourceRetry(c.metrics, backendName, op)
		c.logger.Warn("upstream request failed, retrying",
			logging.String("backend", backendName),
			logging.String("op", op),
			logging.Int("attempt", attempt),
			logging.Duration("wait", wait),
			logging.Err(err),
		)
	}

	err := backoff.RetryNotify(operation, policy, notify)
	err = finalError(ctx, op, attempt, err)
	prometheus.RecordSourceRequest(c.metrics, backendName, op, err, time.Since(start))
	return resp, err
}

// classify turns a non-2xx answer into a retryable or permanent error.
func classify(op string, r *resty.Response) error {
	status := r.StatusCode()
	if status >= 200 && status < 300 {
		return nil
	}
	body := r.String()
	detail := fmt.Sprintf("op=%s status=%d", op, status)
	switch {
	case strings.Contains(body, offlineMarker):
		return backoff.Permanent(errors.SourceUnavailable("examination data is offline").WithDetail(detail))
	case status == http.StatusTooManyRequests:
		return &transientError{err: errors.New(errors.ErrCodeSourceRateLimited, "rate limited by data source").WithDetail(detail)}
	case status >= 500:
		return &transientError{err: errors.New(errors.ErrCodeExternalService, "data source error").WithDetail(detail)}
	default:
		return backoff.Permanent(errors.New(errors.ErrCodeSourceRejected, "data source rejected the request").
			WithDetail(detail + " body=" + truncate(body, 256)))
	}
}

func finalError(ctx context.Context, op string, attempts int, err error) error {
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var te *transientError
	if stderrors.As(err, &te) {
		return errors.Wrap(te.err, errors.ErrCodeSourceUnavailable, "data source unavailable after retries").
			WithDetail(fmt.Sprintf("op=%s attempts=%d", op, attempts))
	}
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

//Personal.AI order the ending
