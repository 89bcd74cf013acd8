// Package httpclient builds the outbound HTTP clients used to reach the
// geocoder, POI directory, encyclopedia and forecast services.
package httpclient

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/FACorreiaa/tripmate-api/app/observability/metrics"
)

const (
	DefaultAttempts      = 3
	DefaultBackoffFactor = 0.3
	DefaultTimeout       = 8 * time.Second
	maxBackoff           = 5 * time.Second
)

// Options configures one upstream client.
type Options struct {
	Name          string        // upstream name used in logs and metrics
	UserAgent     string        // identifying client header
	Timeout       time.Duration // per attempt
	Attempts      int           // total attempts including the first
	BackoffFactor float64       // seconds; wait = factor * 2^attempt
	Logger        *slog.Logger
	Transport     http.RoundTripper
}

// New returns an *http.Client that retries transient failures (connection
// errors and 500/502/503/504) with exponential backoff, stamps the user agent
// on every request, and records traces and metrics for each attempt.
func New(opts Options) *http.Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.BackoffFactor < 0 {
		opts.BackoffFactor = DefaultBackoffFactor
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{
		Timeout: opts.Timeout,
		Transport: &instrumentedTransport{
			name:      opts.Name,
			userAgent: opts.UserAgent,
			next:      otelhttp.NewTransport(base),
		},
	}
	rc.RetryMax = opts.Attempts - 1
	rc.RetryWaitMin = 0
	rc.RetryWaitMax = maxBackoff
	rc.CheckRetry = RetryPolicy
	rc.Backoff = ExponentialBackoff(opts.BackoffFactor)
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = opts.Logger.With(slog.String("upstream", opts.Name))

	return rc.StandardClient()
}

// RetryPolicy retries connection errors and the transient 5xx statuses only.
func RetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	switch resp.StatusCode {
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}

// ExponentialBackoff waits factor * 2^attempt seconds, capped by max.
func ExponentialBackoff(factor float64) retryablehttp.Backoff {
	return func(_, max time.Duration, attemptNum int, _ *http.Response) time.Duration {
		wait := time.Duration(factor * math.Pow(2, float64(attemptNum)) * float64(time.Second))
		if wait > max {
			return max
		}
		return wait
	}
}

type instrumentedTransport struct {
	name      string
	userAgent string
	next      http.RoundTripper
}

func (t *instrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.userAgent != "" {
		req = req.Clone(req.Context())
		req.Header.Set("User-Agent", t.userAgent)
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	outcome := "error"
	if err == nil {
		outcome = strconv.Itoa(resp.StatusCode)
	}
	attrs := metric.WithAttributes(
		attribute.String("upstream", t.name),
		attribute.String("outcome", outcome),
	)
	m := metrics.Get()
	m.UpstreamRequestsTotal.Add(req.Context(), 1, attrs)
	m.UpstreamDurationSeconds.Record(req.Context(), time.Since(start).Seconds(), attrs)

	return resp, err
}
