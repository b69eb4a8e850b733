package downstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/ebanking/bff-gateway/internal/logger"
	"github.com/ebanking/bff-gateway/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ErrTimeout      = errors.New("downstream_timeout")
	ErrUnavailable  = errors.New("downstream_unavailable")
	ErrNotFound     = errors.New("resource_not_found")
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is a non-2xx answer from a collaborator.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("downstream returned status %d", e.StatusCode)
}

// Is lets callers match well-known statuses with errors.Is.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

const (
	maxResponseBytes = 4 << 20
	logPayloadBytes  = 200
)

var (
	downstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bff_gateway",
			Name:      "downstream_requests_total",
			Help:      "Downstream calls by collaborator, operation and outcome",
		},
		[]string{"collaborator", "operation", "outcome"},
	)

	downstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bff_gateway",
			Name:      "downstream_request_duration_seconds",
			Help:      "Downstream call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"collaborator", "operation"},
	)
)

// ClientConfig holds the per-call deadlines.
type ClientConfig struct {
	// ReadTimeout bounds GraphQL queries.
	ReadTimeout time.Duration
	// WriteTimeout bounds GraphQL mutations.
	WriteTimeout time.Duration
	// ProbeTimeout bounds the auth service's public/protected probes.
	ProbeTimeout time.Duration
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 5 * time.Second,
		ProbeTimeout: 2 * time.Second,
	}
}

// Call labels one downstream request for logs and metrics.
type Call struct {
	Collaborator string
	Operation    string
	Timeout      time.Duration
}

// Response is a fully read downstream answer. The body is buffered so the
// per-call deadline can be released before the caller decodes it.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client is the single HTTP client shared by all collaborator clients. It
// injects X-Request-ID, enforces the call deadline, propagates trace
// context, and records logs and metrics. Every call is attempted once.
type Client struct {
	baseClient *http.Client
	config     ClientConfig
}

func NewClient(config ClientConfig) *Client {
	return &Client{
		baseClient: &http.Client{
			// No global timeout - we set per-request timeouts
			Timeout:   0,
			Transport: &middleware.TracingTransport{Base: http.DefaultTransport},
		},
		config: config,
	}
}

func (c *Client) Config() ClientConfig {
	return c.config
}

func (c *Client) Do(ctx context.Context, req *http.Request, call Call) (*Response, error) {
	if reqID := middleware.GetRequestID(ctx); reqID != "" {
		req.Header.Set(middleware.HeaderXRequestID, reqID)
	}

	if call.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, call.Timeout)
		defer cancel()
	}
	req = req.WithContext(ctx)

	log := logger.Ctx(ctx).With().
		Str("collaborator", call.Collaborator).
		Str("operation", call.Operation).
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Logger()

	start := time.Now()
	resp, err := c.baseClient.Do(req)
	if err != nil {
		mapped := c.mapError(err)
		c.observe(call, outcomeFor(mapped), start)
		log.Warn().
			Err(err).
			Dur("duration", time.Since(start)).
			Msg("downstream_request_failed")
		return nil, mapped
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		mapped := c.mapError(err)
		c.observe(call, outcomeFor(mapped), start)
		log.Warn().
			Err(err).
			Int("status", resp.StatusCode).
			Msg("downstream_body_read_failed")
		return nil, mapped
	}

	out := &Response{StatusCode: resp.StatusCode, Body: body}
	if !out.OK() {
		c.observe(call, "status_"+statusClass(resp.StatusCode), start)
		log.Warn().
			Int("status", resp.StatusCode).
			Str("payload", Truncate(body)).
			Dur("duration", time.Since(start)).
			Msg("downstream_request_rejected")
		return out, nil
	}

	c.observe(call, "ok", start)
	log.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("downstream_request_completed")

	return out, nil
}

// mapError converts low-level errors to domain errors
func (c *Client) mapError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (c *Client) observe(call Call, outcome string, start time.Time) {
	downstreamRequestsTotal.WithLabelValues(call.Collaborator, call.Operation, outcome).Inc()
	downstreamRequestDuration.WithLabelValues(call.Collaborator, call.Operation).Observe(time.Since(start).Seconds())
}

func outcomeFor(err error) string {
	if errors.Is(err, ErrTimeout) {
		return "timeout"
	}
	return "unavailable"
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

// Truncate shortens a payload for logging without splitting a UTF-8
// sequence.
func Truncate(b []byte) string {
	if len(b) <= logPayloadBytes {
		return string(b)
	}
	cut := logPayloadBytes
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	return string(b[:cut]) + "..."
}
