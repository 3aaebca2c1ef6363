// Package gateway talks to the API gateway that fronts the orders,
// inventory and payments services. Every operation is a single outbound
// call; nothing is retried or cached.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/ops-console/internal/adapter/metrics"
	"github.com/rl1809/ops-console/internal/core/domain"
	"github.com/rl1809/ops-console/internal/port"
)

const (
	TraceHeader    = "X-Trace-ID"
	defaultTimeout = 15 * time.Second
)

type Config struct {
	BaseURL string
	// Timeout bounds a whole call. Zero means the default; negative disables it.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     logrus.FieldLogger
	Metrics    *metrics.Metrics
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logrus.FieldLogger
	metrics    *metrics.Metrics
}

func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		switch {
		case timeout == 0:
			timeout = defaultTimeout
		case timeout < 0:
			timeout = 0
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		log:        log.WithField("component", "gateway"),
		metrics:    cfg.Metrics,
	}
}

type traceKey struct{}

// WithTraceID makes calls issued with ctx reuse id instead of minting one.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

func traceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// call describes one outbound request.
type call struct {
	domain    string
	operation string
	method    string
	path      string
	query     url.Values
	body      any
	fallback  string
	// check runs before anything is sent; a failure means no request is made.
	check func(op string) error
}

func (cl call) op() string { return cl.domain + "." + cl.operation }

// execute sends cl, decodes the response with decode and records the outcome.
func execute[T any](ctx context.Context, c *Client, cl call, decode func(*http.Response, string, string) (T, error)) (T, error) {
	start := time.Now()
	id := traceID(ctx)

	var (
		out  T
		resp *http.Response
		err  error
	)
	if cl.check != nil {
		err = cl.check(cl.op())
	}
	if err == nil {
		resp, err = c.send(ctx, cl, id)
	}
	if err == nil {
		out, err = decode(resp, cl.op(), cl.fallback)
	}

	c.observe(cl, id, resp, time.Since(start), err)
	return out, err
}

func (c *Client) send(ctx context.Context, cl call, traceID string) (*http.Response, error) {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		raw, err := json.Marshal(cl.body)
		if err != nil {
			return nil, &domain.Error{Kind: domain.KindValidation, Op: cl.op(), Msg: "request cannot be encoded", Err: err}
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, body)
	if err != nil {
		return nil, &domain.Error{Kind: domain.KindTransport, Op: cl.op(), Msg: "invalid gateway request", Fallback: cl.fallback, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(TraceHeader, traceID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.Error{Kind: domain.KindTransport, Op: cl.op(), Msg: describeTransport(err), Fallback: cl.fallback, Err: err}
	}
	return resp, nil
}

func describeTransport(err error) string {
	var netErr net.Error
	switch {
	case errors.Is(err, context.Canceled):
		return "request canceled"
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return "request timed out"
	default:
		return "gateway unreachable"
	}
}

func (c *Client) observe(cl call, traceID string, resp *http.Response, elapsed time.Duration, err error) {
	outcome := metrics.OutcomeOK
	switch domain.KindOf(err) {
	case domain.KindTransport:
		outcome = metrics.OutcomeTransport
	case domain.KindDomain:
		outcome = metrics.OutcomeDomain
	case domain.KindValidation:
		outcome = metrics.OutcomeValidation
	}
	c.metrics.RecordGatewayCall(cl.domain, cl.operation, outcome, elapsed)

	fields := logrus.Fields{
		"operation":   cl.op(),
		"method":      cl.method,
		"path":        cl.path,
		"trace_id":    traceID,
		"duration_ms": elapsed.Milliseconds(),
	}
	if resp != nil {
		fields["status"] = resp.StatusCode
	}
	if err != nil {
		c.log.WithFields(fields).WithError(err).Warn("gateway call failed")
		return
	}
	c.log.WithFields(fields).Debug("gateway call")
}

func validInput(input any) func(string) error {
	return func(op string) error { return domain.Validate(op, input) }
}

func nonEmpty(field, value string) func(string) error {
	return func(op string) error {
		if strings.TrimSpace(value) == "" {
			return domain.NewValidationError(op, "%s is required", field)
		}
		return nil
	}
}

// Health probes the gateway's liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := execute(ctx, c, call{
		domain:    "gateway",
		operation: "health",
		method:    http.MethodGet,
		path:      "/health",
		fallback:  "gateway health check failed",
	}, decodeStatus)
	return err
}

var (
	_ port.OrderGateway     = (*Client)(nil)
	_ port.InventoryGateway = (*Client)(nil)
	_ port.PaymentGateway   = (*Client)(nil)
)
