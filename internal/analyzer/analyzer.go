package analyzer

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	DefaultEndpoint = "http://localhost:5001"
	DefaultTimeout  = 2 * time.Minute

	analyzePath     = "/api/analyze"
	healthPath      = "/api/health"
	userAgent       = "duna-ai/duna"
	contentType     = "application/json"
	requestIDHeader = "X-Request-ID"
)

type Client struct {
	http   *resty.Client
	logger *zap.Logger

	Endpoint  string
	UserAgent string
}

// Options configures the transport. Zero values fall back to defaults,
// except Timeout where a negative value disables the deadline entirely.
type Options struct {
	Endpoint  string
	Timeout   time.Duration
	Token     string
	UserAgent string
}

func New(logger *zap.Logger, opts Options) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = userAgent
	}

	timeout := opts.Timeout
	switch {
	case timeout == 0:
		timeout = DefaultTimeout
	case timeout < 0:
		timeout = 0
	}

	rc := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", ua).
		SetHeader("Accept", contentType).
		SetLogger(logger.Sugar())

	if token := strings.TrimSpace(opts.Token); token != "" {
		rc.SetAuthToken(token)
	}

	return &Client{
		http:      rc,
		logger:    logger,
		Endpoint:  endpoint,
		UserAgent: ua,
	}
}

// Analyze posts the request to the analysis service and interprets the reply.
// Every failure is either a *TransportError or a *ServiceError.
func (c *Client) Analyze(ctx context.Context, req *Request) (*Result, error) {
	return c.analyze(ctx, req)
}

// Health asks the analysis service whether it is up.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	return c.health(ctx)
}
