package broadcast

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/platform/resilience"
	"github.com/riskibarqy/football-portal/internal/relay"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var errRelayTransient = crerr.New("relay transient failure")

type RelayPublisherConfig struct {
	PublishURL     string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.BreakerConfig
}

// RelayPublisher posts live updates to the relay's /publish endpoint.
type RelayPublisher struct {
	client     *fasthttp.Client
	publishURL string
	token      string
	timeout    time.Duration
	breaker    *resilience.Breaker
	logger     *logging.Logger
}

func NewRelayPublisher(cfg RelayPublisherConfig, logger *logging.Logger) (*RelayPublisher, error) {
	publishURL, err := validateHTTPURL(cfg.PublishURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid RELAY_PUBLISH_URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &RelayPublisher{
		client: &fasthttp.Client{
			Name:                "football-portal-api",
			MaxConnsPerHost:     32,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		publishURL: publishURL,
		token:      strings.TrimSpace(cfg.Token),
		timeout:    timeout,
		breaker:    resilience.NewBreaker(cfg.CircuitBreaker),
		logger:     logger.Named("broadcast"),
	}, nil
}

func (p *RelayPublisher) Publish(ctx context.Context, channel, event string, data any) error {
	raw, err := sonic.Marshal(data)
	if err != nil {
		return crerr.Wrap(err, "marshal live update")
	}
	frame, err := relay.EncodeFrame(relay.Message{Channel: channel, Event: event, Data: raw})
	if err != nil {
		return crerr.Wrap(err, "encode live update")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("relay.channel", channel),
			attribute.String("relay.event", event),
			attribute.Int("relay.payload_bytes", len(frame)),
		)
	}

	err = p.breaker.Do(func() error {
		return p.post(frame)
	}, isRelayCircuitFailure)
	if err != nil {
		if crerr.Is(err, resilience.ErrOpen) {
			return fmt.Errorf("relay is temporarily unavailable: %w", err)
		}
		return err
	}

	p.logger.DebugContext(ctx, "live update published", "channel", channel, "event", event)
	return nil
}

func (p *RelayPublisher) post(body []byte) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.publishURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if p.token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+p.token)
	}
	req.SetBodyRaw(body)

	if err := p.client.DoTimeout(req, resp, p.timeout); err != nil {
		return fmt.Errorf("%w: post %s: %v", errRelayTransient, p.publishURL, err)
	}

	status := resp.StatusCode()
	if status/100 == 2 {
		return nil
	}
	text := truncateForLog(strings.TrimSpace(string(resp.Body())), 512)
	if isRelayRetryableStatus(status) {
		return fmt.Errorf("%w: relay status=%d body=%s", errRelayTransient, status, text)
	}
	return fmt.Errorf("relay rejected update status=%d body=%s", status, text)
}

// NopPublisher drops every update. It stands in when the relay is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error {
	return nil
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return candidate, nil
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}

func isRelayCircuitFailure(err error) bool {
	return crerr.Is(err, errRelayTransient)
}

func isRelayRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}
