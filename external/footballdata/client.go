package footballdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-portal/internal/platform/logging"
	"github.com/riskibarqy/football-portal/internal/platform/resilience"
)

const (
	defaultBaseURL      = "https://v3.football.api-sports.io"
	defaultKeyHeader    = "x-apisports-key"
	defaultTimeout      = 30 * time.Second
	defaultRetryBackoff = time.Second
	maxResponseBytes    = 8 << 20
)

var (
	ErrMissingAPIKey       = crerr.New("football api key is required")
	ErrUpstreamUnavailable = crerr.New("football data upstream unavailable")

	errTransient = crerr.New("football data transient failure")
)

// emptyData is what a degraded call hands back: an empty sequence.
var emptyData = json.RawMessage("[]")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	KeyHeader      string
	Timeout        time.Duration
	MaxRetries     int
	RetryBackoff   time.Duration
	TTL            TTLConfig
	CircuitBreaker resilience.BreakerConfig
	Logger         *logging.Logger
	Now            func() time.Time
}

// Client reads the upstream football API through a write-through cache.
// Upstream failures never surface as errors from the endpoint methods; they
// come back as an empty Result whose Err is marked ErrUpstreamUnavailable.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	keyHeader    string
	maxRetries   int
	retryBackoff time.Duration
	ttl          TTLConfig
	store        CacheStore
	logger       *logging.Logger
	breaker      *resilience.Breaker
	flight       resilience.Flight[[]byte]
	now          func() time.Time
}

func NewClient(cfg ClientConfig, store CacheStore) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if store == nil {
		store = NewMemoryCacheStore()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	keyHeader := strings.TrimSpace(cfg.KeyHeader)
	if keyHeader == "" {
		keyHeader = defaultKeyHeader
	}
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		httpClient:   httpClient,
		baseURL:      baseURL,
		apiKey:       apiKey,
		keyHeader:    keyHeader,
		maxRetries:   max(cfg.MaxRetries, 0),
		retryBackoff: backoff,
		ttl:          cfg.TTL.withDefaults(),
		store:        store,
		logger:       logger.Named("footballdata"),
		breaker:      resilience.NewBreaker(cfg.CircuitBreaker),
		now:          now,
	}, nil
}

// Result is the outcome of one endpoint call. Data is the envelope's
// "response" member, or an empty sequence when the upstream failed.
type Result struct {
	Data   json.RawMessage
	Cached bool
	Err    error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Decode unmarshals Data into target. A failed result leaves target untouched.
func (r Result) Decode(target any) error {
	if !r.OK() || len(r.Data) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(r.Data, target); err != nil {
		return fmt.Errorf("decode football data: %w", err)
	}
	return nil
}

func (c *Client) Leagues(ctx context.Context) Result {
	return c.fetch(ctx, CategoryReference, "/leagues", nil)
}

func (c *Client) Teams(ctx context.Context, leagueID int64, season int) Result {
	return c.fetch(ctx, CategoryReference, "/teams", map[string]string{
		"league": formatID(leagueID),
		"season": strconv.Itoa(season),
	})
}

func (c *Client) Players(ctx context.Context, teamID int64, season, page int) Result {
	if page < 1 {
		page = 1
	}
	return c.fetch(ctx, CategoryReference, "/players", map[string]string{
		"team":   formatID(teamID),
		"season": strconv.Itoa(season),
		"page":   strconv.Itoa(page),
	})
}

func (c *Client) Fixtures(ctx context.Context, leagueID int64, season int) Result {
	return c.fetch(ctx, CategoryFixtures, "/fixtures", map[string]string{
		"league": formatID(leagueID),
		"season": strconv.Itoa(season),
	})
}

func (c *Client) LiveFixtures(ctx context.Context) Result {
	return c.fetch(ctx, CategoryLive, "/fixtures", map[string]string{"live": "all"})
}

func (c *Client) Fixture(ctx context.Context, fixtureID int64) Result {
	return c.fetch(ctx, CategoryMatch, "/fixtures", map[string]string{"id": formatID(fixtureID)})
}

func (c *Client) FixtureEvents(ctx context.Context, fixtureID int64) Result {
	return c.fetch(ctx, CategoryMatch, "/fixtures/events", map[string]string{"fixture": formatID(fixtureID)})
}

func (c *Client) FixtureLineups(ctx context.Context, fixtureID int64) Result {
	return c.fetch(ctx, CategoryMatch, "/fixtures/lineups", map[string]string{"fixture": formatID(fixtureID)})
}

func (c *Client) Standings(ctx context.Context, leagueID int64, season int) Result {
	return c.fetch(ctx, CategoryStandings, "/standings", map[string]string{
		"league": formatID(leagueID),
		"season": strconv.Itoa(season),
	})
}

func (c *Client) TopScorers(ctx context.Context, leagueID int64, season int) Result {
	return c.fetch(ctx, CategoryScorers, "/players/topscorers", map[string]string{
		"league": formatID(leagueID),
		"season": strconv.Itoa(season),
	})
}

// Sweep removes expired cache entries from the backing store.
func (c *Client) Sweep(ctx context.Context) (int64, error) {
	return c.store.Sweep(ctx, c.now())
}

func (c *Client) fetch(ctx context.Context, category Category, endpoint string, params map[string]string) Result {
	key := CacheKey(endpoint, params)

	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "football cache read failed, fetching upstream", "key", key, "error", err)
	}
	if err == nil && ok && entry.Fresh(c.now()) {
		data, perr := responseOf(entry.Data)
		if perr == nil {
			return Result{Data: data, Cached: true}
		}
		c.logger.WarnContext(ctx, "discarding unreadable football cache entry", "key", key, "error", perr)
	}

	body, err, _ := c.flight.Do(key, func() ([]byte, error) {
		return c.fetchAndStore(ctx, category, endpoint, params, key)
	})
	if err != nil {
		c.logger.WarnContext(ctx, "football data request degraded to empty result",
			"endpoint", endpoint,
			"key", key,
			"error", c.redact(err.Error()),
		)
		return Result{Data: emptyData, Err: crerr.Mark(fmt.Errorf("fetch %s: %s", key, c.redact(err.Error())), ErrUpstreamUnavailable)}
	}

	data, err := responseOf(body)
	if err != nil {
		return Result{Data: emptyData, Err: crerr.Mark(err, ErrUpstreamUnavailable)}
	}
	return Result{Data: data}
}

func (c *Client) fetchAndStore(ctx context.Context, category Category, endpoint string, params map[string]string, key string) ([]byte, error) {
	var body []byte
	err := c.breaker.Do(func() error {
		raw, err := c.executeRequest(ctx, endpoint, params)
		if err != nil {
			return err
		}
		if err := checkEnvelope(raw); err != nil {
			return err
		}
		body = raw
		return nil
	}, isCircuitFailure)
	if err != nil {
		return nil, err
	}

	now := c.now()
	entry := CacheEntry{
		Key:       key,
		Data:      body,
		ExpiresAt: now.Add(c.ttl.For(category)),
		CreatedAt: now,
	}
	if err := c.store.Put(ctx, entry); err != nil {
		c.logger.WarnContext(ctx, "football cache write failed", "key", key, "error", err)
	}
	return body, nil
}

func (c *Client) executeRequest(ctx context.Context, endpoint string, params map[string]string) ([]byte, error) {
	values := url.Values{}
	for name, value := range params {
		values.Set(name, value)
	}
	fullURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set(c.keyHeader, c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Mark(fmt.Errorf("send request: %s", c.redact(err.Error())), errTransient)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Mark(fmt.Errorf("read response body: %w", readErr), errTransient)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Mark(fmt.Errorf("upstream status=%d body=%s", resp.StatusCode, abbreviateBody(raw)), errTransient)
			default:
				return nil, fmt.Errorf("upstream status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(time.Duration(attempt+1) * c.retryBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, lastErr
}

type envelope struct {
	Results  int             `json:"results"`
	Errors   json.RawMessage `json:"errors"`
	Response json.RawMessage `json:"response"`
}

// checkEnvelope rejects 2xx bodies that report errors, e.g. a rate limit or
// a bad key, so they are never cached.
func checkEnvelope(raw []byte) error {
	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode upstream envelope: %w", err)
	}
	if hasErrors(env.Errors) {
		return fmt.Errorf("upstream reported errors: %s", abbreviateBody(env.Errors))
	}
	return nil
}

func responseOf(raw []byte) (json.RawMessage, error) {
	var env envelope
	if err := sonic.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode upstream envelope: %w", err)
	}
	if len(bytes.TrimSpace(env.Response)) == 0 || bytes.Equal(bytes.TrimSpace(env.Response), []byte("null")) {
		return emptyData, nil
	}
	return env.Response, nil
}

func hasErrors(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "[]", "{}":
		return false
	default:
		return true
	}
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) redact(text string) string {
	if c.apiKey == "" {
		return text
	}
	return strings.ReplaceAll(text, c.apiKey, "REDACTED")
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
