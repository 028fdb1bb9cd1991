// Package fetch is the polite HTTP layer under the crawler: rotating
// user agents, a per-host rate limiter, retries on transient failures,
// and a per-host circuit breaker so a dark host stops eating the page
// budget.
package fetch

import (
	"context"
	"math/rand/v2"
	"net/url"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/scholarhub/scholarship-crawler/internal/resilience"
)

// defaultUserAgents mirror current desktop browsers across the three
// major engines.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Edge/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
}

// Options configures a Client.
type Options struct {
	// UserAgents to rotate through. Defaults to a built-in browser set.
	UserAgents []string

	// Delay is the minimum spacing between requests to the same host.
	// Zero disables per-host throttling.
	Delay time.Duration

	// Timeout bounds a single request. Default 30s.
	Timeout time.Duration

	// Retries is the total attempt count for transient failures.
	// Default 3.
	Retries int

	// RetryBackoffMs is the initial retry backoff in milliseconds.
	// Default 500.
	RetryBackoffMs int

	// Breaker tunes the per-host circuit breaker. Zero-valued fields
	// fall back to defaults. Only transient failures trip it.
	Breaker resilience.CircuitBreakerConfig
}

// Client fetches pages for the crawler. Safe for concurrent use.
type Client struct {
	http     *resty.Client
	opts     Options
	retry    resilience.RetryConfig
	breakers *resilience.HostBreakers

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// New creates a fetch client.
func New(opts Options) *Client {
	if len(opts.UserAgents) == 0 {
		opts.UserAgents = defaultUserAgents
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	http := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	retry := resilience.FromRetryConfig(opts.Retries, opts.RetryBackoffMs, 0, 0, -1)
	retry.OnRetry = resilience.RetryLogger("fetch", "get")

	breakerCfg := opts.Breaker
	if breakerCfg.ShouldTrip == nil {
		// A 404 is the page's fault, not the host's.
		breakerCfg.ShouldTrip = resilience.IsTransient
	}

	return &Client{
		http:     http,
		opts:     opts,
		retry:    retry,
		breakers: resilience.NewHostBreakers(breakerCfg),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Get fetches pageURL and returns the response body. It waits for the
// host's rate limiter slot first, then retries transient failures with
// backoff. Exhausted retries count against the host's circuit breaker;
// once it opens, requests to that host fail fast until the reset
// timeout passes.
func (c *Client) Get(ctx context.Context, pageURL string) ([]byte, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: parse url %s", pageURL)
	}

	if lim := c.limiterFor(u.Host); lim != nil {
		if err := lim.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "fetch: rate limit wait")
		}
	}

	breaker := c.breakers.Get(u.Host)
	body, err := resilience.ExecuteVal(ctx, breaker, func(ctx context.Context) ([]byte, error) {
		return resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
			return c.fetchOnce(ctx, pageURL)
		})
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) fetchOnce(ctx context.Context, pageURL string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("User-Agent", c.userAgent()).
		Get(pageURL)
	if err != nil {
		return nil, eris.Wrapf(err, "fetch: get %s", pageURL)
	}

	status := resp.StatusCode()
	if status >= 400 {
		err := eris.Errorf("fetch: get %s: status %d", pageURL, status)
		if resilience.IsTransientHTTPStatus(status) {
			return nil, resilience.NewTransientError(err, status)
		}
		return nil, err
	}

	zap.L().Debug("fetch: page fetched",
		zap.String("url", pageURL),
		zap.Int("status", status),
		zap.Int("bytes", len(resp.Body())),
	)
	return resp.Body(), nil
}

// userAgent picks a random agent per request.
func (c *Client) userAgent() string {
	return c.opts.UserAgents[rand.IntN(len(c.opts.UserAgents))]
}

// limiterFor returns the host's limiter, creating it on first use.
func (c *Client) limiterFor(host string) *rate.Limiter {
	if c.opts.Delay <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	lim, ok := c.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Every(c.opts.Delay), 1)
		c.limiters[host] = lim
	}
	return lim
}
