// Package portraits talks to the player image directory used to
// decorate the auction board. Lookups are best-effort: a miss never
// blocks a sale.
package portraits

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/fasthttp"

	"github.com/stumpline/cricket-auction/internal/platform/logging"
	"github.com/stumpline/cricket-auction/internal/platform/resilience"
)

const (
	defaultBaseURL   = "https://img.cricketdirectory.example/v1"
	defaultTimeout   = 10 * time.Second
	defaultBatchSize = 8
)

var errTransient = crerr.New("portrait directory transient failure")

type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	BatchSize      int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	http           *fasthttp.Client
	baseURL        string
	token          string
	timeout        time.Duration
	maxRetries     int
	batchSize      int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Client{
		http:           &fasthttp.Client{ReadTimeout: timeout, WriteTimeout: timeout},
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		maxRetries:     max(cfg.MaxRetries, 0),
		batchSize:      batchSize,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		circuitEnabled: cfg.CircuitBreaker.Enabled,
	}
}

type portraitEnvelope struct {
	URL string `json:"url"`
}

// PortraitURL resolves one player's portrait. Concurrent lookups for
// the same name collapse into a single upstream call.
func (c *Client) PortraitURL(ctx context.Context, playerName string) (string, error) {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return "", fmt.Errorf("player name is required")
	}

	v, err, _ := c.flight.Do("portrait:"+strings.ToLower(playerName), func() (any, error) {
		return c.fetch(ctx, playerName)
	})
	if err != nil {
		return "", err
	}
	resolved, _ := v.(string)
	return resolved, nil
}

// BatchPortraitURLs resolves portraits for many players on a bounded
// goroutine pool. Failed names are logged and left out of the result.
func (c *Client) BatchPortraitURLs(ctx context.Context, playerNames []string) map[string]string {
	out := make(map[string]string, len(playerNames))
	if len(playerNames) == 0 {
		return out
	}

	var mu sync.Mutex
	p := pool.New().WithMaxGoroutines(c.batchSize)
	for _, name := range playerNames {
		name := name
		p.Go(func() {
			resolved, err := c.PortraitURL(ctx, name)
			if err != nil || resolved == "" {
				c.logger.WarnContext(ctx, "portrait lookup failed", "player", name, "error", err)
				return
			}
			mu.Lock()
			out[name] = resolved
			mu.Unlock()
		})
	}
	p.Wait()
	return out
}

func (c *Client) fetch(ctx context.Context, playerName string) (string, error) {
	uri := c.baseURL + "/portraits/search?name=" + url.QueryEscape(playerName)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 200 * time.Millisecond):
			}
		}

		resolved, err := c.doRequest(uri)
		if err == nil {
			return resolved, nil
		}
		lastErr = err
		if !crerr.Is(err, errTransient) {
			return "", err
		}
		c.logger.Warn("portrait fetch retry",
			"player", playerName,
			"attempt", attempt+1,
			"error", err,
		)
	}
	return "", lastErr
}

func (c *Client) doRequest(uri string) (string, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			return "", err
		}
	}

	resolved, err := c.roundTrip(uri)
	if c.circuitEnabled {
		if err != nil && crerr.Is(err, errTransient) {
			c.breaker.RecordFailure()
		} else if err == nil {
			c.breaker.RecordSuccess()
		}
	}
	return resolved, err
}

func (c *Client) roundTrip(uri string) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uri)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if err := c.http.DoTimeout(req, resp, c.timeout); err != nil {
		return "", crerr.Mark(fmt.Errorf("portrait request: %w", err), errTransient)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusNotFound:
		return "", nil
	case status >= 500:
		return "", crerr.Mark(fmt.Errorf("portrait directory returned %d", status), errTransient)
	case status != fasthttp.StatusOK:
		return "", fmt.Errorf("portrait directory returned %d", status)
	}

	var envelope portraitEnvelope
	if err := sonic.Unmarshal(resp.Body(), &envelope); err != nil {
		return "", fmt.Errorf("decode portrait response: %w", err)
	}
	return envelope.URL, nil
}
