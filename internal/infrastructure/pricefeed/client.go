package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"memeforge.backend/internal/config"
)

const cacheKey = "price:sol_usd"

// Client fetches the SOL/USD spot price from an upstream simple-price
// API and caches it in Redis so bursts of payment flows do not hammer
// the upstream.
type Client struct {
	httpClient *http.Client
	redis      *redis.Client
	url        string
	cacheTTL   time.Duration
}

// NewClient creates a price feed client
func NewClient(cfg config.PriceFeedConfig, redisClient *redis.Client) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		redis:      redisClient,
		url:        cfg.URL,
		cacheTTL:   cfg.CacheTTL,
	}
}

// SOLPriceUSD returns the current SOL price in USD, serving from cache
// when a fresh value is available.
func (c *Client) SOLPriceUSD(ctx context.Context) (decimal.Decimal, error) {
	if c.redis != nil {
		if cached, err := c.redis.Get(ctx, cacheKey).Result(); err == nil {
			if price, perr := decimal.NewFromString(cached); perr == nil {
				return price, nil
			}
		}
	}

	price, err := c.fetch(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	if c.redis != nil {
		c.redis.Set(ctx, cacheKey, price.String(), c.cacheTTL)
	}
	return price, nil
}

func (c *Client) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build price request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("price feed returned status %d", resp.StatusCode)
	}

	var body map[string]struct {
		USD float64 `json:"usd"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("decode price response: %w", err)
	}

	quote, ok := body["solana"]
	if !ok || quote.USD <= 0 {
		return decimal.Zero, fmt.Errorf("price feed returned no usable quote")
	}
	return decimal.NewFromFloat(quote.USD), nil
}
