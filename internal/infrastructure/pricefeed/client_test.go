package pricefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"memeforge.backend/internal/config"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSOLPriceUSD_FetchAndCache(t *testing.T) {
	var hits int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"solana":{"usd":142.37}}`))
	}))
	defer srv.Close()

	c := NewClient(config.PriceFeedConfig{URL: srv.URL, CacheTTL: 30 * time.Second}, newTestRedis(t))
	ctx := context.Background()

	price, err := c.SOLPriceUSD(ctx)
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.NewFromFloat(142.37)))

	// Second call is served from cache.
	again, err := c.SOLPriceUSD(ctx)
	require.NoError(t, err)
	require.True(t, again.Equal(price))
	require.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestSOLPriceUSD_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(config.PriceFeedConfig{URL: srv.URL, CacheTTL: 30 * time.Second}, newTestRedis(t))
	_, err := c.SOLPriceUSD(context.Background())
	require.Error(t, err)
}

func TestSOLPriceUSD_BadQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"solana":{"usd":0}}`))
	}))
	defer srv.Close()

	c := NewClient(config.PriceFeedConfig{URL: srv.URL, CacheTTL: 30 * time.Second}, newTestRedis(t))
	_, err := c.SOLPriceUSD(context.Background())
	require.Error(t, err)
}

func TestSOLPriceUSD_NoRedis(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"solana":{"usd":99.5}}`))
	}))
	defer srv.Close()

	c := NewClient(config.PriceFeedConfig{URL: srv.URL, CacheTTL: time.Second}, nil)
	price, err := c.SOLPriceUSD(context.Background())
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.NewFromFloat(99.5)))
}
