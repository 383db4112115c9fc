package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceIndexCurrentPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/networks/solana/token_price/mint123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"attributes": {"token_prices": {"mint123": "0.00042"}}}}`))
	}))
	defer server.Close()

	price, err := NewPriceIndexClient(server.URL).CurrentPrice(context.Background(), "mint123")
	require.NoError(t, err)
	assert.Equal(t, 0.00042, price)
}

func TestPriceIndexMissingTokenIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"attributes": {"token_prices": {}}}}`))
	}))
	defer server.Close()

	_, err := NewPriceIndexClient(server.URL).CurrentPrice(context.Background(), "mint123")
	assert.Error(t, err)
}

func TestPriceIndexFetchSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"attributes": {"token_prices": {"mint123": "1.5"}}}}`))
	}))
	defer server.Close()

	snapshot, err := NewPriceIndexClient(server.URL).Fetch(context.Background(), "mint123")
	require.NoError(t, err)

	assert.Equal(t, "priceindex", snapshot.Source)
	assert.Equal(t, 1.5, snapshot.PriceUSD)
	// 指数服务只提供价格
	assert.Zero(t, snapshot.MarketCap)
	assert.Zero(t, snapshot.Volume24h)
}
