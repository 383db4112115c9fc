package history

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

func TestBirdeyeHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/defi/history_price", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		q := r.URL.Query()
		assert.Equal(t, "mint123", q.Get("address"))
		assert.Equal(t, "1H", q.Get("type"))
		assert.NotEmpty(t, q.Get("time_from"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": {
				"items": [
					{"unixTime": 1700000000, "value": 0.002, "v": 1500},
					{"unixTime": 1700003600, "value": 0.0021, "v": 1800}
				]
			}
		}`))
	}))
	defer server.Close()

	points, err := NewBirdeyeClient(server.URL, "test-key").History(context.Background(), "mint123", model.Timeframe24H)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, int64(1700000000), points[0].UnixTime)
	assert.Equal(t, 0.002, points[0].Price)
	assert.Equal(t, 1500.0, points[0].Volume)
}

func TestBirdeyeHistoryGranularity(t *testing.T) {
	var gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.URL.Query().Get("type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "data": {"items": [{"unixTime": 1, "value": 1}]}}`))
	}))
	defer server.Close()

	client := NewBirdeyeClient(server.URL, "k")

	_, err := client.History(context.Background(), "mint123", model.Timeframe1H)
	require.NoError(t, err)
	assert.Equal(t, "1m", gotType)

	_, err = client.History(context.Background(), "mint123", model.Timeframe7D)
	require.NoError(t, err)
	assert.Equal(t, "1H", gotType)
}

func TestBirdeyeHistoryUnsuccessfulIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "data": {"items": []}}`))
	}))
	defer server.Close()

	_, err := NewBirdeyeClient(server.URL, "k").History(context.Background(), "mint123", model.Timeframe24H)
	assert.Error(t, err)
}
