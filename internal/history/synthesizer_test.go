package history

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/market"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

const testMint = "mint1111111111111111111111111111111111111111"

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeHistoryProvider struct {
	points []RawPoint
	err    error
}

func (f *fakeHistoryProvider) History(_ context.Context, _ string, _ model.Timeframe) ([]RawPoint, error) {
	return f.points, f.err
}

type fakePriceSource struct {
	price float64
	err   error
}

func (f *fakePriceSource) CurrentPrice(_ context.Context, _ string) (float64, error) {
	return f.price, f.err
}

type fakePairSource struct {
	stats *market.PairStats
	err   error
}

func (f *fakePairSource) BestPair(_ context.Context, _ string) (*market.PairStats, error) {
	return f.stats, f.err
}

func newTestSynthesizer(provider Provider, prices PriceSource, pairs PairSource) *Synthesizer {
	return NewSynthesizer(provider, prices, pairs,
		WithRand(rand.New(rand.NewSource(42))),
		WithNow(func() time.Time { return fixedNow }),
	)
}

// assertSeriesShape 校验点数、升序和间隔
func assertSeriesShape(t *testing.T, series model.PriceSeries, tf model.Timeframe) {
	t.Helper()

	count, interval := tf.Spec()
	require.Len(t, series, count+1)

	for i := 1; i < len(series); i++ {
		assert.Equal(t, interval.Milliseconds(), series[i].Timestamp-series[i-1].Timestamp,
			"相邻点间隔应等于时间范围的步长")
	}
	assert.Equal(t, fixedNow.UnixMilli(), series[len(series)-1].Timestamp, "最后一个点是当前时刻")
}

func TestSeriesFromRealHistory(t *testing.T) {
	provider := &fakeHistoryProvider{
		points: []RawPoint{
			{UnixTime: 1700000000, Price: 0.002, Volume: 1234},
			{UnixTime: 1700003600, Price: 0.0025, Volume: 2345},
		},
	}

	s := newTestSynthesizer(provider, nil, nil)
	series := s.Series(context.Background(), testMint, model.Timeframe24H)

	require.Len(t, series, 2)
	assert.Equal(t, int64(1700000000000), series[0].Timestamp)
	assert.Equal(t, 0.002, series[0].Price)
	assert.Equal(t, 0.002*supplyProxyMultiplier, series[0].MarketCap)
}

func TestSeriesTrendSynthesis(t *testing.T) {
	currentPrice := 0.001
	s := newTestSynthesizer(
		&fakeHistoryProvider{err: errors.New("history down")},
		&fakePriceSource{price: currentPrice},
		nil,
	)

	series := s.Series(context.Background(), testMint, model.Timeframe24H)
	assertSeriesShape(t, series, model.Timeframe24H)

	for _, p := range series {
		assert.GreaterOrEqual(t, p.Price, currentPrice*realisticFloorRatio, "价格不低于当前价的70%%")
		assert.GreaterOrEqual(t, p.Volume, 50000.0)
		assert.Equal(t, p.Price*supplyProxyMultiplier, p.MarketCap)
	}
}

func TestSeriesChangeWeightedBackfill(t *testing.T) {
	stats := &market.PairStats{
		PriceUSD:       0.005,
		Volume24h:      480_000,
		PriceChange1h:  2.5,
		PriceChange24h: 40.0,
	}
	s := newTestSynthesizer(
		&fakeHistoryProvider{err: errors.New("history down")},
		&fakePriceSource{err: errors.New("index down")},
		&fakePairSource{stats: stats},
	)

	series := s.Series(context.Background(), testMint, model.Timeframe24H)
	assertSeriesShape(t, series, model.Timeframe24H)

	// 最后一个点回推进度为0，只剩±0.5%的噪声
	last := series[len(series)-1]
	assert.InDelta(t, stats.PriceUSD, last.Price, stats.PriceUSD*0.01)

	// 24小时涨40%，最早的点应明显低于当前价
	first := series[0]
	assert.Less(t, first.Price, stats.PriceUSD)

	for _, p := range series {
		assert.GreaterOrEqual(t, p.Price, syntheticPriceFloor)
		assert.GreaterOrEqual(t, p.Volume, 1000.0)
	}
}

func TestSeriesPureSyntheticFallback(t *testing.T) {
	s := newTestSynthesizer(
		&fakeHistoryProvider{err: errors.New("history down")},
		&fakePriceSource{err: errors.New("index down")},
		&fakePairSource{err: errors.New("pairs down")},
	)

	for _, tf := range []model.Timeframe{model.Timeframe1H, model.Timeframe24H, model.Timeframe7D, model.Timeframe30D} {
		series := s.Series(context.Background(), testMint, tf)
		assertSeriesShape(t, series, tf)

		for _, p := range series {
			assert.GreaterOrEqual(t, p.Price, syntheticPriceFloor)
			assert.NotEmpty(t, p.Date)
		}
	}
}

func TestSeriesNilSourcesFallThrough(t *testing.T) {
	// 所有数据源未配置时直接走纯合成
	s := newTestSynthesizer(nil, nil, nil)

	series := s.Series(context.Background(), testMint, model.Timeframe24H)
	assertSeriesShape(t, series, model.Timeframe24H)
}

func TestTimeframeSpec(t *testing.T) {
	tests := []struct {
		tf           model.Timeframe
		wantCount    int
		wantInterval time.Duration
	}{
		{model.Timeframe1H, 60, time.Minute},
		{model.Timeframe24H, 24, time.Hour},
		{model.Timeframe7D, 168, time.Hour},
		{model.Timeframe30D, 720, time.Hour},
		{model.Timeframe("bogus"), 720, time.Hour},
	}

	for _, tt := range tests {
		count, interval := tt.tf.Spec()
		assert.Equal(t, tt.wantCount, count)
		assert.Equal(t, tt.wantInterval, interval)
	}
}
