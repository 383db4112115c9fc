package predict

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

func newTestFallback() *Fallback {
	return NewFallback(WithRand(rand.New(rand.NewSource(7))))
}

func TestFallbackProducesThreeHorizons(t *testing.T) {
	records, err := newTestFallback().Predict(context.Background(), &Input{
		RiskScore: 35,
		Volume24h: 500_000,
		MarketCap: 2_000_000,
	})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "1h", records[0].Timeframe)
	assert.Equal(t, "24h", records[1].Timeframe)
	assert.Equal(t, "7d", records[2].Timeframe)
}

func TestFallbackClamps(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{"极端看涨输入", &Input{RiskScore: 0, Volume24h: 1e9, PriceChange24h: 500}},
		{"极端看跌输入", &Input{RiskScore: 100, Volume24h: 0, PriceChange24h: -500}},
		{"零值输入", &Input{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := newTestFallback().Predict(context.Background(), tt.input)
			require.NoError(t, err)

			for _, r := range records {
				assert.GreaterOrEqual(t, r.Prediction, -50.0)
				assert.LessOrEqual(t, r.Prediction, 50.0)
				assert.GreaterOrEqual(t, r.Confidence, 20.0)
				assert.LessOrEqual(t, r.Confidence, 95.0)
				assert.NotEmpty(t, r.Trend)
				assert.NotEmpty(t, r.RiskLevel)
				assert.NotEmpty(t, r.Factors)
			}
		})
	}
}

func TestFallbackTrend(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		wantTrend string
	}{
		{"高风险压过涨幅", &Input{RiskScore: 80, PriceChange24h: 30}, model.TrendBearish},
		{"涨幅超过5%看涨", &Input{RiskScore: 20, PriceChange24h: 8}, model.TrendBullish},
		{"跌幅超过5%看跌", &Input{RiskScore: 20, PriceChange24h: -8}, model.TrendBearish},
		{"小幅波动中性", &Input{RiskScore: 20, PriceChange24h: 1}, model.TrendNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := newTestFallback().Predict(context.Background(), tt.input)
			require.NoError(t, err)
			for _, r := range records {
				assert.Equal(t, tt.wantTrend, r.Trend)
			}
		})
	}
}

func TestFallbackRiskLevel(t *testing.T) {
	tests := []struct {
		riskScore int
		want      string
	}{
		{80, model.PredictionRiskHigh},
		{71, model.PredictionRiskHigh},
		{70, model.PredictionRiskMedium},
		{41, model.PredictionRiskMedium},
		{40, model.PredictionRiskLow},
		{0, model.PredictionRiskLow},
	}

	for _, tt := range tests {
		records, err := newTestFallback().Predict(context.Background(), &Input{RiskScore: tt.riskScore})
		require.NoError(t, err)
		assert.Equal(t, tt.want, records[0].RiskLevel, "riskScore=%d", tt.riskScore)
	}
}

func TestFallbackFactors(t *testing.T) {
	// 健康输入没有命中任何风险因素，回退到固定的通用说明
	records, err := newTestFallback().Predict(context.Background(), &Input{
		RiskScore: 20,
		Volume24h: 500_000,
		MarketCap: 5_000_000,
	})
	require.NoError(t, err)

	oneHour := records[0]
	assert.Equal(t, []string{"General market volatility", "Current trend continuation"}, oneHour.Factors)

	// 7天跨度命中"预测周期过长"
	sevenDay := records[2]
	assert.Contains(t, sevenDay.Factors, "Extended prediction horizon")

	// 全部风险因素命中
	risky, err := newTestFallback().Predict(context.Background(), &Input{
		RiskScore: 90,
		Volume24h: 1_000,
		MarketCap: 50_000,
	})
	require.NoError(t, err)
	assert.Len(t, risky[2].Factors, 4)
}
