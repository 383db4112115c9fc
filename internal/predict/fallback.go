package predict

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

// Fallback 确定性预测兜底。除噪声项外所有因子都是
// 输入的纯函数，噪声源可注入以便回放。
type Fallback struct {
	rng *rand.Rand
}

type FallbackOption func(*Fallback)

// WithRand 注入随机源
func WithRand(rng *rand.Rand) FallbackOption {
	return func(f *Fallback) {
		f.rng = rng
	}
}

func NewFallback(opts ...FallbackOption) *Fallback {
	f := &Fallback{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Predict 对三个固定时间范围生成预测，永不返回错误
func (f *Fallback) Predict(_ context.Context, in *Input) ([]model.PredictionRecord, error) {
	records := make([]model.PredictionRecord, 0, len(horizons))
	for _, h := range horizons {
		records = append(records, f.predictHorizon(in, h.Hours, h.Label))
	}
	return records, nil
}

func (f *Fallback) predictHorizon(in *Input, hours int, label string) model.PredictionRecord {
	riskFactor := float64(100-in.RiskScore) / 100
	volumeFactor := math.Min(in.Volume24h/1e6, 2)
	timeFactor := float64(hours) / 24
	trendFactor := in.PriceChange24h / 100

	noise := (f.rng.Float64() - 0.5) * 2 * timeFactor * 5
	prediction := clamp(riskFactor*volumeFactor*trendFactor*timeFactor*100+noise, -50, 50)

	confidence := clamp(mean(
		float64(100-in.RiskScore),
		math.Min(in.Volume24h/1e5, 100),
		math.Max(20, float64(100-hours*2)),
	), 20, 95)

	return model.PredictionRecord{
		Timeframe:  label,
		Prediction: prediction,
		Confidence: confidence,
		Trend:      trendFor(in.RiskScore, in.PriceChange24h),
		Factors:    factorsFor(in, hours),
		RiskLevel:  riskLevelFor(in.RiskScore),
	}
}

func trendFor(riskScore int, priceChange24h float64) string {
	if riskScore > 70 {
		return model.TrendBearish
	}
	switch {
	case priceChange24h > 5:
		return model.TrendBullish
	case priceChange24h < -5:
		return model.TrendBearish
	default:
		return model.TrendNeutral
	}
}

func riskLevelFor(riskScore int) string {
	switch {
	case riskScore > 70:
		return model.PredictionRiskHigh
	case riskScore > 40:
		return model.PredictionRiskMedium
	default:
		return model.PredictionRiskLow
	}
}

func factorsFor(in *Input, hours int) []string {
	factors := make([]string, 0, 4)
	if in.RiskScore > 60 {
		factors = append(factors, "High risk score")
	}
	if in.Volume24h < 100_000 {
		factors = append(factors, "Low trading volume")
	}
	if in.MarketCap < 1e6 {
		factors = append(factors, "Small market cap")
	}
	if hours > 24 {
		factors = append(factors, "Extended prediction horizon")
	}
	if len(factors) == 0 {
		factors = []string{"General market volatility", "Current trend continuation"}
	}
	return factors
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mean(values ...float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
