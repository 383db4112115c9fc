package history

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/market"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/logger"
)

// supplyProxyMultiplier 估算市值时的固定流通量代理：marketCap = price × 1e9。
// 与原实现保持一致，待产品确认后再改为真实流通量。
const supplyProxyMultiplier = 1e9

// syntheticPriceFloor 合成分支的价格下限
const syntheticPriceFloor = 1e-6

// realisticFloorRatio 趋势合成分支相对当前价的下限比例
const realisticFloorRatio = 0.7

const dateLayout = "2006-01-02 15:04"

// PriceSource 只提供当前价格的指数服务
type PriceSource interface {
	CurrentPrice(ctx context.Context, mint string) (float64, error)
}

// PairSource 提供当前价格和涨跌幅的DEX交易对服务
type PairSource interface {
	BestPair(ctx context.Context, mint string) (*market.PairStats, error)
}

// Synthesizer 价格历史合成器。优先用真实历史数据，
// 逐级降级到越来越合成的重建方式，最后纯随机兜底。
// 每次切换时间范围都会重新走一遍完整级联。
type Synthesizer struct {
	provider Provider
	prices   PriceSource
	pairs    PairSource

	rng *rand.Rand
	now func() time.Time
}

// Option 配置合成器，主要用于测试注入
type Option func(*Synthesizer)

// WithRand 注入随机源，便于回放
func WithRand(rng *rand.Rand) Option {
	return func(s *Synthesizer) {
		s.rng = rng
	}
}

// WithNow 注入时钟
func WithNow(now func() time.Time) Option {
	return func(s *Synthesizer) {
		s.now = now
	}
}

func NewSynthesizer(provider Provider, prices PriceSource, pairs PairSource, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		provider: provider,
		prices:   prices,
		pairs:    pairs,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Series 生成指定时间范围的价格序列，永不失败
func (s *Synthesizer) Series(ctx context.Context, mint string, tf model.Timeframe) model.PriceSeries {
	// 分支一：真实历史数据
	if s.provider != nil {
		if raw, err := s.provider.History(ctx, mint, tf); err == nil && len(raw) > 0 {
			return s.fromHistory(raw)
		} else if err != nil {
			logger.Debug("历史行情不可用，降级到趋势合成",
				logger.String("mint", mint), logger.FieldErr(err))
		}
	}

	// 分支二：只有当前价格，做趋势合成
	if s.prices != nil {
		if price, err := s.prices.CurrentPrice(ctx, mint); err == nil && price > 0 {
			return s.trendSynthesis(price, tf)
		} else if err != nil {
			logger.Debug("价格指数不可用，降级到涨跌幅回推",
				logger.String("mint", mint), logger.FieldErr(err))
		}
	}

	// 分支三：当前价格加涨跌幅，按进度回推
	if s.pairs != nil {
		if stats, err := s.pairs.BestPair(ctx, mint); err == nil && stats.PriceUSD > 0 {
			return s.changeWeightedBackfill(stats, tf)
		} else if err != nil {
			logger.Debug("交易对数据不可用，降级到纯合成",
				logger.String("mint", mint), logger.FieldErr(err))
		}
	}

	// 分支四：全部失败，纯随机合成
	return s.pureSynthetic(tf)
}

// fromHistory 把真实历史点映射成价格序列
func (s *Synthesizer) fromHistory(raw []RawPoint) model.PriceSeries {
	series := make(model.PriceSeries, 0, len(raw))
	for _, p := range raw {
		ts := p.UnixTime * 1000
		series = append(series, model.PricePoint{
			Timestamp: ts,
			Price:     p.Price,
			Volume:    p.Volume,
			MarketCap: p.Price * supplyProxyMultiplier,
			Date:      time.UnixMilli(ts).Format(dateLayout),
		})
	}
	return series
}

// trendVolatility 各时间范围的合成波动率
func trendVolatility(tf model.Timeframe) float64 {
	switch tf {
	case model.Timeframe1H:
		return 0.002
	case model.Timeframe24H:
		return 0.03
	default:
		return 0.08
	}
}

// trendSynthesis 基于当前价格用正弦叠加噪声合成整条曲线
func (s *Synthesizer) trendSynthesis(currentPrice float64, tf model.Timeframe) model.PriceSeries {
	count, interval := tf.Spec()
	volatility := trendVolatility(tf)
	floor := currentPrice * realisticFloorRatio
	now := s.now()

	series := make(model.PriceSeries, 0, count+1)
	for i := count; i >= 0; i-- {
		multiplier := 1 +
			math.Sin(float64(i)/(float64(count)/6))*volatility*0.3 +
			(s.rng.Float64()-0.5)*volatility +
			math.Cos(float64(i)/(float64(count)/3))*volatility*0.2

		price := currentPrice * multiplier
		if price < floor {
			price = floor
		}

		ts := now.Add(-time.Duration(i) * interval)
		series = append(series, model.PricePoint{
			Timestamp: ts.UnixMilli(),
			Price:     price,
			Volume:    50000 + s.rng.Float64()*200000,
			MarketCap: price * supplyProxyMultiplier,
			Date:      ts.Format(dateLayout),
		})
	}
	return series
}

// applicableChange 时间范围对应的回推涨跌幅（百分比）
func applicableChange(stats *market.PairStats, tf model.Timeframe) float64 {
	switch tf {
	case model.Timeframe1H:
		return stats.PriceChange1h
	case model.Timeframe24H:
		return stats.PriceChange24h
	case model.Timeframe7D:
		// 7天没有直接数据，用24小时涨跌幅外推
		return stats.PriceChange24h * 4
	default:
		return 0
	}
}

// changeWeightedBackfill 用涨跌幅按时间进度回推历史价格
func (s *Synthesizer) changeWeightedBackfill(stats *market.PairStats, tf model.Timeframe) model.PriceSeries {
	count, interval := tf.Spec()
	change := applicableChange(stats, tf)
	now := s.now()

	series := make(model.PriceSeries, 0, count+1)
	for i := count; i >= 0; i-- {
		progress := float64(i) / float64(count)
		scaled := change / 100 * progress

		price := stats.PriceUSD / (1 + scaled)
		// ±0.5%微观结构噪声
		price *= 1 + (s.rng.Float64()-0.5)*0.01
		if price < syntheticPriceFloor {
			price = syntheticPriceFloor
		}

		volume := stats.Volume24h / float64(count) * (0.4 + s.rng.Float64()*1.2)
		if volume < 1000 {
			volume = 1000
		}

		ts := now.Add(-time.Duration(i) * interval)
		series = append(series, model.PricePoint{
			Timestamp: ts.UnixMilli(),
			Price:     price,
			Volume:    volume,
			MarketCap: price * supplyProxyMultiplier,
			Date:      ts.Format(dateLayout),
		})
	}
	return series
}

// pureSynthetic 所有提供方都失败时的纯随机兜底曲线
func (s *Synthesizer) pureSynthetic(tf model.Timeframe) model.PriceSeries {
	count, interval := tf.Spec()
	basePrice := 0.00001 + s.rng.Float64()*0.01
	now := s.now()

	series := make(model.PriceSeries, 0, count+1)
	for i := count; i >= 0; i-- {
		trend := math.Sin(float64(i)/10) * 0.02
		volatility := 0.05 + s.rng.Float64()*0.1
		walk := (s.rng.Float64() - 0.5) * volatility

		price := basePrice * (1 + trend + walk)
		if price < syntheticPriceFloor {
			price = syntheticPriceFloor
		}

		ts := now.Add(-time.Duration(i) * interval)
		series = append(series, model.PricePoint{
			Timestamp: ts.UnixMilli(),
			Price:     price,
			Volume:    10000 + s.rng.Float64()*50000,
			MarketCap: price * supplyProxyMultiplier,
			Date:      ts.Format(dateLayout),
		})
	}
	return series
}
