package market

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

const dexScreenerBaseURL = "https://api.dexscreener.com"

// PairStats DexScreener最优交易对的关键指标，
// 行情快照和历史回推共用这份数据
type PairStats struct {
	PriceUSD       float64
	MarketCap      float64
	Volume24h      float64
	PriceChange1h  float64
	PriceChange24h float64
}

// DexScreenerClient DEX聚合器pairs端点客户端
type DexScreenerClient struct {
	http    *resty.Client
	baseURL string
}

func NewDexScreenerClient(baseURL string) *DexScreenerClient {
	if baseURL == "" {
		baseURL = dexScreenerBaseURL
	}
	client := resty.New().
		SetTransport(&http.Transport{Proxy: http.ProxyFromEnvironment}).
		SetTimeout(10 * time.Second)
	return &DexScreenerClient{http: client, baseURL: baseURL}
}

type dexScreenerResponse struct {
	Pairs []struct {
		PriceUsd string `json:"priceUsd"`
		Volume   struct {
			H24 float64 `json:"h24"`
		} `json:"volume"`
		PriceChange struct {
			H1  float64 `json:"h1"`
			H24 float64 `json:"h24"`
		} `json:"priceChange"`
		Fdv       float64 `json:"fdv"`
		MarketCap float64 `json:"marketCap"`
	} `json:"pairs"`
}

// BestPair 返回24小时交易量最高的交易对指标
func (c *DexScreenerClient) BestPair(ctx context.Context, mint string) (*PairStats, error) {
	var payload dexScreenerResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(c.baseURL + "/latest/dex/tokens/" + mint)
	if err != nil {
		return nil, errors.Wrap(err, "请求DexScreener失败")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("DexScreener返回状态码 %d", resp.StatusCode())
	}
	if len(payload.Pairs) == 0 {
		return nil, errors.Errorf("DexScreener无交易对数据: %s", mint)
	}

	best := payload.Pairs[0]
	for _, p := range payload.Pairs[1:] {
		if p.Volume.H24 > best.Volume.H24 {
			best = p
		}
	}

	price, err := strconv.ParseFloat(best.PriceUsd, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "DexScreener价格解析失败: %q", best.PriceUsd)
	}

	marketCap := best.MarketCap
	if marketCap == 0 {
		marketCap = best.Fdv
	}

	return &PairStats{
		PriceUSD:       price,
		MarketCap:      marketCap,
		Volume24h:      best.Volume.H24,
		PriceChange1h:  best.PriceChange.H1,
		PriceChange24h: best.PriceChange.H24,
	}, nil
}

func (c *DexScreenerClient) Name() string {
	return "dexscreener"
}

func (c *DexScreenerClient) Fetch(ctx context.Context, mint string) (*model.MarketSnapshot, error) {
	stats, err := c.BestPair(ctx, mint)
	if err != nil {
		return nil, err
	}
	return &model.MarketSnapshot{
		PriceUSD:       stats.PriceUSD,
		MarketCap:      stats.MarketCap,
		Volume24h:      stats.Volume24h,
		PriceChange24h: stats.PriceChange24h,
		Source:         c.Name(),
	}, nil
}
