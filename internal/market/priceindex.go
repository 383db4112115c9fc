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

const priceIndexBaseURL = "https://api.geckoterminal.com/api/v2"

// PriceIndexClient 价格指数兜底服务，按合约地址查当前价格
type PriceIndexClient struct {
	http    *resty.Client
	baseURL string
}

func NewPriceIndexClient(baseURL string) *PriceIndexClient {
	if baseURL == "" {
		baseURL = priceIndexBaseURL
	}
	client := resty.New().
		SetTransport(&http.Transport{Proxy: http.ProxyFromEnvironment}).
		SetTimeout(10 * time.Second)
	return &PriceIndexClient{http: client, baseURL: baseURL}
}

type priceIndexResponse struct {
	Data struct {
		Attributes struct {
			TokenPrices map[string]string `json:"token_prices"`
		} `json:"attributes"`
	} `json:"data"`
}

// CurrentPrice 查询当前美元价格
func (c *PriceIndexClient) CurrentPrice(ctx context.Context, mint string) (float64, error) {
	var payload priceIndexResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(c.baseURL + "/simple/networks/solana/token_price/" + mint)
	if err != nil {
		return 0, errors.Wrap(err, "请求价格指数服务失败")
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, errors.Errorf("价格指数服务返回状态码 %d", resp.StatusCode())
	}

	raw, ok := payload.Data.Attributes.TokenPrices[mint]
	if !ok || raw == "" {
		return 0, errors.Errorf("价格指数无该代币数据: %s", mint)
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "价格解析失败: %q", raw)
	}
	if price <= 0 {
		return 0, errors.Errorf("价格指数返回非正价格: %f", price)
	}
	return price, nil
}

func (c *PriceIndexClient) Name() string {
	return "priceindex"
}

func (c *PriceIndexClient) Fetch(ctx context.Context, mint string) (*model.MarketSnapshot, error) {
	price, err := c.CurrentPrice(ctx, mint)
	if err != nil {
		return nil, err
	}
	// 指数服务只有价格，其余字段留空
	return &model.MarketSnapshot{
		PriceUSD: price,
		Source:   c.Name(),
	}, nil
}
