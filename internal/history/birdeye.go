package history

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

const birdeyeBaseURL = "https://public-api.birdeye.so"

// RawPoint 历史行情提供方返回的单个原始数据点
type RawPoint struct {
	UnixTime int64 // 秒
	Price    float64
	Volume   float64
}

// Provider 真实历史行情提供方
type Provider interface {
	History(ctx context.Context, mint string, tf model.Timeframe) ([]RawPoint, error)
}

// BirdeyeClient 按时间分桶的历史价格服务客户端
type BirdeyeClient struct {
	http    *resty.Client
	baseURL string
	apiKey  string
}

func NewBirdeyeClient(baseURL, apiKey string) *BirdeyeClient {
	if baseURL == "" {
		baseURL = birdeyeBaseURL
	}
	client := resty.New().
		SetTransport(&http.Transport{Proxy: http.ProxyFromEnvironment}).
		SetTimeout(10 * time.Second)
	return &BirdeyeClient{http: client, baseURL: baseURL, apiKey: apiKey}
}

type birdeyeHistoryResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Items []struct {
			UnixTime int64   `json:"unixTime"`
			Value    float64 `json:"value"`
			Volume   float64 `json:"v,omitempty"`
		} `json:"items"`
	} `json:"data"`
}

// granularity 时间范围对应的K线粒度
func granularity(tf model.Timeframe) string {
	if tf == model.Timeframe1H {
		return "1m"
	}
	return "1H"
}

func (c *BirdeyeClient) History(ctx context.Context, mint string, tf model.Timeframe) ([]RawPoint, error) {
	count, interval := tf.Spec()
	now := time.Now()
	from := now.Add(-time.Duration(count) * interval)

	var payload birdeyeHistoryResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetQueryParams(map[string]string{
			"address":      mint,
			"address_type": "token",
			"type":         granularity(tf),
			"time_from":    strconv.FormatInt(from.Unix(), 10),
			"time_to":      strconv.FormatInt(now.Unix(), 10),
		}).
		SetResult(&payload).
		Get(c.baseURL + "/defi/history_price")
	if err != nil {
		return nil, errors.Wrap(err, "请求历史行情服务失败")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("历史行情服务返回状态码 %d", resp.StatusCode())
	}
	if !payload.Success || len(payload.Data.Items) == 0 {
		return nil, errors.Errorf("历史行情服务无数据: %s", mint)
	}

	points := make([]RawPoint, 0, len(payload.Data.Items))
	for _, item := range payload.Data.Items {
		points = append(points, RawPoint{
			UnixTime: item.UnixTime,
			Price:    item.Value,
			Volume:   item.Volume,
		})
	}
	return points, nil
}
