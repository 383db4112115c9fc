package quote

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

const (
	// WSOLMint 原生SOL的wrapped mint地址
	WSOLMint = "So11111111111111111111111111111111111111112"

	// ReferenceBuyLamports 探测用的固定买入量：1 SOL
	ReferenceBuyLamports = 1_000_000_000

	// DefaultSlippageBps 探测用的固定滑点容忍度
	DefaultSlippageBps = 500

	SwapModeExactIn = "ExactIn"

	defaultBaseURL = "https://quote-api.jup.ag/v6"
)

// Request 一次报价请求
type Request struct {
	InputMint   string
	OutputMint  string
	Amount      decimal.Decimal // 最小单位
	SlippageBps int
	SwapMode    string
}

// Service 报价服务接口
type Service interface {
	Quote(ctx context.Context, req Request) (*model.QuoteResult, error)
}

// JupiterClient Jupiter v6报价客户端
type JupiterClient struct {
	http    *resty.Client
	baseURL string
}

func NewJupiterClient(baseURL string) *JupiterClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	// 探测不做自动重试，失败直接进入保守分类
	client := resty.New().
		SetTransport(&http.Transport{Proxy: http.ProxyFromEnvironment}).
		SetTimeout(15 * time.Second)
	return &JupiterClient{http: client, baseURL: baseURL}
}

type jupiterQuoteResponse struct {
	InputMint   string `json:"inputMint"`
	InAmount    string `json:"inAmount"`
	OutputMint  string `json:"outputMint"`
	OutAmount   string `json:"outAmount"`
	SwapMode    string `json:"swapMode"`
	SlippageBps int    `json:"slippageBps"`
}

func (c *JupiterClient) Quote(ctx context.Context, req Request) (*model.QuoteResult, error) {
	var payload jupiterQuoteResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"inputMint":   req.InputMint,
			"outputMint":  req.OutputMint,
			"amount":      req.Amount.String(),
			"slippageBps": decimal.NewFromInt(int64(req.SlippageBps)).String(),
			"swapMode":    req.SwapMode,
		}).
		SetResult(&payload).
		Get(c.baseURL + "/quote")
	if err != nil {
		return nil, errors.Wrap(err, "请求报价服务失败")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("报价服务返回状态码 %d: %s", resp.StatusCode(), resp.String())
	}

	inAmount, err := decimal.NewFromString(payload.InAmount)
	if err != nil {
		return nil, errors.Wrap(err, "报价inAmount解析失败")
	}
	outAmount, err := decimal.NewFromString(payload.OutAmount)
	if err != nil {
		return nil, errors.Wrap(err, "报价outAmount解析失败")
	}

	return &model.QuoteResult{
		InputMint:   payload.InputMint,
		OutputMint:  payload.OutputMint,
		InAmount:    inAmount,
		OutAmount:   outAmount,
		SlippageBps: payload.SlippageBps,
		SwapMode:    payload.SwapMode,
	}, nil
}
