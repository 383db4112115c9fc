package predict

import (
	"context"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

// Input 预测所需的分析结果摘要
type Input struct {
	TokenAddress   string  `json:"token_address"`
	TokenName      string  `json:"token_name,omitempty"`
	TokenSymbol    string  `json:"token_symbol,omitempty"`
	RiskScore      int     `json:"risk_score"`
	RiskLevel      string  `json:"risk_level"`
	IsHoneypot     bool    `json:"is_honeypot"`
	CurrentPrice   float64 `json:"current_price"`
	MarketCap      float64 `json:"market_cap"`
	Volume24h      float64 `json:"volume_24h"`
	PriceChange24h float64 `json:"price_change_24h"`
	TopHolderShare float64 `json:"top_holder_share"`
}

// Predictor 走势预测服务。外部服务不可用或返回格式
// 不符合约定时，调用方降级到确定性兜底。
type Predictor interface {
	Predict(ctx context.Context, in *Input) ([]model.PredictionRecord, error)
}

// 预测的三个固定时间范围
var horizons = []struct {
	Hours int
	Label string
}{
	{1, "1h"},
	{24, "24h"},
	{168, "7d"},
}
