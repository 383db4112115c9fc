package model

import "github.com/shopspring/decimal"

// QuoteResult 聚合器报价结果，只保留引擎需要读取的数字字段
type QuoteResult struct {
	InputMint   string          `json:"input_mint"`
	OutputMint  string          `json:"output_mint"`
	InAmount    decimal.Decimal `json:"in_amount"`
	OutAmount   decimal.Decimal `json:"out_amount"`
	SlippageBps int             `json:"slippage_bps"`
	SwapMode    string          `json:"swap_mode"`
}

// PriceAnalysis 买卖单价对比
type PriceAnalysis struct {
	BuyUnitPrice       float64 `json:"buy_unit_price"`
	SellUnitPrice      float64 `json:"sell_unit_price"`
	PriceImpactPercent float64 `json:"price_impact_percent"`
}

// TradeabilityVerdict 蜜罐探测结论。Findings只追加不清除，保持产生顺序
type TradeabilityVerdict struct {
	IsHoneypot    bool           `json:"is_honeypot"`
	Findings      []string       `json:"findings"`
	BuyQuote      *QuoteResult   `json:"buy_quote,omitempty"`
	SellQuote     *QuoteResult   `json:"sell_quote,omitempty"`
	PriceAnalysis *PriceAnalysis `json:"price_analysis,omitempty"`
}

// AddFinding 追加一条探测结论
func (v *TradeabilityVerdict) AddFinding(finding string) {
	v.Findings = append(v.Findings, finding)
}
