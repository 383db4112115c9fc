package model

import "github.com/shopspring/decimal"

// RiskStatus 单条风险规则的状态
type RiskStatus string

const (
	StatusSafe    RiskStatus = "safe"
	StatusWarning RiskStatus = "warning"
	StatusDanger  RiskStatus = "danger"
)

// RiskCategory 风险规则分类
type RiskCategory string

const (
	CategorySecurity  RiskCategory = "security"
	CategoryWhale     RiskCategory = "whale"
	CategoryLiquidity RiskCategory = "liquidity"
)

// RiskFactor 单条风险规则的评估结果
type RiskFactor struct {
	Name        string       `json:"name"`
	Score       int          `json:"score"`
	Status      RiskStatus   `json:"status"`
	Description string       `json:"description"`
	Category    RiskCategory `json:"category"`
}

// RiskAssessment 综合风险评估，Score已截断到[0,100]
type RiskAssessment struct {
	Score   int          `json:"score"`
	Level   string       `json:"level"`
	Factors []RiskFactor `json:"factors"`
}

// WalletNotConnected 未提供调用方钱包时的哨兵值
const WalletNotConnected = "not connected"

// AnalysisResult 一次完整代币分析的聚合结果
type AnalysisResult struct {
	TokenInfo     *TokenBasicInfo      `json:"token_info"`
	Metadata      *TokenMetadata       `json:"metadata,omitempty"`
	Verdict       *TradeabilityVerdict `json:"verdict"`
	Holders       []HolderRecord       `json:"holders"`
	RiskFactors   []RiskFactor         `json:"risk_factors"`
	RiskScore     int                  `json:"risk_score"`
	RiskLevel     string               `json:"risk_level"`
	Market        *MarketSnapshot      `json:"market,omitempty"`
	CurrentPrice  float64              `json:"current_price"`
	MarketCap     float64              `json:"market_cap"`
	SocialLinks   SocialLinks          `json:"social_links"`
	WalletBalance decimal.Decimal      `json:"wallet_balance"`
	WalletAddress string               `json:"wallet_address"`
}
