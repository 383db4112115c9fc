package model

// 预测趋势与风险等级取值
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"
	TrendNeutral = "neutral"

	PredictionRiskLow    = "low"
	PredictionRiskMedium = "medium"
	PredictionRiskHigh   = "high"
)

// PredictionRecord 单个时间范围的走势预测。
// json标签与外部预测服务约定的返回格式保持一致。
type PredictionRecord struct {
	Timeframe  string   `json:"timeframe"`
	Prediction float64  `json:"prediction"` // 预测涨跌幅百分比
	Confidence float64  `json:"confidence"` // 0-100
	Trend      string   `json:"trend"`
	Factors    []string `json:"factors"`
	RiskLevel  string   `json:"riskLevel"`
}
