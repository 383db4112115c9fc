package model

import "time"

// MarketSnapshot 单一行情提供方返回的快照，每次分析最多采信一份
type MarketSnapshot struct {
	PriceUSD       float64 `json:"price_usd"`
	MarketCap      float64 `json:"market_cap"`
	Volume24h      float64 `json:"volume_24h"`
	PriceChange24h float64 `json:"price_change_24h"`
	Source         string  `json:"source"` // 提供方标识
}

// Timeframe 行情时间范围
type Timeframe string

const (
	Timeframe1H  Timeframe = "1H"
	Timeframe24H Timeframe = "24H"
	Timeframe7D  Timeframe = "7D"
	Timeframe30D Timeframe = "30D"
)

// Spec 返回该时间范围对应的点数和间隔
func (tf Timeframe) Spec() (count int, interval time.Duration) {
	switch tf {
	case Timeframe1H:
		return 60, time.Minute
	case Timeframe24H:
		return 24, time.Hour
	case Timeframe7D:
		return 168, time.Hour
	default:
		return 720, time.Hour
	}
}

// PricePoint 价格序列上的一个点
type PricePoint struct {
	Timestamp int64   `json:"timestamp"` // epoch millis
	Price     float64 `json:"price"`
	Volume    float64 `json:"volume"`
	MarketCap float64 `json:"market_cap"`
	Date      string  `json:"date"`
}

// PriceSeries 按时间升序排列的价格序列
type PriceSeries []PricePoint
