package risk

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

// Input 风险评估所需的全部输入
type Input struct {
	TokenInfo *model.TokenBasicInfo
	Holders   []model.HolderRecord
	Verdict   *model.TradeabilityVerdict
	Market    *model.MarketSnapshot
}

// Rule 单条风险规则。每条规则是纯函数：
// 相同输入永远产生相同的子分数和描述。
// 规则不适用时返回nil，不产生任何条目。
type Rule interface {
	Name() string
	Evaluate(in *Input) *model.RiskFactor
}

// mintAuthorityRule mint权限未放弃意味着可以随时增发
type mintAuthorityRule struct{}

func (mintAuthorityRule) Name() string { return "Mint Authority" }

func (r mintAuthorityRule) Evaluate(in *Input) *model.RiskFactor {
	if in.TokenInfo == nil {
		return nil
	}
	if in.TokenInfo.MintAuthorityActive() {
		return &model.RiskFactor{
			Name:        r.Name(),
			Score:       30,
			Status:      model.StatusDanger,
			Description: "Mint authority is active: token supply can be inflated at any time",
			Category:    model.CategorySecurity,
		}
	}
	return &model.RiskFactor{
		Name:        r.Name(),
		Score:       0,
		Status:      model.StatusSafe,
		Description: "Mint authority revoked",
		Category:    model.CategorySecurity,
	}
}

// freezeAuthorityRule freeze权限未放弃意味着账户可被冻结
type freezeAuthorityRule struct{}

func (freezeAuthorityRule) Name() string { return "Freeze Authority" }

func (r freezeAuthorityRule) Evaluate(in *Input) *model.RiskFactor {
	if in.TokenInfo == nil {
		return nil
	}
	if in.TokenInfo.FreezeAuthorityActive() {
		return &model.RiskFactor{
			Name:        r.Name(),
			Score:       20,
			Status:      model.StatusWarning,
			Description: "Freeze authority is active: holder accounts can be frozen",
			Category:    model.CategorySecurity,
		}
	}
	return &model.RiskFactor{
		Name:        r.Name(),
		Score:       0,
		Status:      model.StatusSafe,
		Description: "Freeze authority revoked",
		Category:    model.CategorySecurity,
	}
}

// holderConcentrationRule 最大持仓占比阈值，严格大于判定
type holderConcentrationRule struct{}

func (holderConcentrationRule) Name() string { return "Holder Concentration" }

func (r holderConcentrationRule) Evaluate(in *Input) *model.RiskFactor {
	if len(in.Holders) == 0 {
		return nil
	}

	top := in.Holders[0].Percentage
	factor := &model.RiskFactor{
		Name:     r.Name(),
		Category: model.CategoryWhale,
	}

	switch {
	case top > 50:
		factor.Score = 40
		factor.Status = model.StatusDanger
	case top > 30:
		factor.Score = 25
		factor.Status = model.StatusDanger
	case top > 20:
		factor.Score = 15
		factor.Status = model.StatusWarning
	case top > 10:
		factor.Score = 5
		factor.Status = model.StatusWarning
	default:
		factor.Score = 0
		factor.Status = model.StatusSafe
	}
	factor.Description = fmt.Sprintf("Top holder owns %.1f%% of total supply", top)

	return factor
}

// liquidityRule 买入报价产出量反映池子深度
type liquidityRule struct{}

func (liquidityRule) Name() string { return "Liquidity Depth" }

var (
	liquidityDangerBelow  = decimal.NewFromInt(100_000)
	liquidityLowBelow     = decimal.NewFromInt(1_000_000)
	liquidityShallowBelow = decimal.NewFromInt(10_000_000)
)

func (r liquidityRule) Evaluate(in *Input) *model.RiskFactor {
	if in.Verdict == nil || in.Verdict.BuyQuote == nil || in.Verdict.SellQuote == nil {
		return nil
	}

	out := in.Verdict.BuyQuote.OutAmount
	factor := &model.RiskFactor{
		Name:     r.Name(),
		Category: model.CategoryLiquidity,
	}

	switch {
	case out.LessThan(liquidityDangerBelow):
		factor.Score = 35
		factor.Status = model.StatusDanger
		factor.Description = "Extremely low liquidity: reference buy yields almost no tokens"
	case out.LessThan(liquidityLowBelow):
		factor.Score = 20
		factor.Status = model.StatusWarning
		factor.Description = "Low liquidity: large trades will move the price heavily"
	case out.LessThan(liquidityShallowBelow):
		factor.Score = 10
		factor.Status = model.StatusWarning
		factor.Description = "Shallow liquidity pool"
	default:
		factor.Score = 0
		factor.Status = model.StatusSafe
		factor.Description = "Liquidity depth looks healthy"
	}

	return factor
}

// priceImpactRule 买卖价差的绝对值阈值
type priceImpactRule struct{}

func (priceImpactRule) Name() string { return "Price Impact" }

func (r priceImpactRule) Evaluate(in *Input) *model.RiskFactor {
	if in.Verdict == nil || in.Verdict.PriceAnalysis == nil {
		return nil
	}

	impact := in.Verdict.PriceAnalysis.PriceImpactPercent
	abs := impact
	if abs < 0 {
		abs = -abs
	}

	factor := &model.RiskFactor{
		Name:     r.Name(),
		Category: model.CategoryLiquidity,
	}

	switch {
	case abs > 10:
		factor.Score = 25
		factor.Status = model.StatusDanger
	case abs > 5:
		factor.Score = 15
		factor.Status = model.StatusWarning
	case abs > 2:
		factor.Score = 5
		factor.Status = model.StatusWarning
	default:
		factor.Score = 0
		factor.Status = model.StatusSafe
	}
	factor.Description = fmt.Sprintf("Price impact between buy and sell: %.2f%%", impact)

	return factor
}

// marketMetricsRule 市值检查优先，命中后不再检查交易量
type marketMetricsRule struct{}

func (marketMetricsRule) Name() string { return "Market Metrics" }

func (r marketMetricsRule) Evaluate(in *Input) *model.RiskFactor {
	if in.Market == nil {
		return nil
	}

	factor := &model.RiskFactor{
		Name:     r.Name(),
		Category: model.CategoryLiquidity,
	}

	switch {
	case in.Market.MarketCap < 100_000:
		factor.Score = 20
		factor.Status = model.StatusDanger
		factor.Description = fmt.Sprintf("Very small market cap: $%.0f", in.Market.MarketCap)
	case in.Market.Volume24h < 10_000:
		factor.Score = 15
		factor.Status = model.StatusWarning
		factor.Description = fmt.Sprintf("Low 24h volume: $%.0f", in.Market.Volume24h)
	default:
		factor.Score = 0
		factor.Status = model.StatusSafe
		factor.Description = "Market cap and volume within normal range"
	}

	return factor
}
