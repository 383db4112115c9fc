package probe

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/quote"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/logger"
)

const (
	// 卖出探测使用买入所得的90%（向下取整）
	sellPortionNumerator = 9
	sellPortionDenom     = 10

	// 价格冲击阈值（百分比）
	impactDangerPercent = 50.0
	impactRiskyPercent  = 10.0
)

// Probe 蜜罐探测器：先模拟买入，再模拟卖出，最后比较买卖单价。
// 任一阶段失败立即短路，保守地按蜜罐处理。
type Probe struct {
	quotes quote.Service
}

func New(quotes quote.Service) *Probe {
	return &Probe{quotes: quotes}
}

// Check 对目标代币执行三段探测，永不返回错误：
// 所有异常都转化为verdict里的标志和结论。
func (p *Probe) Check(ctx context.Context, mint string) *model.TradeabilityVerdict {
	verdict := &model.TradeabilityVerdict{
		Findings: make([]string, 0, 4),
	}

	// 阶段一：1 SOL买入目标代币
	buyQuote, err := p.quotes.Quote(ctx, quote.Request{
		InputMint:   quote.WSOLMint,
		OutputMint:  mint,
		Amount:      decimal.NewFromInt(quote.ReferenceBuyLamports),
		SlippageBps: quote.DefaultSlippageBps,
		SwapMode:    quote.SwapModeExactIn,
	})
	if err != nil {
		logger.Warn("买入报价失败", logger.String("mint", mint), logger.FieldErr(err))
		verdict.IsHoneypot = true
		verdict.AddFinding("Quote service unreachable during buy simulation: assuming unsafe")
		p.finish(verdict)
		return verdict
	}
	if buyQuote.OutAmount.IsZero() {
		verdict.IsHoneypot = true
		verdict.AddFinding("Buy quote returned zero output: token cannot be bought")
		p.finish(verdict)
		return verdict
	}
	verdict.BuyQuote = buyQuote

	// 阶段二：按买入所得的90%反向卖出
	sellAmount := buyQuote.OutAmount.
		Mul(decimal.NewFromInt(sellPortionNumerator)).
		Div(decimal.NewFromInt(sellPortionDenom)).
		Floor()
	sellQuote, err := p.quotes.Quote(ctx, quote.Request{
		InputMint:   mint,
		OutputMint:  quote.WSOLMint,
		Amount:      sellAmount,
		SlippageBps: quote.DefaultSlippageBps,
		SwapMode:    quote.SwapModeExactIn,
	})
	if err != nil {
		logger.Warn("卖出报价失败", logger.String("mint", mint), logger.FieldErr(err))
		verdict.IsHoneypot = true
		verdict.AddFinding("Quote service unreachable during sell simulation: assuming unsafe")
		p.finish(verdict)
		return verdict
	}
	if sellQuote.OutAmount.IsZero() {
		verdict.IsHoneypot = true
		verdict.AddFinding("Sell quote returned zero output: token cannot be sold (honeypot)")
		p.finish(verdict)
		return verdict
	}
	verdict.SellQuote = sellQuote

	// 阶段三：买卖单价对比。
	// 买入单价用 input/output，卖出单价用 output/input，口径与原实现保持一致。
	buyIn, _ := buyQuote.InAmount.Float64()
	buyOut, _ := buyQuote.OutAmount.Float64()
	sellIn, _ := sellQuote.InAmount.Float64()
	sellOut, _ := sellQuote.OutAmount.Float64()

	buyUnitPrice := buyIn / buyOut
	sellUnitPrice := sellOut / sellIn
	impact := (buyUnitPrice - sellUnitPrice) / buyUnitPrice * 100

	verdict.PriceAnalysis = &model.PriceAnalysis{
		BuyUnitPrice:       buyUnitPrice,
		SellUnitPrice:      sellUnitPrice,
		PriceImpactPercent: impact,
	}

	switch {
	case math.Abs(impact) > impactDangerPercent:
		verdict.IsHoneypot = true
		verdict.AddFinding(fmt.Sprintf("Dangerous price impact: %.2f%% lost between buy and sell", impact))
	case impact > impactRiskyPercent:
		verdict.AddFinding(fmt.Sprintf("Risky price impact: %.2f%%", impact))
	default:
		verdict.AddFinding(fmt.Sprintf("Acceptable price impact: %.2f%%", impact))
	}

	p.finish(verdict)
	return verdict
}

// finish 追加终态结论，永远是findings的最后一条
func (p *Probe) finish(verdict *model.TradeabilityVerdict) {
	if verdict.IsHoneypot {
		verdict.AddFinding("Tradeability check failed: token flagged as honeypot")
	} else {
		verdict.AddFinding("Tradeability check passed: buy and sell simulations succeeded")
	}
}
