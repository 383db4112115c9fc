package probe

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/quote"
)

const testMint = "mint1111111111111111111111111111111111111111"

// scriptedQuoteService 按调用顺序返回预设的报价结果
type scriptedQuoteService struct {
	results  []*model.QuoteResult
	errs     []error
	requests []quote.Request
}

func (s *scriptedQuoteService) Quote(_ context.Context, req quote.Request) (*model.QuoteResult, error) {
	idx := len(s.requests)
	s.requests = append(s.requests, req)
	if idx >= len(s.results) {
		return nil, errors.New("unexpected quote call")
	}
	return s.results[idx], s.errs[idx]
}

func buyResult(out int64) *model.QuoteResult {
	return &model.QuoteResult{
		InputMint:  quote.WSOLMint,
		OutputMint: testMint,
		InAmount:   decimal.NewFromInt(quote.ReferenceBuyLamports),
		OutAmount:  decimal.NewFromInt(out),
	}
}

func sellResult(in, out int64) *model.QuoteResult {
	return &model.QuoteResult{
		InputMint:  testMint,
		OutputMint: quote.WSOLMint,
		InAmount:   decimal.NewFromInt(in),
		OutAmount:  decimal.NewFromInt(out),
	}
}

func TestCheckBuyFailureShortCircuits(t *testing.T) {
	svc := &scriptedQuoteService{
		results: []*model.QuoteResult{nil},
		errs:    []error{errors.New("route not found")},
	}

	verdict := New(svc).Check(context.Background(), testMint)

	assert.True(t, verdict.IsHoneypot)
	assert.Nil(t, verdict.BuyQuote)
	// 买入失败后不应再请求卖出报价
	assert.Len(t, svc.requests, 1)
	// 终态结论永远是最后一条
	require.NotEmpty(t, verdict.Findings)
	assert.Contains(t, verdict.Findings[len(verdict.Findings)-1], "failed")
}

func TestCheckBuyZeroOutputIsHoneypot(t *testing.T) {
	svc := &scriptedQuoteService{
		results: []*model.QuoteResult{buyResult(0)},
		errs:    []error{nil},
	}

	verdict := New(svc).Check(context.Background(), testMint)

	assert.True(t, verdict.IsHoneypot)
	assert.Len(t, svc.requests, 1)
}

func TestCheckSellZeroOutputIsHoneypot(t *testing.T) {
	svc := &scriptedQuoteService{
		results: []*model.QuoteResult{buyResult(1_000_000), sellResult(900_000, 0)},
		errs:    []error{nil, nil},
	}

	verdict := New(svc).Check(context.Background(), testMint)

	assert.True(t, verdict.IsHoneypot)
	require.Len(t, svc.requests, 2)
	// 卖出量是买入所得的90%（向下取整）
	assert.True(t, svc.requests[1].Amount.Equal(decimal.NewFromInt(900_000)))
	assert.Equal(t, testMint, svc.requests[1].InputMint)
	assert.Equal(t, quote.WSOLMint, svc.requests[1].OutputMint)
}

func TestCheckExcessiveImpactIsHoneypot(t *testing.T) {
	// 买入单价 1e9/1e6 = 1000，卖出单价 360e6/900e3 = 400 → 冲击60%
	svc := &scriptedQuoteService{
		results: []*model.QuoteResult{
			buyResult(1_000_000),
			sellResult(900_000, 360_000_000),
		},
		errs: []error{nil, nil},
	}

	verdict := New(svc).Check(context.Background(), testMint)

	assert.True(t, verdict.IsHoneypot)
	require.NotNil(t, verdict.PriceAnalysis)
	assert.InDelta(t, 60.0, verdict.PriceAnalysis.PriceImpactPercent, 0.001)
}

func TestCheckRiskyImpactIsNotHoneypot(t *testing.T) {
	// 冲击20%：有风险但不判蜜罐
	svc := &scriptedQuoteService{
		results: []*model.QuoteResult{
			buyResult(1_000_000),
			sellResult(900_000, 720_000_000),
		},
		errs: []error{nil, nil},
	}

	verdict := New(svc).Check(context.Background(), testMint)

	assert.False(t, verdict.IsHoneypot)
	require.NotNil(t, verdict.PriceAnalysis)
	assert.InDelta(t, 20.0, verdict.PriceAnalysis.PriceImpactPercent, 0.001)

	found := false
	for _, f := range verdict.Findings {
		if f == "Risky price impact: 20.00%" {
			found = true
		}
	}
	assert.True(t, found, "findings: %v", verdict.Findings)
}

func TestCheckHealthyToken(t *testing.T) {
	// 冲击1%：可接受
	svc := &scriptedQuoteService{
		results: []*model.QuoteResult{
			buyResult(1_000_000),
			sellResult(900_000, 891_000_000),
		},
		errs: []error{nil, nil},
	}

	verdict := New(svc).Check(context.Background(), testMint)

	assert.False(t, verdict.IsHoneypot)
	require.NotNil(t, verdict.BuyQuote)
	require.NotNil(t, verdict.SellQuote)
	require.NotNil(t, verdict.PriceAnalysis)
	assert.InDelta(t, 1.0, verdict.PriceAnalysis.PriceImpactPercent, 0.001)
	assert.Contains(t, verdict.Findings[len(verdict.Findings)-1], "passed")
}
