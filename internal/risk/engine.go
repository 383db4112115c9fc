package risk

import (
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

// 风险等级阈值，作用于截断后的总分
const (
	levelCriticalAbove = 70
	levelHighAbove     = 50
	levelMediumAbove   = 30
)

// Engine 把固定顺序的规则结果折叠成综合评估
type Engine struct {
	rules []Rule
}

// NewEngine 规则顺序固定：权限 → 集中度 → 流动性 → 价格冲击 → 行情
func NewEngine() *Engine {
	return &Engine{
		rules: []Rule{
			mintAuthorityRule{},
			freezeAuthorityRule{},
			holderConcentrationRule{},
			liquidityRule{},
			priceImpactRule{},
			marketMetricsRule{},
		},
	}
}

// Assess 逐条评估规则并累加子分数，总分截断到[0,100]。
// 相同输入永远得到相同的分数和条目顺序。
func (e *Engine) Assess(in *Input) *model.RiskAssessment {
	total := 0
	factors := make([]model.RiskFactor, 0, len(e.rules))

	for _, rule := range e.rules {
		factor := rule.Evaluate(in)
		if factor == nil {
			continue
		}
		total += factor.Score
		factors = append(factors, *factor)
	}

	score := total
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return &model.RiskAssessment{
		Score:   score,
		Level:   levelFor(score),
		Factors: factors,
	}
}

// levelFor 用截断后的总分推导风险等级
func levelFor(score int) string {
	switch {
	case score > levelCriticalAbove:
		return "Critical"
	case score > levelHighAbove:
		return "High"
	case score > levelMediumAbove:
		return "Medium"
	default:
		return "Low"
	}
}
