package chain

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/logger"
)

const (
	// 最多评估的持仓账户数
	maxHolderAccounts = 20
	// 低于0.01%的持仓直接丢弃
	minHolderSharePercent = 0.01
)

// HolderAnalyzer 按供应量占比排序代币持仓
type HolderAnalyzer struct {
	reader Reader
}

func NewHolderAnalyzer(reader Reader) *HolderAnalyzer {
	return &HolderAnalyzer{reader: reader}
}

// TopHolders 返回按占比降序排列的前20个持仓账户。
// 查询失败返回空列表而不是错误，下游集中度规则不触发即可。
func (a *HolderAnalyzer) TopHolders(ctx context.Context, info *model.TokenBasicInfo) []model.HolderRecord {
	if info == nil || info.Supply.IsZero() {
		return nil
	}

	accounts, err := a.reader.GetLargestAccounts(ctx, info.Address)
	if err != nil {
		logger.Warn("查询持仓账户失败，跳过集中度分析",
			logger.String("mint", info.Address),
			logger.FieldErr(err))
		return nil
	}

	if len(accounts) > maxHolderAccounts {
		accounts = accounts[:maxHolderAccounts]
	}

	hundred := decimal.NewFromInt(100)
	holders := make([]model.HolderRecord, 0, len(accounts))
	for _, acc := range accounts {
		pct, _ := acc.Amount.Mul(hundred).Div(info.Supply).Float64()
		if pct < minHolderSharePercent {
			continue
		}
		holders = append(holders, model.HolderRecord{
			Address:    acc.Address,
			Amount:     acc.Amount.Shift(-int32(info.Decimals)),
			Percentage: pct,
		})
	}

	sort.Slice(holders, func(i, j int) bool {
		return holders[i].Percentage > holders[j].Percentage
	})

	return holders
}
