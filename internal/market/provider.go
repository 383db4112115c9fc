package market

import (
	"context"

	"github.com/hashicorp/go-multierror"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/logger"
)

// Provider 单个行情提供方，返回规范化后的快照
type Provider interface {
	Name() string
	Fetch(ctx context.Context, mint string) (*model.MarketSnapshot, error)
}

// Fetcher 按固定优先级尝试多个提供方，第一个成功的胜出，不做聚合
type Fetcher struct {
	providers []Provider
}

func NewFetcher(providers ...Provider) *Fetcher {
	return &Fetcher{providers: providers}
}

// Fetch 返回第一个成功的行情快照。全部失败时返回nil，
// 调用方按"行情未知"处理而不是分析失败。
func (f *Fetcher) Fetch(ctx context.Context, mint string) *model.MarketSnapshot {
	var merr *multierror.Error

	for _, p := range f.providers {
		snapshot, err := p.Fetch(ctx, mint)
		if err != nil {
			merr = multierror.Append(merr, err)
			logger.Debug("行情提供方失败，尝试下一个",
				logger.String("provider", p.Name()),
				logger.String("mint", mint),
				logger.FieldErr(err))
			continue
		}
		if snapshot != nil {
			return snapshot
		}
	}

	if merr != nil {
		logger.Warn("所有行情提供方都失败",
			logger.String("mint", mint),
			logger.FieldErr(merr.ErrorOrNil()))
	}
	return nil
}
