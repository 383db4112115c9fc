package analyzer

import (
	"context"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/chain"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/metadata"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/probe"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/risk"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/logger"
)

// MarketSource 行情来源，全部失败时返回nil表示行情未知
type MarketSource interface {
	Fetch(ctx context.Context, mint string) *model.MarketSnapshot
}

// Analyzer 代币分析编排器。只有链上基础信息是硬依赖，
// 其余数据源失败时结果降级而不是整体失败。
type Analyzer struct {
	reader   chain.Reader
	holders  *chain.HolderAnalyzer
	metadata metadata.Fetcher
	market   MarketSource
	probe    *probe.Probe
	engine   *risk.Engine

	// 调用方钱包地址，可为空
	wallet string
}

func New(
	reader chain.Reader,
	holders *chain.HolderAnalyzer,
	meta metadata.Fetcher,
	market MarketSource,
	prober *probe.Probe,
	engine *risk.Engine,
	wallet string,
) *Analyzer {
	return &Analyzer{
		reader:   reader,
		holders:  holders,
		metadata: meta,
		market:   market,
		probe:    prober,
		engine:   engine,
		wallet:   wallet,
	}
}

// Analyze 对单个mint地址执行完整分析。
// 只在地址非法或mint账户读不到时返回错误。
func (a *Analyzer) Analyze(ctx context.Context, mint string) (*model.AnalysisResult, error) {
	start := time.Now()

	// 地址校验不走网络，非法地址立即拒绝
	if _, err := solana.PublicKeyFromBase58(mint); err != nil {
		return nil, errors.Wrapf(err, "无效的代币地址: %s", mint)
	}

	// 链上基础信息是唯一的硬依赖
	info, err := a.reader.GetMintInfo(ctx, mint)
	if err != nil {
		return nil, errors.Wrap(err, "读取代币基础信息失败")
	}

	result := &model.AnalysisResult{
		TokenInfo:     info,
		WalletAddress: model.WalletNotConnected,
		WalletBalance: decimal.Zero,
	}

	// 其余数据源互不依赖，并发拉取，失败只降级
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		result.Holders = a.holders.TopHolders(ctx, info)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		meta, err := a.metadata.GetTokenMetadata(ctx, mint)
		if err != nil {
			logger.Warn("获取元数据失败，跳过", logger.String("mint", mint), logger.FieldErr(err))
			return
		}
		result.Metadata = meta
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		result.Market = a.market.Fetch(ctx, mint)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		result.Verdict = a.probe.Check(ctx, mint)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if a.wallet == "" {
			return
		}
		balance, err := a.reader.GetWalletTokenBalance(ctx, a.wallet, mint)
		if err != nil {
			logger.Warn("查询钱包余额失败", logger.String("wallet", a.wallet), logger.FieldErr(err))
			return
		}
		result.WalletAddress = a.wallet
		result.WalletBalance = balance
	}()

	wg.Wait()

	// 风险评估在全部数据就位后同步执行
	assessment := a.engine.Assess(&risk.Input{
		TokenInfo: info,
		Holders:   result.Holders,
		Verdict:   result.Verdict,
		Market:    result.Market,
	})
	result.RiskFactors = assessment.Factors
	result.RiskScore = assessment.Score
	result.RiskLevel = assessment.Level

	result.SocialLinks = metadata.ExtractSocialLinks(result.Metadata)

	if result.Market != nil {
		result.CurrentPrice = result.Market.PriceUSD
		result.MarketCap = result.Market.MarketCap
	}

	logger.Info("代币分析完成",
		logger.String("mint", mint),
		logger.Int("risk_score", result.RiskScore),
		logger.String("risk_level", result.RiskLevel),
		logger.FieldCost(time.Since(start)))

	return result, nil
}
