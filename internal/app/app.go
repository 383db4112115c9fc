package app

import (
	"context"
	"fmt"
	"time"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/analyzer"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/chain"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/config"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/history"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/market"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/metadata"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/predict"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/probe"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/publisher"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/quote"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/risk"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/logger"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/utils"
)

// analysisTimeout 单次分析的总超时
const analysisTimeout = 2 * time.Minute

// Report 一次完整分析的输出：分析结果、价格历史和走势预测
type Report struct {
	*model.AnalysisResult
	PriceHistory model.PriceSeries        `json:"price_history"`
	Timeframe    model.Timeframe          `json:"timeframe"`
	Predictions  []model.PredictionRecord `json:"predictions"`
}

// Application 代币分析应用
type Application struct {
	configManager *config.Manager

	analyzer    *analyzer.Analyzer
	synthesizer *history.Synthesizer
	predictor   predict.Predictor
	fallback    *predict.Fallback
	publisher   *publisher.Manager
}

// New 创建新的分析应用实例
func New() *Application {
	return &Application{
		configManager: config.NewManager(),
	}
}

// Initialize 初始化应用
func (app *Application) Initialize(configPath string) error {
	// 1. 加载配置
	if err := app.configManager.Load(configPath); err != nil {
		return err
	}

	// 2. 初始化日志系统
	if err := app.configManager.InitLogger(); err != nil {
		return err
	}
	logger.Info("🚀 代币分析服务初始化开始", logger.String("config_path", configPath))

	// 3. 组装分析组件
	app.setupComponents()

	// 4. 启动告警发布器
	app.publisher = publisher.NewManager(app.configManager.GetPublisherConfig())
	if err := app.publisher.Start(); err != nil {
		return err
	}

	logger.Info("✅ 代币分析服务初始化完成")
	return nil
}

// setupComponents 组装分析组件
func (app *Application) setupComponents() {
	cfg := app.configManager.GetAppConfig()

	chainClient := chain.NewClient(cfg.Chain.RPCEndpoint)
	holderAnalyzer := chain.NewHolderAnalyzer(chainClient)
	metaClient := metadata.NewClient(cfg.Chain.RPCEndpoint)

	dexscreener := market.NewDexScreenerClient(cfg.Market.DexScreenerBaseURL)
	priceIndex := market.NewPriceIndexClient(cfg.Market.PriceIndexBaseURL)
	marketFetcher := market.NewFetcher(dexscreener, priceIndex)

	jupiter := quote.NewJupiterClient(cfg.Quote.JupiterBaseURL)
	prober := probe.New(jupiter)

	app.analyzer = analyzer.New(
		chainClient,
		holderAnalyzer,
		metaClient,
		marketFetcher,
		prober,
		risk.NewEngine(),
		cfg.Wallet,
	)

	var birdeye history.Provider
	if cfg.History.BirdeyeAPIKey != "" {
		birdeye = history.NewBirdeyeClient(cfg.History.BirdeyeBaseURL, cfg.History.BirdeyeAPIKey)
	}
	app.synthesizer = history.NewSynthesizer(birdeye, priceIndex, dexscreener)

	app.fallback = predict.NewFallback()
	if cfg.Predict.OpenAIAPIKey != "" {
		app.predictor = predict.NewOpenAIPredictor(cfg.Predict.OpenAIAPIKey, cfg.Predict.Model)
	}
}

// Analyze 对单个代币执行完整分析并返回报告
func (app *Application) Analyze(ctx context.Context, mint string, tf model.Timeframe) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	result, err := app.analyzer.Analyze(ctx, mint)
	if err != nil {
		return nil, err
	}

	report := &Report{
		AnalysisResult: result,
		Timeframe:      tf,
		PriceHistory:   app.synthesizer.Series(ctx, mint, tf),
	}
	report.Predictions = app.predictions(ctx, result)

	// 高危结果触发告警，失败不影响报告
	app.publisher.PublishAlert(ctx, result)

	return report, nil
}

// predictions 优先走外部预测服务，失败降级到确定性兜底
func (app *Application) predictions(ctx context.Context, result *model.AnalysisResult) []model.PredictionRecord {
	input := &predict.Input{
		TokenAddress: result.TokenInfo.Address,
		RiskScore:    result.RiskScore,
		RiskLevel:    result.RiskLevel,
		CurrentPrice: result.CurrentPrice,
		MarketCap:    result.MarketCap,
	}
	if result.Metadata != nil {
		input.TokenName = result.Metadata.Name
		input.TokenSymbol = result.Metadata.Symbol
	}
	if result.Verdict != nil {
		input.IsHoneypot = result.Verdict.IsHoneypot
	}
	if result.Market != nil {
		input.Volume24h = result.Market.Volume24h
		input.PriceChange24h = result.Market.PriceChange24h
	}
	if len(result.Holders) > 0 {
		input.TopHolderShare = result.Holders[0].Percentage
	}

	if app.predictor != nil {
		records, err := app.predictor.Predict(ctx, input)
		if err == nil {
			return records
		}
		logger.Warn("外部预测服务失败，降级到确定性预测",
			logger.String("token", input.TokenAddress),
			logger.FieldErr(err))
	}

	records, _ := app.fallback.Predict(ctx, input)
	return records
}

// Run 运行一次分析并输出JSON报告
func (app *Application) Run(mint string, tf model.Timeframe) error {
	report, err := app.Analyze(context.Background(), mint, tf)
	if err != nil {
		return err
	}

	fmt.Println(utils.ConvertToJsonString(report))
	return nil
}

// Shutdown 关闭应用
func (app *Application) Shutdown() {
	if app.publisher != nil {
		if err := app.publisher.Stop(); err != nil {
			logger.Error("停止告警发布器失败", logger.FieldErr(err))
		}
	}
	logger.Close()
}

// GetConfigManager 获取配置管理器
func (app *Application) GetConfigManager() *config.Manager {
	return app.configManager
}
