package config

import (
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/config"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/config/source"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/config/source/file"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/logger"
)

// AppConfig 应用配置结构
type AppConfig struct {
	Logger    logger.Config   `yaml:"logger" json:"logger"`
	Chain     ChainConfig     `yaml:"chain" json:"chain"`
	Quote     QuoteConfig     `yaml:"quote" json:"quote"`
	Market    MarketConfig    `yaml:"market" json:"market"`
	History   HistoryConfig   `yaml:"history" json:"history"`
	Predict   PredictConfig   `yaml:"predict" json:"predict"`
	Publisher PublisherConfig `yaml:"publisher" json:"publisher"`
	// Wallet 调用方钱包地址，可为空
	Wallet string `yaml:"wallet" json:"wallet"`
}

// ChainConfig 链上RPC配置
type ChainConfig struct {
	RPCEndpoint string `yaml:"rpc_endpoint" json:"rpc_endpoint"`
}

// QuoteConfig 聚合器报价配置
type QuoteConfig struct {
	JupiterBaseURL string `yaml:"jupiter_base_url" json:"jupiter_base_url"`
}

// MarketConfig 行情提供方配置
type MarketConfig struct {
	DexScreenerBaseURL string `yaml:"dexscreener_base_url" json:"dexscreener_base_url"`
	PriceIndexBaseURL  string `yaml:"priceindex_base_url" json:"priceindex_base_url"`
}

// HistoryConfig 历史行情提供方配置
type HistoryConfig struct {
	BirdeyeBaseURL string `yaml:"birdeye_base_url" json:"birdeye_base_url"`
	BirdeyeAPIKey  string `yaml:"birdeye_api_key" json:"birdeye_api_key"`
}

// PredictConfig 走势预测配置
type PredictConfig struct {
	OpenAIAPIKey string `yaml:"openai_api_key" json:"openai_api_key"`
	Model        string `yaml:"model" json:"model"`
}

// PublisherConfig 发布器配置
type PublisherConfig struct {
	Feishu FeishuConfig `yaml:"feishu" json:"feishu"`
}

// FeishuConfig 飞书发布器配置
type FeishuConfig struct {
	WebhookURL string `yaml:"webhook_url" json:"webhook_url"`
}

// GetFeishuWebhookURL 获取飞书Webhook URL
func (p PublisherConfig) GetFeishuWebhookURL() string {
	return p.Feishu.WebhookURL
}

// Manager 配置管理器
type Manager struct {
	config *AppConfig
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	return &Manager{}
}

// Load 加载配置文件
func (m *Manager) Load(configPath string) error {
	err := config.Load(file.NewSource(
		file.WithPath(configPath),
		source.WithFormat("yaml"),
	))
	if err != nil {
		return err
	}

	var appConfig AppConfig
	if err := config.Scan(&appConfig); err != nil {
		return err
	}

	m.config = &appConfig
	return nil
}

// GetAppConfig 获取应用配置
func (m *Manager) GetAppConfig() *AppConfig {
	return m.config
}

// GetPublisherConfig 获取发布器配置
func (m *Manager) GetPublisherConfig() PublisherConfig {
	return m.config.Publisher
}

// InitLogger 初始化日志系统
func (m *Manager) InitLogger() error {
	loggerConfig := logger.FromConfig("logger")
	logger.SetDefault(loggerConfig.Build())
	return nil
}
