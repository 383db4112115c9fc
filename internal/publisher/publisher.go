package publisher

import (
	"context"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/logger"
)

// PublisherConfig 发布器配置接口
type PublisherConfig interface {
	GetFeishuWebhookURL() string
}

// Publisher 告警发布器接口
type Publisher interface {
	// Publish 发布一条告警
	Publish(ctx context.Context, result *model.AnalysisResult) error

	// GetType 获取发布器类型
	GetType() string

	// Close 关闭发布器
	Close() error
}

// Manager 告警发布管理器。只有蜜罐或Critical风险的
// 分析结果才会触发告警，发布失败不影响分析结果本身。
type Manager struct {
	publishers []Publisher
	config     PublisherConfig
}

// NewManager 创建发布管理器
func NewManager(config PublisherConfig) *Manager {
	return &Manager{
		publishers: make([]Publisher, 0),
		config:     config,
	}
}

// registerDefaultPublishers 注册默认发布器
func (m *Manager) registerDefaultPublishers() {
	m.AddPublisher(&LogPublisher{})

	if m.config != nil && m.config.GetFeishuWebhookURL() != "" {
		m.AddPublisher(NewFeishuPublisher(m.config.GetFeishuWebhookURL()))
	}
}

// AddPublisher 添加发布器
func (m *Manager) AddPublisher(publisher Publisher) {
	m.publishers = append(m.publishers, publisher)
}

// Start 启动发布管理器
func (m *Manager) Start() error {
	m.registerDefaultPublishers()

	for _, publisher := range m.publishers {
		logger.Info("✅ 已加载告警发布器", logger.String("type", publisher.GetType()))
	}
	return nil
}

// shouldAlert 蜜罐或Critical风险才触发告警
func shouldAlert(result *model.AnalysisResult) bool {
	if result == nil {
		return false
	}
	if result.Verdict != nil && result.Verdict.IsHoneypot {
		return true
	}
	return result.RiskLevel == "Critical"
}

// PublishAlert 把高危分析结果发到所有发布器。
// 单个发布器失败只记日志，不向上传递。
func (m *Manager) PublishAlert(ctx context.Context, result *model.AnalysisResult) {
	if !shouldAlert(result) {
		return
	}

	for _, publisher := range m.publishers {
		if err := publisher.Publish(ctx, result); err != nil {
			logger.Error("发布告警失败",
				logger.String("publisher", publisher.GetType()),
				logger.String("token", result.TokenInfo.Address),
				logger.FieldErr(err))
			continue
		}
		logger.Info("🚨 告警发布成功",
			logger.String("publisher", publisher.GetType()),
			logger.String("token", result.TokenInfo.Address),
			logger.Int("risk_score", result.RiskScore))
	}
}

// Stop 停止发布管理器
func (m *Manager) Stop() error {
	for _, publisher := range m.publishers {
		if err := publisher.Close(); err != nil {
			logger.Error("关闭发布器失败",
				logger.String("type", publisher.GetType()),
				logger.FieldErr(err))
		}
	}
	return nil
}

// LogPublisher 日志发布器，把告警输出到日志
type LogPublisher struct{}

func (p *LogPublisher) GetType() string {
	return "log"
}

func (p *LogPublisher) Publish(_ context.Context, result *model.AnalysisResult) error {
	honeypot := result.Verdict != nil && result.Verdict.IsHoneypot
	logger.Warn("🚨 发现高危代币",
		logger.String("token", result.TokenInfo.Address),
		logger.Int("risk_score", result.RiskScore),
		logger.String("risk_level", result.RiskLevel),
		logger.Bool("honeypot", honeypot))
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}
