package publisher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/notifier"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/utils"
)

// FeishuPublisher 飞书发布器
type FeishuPublisher struct {
	webhookURL string
}

// NewFeishuPublisher 创建飞书发布器
func NewFeishuPublisher(webhookURL string) *FeishuPublisher {
	return &FeishuPublisher{webhookURL: webhookURL}
}

func (p *FeishuPublisher) GetType() string {
	return "feishu"
}

func (p *FeishuPublisher) Publish(ctx context.Context, result *model.AnalysisResult) error {
	message := p.formatAlertMessage(result)
	return notifier.SendToLark(ctx, message, p.webhookURL)
}

func (p *FeishuPublisher) Close() error {
	return nil
}

// formatMarketCap 格式化市值，支持k/M/B单位
func (p *FeishuPublisher) formatMarketCap(marketCap float64) string {
	switch {
	case marketCap >= 1_000_000_000:
		return fmt.Sprintf("$%.1fB", marketCap/1_000_000_000)
	case marketCap >= 1_000_000:
		return fmt.Sprintf("$%.1fM", marketCap/1_000_000)
	case marketCap >= 1_000:
		return fmt.Sprintf("$%.1fk", marketCap/1_000)
	default:
		return fmt.Sprintf("$%.2f", marketCap)
	}
}

// alertTitle 告警标题按蜜罐优先
func alertTitle(result *model.AnalysisResult) string {
	if result.Verdict != nil && result.Verdict.IsHoneypot {
		return "🍯 蜜罐代币告警"
	}
	return "⛔ 极高风险代币告警"
}

// formatAlertMessage 格式化告警消息
func (p *FeishuPublisher) formatAlertMessage(result *model.AnalysisResult) string {
	tokenAddr := result.TokenInfo.Address

	tokenSymbol := "UNKNOWN"
	if result.Metadata != nil && result.Metadata.Symbol != "" {
		tokenSymbol = result.Metadata.Symbol
	}

	currentPrice := "N/A"
	if result.CurrentPrice > 0 {
		currentPrice = utils.FormatPrice(fmt.Sprintf("%.12f", result.CurrentPrice))
	}

	marketCap := "N/A"
	if result.MarketCap > 0 {
		marketCap = p.formatMarketCap(result.MarketCap)
	}

	topHolderShare := "N/A"
	if len(result.Holders) > 0 {
		topHolderShare = fmt.Sprintf("%.2f%%", result.Holders[0].Percentage)
	}

	findings := "无"
	if result.Verdict != nil && len(result.Verdict.Findings) > 0 {
		findings = strings.Join(result.Verdict.Findings, "\n  - ")
		findings = "\n  - " + findings
	}

	dangers := make([]string, 0, len(result.RiskFactors))
	for _, f := range result.RiskFactors {
		if f.Status == model.StatusDanger {
			dangers = append(dangers, fmt.Sprintf("%s (+%d)", f.Name, f.Score))
		}
	}
	dangerList := "无"
	if len(dangers) > 0 {
		dangerList = strings.Join(dangers, ", ")
	}

	loc, _ := time.LoadLocation("Asia/Shanghai")
	return fmt.Sprintf(`%s

🪙 代币符号: %s
📍 代币地址: %s
💰 当前价格: %s
💎 当前市值: %s
📊 风险评分: %d/100 (%s)
⚠️ 危险项: %s
👑 最大持仓占比: %s
🔍 可交易性检查: %s

🔗 GMGN链接: https://gmgn.ai/sol/token/%s
⏰ 触发时间: %s`,
		alertTitle(result),
		tokenSymbol,
		tokenAddr,
		currentPrice,
		marketCap,
		result.RiskScore,
		result.RiskLevel,
		dangerList,
		topHolderShare,
		findings,
		tokenAddr,
		time.Now().In(loc).Format("2006-01-02 15:04:05"))
}
