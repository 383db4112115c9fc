package notifier

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/logger"
)

// larkTextMessageContent 飞书文本消息内容结构
type larkTextMessageContent struct {
	Text string `json:"text"`
}

// larkMessage 飞书机器人消息结构
type larkMessage struct {
	MsgType string                 `json:"msg_type"`
	Content larkTextMessageContent `json:"content"`
}

// larkResponse 飞书机器人响应结构（用于检查错误）
type larkResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

var larkClient = resty.New().
	SetTransport(&http.Transport{Proxy: http.ProxyFromEnvironment}).
	SetTimeout(10 * time.Second)

// SendToLark 发送文本消息到指定的飞书Webhook URL
func SendToLark(ctx context.Context, messageText string, webhookURL string) error {
	if webhookURL == "" {
		return errors.New("飞书Webhook URL为空")
	}
	if messageText == "" {
		logger.Warn("尝试发送空消息到飞书，已跳过")
		return nil
	}

	var larkResp larkResponse
	resp, err := larkClient.R().
		SetContext(ctx).
		SetBody(larkMessage{
			MsgType: "text",
			Content: larkTextMessageContent{Text: messageText},
		}).
		SetResult(&larkResp).
		Post(webhookURL)
	if err != nil {
		return errors.Wrap(err, "发送飞书消息失败")
	}

	if resp.StatusCode() != http.StatusOK {
		return errors.Errorf("发送飞书消息返回错误状态码 %d", resp.StatusCode())
	}
	if larkResp.Code != 0 {
		return errors.Errorf("飞书API返回错误 Code: %d, Msg: %s", larkResp.Code, larkResp.Msg)
	}

	logger.Info("成功发送消息到飞书")
	return nil
}
