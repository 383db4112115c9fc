package predict

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"github.com/pkg/errors"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
	"github.com/msbkrkyn/safememefi-analyzer-sub000/pkg/utils"
)

// OpenAIPredictor 用外部大模型生成走势预测。
// 返回内容必须是严格的JSON，任何偏差都按失败处理，
// 由调用方降级到Fallback。
type OpenAIPredictor struct {
	client *openai.Client
	model  string
}

func NewOpenAIPredictor(apiKey, modelName string) *OpenAIPredictor {
	if modelName == "" {
		modelName = openai.GPT4oMini
	}
	return &OpenAIPredictor{
		client: openai.NewClient(apiKey),
		model:  modelName,
	}
}

type predictionsEnvelope struct {
	Predictions []model.PredictionRecord `json:"predictions"`
}

func (p *OpenAIPredictor) Predict(ctx context.Context, in *Input) ([]model.PredictionRecord, error) {
	prompt := fmt.Sprintf(`Analyze the following Solana token data and predict price movement for 1h, 24h and 7d horizons.

Token data:
%s

Return ONLY a JSON object of exactly this shape, with no surrounding text:
{"predictions":[{"timeframe":"1h","prediction":0.0,"confidence":0,"trend":"bullish|bearish|neutral","factors":["..."],"riskLevel":"low|medium|high"}]}`,
		utils.ConvertToJsonString(in))

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a cryptocurrency risk analyst. Always respond with strict JSON and nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, errors.Wrap(err, "预测服务调用失败")
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("预测服务无返回内容")
	}

	var envelope predictionsEnvelope
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &envelope); err != nil {
		return nil, errors.Wrap(err, "预测服务返回格式不符合约定")
	}
	if len(envelope.Predictions) == 0 {
		return nil, errors.New("预测服务返回空预测列表")
	}

	return envelope.Predictions, nil
}
