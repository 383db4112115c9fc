package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

func baseResult() *model.AnalysisResult {
	return &model.AnalysisResult{
		TokenInfo: &model.TokenBasicInfo{
			Address: "mint1111111111111111111111111111111111111111",
			Supply:  decimal.NewFromInt(1_000_000_000),
		},
		RiskScore: 10,
		RiskLevel: "Low",
		Verdict:   &model.TradeabilityVerdict{},
	}
}

func TestShouldAlert(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.AnalysisResult)
		want   bool
	}{
		{"低风险不告警", func(r *model.AnalysisResult) {}, false},
		{"蜜罐触发告警", func(r *model.AnalysisResult) { r.Verdict.IsHoneypot = true }, true},
		{"Critical风险触发告警", func(r *model.AnalysisResult) { r.RiskLevel = "Critical"; r.RiskScore = 85 }, true},
		{"High风险不告警", func(r *model.AnalysisResult) { r.RiskLevel = "High"; r.RiskScore = 60 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := baseResult()
			tt.mutate(result)
			assert.Equal(t, tt.want, shouldAlert(result))
		})
	}
}

func TestFeishuPublisherSendsAlert(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": 0, "msg": "success"}`))
	}))
	defer server.Close()

	result := baseResult()
	result.Verdict.IsHoneypot = true
	result.Verdict.Findings = []string{"Sell quote returned zero output: token cannot be sold (honeypot)"}
	result.RiskScore = 85
	result.RiskLevel = "Critical"
	result.Metadata = &model.TokenMetadata{Symbol: "MEME"}
	result.CurrentPrice = 0.000012
	result.MarketCap = 45_000

	err := NewFeishuPublisher(server.URL).Publish(context.Background(), result)
	require.NoError(t, err)

	require.NotNil(t, received)
	assert.Equal(t, "text", received["msg_type"])

	content, ok := received["content"].(map[string]any)
	require.True(t, ok)
	text, _ := content["text"].(string)
	assert.Contains(t, text, "MEME")
	assert.Contains(t, text, result.TokenInfo.Address)
	assert.Contains(t, text, "85/100")
	assert.Contains(t, text, "蜜罐")
}

func TestFeishuPublisherAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": 19001, "msg": "invalid token"}`))
	}))
	defer server.Close()

	err := NewFeishuPublisher(server.URL).Publish(context.Background(), baseResult())
	assert.Error(t, err)
}

func TestManagerRegistersFeishuOnlyWithWebhook(t *testing.T) {
	withHook := NewManager(stubConfig{url: "https://example.com/hook"})
	require.NoError(t, withHook.Start())
	assert.Len(t, withHook.publishers, 2)

	withoutHook := NewManager(stubConfig{})
	require.NoError(t, withoutHook.Start())
	assert.Len(t, withoutHook.publishers, 1)
}

type stubConfig struct {
	url string
}

func (s stubConfig) GetFeishuWebhookURL() string { return s.url }
