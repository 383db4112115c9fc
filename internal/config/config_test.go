package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `logger:
  output: stdout
  level: debug
  disable_sentry: true

chain:
  rpc_endpoint: https://api.mainnet-beta.solana.com

quote:
  jupiter_base_url: https://quote-api.jup.ag/v6

market:
  dexscreener_base_url: https://api.dexscreener.com
  priceindex_base_url: https://api.geckoterminal.com/api/v2

history:
  birdeye_base_url: https://public-api.birdeye.so
  birdeye_api_key: ${TEST_BIRDEYE_KEY}

predict:
  openai_api_key: ""
  model: gpt-4o-mini

publisher:
  feishu:
    webhook_url: https://open.feishu.cn/hook/xxx

wallet: ""
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))
	return path
}

func TestManagerLoad(t *testing.T) {
	t.Setenv("TEST_BIRDEYE_KEY", "secret-key-123")

	m := NewManager()
	require.NoError(t, m.Load(writeTestConfig(t)))

	cfg := m.GetAppConfig()
	require.NotNil(t, cfg)

	assert.Equal(t, "https://api.mainnet-beta.solana.com", cfg.Chain.RPCEndpoint)
	assert.Equal(t, "https://quote-api.jup.ag/v6", cfg.Quote.JupiterBaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.Predict.Model)
	assert.Equal(t, "debug", cfg.Logger.Level)

	// ${VAR}占位符被环境变量替换
	assert.Equal(t, "secret-key-123", cfg.History.BirdeyeAPIKey)

	assert.Equal(t, "https://open.feishu.cn/hook/xxx", m.GetPublisherConfig().GetFeishuWebhookURL())
}

func TestManagerLoadMissingFile(t *testing.T) {
	m := NewManager()
	assert.Error(t, m.Load(filepath.Join(t.TempDir(), "nope.yaml")))
}
