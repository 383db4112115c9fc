package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

func TestGetTokenMetadata(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"jsonrpc": "2.0",
			"id": 1,
			"result": {
				"content": {
					"json_uri": "https://example.com/meta.json",
					"metadata": {
						"name": "Test Meme",
						"symbol": "MEME",
						"description": "a test token",
						"attributes": [
							{"trait_type": "twitter", "value": "https://x.com/meme"},
							{"trait_type": "rank", "value": 3}
						]
					},
					"links": {
						"image": "https://example.com/meme.png",
						"external_url": "https://meme.example.com"
					}
				}
			}
		}`))
	}))
	defer server.Close()

	meta, err := NewClient(server.URL).GetTokenMetadata(context.Background(), "mint123")
	require.NoError(t, err)

	assert.Equal(t, "Test Meme", meta.Name)
	assert.Equal(t, "MEME", meta.Symbol)
	assert.Equal(t, "https://example.com/meta.json", meta.URI)
	assert.Equal(t, "https://example.com/meme.png", meta.Image)

	// 非字符串值的attribute被丢弃，external_url补成website属性
	require.Len(t, meta.Attributes, 2)
	assert.Equal(t, "website", meta.Attributes[0].TraitType)
	assert.Equal(t, "https://meme.example.com", meta.Attributes[0].Value)
	assert.Equal(t, "twitter", meta.Attributes[1].TraitType)
}

func TestGetTokenMetadataRPCError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"jsonrpc": "2.0", "id": 1, "error": {"code": -32000, "message": "asset not found"}}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetTokenMetadata(context.Background(), "mint123")
	assert.Error(t, err)
}

func TestExtractSocialLinks(t *testing.T) {
	tests := []struct {
		name string
		meta *model.TokenMetadata
		want model.SocialLinks
	}{
		{
			name: "nil元数据返回空链接",
			meta: nil,
			want: model.SocialLinks{},
		},
		{
			name: "trait名称大小写不敏感匹配",
			meta: &model.TokenMetadata{
				Attributes: []model.MetadataAttribute{
					{TraitType: "Twitter", Value: "https://x.com/a"},
					{TraitType: "TELEGRAM", Value: "https://t.me/a"},
					{TraitType: "Discord Server", Value: "https://discord.gg/a"},
					{TraitType: "official site", Value: "https://a.com"},
				},
			},
			want: model.SocialLinks{
				Twitter:  "https://x.com/a",
				Telegram: "https://t.me/a",
				Discord:  "https://discord.gg/a",
				Website:  "https://a.com",
			},
		},
		{
			name: "显式website属性覆盖external_url兜底",
			meta: &model.TokenMetadata{
				Attributes: []model.MetadataAttribute{
					{TraitType: "website", Value: "https://fallback.example.com"},
					{TraitType: "Website", Value: "https://real.example.com"},
				},
			},
			want: model.SocialLinks{Website: "https://real.example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSocialLinks(tt.meta))
		})
	}
}
