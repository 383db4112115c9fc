package metadata

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

// Fetcher 元数据服务接口
type Fetcher interface {
	GetTokenMetadata(ctx context.Context, mint string) (*model.TokenMetadata, error)
}

// Client DAS getAsset客户端，走和链上查询相同的RPC端点
type Client struct {
	http     *resty.Client
	endpoint string
}

func NewClient(endpoint string) *Client {
	client := resty.New().
		SetTransport(&http.Transport{Proxy: http.ProxyFromEnvironment}).
		SetTimeout(10 * time.Second)
	return &Client{http: client, endpoint: endpoint}
}

type getAssetRequest struct {
	JsonRPC string         `json:"jsonrpc"`
	ID      int            `json:"id"`
	Method  string         `json:"method"`
	Params  getAssetParams `json:"params"`
}

type getAssetParams struct {
	ID string `json:"id"`
}

type getAssetResponse struct {
	Result *struct {
		Content struct {
			JSONURI  string `json:"json_uri"`
			Metadata struct {
				Name        string `json:"name"`
				Symbol      string `json:"symbol"`
				Description string `json:"description"`
				Attributes  []struct {
					TraitType string `json:"trait_type"`
					Value     any    `json:"value"`
				} `json:"attributes"`
			} `json:"metadata"`
			Links struct {
				Image       string `json:"image"`
				ExternalURL string `json:"external_url"`
			} `json:"links"`
		} `json:"content"`
	} `json:"result"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) GetTokenMetadata(ctx context.Context, mint string) (*model.TokenMetadata, error) {
	var payload getAssetResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(getAssetRequest{
			JsonRPC: "2.0",
			ID:      1,
			Method:  "getAsset",
			Params:  getAssetParams{ID: mint},
		}).
		SetResult(&payload).
		Post(c.endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "请求元数据服务失败")
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, errors.Errorf("元数据服务返回状态码 %d", resp.StatusCode())
	}
	if payload.Error != nil {
		return nil, errors.Errorf("元数据服务错误: %s", payload.Error.Message)
	}
	if payload.Result == nil {
		return nil, errors.New("元数据服务返回空结果")
	}

	content := payload.Result.Content
	meta := &model.TokenMetadata{
		Name:        content.Metadata.Name,
		Symbol:      content.Metadata.Symbol,
		URI:         content.JSONURI,
		Image:       content.Links.Image,
		Description: content.Metadata.Description,
	}
	for _, attr := range content.Metadata.Attributes {
		value, ok := attr.Value.(string)
		if !ok {
			continue
		}
		meta.Attributes = append(meta.Attributes, model.MetadataAttribute{
			TraitType: attr.TraitType,
			Value:     value,
		})
	}

	// external_url作为website的兜底，放在最前面，显式website属性在后会覆盖它
	if content.Links.ExternalURL != "" {
		meta.Attributes = append([]model.MetadataAttribute{{
			TraitType: "website",
			Value:     content.Links.ExternalURL,
		}}, meta.Attributes...)
	}

	return meta, nil
}

// ExtractSocialLinks 在attributes里按trait名称的大小写不敏感子串匹配社交链接
func ExtractSocialLinks(meta *model.TokenMetadata) model.SocialLinks {
	var links model.SocialLinks
	if meta == nil {
		return links
	}

	for _, attr := range meta.Attributes {
		trait := strings.ToLower(attr.TraitType)
		switch {
		case strings.Contains(trait, "twitter"):
			links.Twitter = attr.Value
		case strings.Contains(trait, "telegram"):
			links.Telegram = attr.Value
		case strings.Contains(trait, "discord"):
			links.Discord = attr.Value
		case strings.Contains(trait, "website") || strings.Contains(trait, "site"):
			links.Website = attr.Value
		}
	}
	return links
}
