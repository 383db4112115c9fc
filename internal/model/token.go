package model

import "github.com/shopspring/decimal"

// AuthorityRevoked 权限已放弃时的哨兵值
const AuthorityRevoked = "Revoked"

// TokenBasicInfo 代币mint账户快照，每次分析只拉取一次
type TokenBasicInfo struct {
	Address         string          `json:"address"`
	Supply          decimal.Decimal `json:"supply"` // 最小单位
	Decimals        uint8           `json:"decimals"`
	MintAuthority   string          `json:"mint_authority"`   // 地址或 Revoked
	FreezeAuthority string          `json:"freeze_authority"` // 地址或 Revoked
	IsInitialized   bool            `json:"is_initialized"`
}

// MintAuthorityActive mint权限是否仍然有效
func (t *TokenBasicInfo) MintAuthorityActive() bool {
	return t.MintAuthority != AuthorityRevoked
}

// FreezeAuthorityActive freeze权限是否仍然有效
func (t *TokenBasicInfo) FreezeAuthorityActive() bool {
	return t.FreezeAuthority != AuthorityRevoked
}

// HolderRecord 单个持仓账户，Amount已按decimals换算
type HolderRecord struct {
	Address    string          `json:"address"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage float64         `json:"percentage"` // 占总供应量百分比 0-100
}

// TokenMetadata 元数据服务返回的代币资料
type TokenMetadata struct {
	Name        string              `json:"name"`
	Symbol      string              `json:"symbol"`
	URI         string              `json:"uri"`
	Image       string              `json:"image"`
	Description string              `json:"description"`
	Attributes  []MetadataAttribute `json:"attributes"`
}

// MetadataAttribute 任意trait键值对
type MetadataAttribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

// SocialLinks 从元数据attributes里匹配出的社交链接
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Website  string `json:"website,omitempty"`
	Discord  string `json:"discord,omitempty"`
}
