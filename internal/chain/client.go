package chain

import (
	"context"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/msbkrkyn/safememefi-analyzer-sub000/internal/model"
)

// LargestAccount getTokenLargestAccounts返回的单个账户
type LargestAccount struct {
	Address string
	Amount  decimal.Decimal // 最小单位
}

// Reader 链上查询接口，便于测试注入
type Reader interface {
	// GetMintInfo 读取mint账户并解析SPL Mint布局
	GetMintInfo(ctx context.Context, mint string) (*model.TokenBasicInfo, error)

	// GetLargestAccounts 读取最大的持仓账户（节点上限20个）
	GetLargestAccounts(ctx context.Context, mint string) ([]LargestAccount, error)

	// GetWalletTokenBalance 查询钱包在该mint下关联账户的余额（已按decimals换算）
	GetWalletTokenBalance(ctx context.Context, wallet, mint string) (decimal.Decimal, error)
}

// Client solana-go RPC封装
type Client struct {
	rpc *rpc.Client
}

func NewClient(endpoint string) *Client {
	return &Client{rpc: rpc.New(endpoint)}
}

func (c *Client) GetMintInfo(ctx context.Context, mint string) (*model.TokenBasicInfo, error) {
	pk, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return nil, errors.Wrapf(err, "无效的mint地址: %s", mint)
	}

	resp, err := c.rpc.GetAccountInfo(ctx, pk)
	if err != nil {
		return nil, errors.Wrapf(err, "查询mint账户失败: %s", mint)
	}
	if resp == nil || resp.Value == nil {
		return nil, errors.Errorf("mint账户不存在: %s", mint)
	}

	data := resp.Value.Data.GetBinary()
	if len(data) == 0 {
		return nil, errors.Errorf("mint账户数据为空: %s", mint)
	}

	var mintAccount token.Mint
	if err := bin.NewBinDecoder(data).Decode(&mintAccount); err != nil {
		return nil, errors.Wrapf(err, "解析mint账户布局失败: %s", mint)
	}

	info := &model.TokenBasicInfo{
		Address:         mint,
		Supply:          decimal.NewFromUint64(mintAccount.Supply),
		Decimals:        mintAccount.Decimals,
		MintAuthority:   model.AuthorityRevoked,
		FreezeAuthority: model.AuthorityRevoked,
		IsInitialized:   mintAccount.IsInitialized,
	}
	if mintAccount.MintAuthority != nil {
		info.MintAuthority = mintAccount.MintAuthority.String()
	}
	if mintAccount.FreezeAuthority != nil {
		info.FreezeAuthority = mintAccount.FreezeAuthority.String()
	}
	return info, nil
}

func (c *Client) GetLargestAccounts(ctx context.Context, mint string) ([]LargestAccount, error) {
	pk, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return nil, errors.Wrapf(err, "无效的mint地址: %s", mint)
	}

	resp, err := c.rpc.GetTokenLargestAccounts(ctx, pk, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, errors.Wrapf(err, "查询最大持仓账户失败: %s", mint)
	}

	accounts := make([]LargestAccount, 0, len(resp.Value))
	for _, v := range resp.Value {
		amount, err := decimal.NewFromString(v.Amount)
		if err != nil {
			continue
		}
		accounts = append(accounts, LargestAccount{
			Address: v.Address.String(),
			Amount:  amount,
		})
	}
	return accounts, nil
}

func (c *Client) GetWalletTokenBalance(ctx context.Context, wallet, mint string) (decimal.Decimal, error) {
	walletPk, err := solana.PublicKeyFromBase58(wallet)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "无效的钱包地址: %s", wallet)
	}
	mintPk, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "无效的mint地址: %s", mint)
	}

	ata, _, err := solana.FindAssociatedTokenAddress(walletPk, mintPk)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "派生关联账户地址失败")
	}

	resp, err := c.rpc.GetTokenAccountBalance(ctx, ata, rpc.CommitmentConfirmed)
	if err != nil {
		// 关联账户不存在视为0余额
		return decimal.Zero, nil
	}
	if resp == nil || resp.Value == nil {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(resp.Value.Amount)
	if err != nil {
		return decimal.Zero, nil
	}
	return amount.Shift(-int32(resp.Value.Decimals)), nil
}
