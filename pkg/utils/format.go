package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func ConvertToJsonString(v any) string {
	data, _ := json.Marshal(v)
	return string(data)
}

// GetDisplayWalletAddress 获取用于显示的钱包地址
func GetDisplayWalletAddress(walletAddress string) string {
	if len(walletAddress) > 9 {
		return fmt.Sprintf("%s...%s", walletAddress[:6], walletAddress[len(walletAddress)-4:])
	}
	return walletAddress
}

// FormatAmountWithDecimals 格式化链上原始金额
func FormatAmountWithDecimals(amount string, decimals int32) string {
	if amount == "" {
		return "0"
	}

	amountDecimal, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}

	if amountDecimal.IsZero() {
		return "0"
	}

	actualAmount := amountDecimal.Shift(-decimals)
	amountFloat, _ := actualAmount.Float64()

	if amountFloat >= 1000000 {
		return fmt.Sprintf("%.2fM", amountFloat/1000000)
	} else if amountFloat >= 1000 {
		return fmt.Sprintf("%.2fK", amountFloat/1000)
	}

	// 小额保留合适的精度
	if amountFloat < 0.0001 {
		return actualAmount.Truncate(8).String()
	} else if amountFloat < 0.01 {
		return actualAmount.Truncate(6).String()
	} else if amountFloat < 1 {
		return actualAmount.Truncate(4).String()
	}

	return actualAmount.Truncate(2).String()
}

// FormatPrice 格式化价格，meme币价格常有大段前导0，用 0.0{n}xxxx 形式压缩显示
func FormatPrice(raw string) string {
	if raw == "" {
		return ""
	}

	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	if val == 0 {
		return "$0"
	}

	s := fmt.Sprintf("%.20f", val)
	intPart, decPart := splitOnce(s, ".")

	// 小数部分全是0直接返回整数部分
	if strings.TrimRight(decPart, "0") == "" {
		return fmt.Sprintf("$%s", intPart)
	}

	// 统计前导0个数
	zeroPrefix := 0
	for zeroPrefix < len(decPart) && decPart[zeroPrefix] == '0' {
		zeroPrefix++
	}

	// 取首个非零数字开始的4位
	start := zeroPrefix
	end := start + 4
	if end > len(decPart) {
		end = len(decPart)
	}
	digits := decPart[start:end]

	var frac string
	if zeroPrefix > 3 {
		frac = fmt.Sprintf("0{%d}%s", zeroPrefix, digits)
	} else {
		frac = strings.Repeat("0", zeroPrefix) + digits
	}

	return fmt.Sprintf("$%s.%s", intPart, frac)
}

// splitOnce 把 s 按第一个 sep 切成两段，若不存在 sep，则 decPart 为空串
func splitOnce(s, sep string) (intPart, decPart string) {
	if idx := strings.Index(s, sep); idx != -1 {
		return s[:idx], s[idx+1:]
	}
	return s, ""
}
