package model

import "github.com/shopspring/decimal"

// MainComponentState 协议主组件 (registry) 状态
type MainComponentState struct {
	Address        string          `json:"address"`
	OwnerBadge     string          `json:"ownerBadge"`
	MaxTokenSupply decimal.Decimal `json:"maxTokenSupply"`
	MaxXrd         decimal.Decimal `json:"maxXrd"`
	Multiplier     string          `json:"multiplier"`
	TokensKvs      string          `json:"tokensKvs"` // 存放 token 组件地址的 key-value store
}

// TokenState 单个 token 的发售状态, 由最多三次 gateway 调用拼装
type TokenState struct {
	Address          string          `json:"address"` // token resource 地址
	ComponentAddress string          `json:"componentAddress"`
	Progress         float64         `json:"progress"` // xrdAmount / maxXrdAmount, 不封顶
	Supply           decimal.Decimal `json:"supply"`
	MaxSupply        decimal.Decimal `json:"maxSupply"`
	XrdAmount        decimal.Decimal `json:"xrdAmount"`
	MaxXrdAmount     decimal.Decimal `json:"maxXrdAmount"`

	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	IconURL     string `json:"iconUrl"`
	ImageURL    string `json:"imageUrl"`
	TelegramURL string `json:"telegramUrl"`
	XURL        string `json:"xUrl"`
	Website     string `json:"website"`
}

// NewTokenState 返回只带组件地址的默认记录
func NewTokenState(componentAddress string) TokenState {
	return TokenState{ComponentAddress: componentAddress}
}

// UpdateProgress 仅在两者都非零时计算进度, 否则保持 0
func (t *TokenState) UpdateProgress() {
	if t.XrdAmount.IsZero() || t.MaxXrdAmount.IsZero() {
		t.Progress = 0
		return
	}
	t.Progress = t.XrdAmount.Div(t.MaxXrdAmount).InexactFloat64()
}
