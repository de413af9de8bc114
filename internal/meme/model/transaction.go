package model

import "radix-meme/pkg/radix"

// TradeEventName 协议交易事件名
const TradeEventName = "RadixMemeTokenTradeEvent"

// TradeEvent 交易回执中的一条协议交易事件
type TradeEvent struct {
	TxID  string      `json:"txId"`
	Event radix.Event `json:"event"`
}

type LatestTransactionsResult struct {
	LastTxID        string       `json:"lastTxId"` // 最新一笔交易, 供调用方做游标
	RadixMemeEvents []TradeEvent `json:"radixMemeEvents"`
}

// GatewayConfig 聚合服务构造后不可变的配置
type GatewayConfig struct {
	Network          radix.Network `json:"network"`
	ComponentAddress string        `json:"componentAddress"`
}
