package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"radix-meme/internal/meme/extractor"
	"radix-meme/internal/meme/model"
	"radix-meme/internal/meme/monitor"
	"radix-meme/pkg/logger"
	"radix-meme/pkg/radix"
)

const (
	tracerName = "radix-meme/service"

	DefaultMaxConcurrency          = 16
	DefaultLatestTransactionsLimit = 100

	OpMainComponentState = "main_component_state"
	OpTokenAddresses     = "token_component_addresses"
	OpToken              = "token"
	OpAllTokens          = "all_tokens"
	OpLatestTransactions = "latest_transactions"

	outcomeOK      = "ok"
	outcomePartial = "partial"
	outcomeFailed  = "failed"
)

// Gateway 聚合服务用到的 gateway 调用, *radix.Client 实现了它
type Gateway interface {
	GetEntityDetails(ctx context.Context, addresses ...string) radix.ApiResult
	GetKeyValueStoreKeys(ctx context.Context, kvsAddress string) radix.ApiResult
	GetEntityMetadataPage(ctx context.Context, address string) radix.ApiResult
	GetLatestTransactions(ctx context.Context, limit int) radix.ApiResult
}

type Option func(*RadixMemeService)

// WithMaxConcurrency 限制 GetAllTokens 同时进行的 token 拉取数
func WithMaxConcurrency(n int) Option {
	return func(s *RadixMemeService) {
		if n > 0 {
			s.maxConcurrency = n
		}
	}
}

// RadixMemeService 把 gateway 的原始账本状态拼装成协议对象, 构造后配置不可变
type RadixMemeService struct {
	client         Gateway
	cfg            model.GatewayConfig
	xrdAddress     string
	maxConcurrency int
	logger         *zap.Logger
}

func NewRadixMemeService(client Gateway, cfg model.GatewayConfig, xrdAddress string, logger *zap.Logger, opts ...Option) *RadixMemeService {
	s := &RadixMemeService{
		client:         client,
		cfg:            cfg,
		xrdAddress:     xrdAddress,
		maxConcurrency: DefaultMaxConcurrency,
		logger:         logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RadixMemeService) GetConfig() model.GatewayConfig {
	return s.cfg
}

// GetMainComponentState 读取 registry 组件状态, 调用失败返回 *FetchError
func (s *RadixMemeService) GetMainComponentState(ctx context.Context) (model.MainComponentState, error) {
	ctx, span := logger.StartSpan(ctx, tracerName, "GetMainComponentState")
	defer span.End()
	start := time.Now()

	address := s.cfg.ComponentAddress
	result := s.client.GetEntityDetails(ctx, address)
	if !result.IsOK() {
		s.logger.Error("Problem fetching main component details",
			zap.String("address", address),
			zap.Int("status", result.Status),
			zap.String("message", result.Message),
		)
		observe(OpMainComponentState, outcomeFailed, start)
		return model.MainComponentState{}, newFetchError(OpMainComponentState, address, result)
	}

	var details radix.EntityDetailsResponse
	if err := result.Decode(&details); err != nil {
		observe(OpMainComponentState, outcomeFailed, start)
		return model.MainComponentState{}, newDecodeError(OpMainComponentState, address, result, err)
	}

	var state model.MainComponentState
	if len(details.Items) > 0 {
		fields := extractor.ComponentFields(details.Items[0].StateFields())
		state = model.MainComponentState{
			Address:        fields.Address,
			OwnerBadge:     fields.OwnerBadge,
			MaxTokenSupply: fields.MaxTokenSupply,
			MaxXrd:         fields.MaxXrd,
			Multiplier:     fields.Multiplier,
			TokensKvs:      fields.Tokens,
		}
	}
	observe(OpMainComponentState, outcomeOK, start)
	return state, nil
}

// GetAllTokenComponentAddresses 列出 kvs 中的 token 组件地址, 任何失败都返回空切片
func (s *RadixMemeService) GetAllTokenComponentAddresses(ctx context.Context, kvsAddress string) []string {
	ctx, span := logger.StartSpan(ctx, tracerName, "GetAllTokenComponentAddresses")
	defer span.End()
	start := time.Now()

	result := s.client.GetKeyValueStoreKeys(ctx, kvsAddress)
	if !result.IsOK() {
		s.logger.Error("Problem fetching all tokens components",
			zap.String("kvs", kvsAddress),
			zap.Int("status", result.Status),
			zap.String("message", result.Message),
		)
		observe(OpTokenAddresses, outcomeFailed, start)
		return []string{}
	}

	var keys radix.KeyValueStoreKeysResponse
	if err := result.Decode(&keys); err != nil {
		s.logger.Error("Invalid key-value store keys response", zap.String("kvs", kvsAddress), zap.Error(err))
		observe(OpTokenAddresses, outcomeFailed, start)
		return []string{}
	}

	observe(OpTokenAddresses, outcomeOK, start)
	return lo.Map(keys.Items, func(item radix.KeyValueStoreKeyItem, _ int) string {
		return item.Key.ProgrammaticJSON.Value.String()
	})
}

// GetToken 拼装单个 token: 组件详情 -> XRD 余额与进度 -> resource 元数据.
// 只有组件详情失败会返回错误, 元数据失败时返回已有字段.
func (s *RadixMemeService) GetToken(ctx context.Context, componentAddress string) (model.TokenState, error) {
	ctx, span := logger.StartSpan(ctx, tracerName, "GetToken")
	defer span.End()
	start := time.Now()

	token := model.NewTokenState(componentAddress)

	result := s.client.GetEntityDetails(ctx, componentAddress)
	if !result.IsOK() {
		observe(OpToken, outcomeFailed, start)
		return model.TokenState{}, newFetchError(OpToken, componentAddress, result)
	}
	var details radix.EntityDetailsResponse
	if err := result.Decode(&details); err != nil {
		observe(OpToken, outcomeFailed, start)
		return model.TokenState{}, newDecodeError(OpToken, componentAddress, result, err)
	}
	if len(details.Items) == 0 {
		observe(OpToken, outcomeOK, start)
		return token, nil
	}

	item := details.Items[0]
	fields := extractor.ComponentFields(item.StateFields())
	token.Address = fields.TokenManager
	token.Supply = fields.CurrentSupply
	token.MaxSupply = fields.MaxSupply
	token.MaxXrdAmount = fields.MaxXrd

	if s.xrdAddress != "" {
		xrd, found := lo.Find(item.FungibleBalances(), func(b radix.FungibleResourceBalance) bool {
			return b.ResourceAddress == s.xrdAddress
		})
		if found {
			token.XrdAmount = extractor.ParseAmount(xrd.Amount)
		}
	}
	token.UpdateProgress()

	// 没有 resource 地址就没有元数据可查
	if token.Address == "" {
		observe(OpToken, outcomeOK, start)
		return token, nil
	}

	if !s.enrichMetadata(ctx, &token) {
		observe(OpToken, outcomePartial, start)
		return token, nil
	}
	observe(OpToken, outcomeOK, start)
	return token, nil
}

func (s *RadixMemeService) enrichMetadata(ctx context.Context, token *model.TokenState) bool {
	result := s.client.GetEntityMetadataPage(ctx, token.Address)
	if !result.IsOK() {
		s.logger.Warn("Problem fetching metadata for token",
			zap.String("resource", token.Address),
			zap.Int("status", result.Status),
			zap.String("message", result.Message),
		)
		return false
	}

	var page radix.EntityMetadataPageResponse
	if err := result.Decode(&page); err != nil {
		s.logger.Warn("Invalid metadata page", zap.String("resource", token.Address), zap.Error(err))
		return false
	}
	if page.Items == nil {
		return true
	}

	meta := extractor.MetadataFields(page.Items)
	token.Name = meta.Name
	token.Symbol = meta.Symbol
	token.Description = meta.Description
	token.IconURL = meta.IconURL
	token.ImageURL = meta.ImageURL
	token.TelegramURL = meta.Telegram
	token.XURL = meta.X
	token.Website = meta.Website
	return true
}

// GetAllTokens 并发拉取 registry 下所有 token, 结果保持地址顺序.
// 任一 token 失败则整批失败, 并取消尚未完成的拉取.
func (s *RadixMemeService) GetAllTokens(ctx context.Context) ([]model.TokenState, error) {
	ctx, span := logger.StartSpan(ctx, tracerName, "GetAllTokens")
	defer span.End()
	start := time.Now()

	registry, err := s.GetMainComponentState(ctx)
	if err != nil {
		observe(OpAllTokens, outcomeFailed, start)
		return nil, err
	}
	addresses := s.GetAllTokenComponentAddresses(ctx, registry.TokensKvs)

	tokens := make([]model.TokenState, len(addresses))
	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(s.maxConcurrency)
	for i, address := range addresses {
		i, address := i, address // per-iteration copy for pre-Go 1.22 loop semantics
		p.Go(func(ctx context.Context) error {
			token, err := s.GetToken(ctx, address)
			if err != nil {
				return err
			}
			tokens[i] = token
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		s.logger.Error("Problem fetching tokens", zap.Int("count", len(addresses)), zap.Error(err))
		observe(OpAllTokens, outcomeFailed, start)
		return nil, err
	}

	observe(OpAllTokens, outcomeOK, start)
	return tokens, nil
}

// GetLatestRadixMemeTransactions 读取最新一页交易并挑出协议交易事件, limitPerPage <= 0 时取 100 条
func (s *RadixMemeService) GetLatestRadixMemeTransactions(ctx context.Context, limitPerPage int) (model.LatestTransactionsResult, error) {
	ctx, span := logger.StartSpan(ctx, tracerName, "GetLatestRadixMemeTransactions")
	defer span.End()
	start := time.Now()

	if limitPerPage <= 0 {
		limitPerPage = DefaultLatestTransactionsLimit
	}

	result := s.client.GetLatestTransactions(ctx, limitPerPage)
	if !result.IsOK() {
		s.logger.Error("Problem fetching latest transactions",
			zap.Int("status", result.Status),
			zap.String("message", result.Message),
		)
		observe(OpLatestTransactions, outcomeFailed, start)
		return model.LatestTransactionsResult{}, newFetchError(OpLatestTransactions, s.cfg.ComponentAddress, result)
	}

	var stream radix.StreamTransactionsResponse
	if err := result.Decode(&stream); err != nil {
		observe(OpLatestTransactions, outcomeFailed, start)
		return model.LatestTransactionsResult{}, newDecodeError(OpLatestTransactions, s.cfg.ComponentAddress, result, err)
	}

	latest := model.LatestTransactionsResult{RadixMemeEvents: []model.TradeEvent{}}
	if len(stream.Items) > 0 {
		latest.LastTxID = stream.Items[0].IntentHash
	}
	for _, tx := range stream.Items {
		trades := lo.Filter(tx.ReceiptEvents(), func(event radix.Event, _ int) bool {
			return event.Name == model.TradeEventName
		})
		for _, event := range trades {
			latest.RadixMemeEvents = append(latest.RadixMemeEvents, model.TradeEvent{TxID: tx.IntentHash, Event: event})
		}
	}

	observe(OpLatestTransactions, outcomeOK, start)
	return latest, nil
}

func observe(op, outcome string, start time.Time) {
	monitor.AggregateFetches.WithLabelValues(op, outcome).Inc()
	monitor.AggregateDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
