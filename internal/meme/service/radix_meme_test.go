package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"radix-meme/internal/meme/model"
	"radix-meme/internal/meme/monitor"
	"radix-meme/pkg/radix"
)

const (
	testRegistry = "component_tdx_2_1registry"
	testKvs      = "internal_keyvaluestore_tdx_2_1tokens"
	testXrd      = "resource_tdx_2_1xrd"
)

type stubRoute struct {
	status int
	body   string
	delay  time.Duration
}

type stubRequest struct {
	Addresses            []string `json:"addresses"`
	Address              string   `json:"address"`
	KeyValueStoreAddress string   `json:"key_value_store_address"`
	LimitPerPage         int      `json:"limit_per_page"`
}

// fakeGateway 按 path 和请求里的地址返回预设响应, 未配置的返回 404
type fakeGateway struct {
	mu       sync.Mutex
	routes   map[string]stubRoute
	requests []stubRequest
	hits     map[string]int
	done     []string // 响应写出的顺序
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{routes: map[string]stubRoute{}, hits: map[string]int{}}
}

func routeKey(path, address string) string {
	return path + "|" + address
}

func (g *fakeGateway) on(path, address string, status int, body string) {
	g.routes[routeKey(path, address)] = stubRoute{status: status, body: body}
}

// slow 让已配置的路由延迟响应
func (g *fakeGateway) slow(path, address string, d time.Duration) {
	route := g.routes[routeKey(path, address)]
	route.delay = d
	g.routes[routeKey(path, address)] = route
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	var req stubRequest
	_ = sonic.Unmarshal(b, &req)

	address := req.Address
	switch {
	case len(req.Addresses) > 0:
		address = req.Addresses[0]
	case req.KeyValueStoreAddress != "":
		address = req.KeyValueStoreAddress
	}
	key := routeKey(r.URL.Path, address)

	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.hits[key]++
	route, ok := g.routes[key]
	g.mu.Unlock()

	if !ok {
		route = stubRoute{status: http.StatusNotFound, body: `{"message":"Entity not found"}`}
	}
	if route.delay > 0 {
		time.Sleep(route.delay)
	}

	g.mu.Lock()
	g.done = append(g.done, key)
	g.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(route.status)
	_, _ = w.Write([]byte(route.body))
}

func (g *fakeGateway) hitCount(path, address string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hits[routeKey(path, address)]
}

func (g *fakeGateway) completedOrder(path string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	var order []string
	for _, key := range g.done {
		if p, address, _ := strings.Cut(key, "|"); p == path {
			order = append(order, address)
		}
	}
	return order
}

func (g *fakeGateway) requestCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

func (g *fakeGateway) lastRequest() stubRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests[len(g.requests)-1]
}

func newTestService(t *testing.T, gw *fakeGateway, opts ...Option) *RadixMemeService {
	t.Helper()
	srv := httptest.NewServer(gw)
	t.Cleanup(srv.Close)

	client, err := radix.NewClient(radix.ClientConfig{
		Network:    radix.NetworkStokenet,
		BaseURL:    srv.URL,
		MaxRetries: radix.DefaultMaxRetries,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	cfg := model.GatewayConfig{Network: radix.NetworkStokenet, ComponentAddress: testRegistry}
	return NewRadixMemeService(client, cfg, testXrd, zap.NewNop(), opts...)
}

func componentDetails(fields map[string]string) string {
	list := make([]map[string]any, 0, len(fields))
	for name, value := range fields {
		list = append(list, map[string]any{"kind": "String", "field_name": name, "value": value})
	}
	body, _ := sonic.MarshalString(map[string]any{
		"items": []map[string]any{{
			"address": "component",
			"details": map[string]any{
				"type":  "Component",
				"state": map[string]any{"kind": "Tuple", "fields": list},
			},
		}},
	})
	return body
}

func tokenDetails(resource, supply, maxXrd, xrd string) string {
	return fmt.Sprintf(`{
		"items": [{
			"address": "component",
			"fungible_resources": {"total_count": 2, "items": [
				{"aggregation_level": "Global", "resource_address": "resource_tdx_2_1other", "amount": "7"},
				{"aggregation_level": "Global", "resource_address": %q, "amount": %q}
			]},
			"details": {"type": "Component", "state": {"kind": "Tuple", "fields": [
				{"kind": "Reference", "field_name": "token_manager", "value": %q},
				{"kind": "Decimal", "field_name": "current_supply", "value": %q},
				{"kind": "Decimal", "field_name": "max_supply", "value": "1000000"},
				{"kind": "Decimal", "field_name": "max_xrd", "value": %q},
				{"kind": "Tuple", "field_name": "fee_config", "value": null}
			]}}
		}]
	}`, testXrd, xrd, resource, supply, maxXrd)
}

func metadataPage(name, symbol string) string {
	return fmt.Sprintf(`{
		"address": "resource",
		"items": [
			{"key": "name", "value": {"typed": {"type": "String", "value": %q}}},
			{"key": "symbol", "value": {"typed": {"type": "String", "value": %q}}},
			{"key": "icon_url", "value": {"typed": {"type": "Url", "value": "https://example.com/icon.png"}}},
			{"key": "telegram", "value": {"typed": {"type": "String", "value": "https://t.me/meme"}}},
			{"key": "tags", "value": {"typed": {"type": "StringArray", "value": ["a", "b"]}}}
		]
	}`, name, symbol)
}

func kvsKeys(components ...string) string {
	items := make([]map[string]any, 0, len(components))
	for _, c := range components {
		items = append(items, map[string]any{
			"key": map[string]any{"programmatic_json": map[string]any{"kind": "Reference", "value": c}},
		})
	}
	body, _ := sonic.MarshalString(map[string]any{"items": items})
	return body
}

func TestGetMainComponentState(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, testRegistry, http.StatusOK, componentDetails(map[string]string{
		"max_token_supply": "1000",
		"multiplier":       "2",
	}))
	s := newTestService(t, gw)

	state, err := s.GetMainComponentState(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(1000).Equal(state.MaxTokenSupply))
	assert.Equal(t, "2", state.Multiplier)
	assert.True(t, state.MaxXrd.IsZero())
	assert.Empty(t, state.Address)
	assert.Empty(t, state.OwnerBadge)
	assert.Empty(t, state.TokensKvs)
}

func TestGetMainComponentStateAllFields(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, testRegistry, http.StatusOK, componentDetails(map[string]string{
		"address":             testRegistry,
		"owner_badge_manager": "resource_tdx_2_1owner",
		"max_token_supply":    "1000000",
		"max_xrd":             "4000",
		"multiplier":          "1.5",
		"tokens":              testKvs,
	}))
	s := newTestService(t, gw)

	state, err := s.GetMainComponentState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testRegistry, state.Address)
	assert.Equal(t, "resource_tdx_2_1owner", state.OwnerBadge)
	assert.True(t, decimal.NewFromInt(4000).Equal(state.MaxXrd))
	assert.Equal(t, "1.5", state.Multiplier)
	assert.Equal(t, testKvs, state.TokensKvs)
}

func TestGetMainComponentStateEmptyItems(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, testRegistry, http.StatusOK, `{"items":[]}`)
	s := newTestService(t, gw)

	state, err := s.GetMainComponentState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.MainComponentState{}, state)
}

func TestGetMainComponentStateFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, testRegistry, http.StatusInternalServerError, `{"message":"boom"}`)
	s := newTestService(t, gw)

	_, err := s.GetMainComponentState(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetchFailed))

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, OpMainComponentState, fetchErr.Op)
	assert.Equal(t, testRegistry, fetchErr.Address)
	assert.Equal(t, http.StatusInternalServerError, fetchErr.Result.Status)
	assert.Equal(t, "Radix API error. boom", fetchErr.Result.Message)
	// 默认重试一次
	assert.Equal(t, 2, gw.hitCount(radix.PathEntityDetails, testRegistry))
}

func TestGetAllTokenComponentAddresses(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathKeyValueStoreKeys, testKvs, http.StatusOK, kvsKeys("component_a", "component_b"))
	s := newTestService(t, gw)

	addresses := s.GetAllTokenComponentAddresses(context.Background(), testKvs)
	assert.Equal(t, []string{"component_a", "component_b"}, addresses)
}

func TestGetAllTokenComponentAddressesEmpty(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathKeyValueStoreKeys, testKvs, http.StatusOK, `{"items":[]}`)
	gw.on(radix.PathKeyValueStoreKeys, "kvs_missing_items", http.StatusOK, `{"total_count":0}`)
	s := newTestService(t, gw)

	addresses := s.GetAllTokenComponentAddresses(context.Background(), testKvs)
	assert.NotNil(t, addresses)
	assert.Empty(t, addresses)

	assert.Empty(t, s.GetAllTokenComponentAddresses(context.Background(), "kvs_missing_items"))
	// 未配置的地址返回 404, 同样只得到空结果
	assert.Empty(t, s.GetAllTokenComponentAddresses(context.Background(), "kvs_unknown"))
}

func TestGetToken(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, "component_a", http.StatusOK, tokenDetails("resource_meme_a", "400", "1000", "250"))
	gw.on(radix.PathEntityMetadataPage, "resource_meme_a", http.StatusOK, metadataPage("Meme A", "MEMA"))
	s := newTestService(t, gw)

	token, err := s.GetToken(context.Background(), "component_a")
	require.NoError(t, err)

	assert.Equal(t, "component_a", token.ComponentAddress)
	assert.Equal(t, "resource_meme_a", token.Address)
	assert.True(t, decimal.NewFromInt(400).Equal(token.Supply))
	assert.True(t, decimal.NewFromInt(1000000).Equal(token.MaxSupply))
	assert.True(t, decimal.NewFromInt(250).Equal(token.XrdAmount))
	assert.True(t, decimal.NewFromInt(1000).Equal(token.MaxXrdAmount))
	assert.InDelta(t, 0.25, token.Progress, 1e-12)

	assert.Equal(t, "Meme A", token.Name)
	assert.Equal(t, "MEMA", token.Symbol)
	assert.Equal(t, "https://example.com/icon.png", token.IconURL)
	assert.Equal(t, "https://t.me/meme", token.TelegramURL)
	assert.Empty(t, token.Description)
	assert.Empty(t, token.Website)
}

func TestGetTokenComponentNotFound(t *testing.T) {
	gw := newFakeGateway()
	s := newTestService(t, gw)

	_, err := s.GetToken(context.Background(), "component_missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFetchFailed))

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, OpToken, fetchErr.Op)
	assert.Equal(t, "component_missing", fetchErr.Address)
	assert.Equal(t, http.StatusNotFound, fetchErr.Result.Status)
	// 组件详情的两次尝试, 没有元数据请求
	assert.Equal(t, 2, gw.requestCount())
}

func TestGetTokenMetadataFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, "component_a", http.StatusOK, tokenDetails("resource_meme_a", "400", "1000", "500"))
	gw.on(radix.PathEntityMetadataPage, "resource_meme_a", http.StatusInternalServerError, `{"message":"unavailable"}`)
	s := newTestService(t, gw)

	partial := monitor.AggregateFetches.WithLabelValues(OpToken, outcomePartial)
	before := testutil.ToFloat64(partial)

	token, err := s.GetToken(context.Background(), "component_a")
	require.NoError(t, err)

	assert.Equal(t, "resource_meme_a", token.Address)
	assert.True(t, decimal.NewFromInt(400).Equal(token.Supply))
	assert.InDelta(t, 0.5, token.Progress, 1e-12)
	assert.Empty(t, token.Name)
	assert.Empty(t, token.Symbol)
	assert.Empty(t, token.IconURL)
	assert.Equal(t, 2, gw.hitCount(radix.PathEntityMetadataPage, "resource_meme_a"))
	assert.Equal(t, before+1, testutil.ToFloat64(partial))
}

func TestGetTokenEmptyItems(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, "component_a", http.StatusOK, `{"items":[]}`)
	s := newTestService(t, gw)

	token, err := s.GetToken(context.Background(), "component_a")
	require.NoError(t, err)
	assert.Equal(t, model.NewTokenState("component_a"), token)
}

func TestGetTokenWithoutResource(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, "component_a", http.StatusOK, componentDetails(map[string]string{
		"current_supply": "10",
		"max_xrd":        "100",
	}))
	s := newTestService(t, gw)

	token, err := s.GetToken(context.Background(), "component_a")
	require.NoError(t, err)
	assert.Empty(t, token.Address)
	assert.True(t, decimal.NewFromInt(10).Equal(token.Supply))
	// 没有 XRD 余额时进度保持 0
	assert.Zero(t, token.Progress)
	assert.Equal(t, 1, gw.requestCount())
}

func TestGetAllTokens(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, testRegistry, http.StatusOK, componentDetails(map[string]string{"tokens": testKvs}))
	gw.on(radix.PathKeyValueStoreKeys, testKvs, http.StatusOK, kvsKeys("component_a", "component_b", "component_c"))
	for _, name := range []string{"a", "b", "c"} {
		gw.on(radix.PathEntityDetails, "component_"+name, http.StatusOK, tokenDetails("resource_meme_"+name, "1", "100", "10"))
		gw.on(radix.PathEntityMetadataPage, "resource_meme_"+name, http.StatusOK, metadataPage("Meme "+name, name))
	}
	s := newTestService(t, gw, WithMaxConcurrency(2))

	tokens, err := s.GetAllTokens(context.Background())
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, "component_"+name, tokens[i].ComponentAddress)
		assert.Equal(t, "resource_meme_"+name, tokens[i].Address)
		assert.Equal(t, "Meme "+name, tokens[i].Name)
		assert.InDelta(t, 0.1, tokens[i].Progress, 1e-12)
	}
}

func TestGetAllTokensKeepsOrderWhenCompletedOutOfOrder(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, testRegistry, http.StatusOK, componentDetails(map[string]string{"tokens": testKvs}))
	gw.on(radix.PathKeyValueStoreKeys, testKvs, http.StatusOK, kvsKeys("component_a", "component_b", "component_c"))
	for _, name := range []string{"a", "b", "c"} {
		gw.on(radix.PathEntityDetails, "component_"+name, http.StatusOK, tokenDetails("resource_meme_"+name, "1", "100", "10"))
		gw.on(radix.PathEntityMetadataPage, "resource_meme_"+name, http.StatusOK, metadataPage("Meme "+name, name))
	}
	gw.slow(radix.PathEntityDetails, "component_a", 150*time.Millisecond)
	s := newTestService(t, gw, WithMaxConcurrency(3))

	tokens, err := s.GetAllTokens(context.Background())
	require.NoError(t, err)

	order := gw.completedOrder(radix.PathEntityDetails)
	require.Len(t, order, 4)
	assert.Equal(t, testRegistry, order[0])
	assert.Equal(t, "component_a", order[len(order)-1])
	assert.Less(t, slices.Index(order, "component_c"), slices.Index(order, "component_a"))

	require.Len(t, tokens, 3)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, "component_"+name, tokens[i].ComponentAddress)
		assert.Equal(t, "Meme "+name, tokens[i].Name)
	}
}

func TestGetAllTokensNoTokens(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, testRegistry, http.StatusOK, componentDetails(map[string]string{"tokens": testKvs}))
	gw.on(radix.PathKeyValueStoreKeys, testKvs, http.StatusOK, `{"items":[]}`)
	s := newTestService(t, gw)

	tokens, err := s.GetAllTokens(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tokens)
}

func TestGetAllTokensFailsOnAnyToken(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathEntityDetails, testRegistry, http.StatusOK, componentDetails(map[string]string{"tokens": testKvs}))
	gw.on(radix.PathKeyValueStoreKeys, testKvs, http.StatusOK, kvsKeys("component_a", "component_broken"))
	gw.on(radix.PathEntityDetails, "component_a", http.StatusOK, tokenDetails("resource_meme_a", "1", "100", "10"))
	gw.on(radix.PathEntityMetadataPage, "resource_meme_a", http.StatusOK, metadataPage("Meme A", "MEMA"))
	s := newTestService(t, gw)

	tokens, err := s.GetAllTokens(context.Background())
	require.Error(t, err)
	assert.Nil(t, tokens)
	assert.True(t, errors.Is(err, ErrFetchFailed))
}

func TestGetAllTokensRegistryFailure(t *testing.T) {
	gw := newFakeGateway()
	s := newTestService(t, gw)

	_, err := s.GetAllTokens(context.Background())
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, OpMainComponentState, fetchErr.Op)
	assert.Equal(t, 0, gw.hitCount(radix.PathKeyValueStoreKeys, testKvs))
}

const streamBody = `{
	"items": [
		{
			"intent_hash": "txid_tdx_2_1first",
			"receipt": {"status": "CommittedSuccess", "events": [
				{"name": "WithdrawEvent", "emitter": {"type": "Method"}, "data": {"kind": "Tuple"}},
				{"name": "RadixMemeTokenTradeEvent", "emitter": {"type": "Method", "entity": {"entity_address": "component_a"}}, "data": {"kind": "Tuple", "fields": [{"field_name": "side", "value": "Buy"}]}}
			]}
		},
		{
			"intent_hash": "txid_tdx_2_1second",
			"receipt": {"status": "CommittedSuccess", "events": [
				{"name": "DepositEvent", "data": {"kind": "Tuple"}}
			]}
		}
	]
}`

func TestGetLatestRadixMemeTransactions(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathStreamTransactions, "", http.StatusOK, streamBody)
	s := newTestService(t, gw)

	latest, err := s.GetLatestRadixMemeTransactions(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, gw.lastRequest().LimitPerPage)

	assert.Equal(t, "txid_tdx_2_1first", latest.LastTxID)
	require.Len(t, latest.RadixMemeEvents, 1)
	trade := latest.RadixMemeEvents[0]
	assert.Equal(t, "txid_tdx_2_1first", trade.TxID)
	assert.Equal(t, model.TradeEventName, trade.Event.Name)
	assert.JSONEq(t, `{"kind": "Tuple", "fields": [{"field_name": "side", "value": "Buy"}]}`, string(trade.Event.Data))
}

func TestGetLatestRadixMemeTransactionsMultipleTradesInOneTx(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathStreamTransactions, "", http.StatusOK, `{
		"items": [
			{
				"intent_hash": "txid_tdx_2_1batch",
				"receipt": {"status": "CommittedSuccess", "events": [
					{"name": "RadixMemeTokenTradeEvent", "data": {"kind": "Tuple", "fields": [{"field_name": "side", "value": "Buy"}]}},
					{"name": "WithdrawEvent", "data": {"kind": "Tuple"}},
					{"name": "RadixMemeTokenTradeEvent", "data": {"kind": "Tuple", "fields": [{"field_name": "side", "value": "Sell"}]}}
				]}
			},
			{
				"intent_hash": "txid_tdx_2_1older",
				"receipt": {"status": "CommittedSuccess", "events": [
					{"name": "RadixMemeTokenTradeEvent", "data": {"kind": "Tuple", "fields": [{"field_name": "side", "value": "Buy"}]}}
				]}
			}
		]
	}`)
	s := newTestService(t, gw)

	latest, err := s.GetLatestRadixMemeTransactions(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "txid_tdx_2_1batch", latest.LastTxID)

	require.Len(t, latest.RadixMemeEvents, 3)
	assert.Equal(t, "txid_tdx_2_1batch", latest.RadixMemeEvents[0].TxID)
	assert.Equal(t, "txid_tdx_2_1batch", latest.RadixMemeEvents[1].TxID)
	assert.Equal(t, "txid_tdx_2_1older", latest.RadixMemeEvents[2].TxID)
	assert.Contains(t, string(latest.RadixMemeEvents[0].Event.Data), "Buy")
	assert.Contains(t, string(latest.RadixMemeEvents[1].Event.Data), "Sell")
}

func TestGetLatestRadixMemeTransactionsNullReceipt(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathStreamTransactions, "", http.StatusOK, `{
		"items": [
			{"intent_hash": "txid_tdx_2_1pending", "receipt": null},
			{
				"intent_hash": "txid_tdx_2_1trade",
				"receipt": {"status": "CommittedSuccess", "events": [
					{"name": "RadixMemeTokenTradeEvent", "data": {"kind": "Tuple"}}
				]}
			}
		]
	}`)
	s := newTestService(t, gw)

	latest, err := s.GetLatestRadixMemeTransactions(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "txid_tdx_2_1pending", latest.LastTxID)
	require.Len(t, latest.RadixMemeEvents, 1)
	assert.Equal(t, "txid_tdx_2_1trade", latest.RadixMemeEvents[0].TxID)
}

func TestGetLatestRadixMemeTransactionsDefaultLimit(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathStreamTransactions, "", http.StatusOK, `{"items":[]}`)
	s := newTestService(t, gw)

	latest, err := s.GetLatestRadixMemeTransactions(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultLatestTransactionsLimit, gw.lastRequest().LimitPerPage)
	assert.Empty(t, latest.LastTxID)
	assert.NotNil(t, latest.RadixMemeEvents)
	assert.Empty(t, latest.RadixMemeEvents)
}

func TestGetLatestRadixMemeTransactionsFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.on(radix.PathStreamTransactions, "", http.StatusServiceUnavailable, `{"message":"busy"}`)
	s := newTestService(t, gw)

	_, err := s.GetLatestRadixMemeTransactions(context.Background(), 10)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, OpLatestTransactions, fetchErr.Op)
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.Result.Status)
}

func TestGetConfig(t *testing.T) {
	s := newTestService(t, newFakeGateway())

	cfg := s.GetConfig()
	assert.Equal(t, model.GatewayConfig{Network: radix.NetworkStokenet, ComponentAddress: testRegistry}, cfg)

	cfg.ComponentAddress = "changed"
	assert.Equal(t, testRegistry, s.GetConfig().ComponentAddress)
}
