package radix

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"radix-meme/internal/meme/monitor"
	"radix-meme/pkg/httpclient"
)

const (
	DefaultMaxRetries = 1

	PathEntityDetails        = "/state/entity/details"
	PathEntityMetadataPage   = "/state/entity/page/metadata"
	PathKeyValueStoreKeys    = "/state/key-value-store/keys"
	PathTransactionStatus    = "/transaction/status"
	PathTransactionCommitted = "/transaction/committed-details"
	PathStreamTransactions   = "/stream/transactions"

	AggregationLevelGlobal = "Global"
)

type ClientConfig struct {
	Network    Network
	BaseURL    string        // 为空时使用网络的公共 gateway
	Timeout    time.Duration // 单次请求超时
	RateLimit  int           // 每分钟请求次数, 0 不限流
	MaxRetries int           // 失败后额外重试次数
	RetryWait  time.Duration // 两次尝试之间的等待
	UserAgent  string
}

// DefaultClientConfig 返回网络的默认配置: 失败后重试一次, 共两次尝试
func DefaultClientConfig(network Network) ClientConfig {
	return ClientConfig{
		Network:    network,
		Timeout:    10 * time.Second,
		MaxRetries: DefaultMaxRetries,
	}
}

// Client talks to one Radix Babylon gateway. The network is fixed at construction.
type Client struct {
	network    Network
	baseURL    string
	httpClient *httpclient.HTTPClient
	maxRetries int
	retryWait  time.Duration
	logger     *zap.Logger
}

func NewClient(cfg ClientConfig, logger *zap.Logger) (*Client, error) {
	if !cfg.Network.IsSupported() {
		return nil, errors.Wrapf(ErrUnsupportedNetwork, "%q", cfg.Network)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = cfg.Network.GatewayURL()
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}

	httpClient := httpclient.NewHTTPClient(httpclient.HTTPClientConfig{
		BaseURL:   baseURL,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		UserAgent: cfg.UserAgent,
	}, logger)

	logger.Info("Radix network set", zap.String("network", cfg.Network.String()), zap.String("base_url", baseURL))

	return &Client{
		network:    cfg.Network,
		baseURL:    baseURL,
		httpClient: httpClient,
		maxRetries: cfg.MaxRetries,
		retryWait:  cfg.RetryWait,
		logger:     logger,
	}, nil
}

func (c *Client) Network() Network {
	return c.network
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

// Request POSTs body to path with the client's default retry budget.
func (c *Client) Request(ctx context.Context, path string, body any) ApiResult {
	return c.RequestWithRetries(ctx, path, body, c.maxRetries)
}

// RequestWithRetries POSTs body to path and retries any failure up to maxRetries extra times,
// whatever the status. The last failure is returned once the budget is spent or ctx is done.
func (c *Client) RequestWithRetries(ctx context.Context, path string, body any, maxRetries int) ApiResult {
	if maxRetries < 0 {
		maxRetries = 0
	}

	var result ApiResult
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			if !c.waitRetry(ctx) {
				break
			}
			monitor.GatewayRetries.WithLabelValues(path).Inc()
		}

		result = c.do(ctx, path, body)
		if result.IsSuccess() {
			return result
		}
		c.logger.Warn("Radix API request failed",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Int("status", result.Status),
			zap.String("message", result.Message),
		)
	}
	return result
}

func (c *Client) waitRetry(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	if c.retryWait <= 0 {
		return true
	}
	timer := time.NewTimer(c.retryWait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (c *Client) do(ctx context.Context, path string, body any) ApiResult {
	start := time.Now()
	resp, err := c.httpClient.PostJSON(ctx, path, body)
	monitor.GatewayRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		monitor.GatewayRequests.WithLabelValues(path, "0").Inc()
		if errors.Is(err, httpclient.ErrNoResponse) {
			return noResponseResult(err)
		}
		return requestErrorResult(err)
	}

	monitor.GatewayRequests.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()
	if resp.IsSuccess() {
		return successResult(resp.StatusCode, resp.Body)
	}
	return gatewayErrorResult(resp.StatusCode, resp.Body)
}

func (c *Client) GetTransactionStatus(ctx context.Context, intentHash string) ApiResult {
	return c.Request(ctx, PathTransactionStatus, TransactionStatusRequest{
		IntentHash: intentHash,
	})
}

// GetTransactionDetail fetches committed details with state changes, fee summary, events and
// affected entities; raw hex is excluded.
func (c *Client) GetTransactionDetail(ctx context.Context, intentHash string) ApiResult {
	return c.Request(ctx, PathTransactionCommitted, TransactionCommittedDetailsRequest{
		IntentHash: intentHash,
		OptIns: TransactionOptIns{
			RawHex:                 false,
			ReceiptStateChanges:    true,
			ReceiptFeeSummary:      true,
			ReceiptEvents:          true,
			AffectedGlobalEntities: true,
		},
	})
}

// GetLatestTransactions fetches one page of the most recent committed transactions, newest first,
// with receipt events included.
func (c *Client) GetLatestTransactions(ctx context.Context, limit int) ApiResult {
	return c.Request(ctx, PathStreamTransactions, StreamTransactionsRequest{
		LimitPerPage: limit,
		Order:        "Desc",
		OptIns: TransactionOptIns{
			ReceiptEvents: true,
		},
	})
}

func (c *Client) GetEntityDetails(ctx context.Context, addresses ...string) ApiResult {
	return c.Request(ctx, PathEntityDetails, EntityDetailsRequest{
		Addresses:        addresses,
		AggregationLevel: AggregationLevelGlobal,
	})
}

func (c *Client) GetKeyValueStoreKeys(ctx context.Context, kvsAddress string) ApiResult {
	return c.Request(ctx, PathKeyValueStoreKeys, KeyValueStoreKeysRequest{
		KeyValueStoreAddress: kvsAddress,
	})
}

func (c *Client) GetEntityMetadataPage(ctx context.Context, address string) ApiResult {
	return c.Request(ctx, PathEntityMetadataPage, EntityMetadataPageRequest{
		Address: address,
	})
}
