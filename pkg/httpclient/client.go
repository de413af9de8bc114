package httpclient

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"resty.dev/v3"
)

// ErrNoResponse marks failures that happened after the request was dispatched
// (connection refused, reset, timeout) so no HTTP status is available.
var ErrNoResponse = errors.New("no response received")

// HTTPClientConfig 配置参数
type HTTPClientConfig struct {
	BaseURL   string
	Timeout   time.Duration     // 单次请求超时时间
	RateLimit int               // 每分钟请求次数, 0 表示不限流
	UserAgent string            // 可选 User-Agent
	Headers   map[string]string // 默认 headers
}

// HTTPClient 是基于 resty 的 JSON HTTP 客户端, 不做重试, 重试由调用方决定
type HTTPClient struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// Response 是一次 HTTP 往返的原始结果
type Response struct {
	StatusCode int
	Body       []byte
	URL        string
	Duration   time.Duration
}

func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewHTTPClient 创建一个新的 HTTP 客户端
func NewHTTPClient(cfg HTTPClientConfig, logger *zap.Logger) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimit)/60), 1)
	}

	restyClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		AddRequestMiddleware(func(c *resty.Client, r *resty.Request) error {
			// 为限流器等待创建带超时的上下文
			limiterCtx, cancel := context.WithTimeout(r.Context(), cfg.Timeout)
			defer cancel()

			if err := limiter.Wait(limiterCtx); err != nil {
				logger.Warn("Rate limiter wait failed", zap.Error(err))
				return errors.Wrap(err, "rate limiter")
			}
			if cfg.UserAgent != "" {
				r.SetHeader("User-Agent", cfg.UserAgent)
			}
			for k, v := range cfg.Headers {
				r.SetHeader(k, v)
			}
			logger.Debug("Outgoing request", zap.String("url", r.URL))
			return nil
		}).
		AddResponseMiddleware(func(c *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() >= 400 {
				logger.Warn("HTTP request failed",
					zap.Int("status", resp.StatusCode()),
					zap.String("url", resp.Request.URL),
				)
			}
			return nil
		})

	return &HTTPClient{
		client:  restyClient,
		logger:  logger,
		limiter: limiter,
	}
}

// PostJSON 以 JSON 形式 POST body 到 baseURL 下的 path.
// 服务端返回任何状态码都视为成功往返; 只有请求未能构造或没有收到响应时才返回 error,
// 后者会被标记为 ErrNoResponse.
func (c *HTTPClient) PostJSON(ctx context.Context, path string, body any) (*Response, error) {
	payload, err := sonic.Marshal(body)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal request body for %s", path)
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(path)
	if err != nil {
		if resp != nil {
			c.logger.Error("HTTP POST JSON request failed", zap.String("path", path), zap.Error(err))
			return nil, errors.Mark(errors.Wrapf(err, "post %s", path), ErrNoResponse)
		}
		return nil, errors.Wrapf(err, "prepare request %s", path)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
		URL:        resp.Request.URL,
		Duration:   resp.Duration(),
	}, nil
}

// Close 释放底层连接
func (c *HTTPClient) Close() error {
	return c.client.Close()
}
