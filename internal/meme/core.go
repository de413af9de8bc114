package meme

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"radix-meme/internal/meme/config"
	"radix-meme/internal/meme/model"
	"radix-meme/internal/meme/monitor"
	"radix-meme/internal/meme/service"
	"radix-meme/pkg/radix"
)

type Core struct {
	cfg     config.Config
	tl      *zap.Logger
	client  *radix.Client
	service *service.RadixMemeService
	metrics *monitor.MetricsServer
}

func New(cfg config.Config, logger *zap.Logger) (*Core, error) {
	network, err := radix.ParseNetwork(cfg.Radix.Network)
	if err != nil {
		return nil, err
	}

	// 未显式配置时从地址簿取 registry 组件
	componentAddress := cfg.Radix.ComponentAddress
	if componentAddress == "" {
		deployment, err := LookupDeployment(network, cfg.Radix.Deployment)
		if err != nil {
			return nil, err
		}
		componentAddress = deployment.ComponentAddress
	}
	if componentAddress == "" {
		logger.Warn("No component address for network, registry queries will fail",
			zap.String("network", network.String()),
			zap.String("deployment", cfg.Radix.Deployment),
		)
	}

	xrdAddress := cfg.Radix.XrdAddress
	if xrdAddress == "" {
		xrdAddress = network.XRDAddress()
	}

	client, err := radix.NewClient(radix.ClientConfig{
		Network:    network,
		BaseURL:    cfg.Gateway.BaseURL,
		Timeout:    time.Duration(cfg.Gateway.Timeout) * time.Second,
		RateLimit:  cfg.Gateway.RateLimit,
		MaxRetries: cfg.Gateway.MaxRetries,
		RetryWait:  time.Duration(cfg.Gateway.RetryWaitMs) * time.Millisecond,
		UserAgent:  cfg.Gateway.UserAgent,
	}, logger)
	if err != nil {
		return nil, errors.Wrap(err, "create gateway client")
	}

	svc := service.NewRadixMemeService(client, model.GatewayConfig{
		Network:          network,
		ComponentAddress: componentAddress,
	}, xrdAddress, logger, service.WithMaxConcurrency(cfg.Gateway.MaxConcurrency))

	return &Core{
		cfg:     cfg,
		tl:      logger,
		client:  client,
		service: svc,
		metrics: monitor.NewMetricsServer(cfg.Monitor, logger),
	}, nil
}

func (c *Core) Service() *service.RadixMemeService {
	return c.service
}

func (c *Core) Client() *radix.Client {
	return c.client
}

// Start 启动指标服务 (如果开启)
func (c *Core) Start() {
	c.metrics.Run()
}

// Stop 释放 gateway 连接并关闭指标服务
func (c *Core) Stop(ctx context.Context) {
	if err := c.metrics.Stop(ctx); err != nil {
		c.tl.Warn("Failed to stop metrics server", zap.Error(err))
	}
	if err := c.client.Close(); err != nil {
		c.tl.Warn("Failed to close gateway client", zap.Error(err))
	}
}
