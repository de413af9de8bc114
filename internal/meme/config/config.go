package config

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"radix-meme/pkg/logger"
)

// Config 定义整个配置的结构
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Radix   RadixConfig   `mapstructure:"radix"`
	Gateway GatewayConfig `mapstructure:"gateway"`
	Monitor MonitorConfig `mapstructure:"monitor"`
}

// LogConfig Log 日志配置
type LogConfig struct {
	Level string `mapstructure:"level"`
	Dir   string `mapstructure:"dir"`
}

// RadixConfig 目标网络与协议地址
type RadixConfig struct {
	Network          string `mapstructure:"network"`           // mainnet | stokenet
	Deployment       string `mapstructure:"deployment"`        // 地址簿中的部署版本, 默认 latest
	ComponentAddress string `mapstructure:"component_address"` // 为空时从地址簿取
	XrdAddress       string `mapstructure:"xrd_address"`       // 为空时使用网络默认 XRD 地址
}

// GatewayConfig Gateway HTTP 客户端配置
type GatewayConfig struct {
	BaseURL        string `mapstructure:"base_url"` // 覆盖网络默认地址
	Timeout        int    `mapstructure:"timeout"`  // 秒
	RateLimit      int    `mapstructure:"rate_limit"`
	MaxRetries     int    `mapstructure:"max_retries"`
	RetryWaitMs    int    `mapstructure:"retry_wait_ms"`
	UserAgent      string `mapstructure:"user_agent"`
	MaxConcurrency int    `mapstructure:"max_concurrency"` // 批量获取 token 的并发数
}

type MonitorConfig struct {
	Enable         bool   `mapstructure:"enable"`
	PrometheusAddr string `mapstructure:"prometheus_addr"`
}

var defaults = map[string]any{
	"log.level":               "info",
	"log.dir":                 "logs",
	"radix.network":           "stokenet",
	"radix.deployment":        "latest",
	"radix.component_address": "",
	"radix.xrd_address":       "",
	"gateway.base_url":        "",
	"gateway.timeout":         10,
	"gateway.rate_limit":      0,
	"gateway.max_retries":     1,
	"gateway.retry_wait_ms":   0,
	"gateway.user_agent":      "radix-meme",
	"gateway.max_concurrency": 16,
	"monitor.enable":          false,
	"monitor.prometheus_addr": "",
}

// NewViper 创建带默认值和环境变量映射的 viper 实例.
// 环境变量形如 RADIX_NETWORK, GATEWAY_BASE_URL; XRD 地址额外兼容 XRD_ADDRESS 与 NEXT_PUBLIC_XRD_ADDRESS.
func NewViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("radix.xrd_address", "RADIX_XRD_ADDRESS", "XRD_ADDRESS", "NEXT_PUBLIC_XRD_ADDRESS")
	return v
}

// LoadConfig 读取配置文件 (可选) 与环境变量. configFile 为空时在 ./config/ 下查找 config.radixmeme.yaml,
// 找不到文件时只使用默认值和环境变量.
func LoadConfig(v *viper.Viper, configFile string) (Config, error) {
	var config Config

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config.radixmeme")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return config, errors.Wrap(err, "read config file")
		}
	}

	if err := decode(v, &config); err != nil {
		return config, err
	}
	return config, nil
}

func decode(v *viper.Viper, out *Config) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Wrap(err, "create config decoder")
	}
	if err := decoder.Decode(v.AllSettings()); err != nil {
		return errors.Wrap(err, "decode config")
	}
	return nil
}

// InitConfig 加载配置, 失败直接 panic
func InitConfig(v *viper.Viper, configFile string) Config {
	config, err := LoadConfig(v, configFile)
	if err != nil {
		panic(fmt.Errorf("fatal error config file: %s", err))
	}
	return config
}

// WatchConfig 热加载配置文件. 只有日志级别在运行期生效, 网络与地址在构造后不可变.
func WatchConfig(v *viper.Viper, config *Config) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		var newConfig Config
		if err := decode(v, &newConfig); err != nil {
			return
		}
		config.Log = newConfig.Log
		logger.SetLogLevel(config.Log.Level)
	})
	v.WatchConfig()
}
