package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger   = zap.NewNop()
	logLevel = zap.NewAtomicLevel()
)

// Config 日志输出配置
type Config struct {
	Dir        string // 日志文件目录, 为空时只输出到控制台
	MaxSizeMB  int    // 单个文件大小
	MaxBackups int
	MaxAgeDays int
}

// NewLogger 创建默认 logger, 写入 logs/<serviceName>.log 并输出到 stderr
func NewLogger(serviceName string) *zap.Logger {
	return NewLoggerWithConfig(serviceName, Config{Dir: "logs"})
}

func NewLoggerWithConfig(serviceName string, cfg Config) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.LevelKey = "level"
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(encoderConfig)

	// stdout 留给命令输出
	consoleCore := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), zapcore.Lock(os.Stderr), logLevel)
	cores := []zapcore.Core{consoleCore}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			panic(err)
		}
		// 使用lumberjack进行日志轮转
		var writer io.Writer = &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, serviceName+".log"),
			MaxSize:    orDefault(cfg.MaxSizeMB, 100), // megabytes
			MaxBackups: orDefault(cfg.MaxBackups, 7),
			MaxAge:     orDefault(cfg.MaxAgeDays, 7), // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.AddSync(writer), logLevel))
	}

	logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller()).With(zap.String("service", serviceName))
	return logger
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// SetLogLevel 动态调整日志级别, 非法级别忽略
func SetLogLevel(level string) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return
	}
	logLevel.SetLevel(zapLevel)
	logger.Info("Log level set to", zap.String("level", level))
}

func WithTrace(ctx context.Context, logger *zap.Logger) *zap.Logger {
	span := trace.SpanFromContext(ctx)
	sc := span.SpanContext()

	return logger.With(
		zap.String("trace_id", sc.TraceID().String()),
		zap.String("span_id", sc.SpanID().String()),
	)
}
