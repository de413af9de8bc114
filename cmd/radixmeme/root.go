package main

import (
	"context"
	"io"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"radix-meme/internal/meme"
	"radix-meme/internal/meme/config"
	"radix-meme/pkg/logger"
)

const serviceName = "radixmeme"

type rootOptions struct {
	ConfigFile string

	core          *meme.Core
	tl            *zap.Logger
	span          trace.Span
	shutdownTrace func(context.Context) error
}

func NewRootCommand() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{}
	v := config.NewViper()

	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Query radix meme launch state from the Radix gateway",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd, v)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.ConfigFile, "config", "", "config file, E.g. `./config/config.radixmeme.yaml`")
	flags.String("network", "", "network to query, `mainnet` or `stokenet`")
	flags.String("deployment", "", "known deployment used when no component address is configured, E.g. `latest`, `v1`")
	_ = v.BindPFlag("radix.network", flags.Lookup("network"))
	_ = v.BindPFlag("radix.deployment", flags.Lookup("deployment"))

	root.AddCommand(
		NewStateCommand(opts),
		NewTokensCommand(opts),
		NewTokenCommand(opts),
		NewKvsCommand(opts),
		NewTradesCommand(opts),
		NewTxStatusCommand(opts),
		NewTxDetailCommand(opts),
	)
	return root, opts
}

// execute 运行命令. cobra 在 RunE 出错时不会调用 PostRun, 所以资源释放放在 defer 里
func execute(ctx context.Context, root *cobra.Command, opts *rootOptions) error {
	defer opts.teardown(context.WithoutCancel(ctx))
	return root.ExecuteContext(ctx)
}

func (o *rootOptions) setup(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.LoadConfig(v, o.ConfigFile)
	if err != nil {
		return err
	}

	// 初始化 trace provider
	o.shutdownTrace = logger.InitTrace("radix-meme", serviceName)
	ctx, span := logger.StartSpan(cmd.Context(), "main", cmd.Name())
	o.span = span
	cmd.SetContext(ctx)

	// 创建 root logger 并注入 trace 上下文
	rootLogger := logger.NewLoggerWithConfig(serviceName, logger.Config{Dir: cfg.Log.Dir})
	logger.SetLogLevel(cfg.Log.Level)
	o.tl = logger.WithTrace(ctx, rootLogger)

	// 启动配置热加载监听
	config.WatchConfig(v, &cfg)

	core, err := meme.New(cfg, o.tl)
	if err != nil {
		return errors.Wrap(err, "init radix meme core")
	}
	o.core = core
	o.core.Start()
	return nil
}

// teardown 可重复调用, 只释放 setup 已经创建的部分
func (o *rootOptions) teardown(ctx context.Context) {
	if o.core != nil {
		o.core.Stop(ctx)
		o.core = nil
	}
	if o.span != nil {
		o.span.End()
		o.span = nil
	}
	if o.shutdownTrace != nil {
		_ = o.shutdownTrace(ctx)
		o.shutdownTrace = nil
	}
	if o.tl != nil {
		_ = o.tl.Sync()
		o.tl = nil
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
