package main

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"radix-meme/internal/meme/service"
	"radix-meme/pkg/radix"
)

func NewStateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the registry component state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, err := opts.core.Service().GetMainComponentState(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), state)
		},
	}
}

func NewTokensCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "List every token of the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tokens, err := opts.core.Service().GetAllTokens(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), tokens)
		},
	}
}

func NewTokenCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token <component-address>",
		Short: "Show one token by its sale component address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := opts.core.Service().GetToken(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), token)
		},
	}
}

func NewKvsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "kvs [kvs-address]",
		Short: "List token component addresses, from the registry token store by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := opts.core.Service()
			var kvsAddress string
			if len(args) == 1 {
				kvsAddress = args[0]
			} else {
				state, err := svc.GetMainComponentState(cmd.Context())
				if err != nil {
					return err
				}
				kvsAddress = state.TokensKvs
			}
			return writeJSON(cmd.OutOrStdout(), svc.GetAllTokenComponentAddresses(cmd.Context(), kvsAddress))
		},
	}
}

type tradesCmdOptions struct {
	Limit int
}

func NewTradesCommand(opts *rootOptions) *cobra.Command {
	tradesOpts := &tradesCmdOptions{}

	cmd := &cobra.Command{
		Use:   "trades",
		Short: "Show trade events of the latest transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			latest, err := opts.core.Service().GetLatestRadixMemeTransactions(cmd.Context(), tradesOpts.Limit)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), latest)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&tradesOpts.Limit, "limit", service.DefaultLatestTransactionsLimit, "number of latest transactions to scan")

	return cmd
}

func NewTxStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tx-status <intent-hash>",
		Short: "Show the status of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeDecoded[radix.TransactionStatusResponse](cmd, opts.core.Client().GetTransactionStatus(cmd.Context(), args[0]))
		},
	}
}

func NewTxDetailCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tx-detail <intent-hash>",
		Short: "Show committed details of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeDecoded[radix.TransactionCommittedDetailsResponse](cmd, opts.core.Client().GetTransactionDetail(cmd.Context(), args[0]))
		},
	}
}

// writeDecoded 成功时输出解析后的响应; 失败或无法解析时输出原始 ApiResult, 命令以错误退出
func writeDecoded[T any](cmd *cobra.Command, result radix.ApiResult) error {
	if !result.IsSuccess() {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		return errors.Newf("gateway request failed: %s: %s", result.Kind(), result.Message)
	}

	var resp T
	if err := result.Decode(&resp); err != nil {
		if werr := writeJSON(cmd.OutOrStdout(), result); werr != nil {
			return werr
		}
		return err
	}
	return writeJSON(cmd.OutOrStdout(), resp)
}
