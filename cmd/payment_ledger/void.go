package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func voidCmd() *cobra.Command {
	var operator string
	cmd := &cobra.Command{
		Use:   "void [payment-id]",
		Short: "Soft-delete a payment and its allocation lines",
		Long: `Mark a payment and every one of its lines deleted. Voided lines no longer count
toward any contract's total paid.

Examples:
  payment_ledger void 6f1c2a9e-0d7b-4c1e-9a55-2f6b8c1d3e47 --by ops-jane`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, err := bootstrap()
			if err != nil {
				return err
			}

			svc, dbPool, err := openServices(cmd.Context(), cfg, logger, nil)
			if err != nil {
				return err
			}
			defer dbPool.Close()

			if err := svc.Payment.VoidPayment(cmd.Context(), args[0], operator); err != nil {
				logger.Error("Void failed", slog.String("payment_id", args[0]), slog.String("error", err.Error()))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Voided payment %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&operator, "by", "", "operator recorded as the one who voided the payment")
	_ = cmd.MarkFlagRequired("by")
	return cmd
}
