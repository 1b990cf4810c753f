package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
)

func reconcileCmd() *cobra.Command {
	var olderThan time.Duration
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Release allocation reservations that never committed",
		Long: `Release RESERVED allocation lines older than --older-than so their amount stops
counting against the contract's remaining balance. Defaults to RESERVATION_TTL.

Examples:
  payment_ledger reconcile
  payment_ledger reconcile --older-than 1h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, err := bootstrap()
			if err != nil {
				return err
			}
			if olderThan == 0 {
				olderThan = cfg.ReservationTTL
			}

			svc, dbPool, err := openServices(cmd.Context(), cfg, logger, nil)
			if err != nil {
				return err
			}
			defer dbPool.Close()

			released, err := svc.Payment.ReleaseStaleReservations(cmd.Context(), olderThan, domain.SystemUser)
			if err != nil {
				logger.Error("Reconcile failed", slog.String("error", err.Error()))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Released %d stale reservation(s) older than %s\n", released, olderThan)
			return nil
		},
	}
	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "release reservations older than this (default RESERVATION_TTL)")
	return cmd
}
