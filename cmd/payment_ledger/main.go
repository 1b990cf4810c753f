package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/customer_payment_service/internal/platform/config"
	"github.com/spf13/cobra"
)

var Version = "dev"

// @title Customer Payment Ledger API
// @version 1.0
// @description Records customer payments against contracts and answers how much of each contract is paid.

// @host localhost:8086
// @BasePath /api/customer-payment

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	rootCmd := &cobra.Command{
		Use:           "payment_ledger",
		Short:         "Customer payment ledger service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(reconcileCmd())
	rootCmd.AddCommand(voidCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap initializes the structured logger and loads configuration. Every command starts here.
func bootstrap() (*slog.Logger, *config.Config, error) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		return nil, nil, err
	}
	return logger, cfg, nil
}
