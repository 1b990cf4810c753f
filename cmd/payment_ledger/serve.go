package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/SscSPs/customer_payment_service/internal/handlers"
	"github.com/SscSPs/customer_payment_service/internal/middleware"
	"github.com/SscSPs/customer_payment_service/internal/platform/server"
	"github.com/SscSPs/customer_payment_service/internal/utils"
	"github.com/SscSPs/customer_payment_service/pkg/database"
)

func serveCmd() *cobra.Command {
	var withMigrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the payment ledger REST API under /api/customer-payment.

Examples:
  payment_ledger serve
  payment_ledger serve --migrate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, err := bootstrap()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if withMigrate {
				if err := runMigrations(cfg, logger); err != nil {
					logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
					return err
				}
			}

			rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
			if err != nil {
				logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
				return err
			}
			if rdb != nil {
				defer rdb.Close()
			}

			createLimiter, err := middleware.NewRateLimiter(cfg.CreateRateLimit, rdb)
			if err != nil {
				return err
			}

			posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
			defer posthogClient.Close()

			svc, dbPool, err := openServices(ctx, cfg, logger, posthogClient)
			if err != nil {
				return err
			}
			defer dbPool.Close()
			logger.Info("Database connection pool established.")

			if cfg.IsProduction {
				gin.SetMode(gin.ReleaseMode)
			}

			r := gin.New()
			r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
			if err := r.SetTrustedProxies(nil); err != nil {
				logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
				return err
			}

			handlers.RegisterRoutes(r, cfg, svc, createLimiter, posthogClient)

			return server.NewServer(logger, cfg.Port, r, cfg.ShutdownTimeout).Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&withMigrate, "migrate", false, "apply pending migrations before serving")
	return cmd
}
