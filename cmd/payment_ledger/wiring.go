package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/customer_payment_service/internal/adapters/rest"
	"github.com/SscSPs/customer_payment_service/internal/core/ports/clients"
	portssvc "github.com/SscSPs/customer_payment_service/internal/core/ports/services"
	"github.com/SscSPs/customer_payment_service/internal/core/services"
	"github.com/SscSPs/customer_payment_service/internal/platform/config"
	"github.com/SscSPs/customer_payment_service/internal/repositories/database/pgsql"
	"github.com/SscSPs/customer_payment_service/pkg/database"
)

// openServices connects to the ledger database and wires the service container with the
// collaborator clients. Callers close the returned pool.
func openServices(ctx context.Context, cfg *config.Config, logger *slog.Logger, events clients.PaymentEventSink) (*portssvc.ServiceContainer, *pgxpool.Pool, error) {
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		return nil, nil, err
	}

	customers := rest.NewCustomerClient(cfg.CustomerServiceURL, cfg.HTTPClientTimeout)
	contracts := rest.NewContractClient(cfg.ContractServiceURL, cfg.HTTPClientTimeout)
	repos := pgsql.NewRepositoryProvider(dbPool)

	return services.NewServiceContainer(repos, customers, contracts, events), dbPool, nil
}
