package services

import (
	"github.com/SscSPs/customer_payment_service/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/customer_payment_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/customer_payment_service/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, customers clients.CustomerDirectory, contracts clients.ContractDirectory, events clients.PaymentEventSink) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Resolver first: the validator and the orchestrator both read balances through it
	container.Balance = NewBalanceResolver(repos.PaymentRepo, contracts)
	guard := NewDuplicateGuard(repos.PaymentRepo)
	validator := NewAllocationValidator(customers, container.Balance)

	options := []PaymentServiceOption{}
	if events != nil {
		options = append(options, WithPaymentEventSink(events))
	}
	container.Payment = NewPaymentService(
		repos.PaymentRepo,
		guard,
		validator,
		container.Balance,
		customers,
		contracts,
		options...,
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.PaymentSvcFacade       = (*paymentService)(nil)
	_ portssvc.BalanceResolverSvc     = (*balanceResolver)(nil)
	_ portssvc.DuplicateGuardSvc      = (*duplicateGuard)(nil)
	_ portssvc.AllocationValidatorSvc = (*allocationValidator)(nil)
)
