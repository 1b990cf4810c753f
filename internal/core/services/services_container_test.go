package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	portsrepo "github.com/SscSPs/customer_payment_service/internal/core/ports/repositories"
	"github.com/SscSPs/customer_payment_service/internal/core/services"
	"github.com/SscSPs/customer_payment_service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// The container exposes only the orchestrator and the resolver; the guard runs behind the orchestrator.
func TestNewServiceContainer(t *testing.T) {
	ledger := new(MockPaymentRepository)
	customers := new(MockCustomerDirectory)
	contracts := new(MockContractDirectory)
	ctx := context.Background()
	paidOn := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)

	container := services.NewServiceContainer(portsrepo.RepositoryProvider{PaymentRepo: ledger}, customers, contracts, nil)
	require.NotNil(t, container.Payment)
	require.NotNil(t, container.Balance)

	ledger.On("TotalPaid", mock.Anything, int64(10)).Return(dec("250"), nil).Once()
	paid, err := container.Balance.TotalPaid(ctx, 10)
	require.NoError(t, err)
	assert.True(t, dec("250").Equal(paid))

	existing := domain.LegacyPayment{
		PaymentID: "p-rent", ContractID: 10, Amount: dec("500"),
		PaymentDate: paidOn, PaymentMethod: domain.Cash, Note: "rent",
	}.ToPayment()
	ledger.On("FindDuplicateCandidates", mock.Anything, int64(10), decEq("500"), paidOn, domain.Cash).Return([]domain.Payment{existing}, nil).Once()

	_, err = container.Payment.CreatePayment(ctx, dto.CreatePaymentRequest{
		CustomerID:    7,
		ContractID:    10,
		PaymentAmount: dec("500"),
		PaymentMethod: domain.Cash,
		PaymentDate:   &paidOn,
		Note:          "rent",
	}, "", "cashier-1")
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	customers.AssertNotCalled(t, "CustomerExists", mock.Anything, mock.Anything)
}
