package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/SscSPs/customer_payment_service/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func existingRent() domain.Payment {
	return domain.LegacyPayment{
		PaymentID:     "p-rent",
		CustomerID:    7,
		ContractID:    10,
		Amount:        dec("500.0"),
		PaymentDate:   time.Date(2024, 1, 5, 8, 0, 0, 0, time.UTC),
		PaymentMethod: domain.BankTransfer,
		Note:          "rent",
	}.ToPayment()
}

func rentCandidate() domain.DuplicateCandidate {
	return domain.DuplicateCandidate{
		ContractID:    10,
		Amount:        dec("500"),
		PaymentDate:   time.Date(2024, 1, 5, 17, 30, 0, 0, time.UTC),
		PaymentMethod: domain.BankTransfer,
		Note:          "rent",
	}
}

func TestCheckDuplicate_IdenticalSubmissionRejected(t *testing.T) {
	ledger := new(MockPaymentRepository)
	ledger.On("FindDuplicateCandidates", mock.Anything, int64(10), decEq("500"), mock.Anything, domain.BankTransfer).
		Return([]domain.Payment{existingRent()}, nil).Once()
	guard := services.NewDuplicateGuard(ledger)

	err := guard.CheckDuplicate(context.Background(), rentCandidate())

	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	assert.Contains(t, err.Error(), "p-rent")
	ledger.AssertExpectations(t)
}

func TestCheckDuplicate_AnyDifferingFieldPasses(t *testing.T) {
	cases := map[string]func(c *domain.DuplicateCandidate){
		"note":   func(c *domain.DuplicateCandidate) { c.Note = "rent-2" },
		"day":    func(c *domain.DuplicateCandidate) { c.PaymentDate = c.PaymentDate.AddDate(0, 0, 1) },
		"method": func(c *domain.DuplicateCandidate) { c.PaymentMethod = domain.Cash },
		"amount": func(c *domain.DuplicateCandidate) { c.Amount = dec("499.99") },
	}
	for name, change := range cases {
		t.Run(name, func(t *testing.T) {
			ledger := new(MockPaymentRepository)
			// The ledger filter is coarse on purpose here; the guard must still compare every field.
			ledger.On("FindDuplicateCandidates", mock.Anything, int64(10), mock.Anything, mock.Anything, mock.Anything).
				Return([]domain.Payment{existingRent()}, nil).Once()
			guard := services.NewDuplicateGuard(ledger)

			c := rentCandidate()
			change(&c)
			assert.NoError(t, guard.CheckDuplicate(context.Background(), c))
		})
	}
}

func TestCheckDuplicate_LedgerErrorPropagates(t *testing.T) {
	ledger := new(MockPaymentRepository)
	ledger.On("FindDuplicateCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError).Once()
	guard := services.NewDuplicateGuard(ledger)

	err := guard.CheckDuplicate(context.Background(), rentCandidate())

	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestCheckIdempotencyKey(t *testing.T) {
	ledger := new(MockPaymentRepository)
	guard := services.NewDuplicateGuard(ledger)
	ctx := context.Background()

	p, err := guard.CheckIdempotencyKey(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, p)
	ledger.AssertNotCalled(t, "FindPaymentByIdempotencyKey", mock.Anything, mock.Anything)

	ledger.On("FindPaymentByIdempotencyKey", mock.Anything, "unused").Return(nil, apperrors.NewNotFoundError("payment")).Once()
	p, err = guard.CheckIdempotencyKey(ctx, "unused")
	require.NoError(t, err)
	assert.Nil(t, p)

	existing := existingRent()
	ledger.On("FindPaymentByIdempotencyKey", mock.Anything, "k-1").Return(&existing, nil).Once()
	p, err = guard.CheckIdempotencyKey(ctx, "k-1")
	require.NoError(t, err)
	assert.Equal(t, "p-rent", p.PaymentID)

	ledger.On("FindPaymentByIdempotencyKey", mock.Anything, "k-2").Return(nil, assert.AnError).Once()
	_, err = guard.CheckIdempotencyKey(ctx, "k-2")
	assert.ErrorIs(t, err, assert.AnError)
}
