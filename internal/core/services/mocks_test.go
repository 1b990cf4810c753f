package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/SscSPs/customer_payment_service/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/customer_payment_service/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

// Ensure MockPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Payment), returnedNextToken, args.Error(2)
}

func (m *MockPaymentRepository) ListPaymentsByCustomer(ctx context.Context, customerID int64, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, customerID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Payment), returnedNextToken, args.Error(2)
}

func (m *MockPaymentRepository) ListPaymentsByContract(ctx context.Context, contractID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindDuplicateCandidates(ctx context.Context, contractID int64, amount decimal.Decimal, day time.Time, method domain.PaymentMethod) ([]domain.Payment, error) {
	args := m.Called(ctx, contractID, amount, day, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.Allocation, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockPaymentRepository) ListAllocationsByContract(ctx context.Context, contractID int64) ([]domain.Allocation, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Allocation), args.Error(1)
}

func (m *MockPaymentRepository) TotalPaid(ctx context.Context, contractID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, contractID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) ReservePayment(ctx context.Context, payment domain.Payment, ceilings map[int64]decimal.Decimal) error {
	return m.Called(ctx, payment, ceilings).Error(0)
}

func (m *MockPaymentRepository) CommitAllocations(ctx context.Context, paymentID string, userID string, at time.Time) error {
	return m.Called(ctx, paymentID, userID, at).Error(0)
}

func (m *MockPaymentRepository) ReleaseStaleReservations(ctx context.Context, olderThan time.Time, userID string) (int, error) {
	args := m.Called(ctx, olderThan, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) SoftDeletePayment(ctx context.Context, paymentID string, userID string, at time.Time) error {
	return m.Called(ctx, paymentID, userID, at).Error(0)
}

// --- Mock collaborators ---
type MockCustomerDirectory struct {
	mock.Mock
}

var _ clients.CustomerDirectory = (*MockCustomerDirectory)(nil)

func (m *MockCustomerDirectory) CustomerExists(ctx context.Context, customerID int64) (bool, error) {
	args := m.Called(ctx, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerDirectory) GetCustomer(ctx context.Context, customerID int64) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

type MockContractDirectory struct {
	mock.Mock
}

var _ clients.ContractDirectory = (*MockContractDirectory)(nil)

func (m *MockContractDirectory) GetContract(ctx context.Context, contractID int64) (*domain.Contract, error) {
	args := m.Called(ctx, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractDirectory) ContractExists(ctx context.Context, contractID int64) (bool, error) {
	args := m.Called(ctx, contractID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContractDirectory) ListContractsByCustomer(ctx context.Context, customerID int64) ([]domain.Contract, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

type MockEventSink struct {
	mock.Mock
}

var _ clients.PaymentEventSink = (*MockEventSink)(nil)

func (m *MockEventSink) PaymentRecorded(ctx context.Context, userID string, p domain.Payment) {
	m.Called(ctx, userID, p)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// decEq matches a decimal argument by value rather than by representation.
func decEq(s string) any {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}
