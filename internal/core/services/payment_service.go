package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	"github.com/SscSPs/customer_payment_service/internal/core/ports/clients"
	portsrepo "github.com/SscSPs/customer_payment_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/customer_payment_service/internal/core/ports/services"
	"github.com/SscSPs/customer_payment_service/internal/dto"
)

// submissionState is the stage a payment submission has reached. Every transition is logged.
type submissionState string

const (
	stateReceived     submissionState = "RECEIVED"
	stateGuarded      submissionState = "GUARDED"
	stateValidated    submissionState = "VALIDATED"
	statePersisted    submissionState = "PERSISTED"
	stateAcknowledged submissionState = "ACKNOWLEDGED"
)

// paymentService orchestrates submissions and serves the ledger's read models.
type paymentService struct {
	BaseService
	ledger    portsrepo.PaymentRepositoryFacade
	guard     portssvc.DuplicateGuardSvc
	validator portssvc.AllocationValidatorSvc
	balances  portssvc.BalanceResolverSvc
	customers clients.CustomerDirectory
	contracts clients.ContractDirectory
	events    clients.PaymentEventSink
	now       func() time.Time
}

// PaymentServiceOption is a functional option for configuring the payment service
type PaymentServiceOption func(*paymentService)

// WithPaymentEventSink sets the sink notified after a payment is recorded
func WithPaymentEventSink(sink clients.PaymentEventSink) PaymentServiceOption {
	return func(s *paymentService) {
		s.events = sink
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) PaymentServiceOption {
	return func(s *paymentService) {
		s.now = now
	}
}

// NewPaymentService creates a new PaymentSvcFacade.
func NewPaymentService(
	ledger portsrepo.PaymentRepositoryFacade,
	guard portssvc.DuplicateGuardSvc,
	validator portssvc.AllocationValidatorSvc,
	balances portssvc.BalanceResolverSvc,
	customers clients.CustomerDirectory,
	contracts clients.ContractDirectory,
	options ...PaymentServiceOption,
) portssvc.PaymentSvcFacade {
	s := &paymentService{
		ledger:    ledger,
		guard:     guard,
		validator: validator,
		balances:  balances,
		customers: customers,
		contracts: contracts,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func logState(logger *slog.Logger, state submissionState, attrs ...any) {
	logger.Info("Payment submission "+string(state), append([]any{slog.String("state", string(state))}, attrs...)...)
}

// CreatePayment records a single-contract payment as a one-line canonical payment.
func (s *paymentService) CreatePayment(ctx context.Context, req dto.CreatePaymentRequest, idempotencyKey string, userID string) (*domain.Payment, error) {
	logger := s.GetLogger(ctx).With(
		slog.Int64("customer_id", req.CustomerID),
		slog.Int64("contract_id", req.ContractID),
	)
	logState(logger, stateReceived)

	if replay, err := s.replay(ctx, idempotencyKey, req.CustomerID, userID); err != nil || replay != nil {
		return replay, err
	}

	paymentDate := s.paymentDate(req.PaymentDate)
	err := s.guard.CheckDuplicate(ctx, domain.DuplicateCandidate{
		ContractID:    req.ContractID,
		Amount:        req.PaymentAmount,
		PaymentDate:   paymentDate,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	})
	if err != nil {
		return nil, err
	}
	logState(logger, stateGuarded)

	validated, err := s.validator.ValidateSingle(ctx, domain.AllocationRequest{
		CustomerID:  req.CustomerID,
		TotalAmount: req.PaymentAmount,
		Lines:       []domain.RequestedLine{{ContractID: req.ContractID, Amount: req.PaymentAmount}},
	})
	if err != nil {
		logger.Warn("Payment rejected by validation", slog.String("error", err.Error()))
		return nil, err
	}
	logState(logger, stateValidated)

	payment := s.newPayment(validated.Request, paymentDate, req.PaymentMethod, req.Note, idempotencyKey, userID)
	return s.persist(ctx, logger, payment, validated, userID)
}

// CreateMultiContractPayment records a payment split across contracts. Either every line is
// stored or none is.
func (s *paymentService) CreateMultiContractPayment(ctx context.Context, req dto.CreateMultiContractPaymentRequest, idempotencyKey string, userID string) (*domain.Payment, error) {
	logger := s.GetLogger(ctx).With(
		slog.Int64("customer_id", req.CustomerID),
		slog.Int("lines", len(req.ContractPayments)),
	)
	logState(logger, stateReceived)

	if replay, err := s.replay(ctx, idempotencyKey, req.CustomerID, userID); err != nil || replay != nil {
		return replay, err
	}
	// The field heuristic only covers the single-contract shape; the key lookup above is the guard here.
	logState(logger, stateGuarded)

	lines := make([]domain.RequestedLine, len(req.ContractPayments))
	for i, cp := range req.ContractPayments {
		lines[i] = domain.RequestedLine{ContractID: cp.ContractID, Amount: cp.AllocatedAmount}
	}
	validated, err := s.validator.ValidateMulti(ctx, domain.AllocationRequest{
		CustomerID:  req.CustomerID,
		TotalAmount: req.TotalAmount,
		Lines:       lines,
	})
	if err != nil {
		logger.Warn("Payment rejected by validation", slog.String("error", err.Error()))
		return nil, err
	}
	logState(logger, stateValidated)

	payment := s.newPayment(validated.Request, s.paymentDate(req.PaymentDate), req.PaymentMethod, req.Note, idempotencyKey, userID)
	return s.persist(ctx, logger, payment, validated, userID)
}

// persist reserves the lines under the validated ceilings, then commits them.
func (s *paymentService) persist(ctx context.Context, logger *slog.Logger, payment domain.Payment, validated *domain.ValidatedAllocation, userID string) (*domain.Payment, error) {
	if err := s.ledger.ReservePayment(ctx, payment, validated.Ceilings()); err != nil {
		// A concurrent request with the same key won the insert; answer with its payment.
		if errors.Is(err, apperrors.ErrDuplicate) && payment.IdempotencyKey != nil {
			if existing, lookupErr := s.guard.CheckIdempotencyKey(ctx, *payment.IdempotencyKey); lookupErr == nil && existing != nil {
				return s.resume(ctx, logger, *existing, payment.CustomerID, userID)
			}
		}
		logger.Error("Failed to reserve payment", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if err := s.commit(ctx, &payment, userID); err != nil {
		logger.Error("Failed to commit payment", slog.String("payment_id", payment.PaymentID), slog.String("error", err.Error()))
		return nil, err
	}
	logState(logger, statePersisted, slog.String("payment_id", payment.PaymentID))

	if s.events != nil {
		s.events.PaymentRecorded(ctx, userID, payment)
	}

	logState(logger, stateAcknowledged, slog.String("payment_id", payment.PaymentID))
	return &payment, nil
}

// replay answers a resubmission carrying a key the ledger already holds.
func (s *paymentService) replay(ctx context.Context, idempotencyKey string, customerID int64, userID string) (*domain.Payment, error) {
	existing, err := s.guard.CheckIdempotencyKey(ctx, idempotencyKey)
	if err != nil || existing == nil {
		return nil, err
	}
	return s.resume(ctx, s.GetLogger(ctx), *existing, customerID, userID)
}

// resume commits a payment whose earlier submission stopped after reserving. A key only
// replays for the customer that first used it.
func (s *paymentService) resume(ctx context.Context, logger *slog.Logger, existing domain.Payment, customerID int64, userID string) (*domain.Payment, error) {
	logger = logger.With(slog.String("payment_id", existing.PaymentID))
	if existing.CustomerID != customerID {
		logger.Warn("Idempotency key reused for another customer",
			slog.Int64("key_customer_id", existing.CustomerID), slog.Int64("customer_id", customerID))
		return nil, fmt.Errorf("%w: idempotency key already used by another customer", apperrors.ErrValidation)
	}
	if existing.IsPending() {
		if err := s.commit(ctx, &existing, userID); err != nil {
			logger.Error("Failed to resume reserved payment", slog.String("error", err.Error()))
			return nil, err
		}
		logger.Info("Reserved payment resumed and committed")
	}
	logState(logger, stateAcknowledged, slog.Bool("replay", true))
	return &existing, nil
}

func (s *paymentService) commit(ctx context.Context, payment *domain.Payment, userID string) error {
	if err := s.ledger.CommitAllocations(ctx, payment.PaymentID, userID, s.now()); err != nil {
		return fmt.Errorf("failed to commit payment %s: %w", payment.PaymentID, err)
	}
	// The reserved lines may still be referenced by the caller.
	payment.Allocations = slices.Clone(payment.Allocations)
	for i := range payment.Allocations {
		if payment.Allocations[i].State == domain.Reserved {
			_ = payment.Allocations[i].Transition(domain.Committed)
		}
	}
	return nil
}

func (s *paymentService) paymentDate(requested *time.Time) time.Time {
	if requested == nil || requested.IsZero() {
		return s.now()
	}
	return requested.UTC()
}

func (s *paymentService) newPayment(req domain.AllocationRequest, paymentDate time.Time, method domain.PaymentMethod, note string, idempotencyKey string, userID string) domain.Payment {
	now := s.now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}

	paymentID := uuid.NewString()
	allocations := make([]domain.Allocation, len(req.Lines))
	for i, l := range req.Lines {
		allocations[i] = domain.Allocation{
			AllocationID: uuid.NewString(),
			PaymentID:    paymentID,
			ContractID:   l.ContractID,
			Amount:       l.Amount,
			State:        domain.Reserved,
			AuditFields:  audit,
		}
	}

	var key *string
	if idempotencyKey != "" {
		key = &idempotencyKey
	}

	return domain.Payment{
		PaymentID:      paymentID,
		CustomerID:     req.CustomerID,
		PaymentDate:    paymentDate,
		PaymentMethod:  method,
		TotalAmount:    req.TotalAmount,
		Note:           note,
		IdempotencyKey: key,
		Allocations:    allocations,
		AuditFields:    audit,
	}
}

// ReleaseStaleReservations releases reservations older than maxAge.
func (s *paymentService) ReleaseStaleReservations(ctx context.Context, maxAge time.Duration, userID string) (int, error) {
	if maxAge <= 0 {
		return 0, fmt.Errorf("%w: reservation age must be positive, got %s", apperrors.ErrValidation, maxAge)
	}
	cutoff := s.now().Add(-maxAge)
	released, err := s.ledger.ReleaseStaleReservations(ctx, cutoff, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to release stale reservations")
		return 0, fmt.Errorf("failed to release stale reservations: %w", err)
	}
	s.LogInfo(ctx, "Stale reservations released", slog.Int("payments", released), slog.Time("cutoff", cutoff))
	return released, nil
}

func (s *paymentService) VoidPayment(ctx context.Context, paymentID string, userID string) error {
	if err := s.ledger.SoftDeletePayment(ctx, paymentID, userID, s.now()); err != nil {
		return fmt.Errorf("failed to void payment %s: %w", paymentID, err)
	}
	s.LogInfo(ctx, "Payment voided", slog.String("payment_id", paymentID), slog.String("user_id", userID))
	return nil
}

func (s *paymentService) GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.ledger.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment %s: %w", paymentID, err)
	}
	return payment, nil
}

func (s *paymentService) ListPayments(ctx context.Context, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	payments, nextToken, err := s.ledger.ListPayments(ctx, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payments")
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return &dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments),
		NextToken: nextToken,
	}, nil
}

func (s *paymentService) ListPaymentsByCustomer(ctx context.Context, customerID int64, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	payments, nextToken, err := s.ledger.ListPaymentsByCustomer(ctx, customerID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customer payments", slog.Int64("customer_id", customerID))
		return nil, fmt.Errorf("failed to list payments of customer %d: %w", customerID, err)
	}
	return &dto.ListPaymentsResponse{
		Payments:  dto.ToPaymentResponses(payments),
		NextToken: nextToken,
	}, nil
}

func (s *paymentService) ListPaymentsByContract(ctx context.Context, contractID int64) ([]domain.Payment, error) {
	if err := s.requireContract(ctx, contractID); err != nil {
		return nil, err
	}
	payments, err := s.ledger.ListPaymentsByContract(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments of contract %d: %w", contractID, err)
	}
	return payments, nil
}

func (s *paymentService) ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.Allocation, error) {
	lines, err := s.ledger.ListAllocationsByPayment(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations of payment %s: %w", paymentID, err)
	}
	return lines, nil
}

func (s *paymentService) ListAllocationsByContract(ctx context.Context, contractID int64) ([]domain.Allocation, error) {
	if err := s.requireContract(ctx, contractID); err != nil {
		return nil, err
	}
	lines, err := s.ledger.ListAllocationsByContract(ctx, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations of contract %d: %w", contractID, err)
	}
	return lines, nil
}

// requireContract turns an unknown contract into ErrContractNotFound instead of an empty list.
func (s *paymentService) requireContract(ctx context.Context, contractID int64) error {
	exists, err := s.contracts.ContractExists(ctx, contractID)
	if err != nil {
		return fmt.Errorf("failed to verify contract %d: %w", contractID, err)
	}
	if !exists {
		return fmt.Errorf("%w: %d", apperrors.ErrContractNotFound, contractID)
	}
	return nil
}

// GetContractPaymentInfo fails closed on the contract and open on the customer's name.
func (s *paymentService) GetContractPaymentInfo(ctx context.Context, contractID int64) (*domain.ContractPaymentInfo, error) {
	balance, err := s.balances.Snapshot(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return &domain.ContractPaymentInfo{
		ContractBalance: *balance,
		CustomerName:    s.customerName(ctx, balance.CustomerID),
	}, nil
}

func (s *paymentService) customerName(ctx context.Context, customerID int64) string {
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		s.GetLogger(ctx).Warn("Customer name unavailable, using placeholder",
			slog.Int64("customer_id", customerID), slog.String("error", err.Error()))
		return domain.UnknownCustomerName
	}
	switch {
	case customer.FullName != "":
		return customer.FullName
	case customer.CompanyName != "":
		return customer.CompanyName
	default:
		return domain.UnknownCustomerName
	}
}

// ListActiveContractsByCustomer returns the customer's contracts that still accept payments.
func (s *paymentService) ListActiveContractsByCustomer(ctx context.Context, customerID int64) ([]domain.ContractBalance, error) {
	contracts, err := s.contracts.ListContractsByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts of customer %d: %w", customerID, err)
	}

	active := make([]domain.ContractBalance, 0, len(contracts))
	for _, c := range contracts {
		if !c.Status.AcceptsPayments() {
			continue
		}
		paid, err := s.balances.TotalPaid(ctx, c.ContractID)
		if err != nil {
			return nil, err
		}
		active = append(active, domain.NewContractBalance(c, paid))
	}
	return active, nil
}
