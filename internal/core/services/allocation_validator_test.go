package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	portssvc "github.com/SscSPs/customer_payment_service/internal/core/ports/services"
	"github.com/SscSPs/customer_payment_service/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AllocationValidatorTestSuite struct {
	suite.Suite
	ledger    *MockPaymentRepository
	customers *MockCustomerDirectory
	contracts *MockContractDirectory
	resolver  portssvc.BalanceResolverSvc
	validator portssvc.AllocationValidatorSvc
	ctx       context.Context
}

func (s *AllocationValidatorTestSuite) SetupTest() {
	s.ledger = new(MockPaymentRepository)
	s.customers = new(MockCustomerDirectory)
	s.contracts = new(MockContractDirectory)
	s.resolver = services.NewBalanceResolver(s.ledger, s.contracts)
	s.validator = services.NewAllocationValidator(s.customers, s.resolver)
	s.ctx = context.Background()
}

func TestAllocationValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(AllocationValidatorTestSuite))
}

func (s *AllocationValidatorTestSuite) givenContract(id int64, totalValue, paid string, status domain.ContractStatus) {
	s.contracts.On("GetContract", mock.Anything, id).Return(&domain.Contract{
		ContractID:   id,
		ContractCode: fmt.Sprintf("CC%d", id),
		CustomerID:   7,
		TotalValue:   dec(totalValue),
		Status:       status,
	}, nil)
	s.ledger.On("TotalPaid", mock.Anything, id).Return(dec(paid), nil)
}

func request(total string, lines ...domain.RequestedLine) domain.AllocationRequest {
	return domain.AllocationRequest{CustomerID: 7, TotalAmount: dec(total), Lines: lines}
}

func line(contractID int64, amount string) domain.RequestedLine {
	return domain.RequestedLine{ContractID: contractID, Amount: dec(amount)}
}

func (s *AllocationValidatorTestSuite) TestAmountRules() {
	cases := []struct {
		name string
		req  domain.AllocationRequest
	}{
		{"zero total", request("0", line(10, "0"))},
		{"negative total", request("-5", line(10, "-5"))},
		{"no lines", request("100")},
		{"zero line", request("100", line(10, "100"), line(11, "0"))},
		{"sum off by more than a cent", request("1000", line(10, "600"), line(11, "399.98"))},
		{"line finer than storage scale", request("100.00001", line(10, "100"), line(11, "0.00001"))},
		{"line rounded by storage", request("100.00005", line(10, "100.00005"))},
		{"total finer than storage scale", request("100.000001", line(10, "100"))},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.validator.ValidateMulti(s.ctx, tc.req)
			s.ErrorIs(err, apperrors.ErrInvalidAmount)
		})
	}
	// Amount rules never reach the collaborators.
	s.customers.AssertNotCalled(s.T(), "CustomerExists", mock.Anything, mock.Anything)
}

func (s *AllocationValidatorTestSuite) TestSumWithinTolerance() {
	s.customers.On("CustomerExists", mock.Anything, int64(7)).Return(true, nil).Once()
	s.givenContract(10, "1000", "0", domain.ContractActive)
	s.givenContract(11, "1000", "0", domain.ContractPending)

	validated, err := s.validator.ValidateMulti(s.ctx, request("1000", line(10, "600"), line(11, "399.995")))

	s.Require().NoError(err)
	s.Len(validated.Balances, 2)
	s.True(dec("1000").Equal(validated.Ceilings()[10]))
}

func (s *AllocationValidatorTestSuite) TestCustomerNotFound() {
	s.customers.On("CustomerExists", mock.Anything, int64(7)).Return(false, nil).Once()

	_, err := s.validator.ValidateMulti(s.ctx, request("100", line(10, "100")))

	s.ErrorIs(err, apperrors.ErrCustomerNotFound)
	s.contracts.AssertNotCalled(s.T(), "GetContract", mock.Anything, mock.Anything)
}

func (s *AllocationValidatorTestSuite) TestCustomerServiceDownFailsClosed() {
	s.customers.On("CustomerExists", mock.Anything, int64(7)).Return(false, fmt.Errorf("%w: timeout", apperrors.ErrUnavailable)).Once()

	_, err := s.validator.ValidateMulti(s.ctx, request("100", line(10, "100")))

	s.ErrorIs(err, apperrors.ErrUnavailable)
	s.NotErrorIs(err, apperrors.ErrCustomerNotFound)
}

func (s *AllocationValidatorTestSuite) TestContractNotFound() {
	s.customers.On("CustomerExists", mock.Anything, int64(7)).Return(true, nil).Once()
	s.contracts.On("GetContract", mock.Anything, int64(99)).Return(nil, fmt.Errorf("%w: 99", apperrors.ErrContractNotFound)).Once()

	_, err := s.validator.ValidateMulti(s.ctx, request("100", line(99, "100")))

	s.ErrorIs(err, apperrors.ErrContractNotFound)
}

func (s *AllocationValidatorTestSuite) TestContractNotActive() {
	s.customers.On("CustomerExists", mock.Anything, int64(7)).Return(true, nil).Once()
	s.givenContract(10, "1000", "0", domain.ContractCompleted)

	_, err := s.validator.ValidateMulti(s.ctx, request("100", line(10, "100")))

	s.ErrorIs(err, apperrors.ErrContractNotActive)
}

func (s *AllocationValidatorTestSuite) TestContractServiceDownFailsClosed() {
	s.customers.On("CustomerExists", mock.Anything, int64(7)).Return(true, nil).Once()
	s.contracts.On("GetContract", mock.Anything, int64(10)).Return(nil, fmt.Errorf("%w: connection refused", apperrors.ErrUnavailable)).Once()

	_, err := s.validator.ValidateMulti(s.ctx, request("100", line(10, "100")))

	s.ErrorIs(err, apperrors.ErrUnavailable)
	s.ledger.AssertNotCalled(s.T(), "TotalPaid", mock.Anything, mock.Anything)
}

// The second line exceeds its own contract's remaining balance.
func (s *AllocationValidatorTestSuite) TestOneLineOverRemaining() {
	s.customers.On("CustomerExists", mock.Anything, int64(7)).Return(true, nil).Once()
	s.givenContract(10, "1000", "0", domain.ContractActive)
	s.givenContract(11, "1000", "700", domain.ContractActive)

	_, err := s.validator.ValidateMulti(s.ctx, request("1000", line(10, "600"), line(11, "400")))

	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.Contains(err.Error(), "contract 11 has 300.00 remaining")
}

// A fully paid contract accepts nothing more.
func (s *AllocationValidatorTestSuite) TestFullyPaidContract() {
	s.customers.On("CustomerExists", mock.Anything, int64(7)).Return(true, nil).Once()
	s.givenContract(10, "1000", "1000", domain.ContractActive)

	_, err := s.validator.ValidateSingle(s.ctx, request("0.01", line(10, "0.01")))

	s.ErrorIs(err, apperrors.ErrInvalidAmount)
}

func (s *AllocationValidatorTestSuite) TestLinesForSameContractAreSummed() {
	s.customers.On("CustomerExists", mock.Anything, int64(7)).Return(true, nil).Once()
	s.givenContract(10, "1000", "500", domain.ContractActive)

	_, err := s.validator.ValidateMulti(s.ctx, request("600", line(10, "300"), line(10, "300")))

	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.contracts.AssertNumberOfCalls(s.T(), "GetContract", 1)
}

func (s *AllocationValidatorTestSuite) TestExactRemainingIsAccepted() {
	s.customers.On("CustomerExists", mock.Anything, int64(7)).Return(true, nil).Once()
	s.givenContract(10, "1000", "400", domain.ContractActive)

	validated, err := s.validator.ValidateSingle(s.ctx, request("600", line(10, "600")))

	s.Require().NoError(err)
	s.True(dec("600").Equal(validated.Balances[10].Remaining))
}

func (s *AllocationValidatorTestSuite) TestValidateSingleRequiresOneLine() {
	_, err := s.validator.ValidateSingle(s.ctx, request("200", line(10, "100"), line(11, "100")))
	s.ErrorIs(err, apperrors.ErrValidation)
}
