package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that a payment looks like a repeat of one already recorded.
var ErrDuplicate = errors.New("duplicate payment")

// ErrInvalidAmount covers non-positive amounts, allocation/total mismatches and
// allocations exceeding a contract's remaining balance.
var ErrInvalidAmount = errors.New("invalid payment amount")

// ErrContractNotActive indicates the contract status does not accept payments.
var ErrContractNotActive = errors.New("contract is not active")

// ErrCustomerNotFound indicates the customer service does not know the customer.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrContractNotFound indicates the contract service does not know the contract.
var ErrContractNotFound = errors.New("contract not found")

// ErrTransient indicates a write conflict (serialization failure) the caller may resubmit.
var ErrTransient = errors.New("transient conflict, please retry")

// ErrUnavailable indicates a collaborator could not be reached. Gating reads fail closed on it.
var ErrUnavailable = errors.New("dependent service unavailable")

// ErrInternal is the catch-all for unclassified failures.
var ErrInternal = errors.New("internal error")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Error codes returned in the {code, message} body.
const (
	CodeUnknown           = 999
	CodeNotFound          = 1000
	CodeValidation        = 1001
	CodeDuplicate         = 1004
	CodeInvalidAmount     = 1005
	CodeContractNotActive = 1006
	CodeCustomerNotFound  = 1007
	CodeContractNotFound  = 1008
	CodeTransient         = 1009
)

// AppError carries an HTTP-ish status code and message alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError wrapping ErrNotFound for the named resource.
func NewNotFoundError(resource string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: resource + " not found", Err: ErrNotFound}
}

type classification struct {
	target error
	code   int
	status int
}

// Ordered: the more specific kinds come before ErrNotFound, which several of them do not wrap
// but callers might.
var classifications = []classification{
	{ErrCustomerNotFound, CodeCustomerNotFound, http.StatusNotFound},
	{ErrContractNotFound, CodeContractNotFound, http.StatusNotFound},
	{ErrNotFound, CodeNotFound, http.StatusNotFound},
	{ErrDuplicate, CodeDuplicate, http.StatusConflict},
	{ErrInvalidAmount, CodeInvalidAmount, http.StatusBadRequest},
	{ErrContractNotActive, CodeContractNotActive, http.StatusBadRequest},
	{ErrValidation, CodeValidation, http.StatusBadRequest},
	{ErrTransient, CodeTransient, http.StatusServiceUnavailable},
	{ErrUnauthorized, CodeUnknown, http.StatusUnauthorized},
}

// Classify maps an error onto its response code and HTTP status.
// Anything unrecognised, including ErrUnavailable, is Unknown/500.
func Classify(err error) (code int, status int) {
	for _, c := range classifications {
		if errors.Is(err, c.target) {
			return c.code, c.status
		}
	}
	return CodeUnknown, http.StatusInternalServerError
}
