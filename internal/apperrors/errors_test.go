package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   int
		status int
	}{
		{"not found", ErrNotFound, CodeNotFound, http.StatusNotFound},
		{"wrapped invalid amount", fmt.Errorf("%w: allocation exceeds remaining", ErrInvalidAmount), CodeInvalidAmount, http.StatusBadRequest},
		{"contract not active", ErrContractNotActive, CodeContractNotActive, http.StatusBadRequest},
		{"duplicate", ErrDuplicate, CodeDuplicate, http.StatusConflict},
		{"customer not found", fmt.Errorf("%w: 42", ErrCustomerNotFound), CodeCustomerNotFound, http.StatusNotFound},
		{"contract not found", ErrContractNotFound, CodeContractNotFound, http.StatusNotFound},
		{"transient inside app error", NewAppError(500, "commit failed", ErrTransient), CodeTransient, http.StatusServiceUnavailable},
		{"collaborator outage fails closed as unknown", fmt.Errorf("%w: contract service", ErrUnavailable), CodeUnknown, http.StatusInternalServerError},
		{"plain error", errors.New("boom"), CodeUnknown, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, status := Classify(tc.err)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError(500, "failed to insert payment", ErrDuplicate)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, "failed to insert payment: duplicate payment", err.Error())

	nf := NewNotFoundError("payment")
	assert.ErrorIs(t, nf, ErrNotFound)
	assert.Equal(t, "payment not found: resource not found", nf.Error())
}
