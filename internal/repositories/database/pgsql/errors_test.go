package pgsql

import (
	"errors"
	"testing"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapPgError(t *testing.T) {
	serialization := &pgconn.PgError{Code: "40001", Message: "could not serialize access due to read/write dependencies among transactions"}
	err := wrapPgError("failed to commit transaction", serialization)
	assert.ErrorIs(t, err, apperrors.ErrTransient)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidAmount)

	deadlock := &pgconn.PgError{Code: "40P01"}
	assert.ErrorIs(t, wrapPgError("x", deadlock), apperrors.ErrTransient)

	keyReuse := &pgconn.PgError{Code: "23505", ConstraintName: "ux_customer_payments_idempotency_key"}
	assert.ErrorIs(t, wrapPgError("failed to insert payment", keyReuse), apperrors.ErrDuplicate)

	otherUnique := &pgconn.PgError{Code: "23505", ConstraintName: "contract_payments_pkey"}
	err = wrapPgError("failed to insert payment", otherUnique)
	assert.NotErrorIs(t, err, apperrors.ErrDuplicate)
	code, _ := apperrors.Classify(err)
	assert.Equal(t, apperrors.CodeUnknown, code)

	plain := errors.New("connection reset")
	err = wrapPgError("failed to query", plain)
	assert.ErrorIs(t, err, plain)
}
