package pgsql

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the ledger reacts to.
const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateUniqueViolation      = "23505"
)

const idempotencyKeyIndex = "ux_customer_payments_idempotency_key"

// wrapPgError turns driver errors into application errors.
// Serialization conflicts become ErrTransient; a reused idempotency key becomes ErrDuplicate.
func wrapPgError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected:
			return apperrors.NewAppError(http.StatusServiceUnavailable, msg,
				fmt.Errorf("%w: %s", apperrors.ErrTransient, pgErr.Message))
		case sqlStateUniqueViolation:
			if pgErr.ConstraintName == idempotencyKeyIndex {
				return apperrors.NewAppError(http.StatusConflict, msg,
					fmt.Errorf("%w: idempotency key already used", apperrors.ErrDuplicate))
			}
		}
	}
	return apperrors.NewAppError(http.StatusInternalServerError, msg, err)
}
