package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/customer_payment_service/internal/apperrors"
	"github.com/SscSPs/customer_payment_service/internal/core/domain"
	portsrepo "github.com/SscSPs/customer_payment_service/internal/core/ports/repositories"
	"github.com/SscSPs/customer_payment_service/internal/models"
	"github.com/SscSPs/customer_payment_service/internal/utils/accounting"
	"github.com/SscSPs/customer_payment_service/internal/utils/mapping"
	"github.com/SscSPs/customer_payment_service/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const paymentColumns = `
	p.payment_id, p.customer_id, p.payment_date, p.payment_method, p.total_amount, p.note,
	p.idempotency_key, p.customer_contract_id, p.payment_amount, p.is_deleted,
	p.created_at, p.created_by, p.last_updated_at, p.last_updated_by`

const defaultListLimit = 20

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for customer payments and their allocation lines.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// ReservePayment writes the header and RESERVED lines in one serializable transaction.
// Contracts are re-checked in ascending id order against the totals already stored.
func (r *PgxPaymentRepository) ReservePayment(ctx context.Context, payment domain.Payment, ceilings map[int64]decimal.Decimal) error {
	if len(payment.Allocations) == 0 || !accounting.WithinTolerance(accounting.SumAllocations(payment.Allocations), payment.TotalAmount) {
		return apperrors.NewAppError(http.StatusBadRequest, "payment lines do not add up to its total", apperrors.ErrInvalidAmount)
	}

	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	requested := accounting.SumByContract(payment.Allocations)
	contractIDs := make([]int64, 0, len(requested))
	for id := range requested {
		contractIDs = append(contractIDs, id)
	}
	sort.Slice(contractIDs, func(i, j int) bool { return contractIDs[i] < contractIDs[j] })

	for _, contractID := range contractIDs {
		ceiling, ok := ceilings[contractID]
		if !ok {
			return apperrors.NewAppError(http.StatusInternalServerError, "missing ceiling for contract "+strconv.FormatInt(contractID, 10), apperrors.ErrInternal)
		}
		paid, err := r.paidTotal(ctx, tx, contractID)
		if err != nil {
			return err
		}
		remaining := ceiling.Sub(paid)
		if accounting.ExceedsRemaining(requested[contractID], remaining) {
			return apperrors.NewAppError(http.StatusBadRequest, "allocation rejected",
				fmt.Errorf("%w: contract %d has %s remaining, %s requested", apperrors.ErrInvalidAmount, contractID, remaining.StringFixed(2), requested[contractID].StringFixed(2)))
		}
	}

	m := mapping.ToModelPayment(payment)
	headerQuery := `
		INSERT INTO customer_payments (
			payment_id, customer_id, payment_date, payment_method, total_amount, note, idempotency_key,
			is_deleted, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, headerQuery,
		m.PaymentID,
		m.CustomerID,
		m.PaymentDate,
		m.PaymentMethod,
		m.TotalAmount,
		m.Note,
		m.IdempotencyKey,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapPgError("failed to insert payment "+m.PaymentID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO contract_payments (
			allocation_id, payment_id, line_no, contract_id, allocated_amount, state,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	lines := mapping.ToModelContractPayments(payment.Allocations)
	for _, l := range lines {
		batch.Queue(lineQuery,
			l.AllocationID,
			l.PaymentID,
			l.LineNo,
			l.ContractID,
			l.AllocatedAmount,
			string(domain.Reserved),
			l.CreatedAt,
			l.CreatedBy,
			l.LastUpdatedAt,
			l.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return wrapPgError("failed to insert allocation lines for payment "+m.PaymentID, err)
		}
	}
	if err := br.Close(); err != nil {
		return wrapPgError("failed to close allocation batch for payment "+m.PaymentID, err)
	}

	return r.Commit(ctx, tx)
}

// CommitAllocations finalises a reservation. Re-running it on a committed payment is a no-op.
// A reservation released in the meantime is reported as ErrTransient so the caller can resubmit.
func (r *PgxPaymentRepository) CommitAllocations(ctx context.Context, paymentID string, userID string, at time.Time) error {
	query := `
		UPDATE contract_payments cp
		SET state = 'COMMITTED', last_updated_at = $2, last_updated_by = $3
		FROM customer_payments p
		WHERE cp.payment_id = $1
		  AND p.payment_id = cp.payment_id
		  AND NOT p.is_deleted
		  AND NOT cp.is_deleted
		  AND cp.state = 'RESERVED';
	`
	tag, err := r.Pool.Exec(ctx, query, paymentID, at, userID)
	if err != nil {
		return wrapPgError("failed to commit allocations for payment "+paymentID, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var committed int
	checkQuery := `
		SELECT COUNT(*)
		FROM contract_payments cp
		JOIN customer_payments p ON p.payment_id = cp.payment_id
		WHERE cp.payment_id = $1 AND NOT p.is_deleted AND cp.state = 'COMMITTED';
	`
	if err := r.Pool.QueryRow(ctx, checkQuery, paymentID).Scan(&committed); err != nil {
		return wrapPgError("failed to verify allocations for payment "+paymentID, err)
	}
	if committed == 0 {
		return apperrors.NewAppError(http.StatusServiceUnavailable, "reservation no longer held",
			fmt.Errorf("%w: payment %s was released before commit", apperrors.ErrTransient, paymentID))
	}
	return nil
}

// ReleaseStaleReservations releases abandoned reservations and soft-deletes their payments in one statement.
func (r *PgxPaymentRepository) ReleaseStaleReservations(ctx context.Context, olderThan time.Time, userID string) (int, error) {
	query := `
		WITH released AS (
			UPDATE contract_payments
			SET state = 'RELEASED', last_updated_at = NOW(), last_updated_by = $2
			WHERE state = 'RESERVED' AND created_at < $1
			RETURNING payment_id
		), deleted AS (
			UPDATE customer_payments
			SET is_deleted = TRUE, last_updated_at = NOW(), last_updated_by = $2
			WHERE payment_id IN (SELECT payment_id FROM released) AND NOT is_deleted
			RETURNING payment_id
		)
		SELECT COUNT(*) FROM deleted;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, olderThan, userID).Scan(&count); err != nil {
		return 0, wrapPgError("failed to release stale reservations", err)
	}
	return count, nil
}

// FindPaymentByID retrieves a live payment with its lines.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM customer_payments p WHERE p.payment_id = $1 AND NOT p.is_deleted;`
	return r.findOne(ctx, query, paymentID)
}

// FindPaymentByIdempotencyKey retrieves the live payment recorded under key.
func (r *PgxPaymentRepository) FindPaymentByIdempotencyKey(ctx context.Context, key string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM customer_payments p WHERE p.idempotency_key = $1 AND NOT p.is_deleted;`
	return r.findOne(ctx, query, key)
}

func (r *PgxPaymentRepository) findOne(ctx context.Context, query string, arg any) (*domain.Payment, error) {
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("payment")
		}
		return nil, wrapPgError("failed to query payment", err)
	}

	payments, err := r.attachLines(ctx, []models.CustomerPayment{m})
	if err != nil {
		return nil, err
	}
	return &payments[0], nil
}

// ListPayments retrieves live payments newest first.
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	return r.listPage(ctx, "NOT p.is_deleted", nil, limit, nextToken)
}

// ListPaymentsByCustomer retrieves one customer's live payments newest first.
func (r *PgxPaymentRepository) ListPaymentsByCustomer(ctx context.Context, customerID int64, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	return r.listPage(ctx, "NOT p.is_deleted AND p.customer_id = $1", []any{customerID}, limit, nextToken)
}

// listPage runs a keyset-paginated header query ordered by (payment_date, created_at, payment_id) DESC.
func (r *PgxPaymentRepository) listPage(ctx context.Context, filter string, args []any, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	// One extra row tells us whether another page exists.
	fetchLimit := limit + 1

	var sb strings.Builder
	sb.WriteString(`SELECT ` + paymentColumns + ` FROM customer_payments p WHERE ` + filter)

	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken",
				fmt.Errorf("%w: %v", apperrors.ErrValidation, decodeErr))
		}
		n := len(args)
		sb.WriteString(fmt.Sprintf(" AND (p.payment_date, p.created_at, p.payment_id) < ($%d, $%d, $%d)", n+1, n+2, n+3))
		args = append(args, cursor.SortDate, cursor.CreatedAt, cursor.ID)
	}
	sb.WriteString(" ORDER BY p.payment_date DESC, p.created_at DESC, p.payment_id DESC")
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)+1) + ";")
	args = append(args, fetchLimit)

	headers, err := r.queryHeaders(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(headers) > limit {
		last := headers[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{
			SortDate:  last.PaymentDate,
			CreatedAt: last.CreatedAt,
			ID:        last.PaymentID,
		})
		nextTokenVal = &token
		headers = headers[:limit]
	}

	payments, err := r.attachLines(ctx, headers)
	if err != nil {
		return nil, nil, err
	}
	return payments, nextTokenVal, nil
}

// ListPaymentsByContract retrieves every live payment, of either shape, with a line against the contract.
func (r *PgxPaymentRepository) ListPaymentsByContract(ctx context.Context, contractID int64) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM customer_payments p
		WHERE NOT p.is_deleted
		  AND p.payment_id IN (SELECT l.payment_id FROM contract_payment_lines l WHERE l.contract_id = $1)
		ORDER BY p.payment_date DESC, p.created_at DESC, p.payment_id DESC;
	`
	headers, err := r.queryHeaders(ctx, query, contractID)
	if err != nil {
		return nil, err
	}
	return r.attachLines(ctx, headers)
}

// FindDuplicateCandidates retrieves live payments with a line of exactly amount against the contract,
// the same total, the same method, and a payment date on the same UTC day.
func (r *PgxPaymentRepository) FindDuplicateCandidates(ctx context.Context, contractID int64, amount decimal.Decimal, day time.Time, method domain.PaymentMethod) ([]domain.Payment, error) {
	y, mo, d := day.UTC().Date()
	start := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	query := `
		SELECT ` + paymentColumns + `
		FROM customer_payments p
		WHERE NOT p.is_deleted
		  AND p.payment_method = $1
		  AND p.total_amount = $2
		  AND p.payment_date >= $3 AND p.payment_date < $4
		  AND p.payment_id IN (
			SELECT l.payment_id FROM contract_payment_lines l
			WHERE l.contract_id = $5 AND l.amount = $2
		  )
		ORDER BY p.created_at;
	`
	headers, err := r.queryHeaders(ctx, query, int(method), amount, start, end, contractID)
	if err != nil {
		return nil, err
	}
	return r.attachLines(ctx, headers)
}

// ListAllocationsByPayment retrieves the lines of one live payment.
func (r *PgxPaymentRepository) ListAllocationsByPayment(ctx context.Context, paymentID string) ([]domain.Allocation, error) {
	p, err := r.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	return p.Allocations, nil
}

// ListAllocationsByContract reads the unified view, so legacy payments appear as one committed line.
func (r *PgxPaymentRepository) ListAllocationsByContract(ctx context.Context, contractID int64) ([]domain.Allocation, error) {
	query := `
		SELECT allocation_id, payment_id, line_no, contract_id, amount, state,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM contract_payment_lines
		WHERE contract_id = $1
		ORDER BY created_at, payment_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, contractID)
	if err != nil {
		return nil, wrapPgError("failed to query allocations for contract "+strconv.FormatInt(contractID, 10), err)
	}
	defer rows.Close()

	lines, err := scanLines(rows)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainAllocationSlice(lines), nil
}

// TotalPaid sums every live line of both shapes against the contract.
func (r *PgxPaymentRepository) TotalPaid(ctx context.Context, contractID int64) (decimal.Decimal, error) {
	return r.paidTotal(ctx, r.Pool, contractID)
}

func (r *PgxPaymentRepository) paidTotal(ctx context.Context, q querier, contractID int64) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM contract_payment_lines WHERE contract_id = $1;`
	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, contractID).Scan(&total); err != nil {
		return decimal.Zero, wrapPgError("failed to sum payments for contract "+strconv.FormatInt(contractID, 10), err)
	}
	return total, nil
}

func (r *PgxPaymentRepository) queryHeaders(ctx context.Context, query string, args ...any) ([]models.CustomerPayment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapPgError("failed to query payments", err)
	}
	defer rows.Close()

	headers := make([]models.CustomerPayment, 0)
	for rows.Next() {
		m, err := scanPayment(rows)
		if err != nil {
			return nil, wrapPgError("failed to scan payment row", err)
		}
		headers = append(headers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgError("error iterating payment rows", err)
	}
	return headers, nil
}

// attachLines loads the non-deleted lines of all headers in one query and assembles canonical payments.
func (r *PgxPaymentRepository) attachLines(ctx context.Context, headers []models.CustomerPayment) ([]domain.Payment, error) {
	if len(headers) == 0 {
		return []domain.Payment{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.PaymentID
	}

	query := `
		SELECT allocation_id, payment_id, line_no, contract_id, allocated_amount, state,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM contract_payments
		WHERE payment_id = ANY($1) AND NOT is_deleted
		ORDER BY payment_id, line_no;
	`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapPgError("failed to query allocation lines", err)
	}
	defer rows.Close()

	lines, err := scanLines(rows)
	if err != nil {
		return nil, err
	}

	byPayment := make(map[string][]models.ContractPayment, len(headers))
	for _, l := range lines {
		byPayment[l.PaymentID] = append(byPayment[l.PaymentID], l)
	}

	payments := make([]domain.Payment, len(headers))
	for i, h := range headers {
		payments[i] = mapping.ToDomainPayment(h, byPayment[h.PaymentID])
	}
	return payments, nil
}

func scanPayment(row pgx.Row) (models.CustomerPayment, error) {
	var m models.CustomerPayment
	err := row.Scan(
		&m.PaymentID,
		&m.CustomerID,
		&m.PaymentDate,
		&m.PaymentMethod,
		&m.TotalAmount,
		&m.Note,
		&m.IdempotencyKey,
		&m.LegacyContractID,
		&m.LegacyAmount,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanLines(rows pgx.Rows) ([]models.ContractPayment, error) {
	lines := make([]models.ContractPayment, 0)
	for rows.Next() {
		var l models.ContractPayment
		if err := rows.Scan(
			&l.AllocationID,
			&l.PaymentID,
			&l.LineNo,
			&l.ContractID,
			&l.AllocatedAmount,
			&l.State,
			&l.CreatedAt,
			&l.CreatedBy,
			&l.LastUpdatedAt,
			&l.LastUpdatedBy,
		); err != nil {
			return nil, wrapPgError("failed to scan allocation row", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPgError("error iterating allocation rows", err)
	}
	return lines, nil
}

// SoftDeletePayment flags a payment and its lines deleted in one transaction.
// Lines still RESERVED move to RELEASED; committed lines keep their state.
func (r *PgxPaymentRepository) SoftDeletePayment(ctx context.Context, paymentID string, userID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE customer_payments
		SET is_deleted = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1 AND NOT is_deleted;
	`, paymentID, at, userID)
	if err != nil {
		return wrapPgError("failed to soft delete payment "+paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("payment")
	}

	_, err = tx.Exec(ctx, `
		UPDATE contract_payments
		SET is_deleted = TRUE,
		    state = CASE WHEN state = 'RESERVED' THEN 'RELEASED' ELSE state END,
		    last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1 AND NOT is_deleted;
	`, paymentID, at, userID)
	if err != nil {
		return wrapPgError("failed to soft delete allocation lines of payment "+paymentID, err)
	}

	return r.Commit(ctx, tx)
}
