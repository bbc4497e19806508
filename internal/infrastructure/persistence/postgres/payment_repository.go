package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ficommerce/payment-service/internal/application"
	"github.com/ficommerce/payment-service/internal/domain"
	"github.com/ficommerce/payment-service/internal/infrastructure/persistence"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const paymentColumns = `id, reference, order_id, customer_id, amount, currency, method, status,
		settlement_id, failure_reason, created_at, updated_at`

// PaymentRepository is the pgx-backed PaymentStore.
type PaymentRepository struct {
	db *pgxpool.Pool
}

var _ application.PaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Save upserts the record keyed by internal id. A conflicting order_id
// surfaces as DUPLICATE_ORDER_PAYMENT: at most one payment may exist
// per order.
func (r *PaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			settlement_id = EXCLUDED.settlement_id,
			failure_reason = EXCLUDED.failure_reason,
			updated_at = EXCLUDED.updated_at
	`

	m := toDBModel(payment)
	_, err := r.db.Exec(ctx, query,
		m.ID,
		m.Reference,
		m.OrderID,
		m.CustomerID,
		m.Amount,
		m.Currency,
		m.Method,
		m.Status,
		m.SettlementID,
		m.FailureReason,
		m.CreatedAt,
		m.UpdatedAt,
	)

	if err != nil {
		if persistence.IsUniqueViolation(err) && persistence.ConstraintName(err) == "payments_order_id_key" {
			return domain.NewDuplicateOrderPaymentError(payment.OrderID)
		}
		return fmt.Errorf("failed to save payment: %w", err)
	}

	return nil
}

// UpdateStatusFrom applies the record's state only if the stored row
// still carries expectedStatus. Returns false when a concurrent writer
// got there first; the caller decides what that means.
func (r *PaymentRepository) UpdateStatusFrom(ctx context.Context, payment *domain.Payment, expectedStatus domain.PaymentStatus) (bool, error) {
	query := `
		UPDATE payments
		SET status = $1, settlement_id = $2, failure_reason = $3, updated_at = $4
		WHERE id = $5 AND status = $6
	`

	m := toDBModel(payment)
	tag, err := r.db.Exec(ctx, query,
		m.Status,
		m.SettlementID,
		m.FailureReason,
		m.UpdatedAt,
		m.ID,
		string(expectedStatus),
	)
	if err != nil {
		return false, fmt.Errorf("failed to update payment status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanPayment(row, id)
}

func (r *PaymentRepository) FindByReference(ctx context.Context, reference string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE reference = $1`

	row := r.db.QueryRow(ctx, query, reference)
	return scanPayment(row, reference)
}

func (r *PaymentRepository) FindByOrderID(ctx context.Context, orderID int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1`

	row := r.db.QueryRow(ctx, query, orderID)
	return scanPayment(row, fmt.Sprintf("for order %d", orderID))
}

func (r *PaymentRepository) FindByCustomerID(ctx context.Context, customerID string, page application.PageRequest) (*application.Page, error) {
	where := `WHERE customer_id = $1`
	return r.queryPage(ctx, where, page, customerID)
}

func (r *PaymentRepository) FindByStatus(ctx context.Context, status domain.PaymentStatus, page application.PageRequest) (*application.Page, error) {
	where := `WHERE status = $1`
	return r.queryPage(ctx, where, page, string(status))
}

func (r *PaymentRepository) FindAll(ctx context.Context, page application.PageRequest) (*application.Page, error) {
	return r.queryPage(ctx, "", page)
}

func (r *PaymentRepository) queryPage(ctx context.Context, where string, page application.PageRequest, args ...any) (*application.Page, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM payments ` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count payments: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM payments %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		paymentColumns, where, orderClause(page), len(args)+1, len(args)+2,
	)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query payments page: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Payment, error) {
		var m PaymentModel
		if err := row.Scan(
			&m.ID, &m.Reference, &m.OrderID, &m.CustomerID, &m.Amount, &m.Currency,
			&m.Method, &m.Status, &m.SettlementID, &m.FailureReason, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		return toDomainModel(m)
	})
	if err != nil {
		return nil, fmt.Errorf("scan payments page: %w", err)
	}

	return &application.Page{Items: items, Total: total}, nil
}

// orderClause whitelists sortable columns; anything unknown falls back
// to created_at.
func orderClause(page application.PageRequest) string {
	column := "created_at"
	switch page.SortBy {
	case "amount", "status", "updated_at", "created_at":
		column = page.SortBy
	}
	if page.SortDescending {
		return column + " DESC"
	}
	return column + " ASC"
}

func scanPayment(row pgx.Row, handle string) (*domain.Payment, error) {
	var m PaymentModel
	err := row.Scan(
		&m.ID, &m.Reference, &m.OrderID, &m.CustomerID, &m.Amount, &m.Currency,
		&m.Method, &m.Status, &m.SettlementID, &m.FailureReason, &m.CreatedAt, &m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewPaymentNotFoundError(handle)
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return toDomainModel(m)
}
