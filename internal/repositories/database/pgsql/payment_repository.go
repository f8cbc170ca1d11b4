package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
)

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// SavePayment inserts a payment. The order_code column carries a unique
// constraint; collisions surface as apperrors.ErrDuplicate so the caller can
// retry with a fresh code.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	query := `
		INSERT INTO payments (payment_id, order_code, amount, description,
			return_url, cancel_url, checkout_url, status, user_id,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		payment.PaymentID,
		payment.OrderCode,
		payment.Amount,
		payment.Description,
		payment.ReturnURL,
		payment.CancelURL,
		payment.CheckoutURL,
		payment.Status,
		payment.UserID,
		payment.CreatedAt,
		payment.CreatedBy,
		payment.LastUpdatedAt,
		payment.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: order code %d already in use", apperrors.ErrDuplicate, payment.OrderCode)
			}
		}
		return fmt.Errorf("failed to save payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

// UpdateCheckoutURL stores the hosted checkout URL returned by the gateway.
func (r *PgxPaymentRepository) UpdateCheckoutURL(ctx context.Context, paymentID, checkoutURL string) error {
	query := `
		UPDATE payments
		SET checkout_url = $1
		WHERE payment_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, checkoutURL, paymentID)
	if err != nil {
		return fmt.Errorf("failed to update checkout URL for payment %s: %w", paymentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPaymentByID retrieves a payment record.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT payment_id, order_code, amount, description,
			return_url, cancel_url, checkout_url, status, user_id,
			created_at, created_by, last_updated_at, last_updated_by
		FROM payments
		WHERE payment_id = $1;
	`
	var payment domain.Payment
	err := r.Pool.QueryRow(ctx, query, paymentID).Scan(
		&payment.PaymentID,
		&payment.OrderCode,
		&payment.Amount,
		&payment.Description,
		&payment.ReturnURL,
		&payment.CancelURL,
		&payment.CheckoutURL,
		&payment.Status,
		&payment.UserID,
		&payment.CreatedAt,
		&payment.CreatedBy,
		&payment.LastUpdatedAt,
		&payment.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment %s: %w", paymentID, err)
	}
	return &payment, nil
}
