package repositories

import (
	"context"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
)

// PaymentRepositoryFacade defines persistence for gateway payments.
type PaymentRepositoryFacade interface {
	// SavePayment inserts a payment. Returns apperrors.ErrDuplicate when the
	// order code collides with an existing payment.
	SavePayment(ctx context.Context, payment domain.Payment) error

	// UpdateCheckoutURL stores the hosted checkout URL returned by the gateway.
	UpdateCheckoutURL(ctx context.Context, paymentID, checkoutURL string) error

	// FindPaymentByID retrieves a payment record.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
}
