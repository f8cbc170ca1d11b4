package services

import (
	"context"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCheckoutLinkRequest is the gateway-facing payload for a hosted
// checkout link.
type CreateCheckoutLinkRequest struct {
	OrderCode   int64
	Amount      decimal.Decimal
	Description string
	ReturnURL   string
	CancelURL   string
}

// PaymentGatewayClient creates hosted checkout links with the external
// payment provider. Implementations must bound the call with a timeout.
type PaymentGatewayClient interface {
	CreateCheckoutLink(ctx context.Context, req CreateCheckoutLinkRequest) (checkoutURL string, err error)
}

// FileStorageClient stores uploaded document files and returns a public URL.
type FileStorageClient interface {
	StoreFile(ctx context.Context, data []byte, contentType string, path string) (url string, err error)
}

// Mailer sends fire-and-forget notification emails. Failures never roll back
// the operation that triggered them; callers surface them as warnings.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// PermissionResolver answers role-gate questions at request time. It replaces
// the original system's global mutable permission map with an injected
// read-only lookup.
type PermissionResolver interface {
	// ActionStatus returns the single current status the role is allowed to
	// act on. Roles without workflow authority get apperrors.ErrForbidden.
	ActionStatus(ctx context.Context, role domain.StaffRole) (domain.DocumentStatus, error)

	// VisibleStatuses returns the statuses in the role's work queue.
	VisibleStatuses(ctx context.Context, role domain.StaffRole) ([]domain.DocumentStatus, error)
}
