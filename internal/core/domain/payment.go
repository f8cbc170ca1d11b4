package domain

import "github.com/shopspring/decimal"

// PaymentStatus is the lifecycle of a checkout created with the gateway.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSuccess   PaymentStatus = "success"
	PaymentFailed    PaymentStatus = "failed"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Payment is created exactly once per document, when the secretary completes
// the signature sign-off. OrderCode is the gateway-facing unique integer.
type Payment struct {
	PaymentID   string          `json:"paymentID"`
	OrderCode   int64           `json:"orderCode"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ReturnURL   string          `json:"returnUrl"`
	CancelURL   string          `json:"cancelUrl"`
	CheckoutURL string          `json:"checkoutUrl"`
	Status      PaymentStatus   `json:"status"`
	UserID      string          `json:"userID"`
	AuditFields
}
