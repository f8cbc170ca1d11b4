package services

import (
	"context"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignatureSvcFacade orchestrates the two-party sign-off of a document in
// digitalSignature status.
type SignatureSvcFacade interface {
	// ApproveByRequester records (or re-records) the citizen's signature.
	// First call creates the request with the requester approved; later calls
	// only replace the stored image.
	ApproveByRequester(ctx context.Context, documentID string, userID string, amount decimal.Decimal, signatureImage string) (*domain.SignatureRequest, error)

	// ApproveByStaff records the secretary's counter-signature, creates the
	// payment checkout and finalizes the document to completed. A non-empty
	// warning reports a failed notification email on an otherwise successful
	// sign-off.
	ApproveByStaff(ctx context.Context, documentID string, actorUserID string) (*domain.Payment, string, error)

	// GetSignatureRequest retrieves the sign-off state of a document.
	GetSignatureRequest(ctx context.Context, documentID string) (*domain.SignatureRequest, error)
}
