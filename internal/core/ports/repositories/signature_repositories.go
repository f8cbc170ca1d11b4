package repositories

import (
	"context"
	"time"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
)

// SignatureReader defines read operations for signature request data
type SignatureReader interface {
	// FindSignatureRequestByDocumentID retrieves the per-document signature
	// request. Returns apperrors.ErrNotFound when none exists yet.
	FindSignatureRequestByDocumentID(ctx context.Context, documentID string) (*domain.SignatureRequest, error)
}

// SignatureWriter defines write operations for signature request data
type SignatureWriter interface {
	// SaveSignatureRequest inserts a new signature request. Returns
	// apperrors.ErrDuplicate when one already exists for the document.
	SaveSignatureRequest(ctx context.Context, req domain.SignatureRequest) error

	// UpdateSignatureImage replaces only the stored signature image.
	// Approval flags and timestamps are untouched.
	UpdateSignatureImage(ctx context.Context, documentID, signatureImage string, updatedBy string, at time.Time) error

	// MarkStaffApproved sets the staff approval flag and timestamp.
	MarkStaffApproved(ctx context.Context, documentID, actorUserID string, at time.Time) error
}

// SignatureRepositoryFacade combines all signature-related repository interfaces
type SignatureRepositoryFacade interface {
	SignatureReader
	SignatureWriter
}
