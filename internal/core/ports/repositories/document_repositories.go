package repositories

import (
	"context"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
)

// DocumentReader defines read operations for document data
type DocumentReader interface {
	// FindDocumentByID retrieves a document with its stored files.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// FindDocumentsByStatuses retrieves documents whose current workflow
	// status is one of the given statuses, annotated with that status.
	FindDocumentsByStatuses(ctx context.Context, statuses []domain.DocumentStatus) ([]domain.DocumentWithStatus, error)
}

// DocumentWriter defines write operations for document data
type DocumentWriter interface {
	// SaveDocument persists a document and its file references.
	SaveDocument(ctx context.Context, doc domain.Document) error

	// AttachPayment links a created payment and its checkout URL onto the
	// document. Returns apperrors.ErrNotFound when the document is missing.
	AttachPayment(ctx context.Context, documentID, paymentID, checkoutURL string) error
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
}
