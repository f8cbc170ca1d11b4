package services

import (
	"context"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	"github.com/NotariaHQ/notaria_backend/internal/dto"
)

// DocumentSvcFacade owns document submission and retrieval.
type DocumentSvcFacade interface {
	// CreateDocument stores the uploaded files, snapshots the service
	// price/description onto the document, creates the initial pending
	// status and fires the notification email. The returned warning is
	// non-empty when a secondary step (notification) failed after the
	// document itself was created.
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, creatorUserID string) (doc *domain.Document, warning string, err error)

	// GetDocument retrieves a document by id.
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)
}
