package repositories

import (
	"context"
	"time"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
)

// StatusReader defines read operations for workflow status data
type StatusReader interface {
	// FindStatusByDocumentID retrieves the single status entry of a document.
	// Returns apperrors.ErrNotFound when no entry exists.
	FindStatusByDocumentID(ctx context.Context, documentID string) (*domain.StatusEntry, error)

	// FindApproveHistoryByDocumentID retrieves the audit trail of a document,
	// oldest transition first.
	FindApproveHistoryByDocumentID(ctx context.Context, documentID string) ([]domain.ApproveHistoryRecord, error)
}

// StatusWriter defines write operations for workflow status data
type StatusWriter interface {
	// SaveStatusEntry inserts the initial status entry for a document.
	// Returns apperrors.ErrDuplicate when an entry already exists.
	SaveStatusEntry(ctx context.Context, entry domain.StatusEntry) error

	// TransitionStatus performs a compare-and-set update of the status row
	// (update succeeds only if the stored status still equals `from`) and
	// appends the matching audit record, both inside one database
	// transaction. A CAS miss returns apperrors.ErrConflict; the audit trail
	// is never left behind the status row.
	TransitionStatus(ctx context.Context, documentID string, from, to domain.DocumentStatus, actorUserID string, at time.Time) error
}

// StatusRepositoryFacade combines all status-related repository interfaces
type StatusRepositoryFacade interface {
	StatusReader
	StatusWriter
}
