package services

import (
	"context"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
)

// WorkflowReaderSvc defines read operations on the status workflow
type WorkflowReaderSvc interface {
	// GetStatus retrieves the current status entry of a document.
	GetStatus(ctx context.Context, documentID string) (*domain.StatusEntry, error)

	// ListByRole retrieves documents whose current status falls inside the
	// role's visibility set.
	ListByRole(ctx context.Context, role domain.StaffRole) ([]domain.DocumentWithStatus, error)

	// GetApproveHistory retrieves a document's audit trail.
	GetApproveHistory(ctx context.Context, documentID string) ([]domain.ApproveHistoryRecord, error)
}

// WorkflowWriterSvc defines state-changing operations on the status workflow
type WorkflowWriterSvc interface {
	// CreateStatus inserts the initial pending entry for a freshly submitted
	// document.
	CreateStatus(ctx context.Context, documentID string) (*domain.StatusEntry, error)

	// Advance applies an accept/reject action for the given actor, enforcing
	// the role gate and the fixed forward order.
	Advance(ctx context.Context, documentID string, action domain.WorkflowAction, actorRole domain.StaffRole, actorUserID string) (*domain.StatusEntry, error)

	// FinalizeToCompleted moves a document from digitalSignature straight to
	// completed. Reserved for the signature coordinator's terminal
	// side-effect transition; not reachable through Advance.
	FinalizeToCompleted(ctx context.Context, documentID string, actorUserID string) error
}

// WorkflowSvcFacade combines all workflow service interfaces
type WorkflowSvcFacade interface {
	WorkflowReaderSvc
	WorkflowWriterSvc
}
