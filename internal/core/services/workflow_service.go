package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
	"github.com/NotariaHQ/notaria_backend/internal/middleware"
)

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrNoNextStatus  = errors.New("document has no next status")
)

// workflowService owns the authoritative status progression of documents and
// gates every transition by the actor's role.
type workflowService struct {
	statusRepo   portsrepo.StatusRepositoryFacade
	documentRepo portsrepo.DocumentReader
	permissions  portssvc.PermissionResolver
}

// NewWorkflowService creates a new WorkflowService.
func NewWorkflowService(statusRepo portsrepo.StatusRepositoryFacade, documentRepo portsrepo.DocumentReader, permissions portssvc.PermissionResolver) portssvc.WorkflowSvcFacade {
	return &workflowService{
		statusRepo:   statusRepo,
		documentRepo: documentRepo,
		permissions:  permissions,
	}
}

// Ensure workflowService implements the portssvc.WorkflowSvcFacade interface
var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

// CreateStatus inserts the initial pending entry for a document. Called once,
// right after document creation.
func (s *workflowService) CreateStatus(ctx context.Context, documentID string) (*domain.StatusEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry := domain.StatusEntry{
		DocumentID:    documentID,
		Status:        domain.StatusPending,
		LastUpdatedAt: time.Now().UTC(),
	}

	if err := s.statusRepo.SaveStatusEntry(ctx, entry); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Warn("Status entry already exists", slog.String("document_id", documentID))
			return nil, fmt.Errorf("status already exists for document %s: %w", documentID, err)
		}
		logger.Error("Failed to save initial status entry", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create status: %w", apperrors.ErrInternal)
	}

	logger.Info("Status entry created", slog.String("document_id", documentID), slog.String("status", string(entry.Status)))
	return &entry, nil
}

// GetStatus retrieves the current status entry of a document.
func (s *workflowService) GetStatus(ctx context.Context, documentID string) (*domain.StatusEntry, error) {
	entry, err := s.statusRepo.FindStatusByDocumentID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find status entry", slog.String("document_id", documentID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find status for document %s: %w", documentID, err)
	}
	return entry, nil
}

// Advance is the core transition operation: it validates the actor's role
// against the current status, computes the target status and persists the
// status update together with its audit record as one atomic unit.
func (s *workflowService) Advance(ctx context.Context, documentID string, action domain.WorkflowAction, actorRole domain.StaffRole, actorUserID string) (*domain.StatusEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.statusRepo.FindStatusByDocumentID(ctx, documentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("No status entry for document", slog.String("document_id", documentID))
		}
		return nil, fmt.Errorf("failed to find status for document %s: %w", documentID, err)
	}

	var target domain.DocumentStatus
	switch action {
	case domain.ActionAccept:
		// No successor past the last forward status. This check precedes the
		// role gate so "accept at completed" is reported as a bad request,
		// not as a role problem.
		if entry.Status == domain.StatusCompleted {
			return nil, fmt.Errorf("%w: %w: status %s", apperrors.ErrValidation, ErrNoNextStatus, entry.Status)
		}
		if err := s.authorizeTransition(ctx, actorRole, entry.Status); err != nil {
			logger.Warn("Role not authorized for transition",
				slog.String("document_id", documentID),
				slog.String("role", string(actorRole)),
				slog.String("current_status", string(entry.Status)))
			return nil, err
		}
		next, ok := entry.Status.Next()
		if !ok {
			return nil, fmt.Errorf("%w: %w: status %s", apperrors.ErrValidation, ErrNoNextStatus, entry.Status)
		}
		target = next

	case domain.ActionReject:
		if entry.Status.IsTerminal() {
			return nil, fmt.Errorf("%w: cannot reject document in terminal status %s", apperrors.ErrConflict, entry.Status)
		}
		if err := s.authorizeTransition(ctx, actorRole, entry.Status); err != nil {
			logger.Warn("Role not authorized for rejection",
				slog.String("document_id", documentID),
				slog.String("role", string(actorRole)),
				slog.String("current_status", string(entry.Status)))
			return nil, err
		}
		target = domain.StatusRejected

	default:
		return nil, fmt.Errorf("%w: %w %q", apperrors.ErrValidation, ErrInvalidAction, action)
	}

	now := time.Now().UTC()
	if err := s.statusRepo.TransitionStatus(ctx, documentID, entry.Status, target, actorUserID, now); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent transition lost compare-and-set",
				slog.String("document_id", documentID),
				slog.String("expected_status", string(entry.Status)))
			return nil, fmt.Errorf("status changed concurrently for document %s: %w", documentID, err)
		}
		logger.Error("Failed to persist status transition",
			slog.String("document_id", documentID),
			slog.String("from", string(entry.Status)),
			slog.String("to", string(target)),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to transition document %s from %s to %s: %w", documentID, entry.Status, target, apperrors.ErrInternal)
	}

	logger.Info("Document status advanced",
		slog.String("document_id", documentID),
		slog.String("from", string(entry.Status)),
		slog.String("to", string(target)),
		slog.String("actor_user_id", actorUserID))

	return &domain.StatusEntry{
		DocumentID:    documentID,
		Status:        target,
		LastUpdatedAt: now,
		LastUpdatedBy: actorUserID,
	}, nil
}

// authorizeTransition checks the role gate: a role may only act while the
// document sits in the one status assigned to that role.
func (s *workflowService) authorizeTransition(ctx context.Context, role domain.StaffRole, current domain.DocumentStatus) error {
	allowed, err := s.permissions.ActionStatus(ctx, role)
	if err != nil {
		return err
	}
	if allowed != current {
		return fmt.Errorf("%w: role %s may not act while document is %s", apperrors.ErrForbidden, role, current)
	}
	return nil
}

// ListByRole retrieves the documents in the role's work queue.
func (s *workflowService) ListByRole(ctx context.Context, role domain.StaffRole) ([]domain.DocumentWithStatus, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	visible, err := s.permissions.VisibleStatuses(ctx, role)
	if err != nil {
		logger.Warn("Role has no workflow visibility", slog.String("role", string(role)))
		return nil, err
	}

	docs, err := s.documentRepo.FindDocumentsByStatuses(ctx, visible)
	if err != nil {
		logger.Error("Failed to list documents by status", slog.String("role", string(role)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list documents for role %s: %w", role, apperrors.ErrInternal)
	}

	logger.Debug("Documents listed for role", slog.String("role", string(role)), slog.Int("count", len(docs)))
	return docs, nil
}

// GetApproveHistory retrieves the audit trail of a document.
func (s *workflowService) GetApproveHistory(ctx context.Context, documentID string) ([]domain.ApproveHistoryRecord, error) {
	records, err := s.statusRepo.FindApproveHistoryByDocumentID(ctx, documentID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch approve history", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch approve history for document %s: %w", documentID, apperrors.ErrInternal)
	}
	return records, nil
}

// FinalizeToCompleted performs the terminal digitalSignature -> completed
// transition triggered by the signature coordinator. It deliberately bypasses
// the role gate (the coordinator has already enforced the sign-off
// preconditions) but keeps the compare-and-set and the audit record.
func (s *workflowService) FinalizeToCompleted(ctx context.Context, documentID string, actorUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	if err := s.statusRepo.TransitionStatus(ctx, documentID, domain.StatusDigitalSignature, domain.StatusCompleted, actorUserID, now); err != nil {
		logger.Error("Failed to finalize document to completed",
			slog.String("document_id", documentID),
			slog.String("error", err.Error()))
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("document %s left digitalSignature concurrently: %w", documentID, err)
		}
		return fmt.Errorf("failed to finalize document %s: %w", documentID, apperrors.ErrInternal)
	}

	logger.Info("Document finalized", slog.String("document_id", documentID), slog.String("actor_user_id", actorUserID))
	return nil
}
