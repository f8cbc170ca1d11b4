package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
)

type PgxSignatureRepository struct {
	BaseRepository
}

// newPgxSignatureRepository creates a new repository for signature request data.
func newPgxSignatureRepository(pool *pgxpool.Pool) portsrepo.SignatureRepositoryFacade {
	return &PgxSignatureRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.SignatureRepositoryFacade = (*PgxSignatureRepository)(nil)

// FindSignatureRequestByDocumentID retrieves the per-document sign-off record.
func (r *PgxSignatureRepository) FindSignatureRequestByDocumentID(ctx context.Context, documentID string) (*domain.SignatureRequest, error) {
	query := `
		SELECT signature_id, document_id, amount, signature_image,
			user_approved, user_approved_at, staff_approved, staff_approved_at,
			created_at, created_by, last_updated_at, last_updated_by
		FROM signature_requests
		WHERE document_id = $1;
	`
	var req domain.SignatureRequest
	err := r.Pool.QueryRow(ctx, query, documentID).Scan(
		&req.SignatureID,
		&req.DocumentID,
		&req.Amount,
		&req.SignatureImage,
		&req.UserApproval.Approved,
		&req.UserApproval.ApprovedAt,
		&req.StaffApproval.Approved,
		&req.StaffApproval.ApprovedAt,
		&req.CreatedAt,
		&req.CreatedBy,
		&req.LastUpdatedAt,
		&req.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find signature request for document %s: %w", documentID, err)
	}
	return &req, nil
}

// SaveSignatureRequest inserts a new signature request.
func (r *PgxSignatureRepository) SaveSignatureRequest(ctx context.Context, req domain.SignatureRequest) error {
	query := `
		INSERT INTO signature_requests (signature_id, document_id, amount, signature_image,
			user_approved, user_approved_at, staff_approved, staff_approved_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		req.SignatureID,
		req.DocumentID,
		req.Amount,
		req.SignatureImage,
		req.UserApproval.Approved,
		req.UserApproval.ApprovedAt,
		req.StaffApproval.Approved,
		req.StaffApproval.ApprovedAt,
		req.CreatedAt,
		req.CreatedBy,
		req.LastUpdatedAt,
		req.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: signature request for document %s already exists", apperrors.ErrDuplicate, req.DocumentID)
			}
		}
		return fmt.Errorf("failed to save signature request for document %s: %w", req.DocumentID, err)
	}
	return nil
}

// UpdateSignatureImage replaces only the stored image. Approval flags and
// their timestamps are deliberately untouched.
func (r *PgxSignatureRepository) UpdateSignatureImage(ctx context.Context, documentID, signatureImage string, updatedBy string, at time.Time) error {
	query := `
		UPDATE signature_requests
		SET signature_image = $1, last_updated_at = $2, last_updated_by = $3
		WHERE document_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, signatureImage, at, updatedBy, documentID)
	if err != nil {
		return fmt.Errorf("failed to update signature image for document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkStaffApproved sets the staff approval flag and timestamp.
func (r *PgxSignatureRepository) MarkStaffApproved(ctx context.Context, documentID, actorUserID string, at time.Time) error {
	query := `
		UPDATE signature_requests
		SET staff_approved = TRUE, staff_approved_at = $1, last_updated_at = $1, last_updated_by = $2
		WHERE document_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, at, actorUserID, documentID)
	if err != nil {
		return fmt.Errorf("failed to mark staff approval for document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
