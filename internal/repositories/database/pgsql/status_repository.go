package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
)

type PgxStatusRepository struct {
	BaseRepository
}

// newPgxStatusRepository creates a new repository for workflow status data.
func newPgxStatusRepository(pool *pgxpool.Pool) portsrepo.StatusRepositoryFacade {
	return &PgxStatusRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.StatusRepositoryFacade = (*PgxStatusRepository)(nil)

// FindStatusByDocumentID retrieves the single status row of a document.
func (r *PgxStatusRepository) FindStatusByDocumentID(ctx context.Context, documentID string) (*domain.StatusEntry, error) {
	query := `
		SELECT document_id, status, last_updated_at, last_updated_by
		FROM document_statuses
		WHERE document_id = $1;
	`
	var entry domain.StatusEntry
	err := r.Pool.QueryRow(ctx, query, documentID).Scan(
		&entry.DocumentID,
		&entry.Status,
		&entry.LastUpdatedAt,
		&entry.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find status for document %s: %w", documentID, err)
	}
	return &entry, nil
}

// FindApproveHistoryByDocumentID retrieves the audit trail, oldest first.
func (r *PgxStatusRepository) FindApproveHistoryByDocumentID(ctx context.Context, documentID string) ([]domain.ApproveHistoryRecord, error) {
	query := `
		SELECT history_id, document_id, actor_user_id, before_status, after_status, created_at
		FROM approve_history
		WHERE document_id = $1
		ORDER BY created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query approve history for document %s: %w", documentID, err)
	}
	defer rows.Close()

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ApproveHistoryRecord, error) {
		var rec domain.ApproveHistoryRecord
		err := row.Scan(
			&rec.HistoryID,
			&rec.DocumentID,
			&rec.ActorUserID,
			&rec.BeforeStatus,
			&rec.AfterStatus,
			&rec.CreatedAt,
		)
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan approve history for document %s: %w", documentID, err)
	}
	return records, nil
}

// SaveStatusEntry inserts the initial status row for a document.
func (r *PgxStatusRepository) SaveStatusEntry(ctx context.Context, entry domain.StatusEntry) error {
	query := `
		INSERT INTO document_statuses (document_id, status, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query,
		entry.DocumentID,
		entry.Status,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: status for document %s already exists", apperrors.ErrDuplicate, entry.DocumentID)
			}
		}
		return fmt.Errorf("failed to save status for document %s: %w", entry.DocumentID, err)
	}
	return nil
}

// TransitionStatus updates the status row only if it still holds `from` and
// appends the audit record, both inside one transaction. A compare-and-set
// miss returns apperrors.ErrConflict and writes nothing.
func (r *PgxStatusRepository) TransitionStatus(ctx context.Context, documentID string, from, to domain.DocumentStatus, actorUserID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	updateQuery := `
		UPDATE document_statuses
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE document_id = $4 AND status = $5;
	`
	tag, err := tx.Exec(ctx, updateQuery, to, at, actorUserID, documentID, from)
	if err != nil {
		return fmt.Errorf("failed to update status for document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the document has no status row or the row no longer holds
		// the expected status. Both mean the caller's view is stale.
		return fmt.Errorf("%w: document %s is no longer %s", apperrors.ErrConflict, documentID, from)
	}

	historyQuery := `
		INSERT INTO approve_history (history_id, document_id, actor_user_id, before_status, after_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := tx.Exec(ctx, historyQuery, uuid.NewString(), documentID, actorUserID, from, to, at); err != nil {
		return fmt.Errorf("failed to append approve history for document %s: %w", documentID, err)
	}

	return r.Commit(ctx, tx)
}
