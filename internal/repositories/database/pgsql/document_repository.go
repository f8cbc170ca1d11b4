package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document data.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `
	document_id, user_id, citizen_id, phone_number, email,
	field_id, field_name, service_id, service_name, service_description, service_price,
	payment_id, checkout_url,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var doc domain.Document
	err := row.Scan(
		&doc.DocumentID,
		&doc.UserID,
		&doc.Requester.CitizenID,
		&doc.Requester.PhoneNumber,
		&doc.Requester.Email,
		&doc.FieldID,
		&doc.FieldName,
		&doc.ServiceID,
		&doc.ServiceName,
		&doc.ServiceDescription,
		&doc.ServicePrice,
		&doc.PaymentID,
		&doc.CheckoutURL,
		&doc.CreatedAt,
		&doc.CreatedBy,
		&doc.LastUpdatedAt,
		&doc.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindDocumentByID retrieves a document together with its stored files.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`

	doc, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document %s: %w", documentID, err)
	}

	files, err := r.findFiles(ctx, documentID)
	if err != nil {
		return nil, err
	}
	doc.Files = files
	return doc, nil
}

func (r *PgxDocumentRepository) findFiles(ctx context.Context, documentID string) ([]domain.DocumentFile, error) {
	query := `
		SELECT file_name, file_url
		FROM document_files
		WHERE document_id = $1
		ORDER BY file_name;
	`
	rows, err := r.Pool.Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query files for document %s: %w", documentID, err)
	}
	defer rows.Close()

	files, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DocumentFile, error) {
		var f domain.DocumentFile
		err := row.Scan(&f.FileName, &f.FileURL)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan files for document %s: %w", documentID, err)
	}
	return files, nil
}

// FindDocumentsByStatuses retrieves documents whose current status is one of
// the given statuses, newest submissions first. File lists are not loaded for
// queue listings.
func (r *PgxDocumentRepository) FindDocumentsByStatuses(ctx context.Context, statuses []domain.DocumentStatus) ([]domain.DocumentWithStatus, error) {
	if len(statuses) == 0 {
		return []domain.DocumentWithStatus{}, nil
	}

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	query := `
		SELECT d.document_id, d.user_id, d.citizen_id, d.phone_number, d.email,
			d.field_id, d.field_name, d.service_id, d.service_name, d.service_description, d.service_price,
			d.payment_id, d.checkout_url,
			d.created_at, d.created_by, d.last_updated_at, d.last_updated_by,
			s.status
		FROM documents d
		JOIN document_statuses s ON s.document_id = d.document_id
		WHERE s.status = ANY($1)
		ORDER BY d.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, statusStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents by statuses: %w", err)
	}
	defer rows.Close()

	docs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.DocumentWithStatus, error) {
		var dws domain.DocumentWithStatus
		err := row.Scan(
			&dws.DocumentID,
			&dws.UserID,
			&dws.Requester.CitizenID,
			&dws.Requester.PhoneNumber,
			&dws.Requester.Email,
			&dws.FieldID,
			&dws.FieldName,
			&dws.ServiceID,
			&dws.ServiceName,
			&dws.ServiceDescription,
			&dws.ServicePrice,
			&dws.PaymentID,
			&dws.CheckoutURL,
			&dws.CreatedAt,
			&dws.CreatedBy,
			&dws.LastUpdatedAt,
			&dws.LastUpdatedBy,
			&dws.Status,
		)
		return dws, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan documents by statuses: %w", err)
	}
	return docs, nil
}

// SaveDocument persists a document and its file references atomically.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc domain.Document) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	insertDoc := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, insertDoc,
		doc.DocumentID,
		doc.UserID,
		doc.Requester.CitizenID,
		doc.Requester.PhoneNumber,
		doc.Requester.Email,
		doc.FieldID,
		doc.FieldName,
		doc.ServiceID,
		doc.ServiceName,
		doc.ServiceDescription,
		doc.ServicePrice,
		doc.PaymentID,
		doc.CheckoutURL,
		doc.CreatedAt,
		doc.CreatedBy,
		doc.LastUpdatedAt,
		doc.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: document %s already exists", apperrors.ErrDuplicate, doc.DocumentID)
			}
		}
		return fmt.Errorf("failed to save document %s: %w", doc.DocumentID, err)
	}

	insertFile := `
		INSERT INTO document_files (document_id, file_name, file_url)
		VALUES ($1, $2, $3);
	`
	for _, f := range doc.Files {
		if _, err := tx.Exec(ctx, insertFile, doc.DocumentID, f.FileName, f.FileURL); err != nil {
			return fmt.Errorf("failed to save file %s for document %s: %w", f.FileName, doc.DocumentID, err)
		}
	}

	return r.Commit(ctx, tx)
}

// AttachPayment links a created payment and checkout URL onto the document.
func (r *PgxDocumentRepository) AttachPayment(ctx context.Context, documentID, paymentID, checkoutURL string) error {
	query := `
		UPDATE documents
		SET payment_id = $1, checkout_url = $2
		WHERE document_id = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, paymentID, checkoutURL, documentID)
	if err != nil {
		return fmt.Errorf("failed to attach payment to document %s: %w", documentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
