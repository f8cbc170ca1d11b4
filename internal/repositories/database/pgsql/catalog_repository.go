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

type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for notarization reference data.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

// FindFieldByID retrieves a notarization field by id.
func (r *PgxCatalogRepository) FindFieldByID(ctx context.Context, fieldID string) (*domain.NotarizationField, error) {
	query := `
		SELECT field_id, name, description, created_at, created_by, last_updated_at, last_updated_by
		FROM notarization_fields
		WHERE field_id = $1;
	`
	var field domain.NotarizationField
	err := r.Pool.QueryRow(ctx, query, fieldID).Scan(
		&field.FieldID,
		&field.Name,
		&field.Description,
		&field.CreatedAt,
		&field.CreatedBy,
		&field.LastUpdatedAt,
		&field.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find field %s: %w", fieldID, err)
	}
	return &field, nil
}

// FindServiceByID retrieves a notarization service by id.
func (r *PgxCatalogRepository) FindServiceByID(ctx context.Context, serviceID string) (*domain.NotarizationService, error) {
	query := `
		SELECT service_id, field_id, name, description, price, created_at, created_by, last_updated_at, last_updated_by
		FROM notarization_services
		WHERE service_id = $1;
	`
	var service domain.NotarizationService
	err := r.Pool.QueryRow(ctx, query, serviceID).Scan(
		&service.ServiceID,
		&service.FieldID,
		&service.Name,
		&service.Description,
		&service.Price,
		&service.CreatedAt,
		&service.CreatedBy,
		&service.LastUpdatedAt,
		&service.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find service %s: %w", serviceID, err)
	}
	return &service, nil
}

// ListFields retrieves all notarization fields.
func (r *PgxCatalogRepository) ListFields(ctx context.Context) ([]domain.NotarizationField, error) {
	query := `
		SELECT field_id, name, description, created_at, created_by, last_updated_at, last_updated_by
		FROM notarization_fields
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fields: %w", err)
	}
	defer rows.Close()

	fields, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.NotarizationField, error) {
		var f domain.NotarizationField
		err := row.Scan(
			&f.FieldID,
			&f.Name,
			&f.Description,
			&f.CreatedAt,
			&f.CreatedBy,
			&f.LastUpdatedAt,
			&f.LastUpdatedBy,
		)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan fields: %w", err)
	}
	return fields, nil
}

// ListServicesByField retrieves the services offered within a field.
func (r *PgxCatalogRepository) ListServicesByField(ctx context.Context, fieldID string) ([]domain.NotarizationService, error) {
	query := `
		SELECT service_id, field_id, name, description, price, created_at, created_by, last_updated_at, last_updated_by
		FROM notarization_services
		WHERE field_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, fieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to query services for field %s: %w", fieldID, err)
	}
	defer rows.Close()

	services, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.NotarizationService, error) {
		var s domain.NotarizationService
		err := row.Scan(
			&s.ServiceID,
			&s.FieldID,
			&s.Name,
			&s.Description,
			&s.Price,
			&s.CreatedAt,
			&s.CreatedBy,
			&s.LastUpdatedAt,
			&s.LastUpdatedBy,
		)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan services for field %s: %w", fieldID, err)
	}
	return services, nil
}

// SaveField inserts a notarization field.
func (r *PgxCatalogRepository) SaveField(ctx context.Context, field domain.NotarizationField) error {
	query := `
		INSERT INTO notarization_fields (field_id, name, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		field.FieldID,
		field.Name,
		field.Description,
		field.CreatedAt,
		field.CreatedBy,
		field.LastUpdatedAt,
		field.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: field %q already exists", apperrors.ErrDuplicate, field.Name)
			}
		}
		return fmt.Errorf("failed to save field %s: %w", field.FieldID, err)
	}
	return nil
}

// SaveService inserts a notarization service.
func (r *PgxCatalogRepository) SaveService(ctx context.Context, service domain.NotarizationService) error {
	query := `
		INSERT INTO notarization_services (service_id, field_id, name, description, price, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		service.ServiceID,
		service.FieldID,
		service.Name,
		service.Description,
		service.Price,
		service.CreatedAt,
		service.CreatedBy,
		service.LastUpdatedAt,
		service.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // Unique violation
				return fmt.Errorf("%w: service %q already exists in field %s", apperrors.ErrDuplicate, service.Name, service.FieldID)
			}
		}
		return fmt.Errorf("failed to save service %s: %w", service.ServiceID, err)
	}
	return nil
}
