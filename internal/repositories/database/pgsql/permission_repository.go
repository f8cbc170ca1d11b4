package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
)

type PgxPermissionRepository struct {
	BaseRepository
}

// newPgxPermissionRepository creates a new repository for role grant data.
func newPgxPermissionRepository(pool *pgxpool.Pool) portsrepo.PermissionRepositoryFacade {
	return &PgxPermissionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PermissionRepositoryFacade = (*PgxPermissionRepository)(nil)

// FindRoleGrant retrieves the workflow grant row for a role.
func (r *PgxPermissionRepository) FindRoleGrant(ctx context.Context, role domain.StaffRole) (*domain.RoleGrant, error) {
	query := `
		SELECT role, action_status, visible_statuses
		FROM role_permissions
		WHERE role = $1;
	`
	var (
		grant   domain.RoleGrant
		visible []string
	)
	err := r.Pool.QueryRow(ctx, query, string(role)).Scan(
		&grant.Role,
		&grant.ActionStatus,
		&visible,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find grant for role %s: %w", role, err)
	}

	grant.VisibleStatuses = make([]domain.DocumentStatus, len(visible))
	for i, v := range visible {
		grant.VisibleStatuses[i] = domain.DocumentStatus(v)
	}
	return &grant, nil
}

// SaveRoleGrant upserts the grant row for a role.
func (r *PgxPermissionRepository) SaveRoleGrant(ctx context.Context, grant domain.RoleGrant) error {
	visible := make([]string, len(grant.VisibleStatuses))
	for i, v := range grant.VisibleStatuses {
		visible[i] = string(v)
	}

	query := `
		INSERT INTO role_permissions (role, action_status, visible_statuses)
		VALUES ($1, $2, $3)
		ON CONFLICT (role) DO UPDATE SET
			action_status = EXCLUDED.action_status,
			visible_statuses = EXCLUDED.visible_statuses;
	`
	if _, err := r.Pool.Exec(ctx, query, string(grant.Role), string(grant.ActionStatus), visible); err != nil {
		return fmt.Errorf("failed to save grant for role %s: %w", grant.Role, err)
	}
	return nil
}
