package repositories

import (
	"context"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
)

// PermissionRepositoryFacade defines persistence for role workflow grants.
type PermissionRepositoryFacade interface {
	// FindRoleGrant retrieves the grant row for a role. Returns
	// apperrors.ErrNotFound when the role has no stored grant.
	FindRoleGrant(ctx context.Context, role domain.StaffRole) (*domain.RoleGrant, error)

	// SaveRoleGrant upserts the grant row for a role.
	SaveRoleGrant(ctx context.Context, grant domain.RoleGrant) error
}
