package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
	"github.com/NotariaHQ/notaria_backend/internal/middleware"
)

// grantCacheTTL bounds staleness of cached role grants. Grants change rarely,
// so a generous TTL keeps the hot path off the database.
const grantCacheTTL = 10 * time.Minute

// defaultGrants is the built-in role mapping used when no grant row exists in
// the database: each staff role owns exactly one workflow stage.
var defaultGrants = map[domain.StaffRole]domain.RoleGrant{
	domain.RoleNotary: {
		Role:            domain.RoleNotary,
		ActionStatus:    domain.StatusProcessing,
		VisibleStatuses: []domain.DocumentStatus{domain.StatusProcessing},
	},
	domain.RoleSecretary: {
		Role:            domain.RoleSecretary,
		ActionStatus:    domain.StatusVerification,
		VisibleStatuses: []domain.DocumentStatus{domain.StatusVerification, domain.StatusDigitalSignature},
	},
}

// permissionService resolves role grants from the database through an optional
// redis read-through cache, falling back to the built-in defaults.
type permissionService struct {
	permissionRepo portsrepo.PermissionRepositoryFacade
	cache          *redis.Client // nil disables caching
}

// NewPermissionService creates a new PermissionResolver. Pass a nil cache to
// resolve straight from the repository.
func NewPermissionService(permissionRepo portsrepo.PermissionRepositoryFacade, cache *redis.Client) portssvc.PermissionResolver {
	return &permissionService{
		permissionRepo: permissionRepo,
		cache:          cache,
	}
}

// Ensure permissionService implements the portssvc.PermissionResolver interface
var _ portssvc.PermissionResolver = (*permissionService)(nil)

func grantCacheKey(role domain.StaffRole) string {
	return "notaria:grant:" + string(role)
}

// resolveGrant returns the grant for a role: cache, then database, then the
// built-in defaults. Roles absent from all three have no workflow authority.
func (s *permissionService) resolveGrant(ctx context.Context, role domain.StaffRole) (*domain.RoleGrant, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.cache != nil {
		raw, err := s.cache.Get(ctx, grantCacheKey(role)).Result()
		if err == nil {
			var grant domain.RoleGrant
			if unmarshalErr := json.Unmarshal([]byte(raw), &grant); unmarshalErr == nil {
				return &grant, nil
			}
			// Corrupt cache entry, fall through to the database.
			s.cache.Del(ctx, grantCacheKey(role))
		} else if !errors.Is(err, redis.Nil) {
			logger.Warn("Grant cache lookup failed", slog.String("role", string(role)), slog.String("error", err.Error()))
		}
	}

	grant, err := s.permissionRepo.FindRoleGrant(ctx, role)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			if fallback, ok := defaultGrants[role]; ok {
				grant = &fallback
			} else {
				return nil, fmt.Errorf("%w: role %s has no workflow authority", apperrors.ErrForbidden, role)
			}
		} else {
			logger.Error("Failed to load role grant", slog.String("role", string(role)), slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to load grant for role %s: %w", role, apperrors.ErrInternal)
		}
	}

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(grant); marshalErr == nil {
			if cacheErr := s.cache.Set(ctx, grantCacheKey(role), payload, grantCacheTTL).Err(); cacheErr != nil {
				logger.Warn("Failed to cache role grant", slog.String("role", string(role)), slog.String("error", cacheErr.Error()))
			}
		}
	}

	return grant, nil
}

// ActionStatus returns the single status the role may act on.
func (s *permissionService) ActionStatus(ctx context.Context, role domain.StaffRole) (domain.DocumentStatus, error) {
	grant, err := s.resolveGrant(ctx, role)
	if err != nil {
		return "", err
	}
	if !grant.ActionStatus.IsValid() {
		return "", fmt.Errorf("%w: role %s has no action status", apperrors.ErrForbidden, role)
	}
	return grant.ActionStatus, nil
}

// VisibleStatuses returns the statuses in the role's work queue.
func (s *permissionService) VisibleStatuses(ctx context.Context, role domain.StaffRole) ([]domain.DocumentStatus, error) {
	grant, err := s.resolveGrant(ctx, role)
	if err != nil {
		return nil, err
	}
	if len(grant.VisibleStatuses) == 0 {
		return nil, fmt.Errorf("%w: role %s has no visible statuses", apperrors.ErrForbidden, role)
	}
	return grant.VisibleStatuses, nil
}

// UpdateRoleGrant upserts a grant row and refreshes the cache entry so the
// change is visible on the next request.
func (s *permissionService) UpdateRoleGrant(ctx context.Context, grant domain.RoleGrant) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.permissionRepo.SaveRoleGrant(ctx, grant); err != nil {
		logger.Error("Failed to save role grant", slog.String("role", string(grant.Role)), slog.String("error", err.Error()))
		return fmt.Errorf("failed to save grant for role %s: %w", grant.Role, apperrors.ErrInternal)
	}

	if s.cache != nil {
		if payload, marshalErr := json.Marshal(&grant); marshalErr == nil {
			if cacheErr := s.cache.Set(ctx, grantCacheKey(grant.Role), payload, grantCacheTTL).Err(); cacheErr != nil {
				logger.Warn("Failed to refresh grant cache", slog.String("role", string(grant.Role)), slog.String("error", cacheErr.Error()))
			}
		}
	}

	return nil
}

// StaticPermissionResolver resolves grants from a fixed in-memory map. Useful
// where neither a database nor redis is wired.
type StaticPermissionResolver struct {
	Grants map[domain.StaffRole]domain.RoleGrant
}

// NewDefaultPermissionResolver returns a resolver backed by the built-in
// role mapping.
func NewDefaultPermissionResolver() *StaticPermissionResolver {
	return &StaticPermissionResolver{Grants: defaultGrants}
}

var _ portssvc.PermissionResolver = (*StaticPermissionResolver)(nil)

func (s *StaticPermissionResolver) ActionStatus(_ context.Context, role domain.StaffRole) (domain.DocumentStatus, error) {
	grant, ok := s.Grants[role]
	if !ok {
		return "", fmt.Errorf("%w: role %s has no workflow authority", apperrors.ErrForbidden, role)
	}
	return grant.ActionStatus, nil
}

func (s *StaticPermissionResolver) VisibleStatuses(_ context.Context, role domain.StaffRole) ([]domain.DocumentStatus, error) {
	grant, ok := s.Grants[role]
	if !ok {
		return nil, fmt.Errorf("%w: role %s has no workflow authority", apperrors.ErrForbidden, role)
	}
	return grant.VisibleStatuses, nil
}
