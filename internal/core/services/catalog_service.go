package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/NotariaHQ/notaria_backend/internal/apperrors"
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
	"github.com/NotariaHQ/notaria_backend/internal/dto"
	"github.com/NotariaHQ/notaria_backend/internal/middleware"
)

// catalogService manages the notarization field/service reference data.
type catalogService struct {
	catalogRepo portsrepo.CatalogRepositoryFacade
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(catalogRepo portsrepo.CatalogRepositoryFacade) portssvc.CatalogSvcFacade {
	return &catalogService{catalogRepo: catalogRepo}
}

// Ensure catalogService implements the portssvc.CatalogSvcFacade interface
var _ portssvc.CatalogSvcFacade = (*catalogService)(nil)

func (s *catalogService) CreateField(ctx context.Context, req dto.CreateFieldRequest, creatorUserID string) (*domain.NotarizationField, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	field := domain.NotarizationField{
		FieldID:     uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.catalogRepo.SaveField(ctx, field); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("field %q already exists: %w", req.Name, err)
		}
		logger.Error("Failed to save field", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save field: %w", apperrors.ErrInternal)
	}

	logger.Info("Notarization field created", slog.String("field_id", field.FieldID), slog.String("name", field.Name))
	return &field, nil
}

func (s *catalogService) CreateService(ctx context.Context, req dto.CreateServiceRequest, creatorUserID string) (*domain.NotarizationService, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", apperrors.ErrValidation)
	}

	if _, err := s.catalogRepo.FindFieldByID(ctx, req.FieldID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("field %s not found: %w", req.FieldID, err)
		}
		logger.Error("Failed to load field", slog.String("field_id", req.FieldID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load field: %w", apperrors.ErrInternal)
	}

	now := time.Now().UTC()
	service := domain.NotarizationService{
		ServiceID:   uuid.NewString(),
		FieldID:     req.FieldID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.catalogRepo.SaveService(ctx, service); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("service %q already exists in field %s: %w", req.Name, req.FieldID, err)
		}
		logger.Error("Failed to save service", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save service: %w", apperrors.ErrInternal)
	}

	logger.Info("Notarization service created",
		slog.String("service_id", service.ServiceID),
		slog.String("field_id", service.FieldID),
		slog.String("name", service.Name))
	return &service, nil
}

func (s *catalogService) ListFields(ctx context.Context) ([]domain.NotarizationField, error) {
	fields, err := s.catalogRepo.ListFields(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list fields", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list fields: %w", apperrors.ErrInternal)
	}
	return fields, nil
}

func (s *catalogService) ListServices(ctx context.Context, fieldID string) ([]domain.NotarizationService, error) {
	services, err := s.catalogRepo.ListServicesByField(ctx, fieldID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list services", slog.String("field_id", fieldID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list services for field %s: %w", fieldID, apperrors.ErrInternal)
	}
	return services, nil
}

func (s *catalogService) GetService(ctx context.Context, serviceID string) (*domain.NotarizationService, error) {
	service, err := s.catalogRepo.FindServiceByID(ctx, serviceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find service", slog.String("service_id", serviceID), slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to find service %s: %w", serviceID, err)
	}
	return service, nil
}
