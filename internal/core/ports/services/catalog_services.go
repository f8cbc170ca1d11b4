package services

import (
	"context"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	"github.com/NotariaHQ/notaria_backend/internal/dto"
)

// CatalogSvcFacade manages the notarization field/service reference data that
// document submissions snapshot their pricing from.
type CatalogSvcFacade interface {
	CreateField(ctx context.Context, req dto.CreateFieldRequest, creatorUserID string) (*domain.NotarizationField, error)
	CreateService(ctx context.Context, req dto.CreateServiceRequest, creatorUserID string) (*domain.NotarizationService, error)
	ListFields(ctx context.Context) ([]domain.NotarizationField, error)
	ListServices(ctx context.Context, fieldID string) ([]domain.NotarizationService, error)
	GetService(ctx context.Context, serviceID string) (*domain.NotarizationService, error)
}
