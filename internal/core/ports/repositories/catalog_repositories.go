package repositories

import (
	"context"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
)

// CatalogReader defines read operations for notarization reference data
type CatalogReader interface {
	FindFieldByID(ctx context.Context, fieldID string) (*domain.NotarizationField, error)
	FindServiceByID(ctx context.Context, serviceID string) (*domain.NotarizationService, error)
	ListFields(ctx context.Context) ([]domain.NotarizationField, error)
	ListServicesByField(ctx context.Context, fieldID string) ([]domain.NotarizationService, error)
}

// CatalogWriter defines write operations for notarization reference data
type CatalogWriter interface {
	SaveField(ctx context.Context, field domain.NotarizationField) error
	SaveService(ctx context.Context, service domain.NotarizationService) error
}

// CatalogRepositoryFacade combines all catalog-related repository interfaces
type CatalogRepositoryFacade interface {
	CatalogReader
	CatalogWriter
}
