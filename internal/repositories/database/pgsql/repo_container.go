package pgsql

import (
	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		DocumentRepo:   newPgxDocumentRepository(dbPool),
		StatusRepo:     newPgxStatusRepository(dbPool),
		SignatureRepo:  newPgxSignatureRepository(dbPool),
		PaymentRepo:    newPgxPaymentRepository(dbPool),
		CatalogRepo:    newPgxCatalogRepository(dbPool),
		PermissionRepo: newPgxPermissionRepository(dbPool),
	}
}
