package services

import (
	"github.com/redis/go-redis/v9"

	portsrepo "github.com/NotariaHQ/notaria_backend/internal/core/ports/repositories"
	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
	"github.com/NotariaHQ/notaria_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories and outbound
// clients. Pass a nil redis client to run permission lookups uncached.
func NewServiceContainer(
	cfg *config.Config,
	repos *portsrepo.RepositoryProvider,
	cache *redis.Client,
	gateway portssvc.PaymentGatewayClient,
	storage portssvc.FileStorageClient,
	mailer portssvc.Mailer,
) *portssvc.ServiceContainer {
	permissions := NewPermissionService(repos.PermissionRepo, cache)
	workflowSvc := NewWorkflowService(repos.StatusRepo, repos.DocumentRepo, permissions)
	signatureSvc := NewSignatureService(
		repos.SignatureRepo,
		repos.DocumentRepo,
		repos.PaymentRepo,
		workflowSvc,
		gateway,
		mailer,
		cfg.PaymentReturnURL,
		cfg.PaymentCancelURL,
	)
	documentSvc := NewDocumentService(repos.DocumentRepo, repos.CatalogRepo, workflowSvc, storage, mailer)
	catalogSvc := NewCatalogService(repos.CatalogRepo)

	return &portssvc.ServiceContainer{
		Workflow:  workflowSvc,
		Signature: signatureSvc,
		Document:  documentSvc,
		Catalog:   catalogSvc,
	}
}
