package repositories

// RepositoryProvider bundles every repository implementation so wiring stays
// in one place (see pgsql.NewRepositoryProvider).
type RepositoryProvider struct {
	DocumentRepo   DocumentRepositoryFacade
	StatusRepo     StatusRepositoryFacade
	SignatureRepo  SignatureRepositoryFacade
	PaymentRepo    PaymentRepositoryFacade
	CatalogRepo    CatalogRepositoryFacade
	PermissionRepo PermissionRepositoryFacade
}
