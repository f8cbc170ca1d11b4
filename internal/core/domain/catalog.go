package domain

import "github.com/shopspring/decimal"

// NotarizationField is a top-level category of notarization service
// (e.g. "Property", "Civil").
type NotarizationField struct {
	FieldID     string `json:"fieldID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}

// NotarizationService is a priced, described offering within a field. Its
// price is copied onto documents at submission time; editing it here never
// touches existing documents.
type NotarizationService struct {
	ServiceID   string          `json:"serviceID"`
	FieldID     string          `json:"fieldID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	AuditFields
}
