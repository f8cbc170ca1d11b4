package dto

import (
	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFieldRequest creates a notarization field (category).
type CreateFieldRequest struct {
	Name        string `json:"name" binding:"required,notblank"`
	Description string `json:"description"`
}

// CreateServiceRequest creates a priced notarization service within a field.
type CreateServiceRequest struct {
	FieldID     string          `json:"fieldID" binding:"required"`
	Name        string          `json:"name" binding:"required,notblank"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
}

// FieldResponse is a notarization field representation.
type FieldResponse struct {
	FieldID     string `json:"fieldID"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ServiceResponse is a notarization service representation.
type ServiceResponse struct {
	ServiceID   string          `json:"serviceID"`
	FieldID     string          `json:"fieldID"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// ToFieldResponse converts a domain.NotarizationField to its response DTO.
func ToFieldResponse(f *domain.NotarizationField) FieldResponse {
	return FieldResponse{FieldID: f.FieldID, Name: f.Name, Description: f.Description}
}

// ToServiceResponse converts a domain.NotarizationService to its response DTO.
func ToServiceResponse(s *domain.NotarizationService) ServiceResponse {
	return ServiceResponse{
		ServiceID:   s.ServiceID,
		FieldID:     s.FieldID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price,
	}
}
