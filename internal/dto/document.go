package dto

import (
	"time"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDocumentFile is one uploaded file in a submission. Content is
// base64-encoded on the wire.
type CreateDocumentFile struct {
	FileName    string `json:"fileName" binding:"required,notblank"`
	ContentType string `json:"contentType" binding:"required"`
	Content     []byte `json:"content" binding:"required"`
}

// RequesterInfoRequest carries the citizen contact block of a submission.
type RequesterInfoRequest struct {
	CitizenID   string `json:"citizenID" binding:"required,notblank"`
	PhoneNumber string `json:"phoneNumber" binding:"required,notblank"`
	Email       string `json:"email" binding:"required,email"`
}

// CreateDocumentRequest is the payload for submitting a document for
// notarization. At least one file is required.
type CreateDocumentRequest struct {
	ServiceID string               `json:"serviceID" binding:"required"`
	Requester RequesterInfoRequest `json:"requester" binding:"required"`
	Files     []CreateDocumentFile `json:"files" binding:"required,min=1,dive"`
}

// DocumentFileResponse is a stored file reference.
type DocumentFileResponse struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileURL"`
}

// DocumentResponse is the document representation returned to clients.
type DocumentResponse struct {
	DocumentID         string                 `json:"documentID"`
	UserID             string                 `json:"userID"`
	Files              []DocumentFileResponse `json:"files"`
	CitizenID          string                 `json:"citizenID"`
	PhoneNumber        string                 `json:"phoneNumber"`
	Email              string                 `json:"email"`
	FieldName          string                 `json:"fieldName"`
	ServiceName        string                 `json:"serviceName"`
	ServiceDescription string                 `json:"serviceDescription"`
	ServicePrice       decimal.Decimal        `json:"servicePrice"`
	PaymentID          *string                `json:"paymentID,omitempty"`
	CheckoutURL        *string                `json:"checkoutURL,omitempty"`
	CreatedAt          time.Time              `json:"createdAt"`
}

// CreateDocumentResponse wraps the created document plus an optional warning
// for secondary failures (e.g. the notification email could not be sent).
type CreateDocumentResponse struct {
	Document DocumentResponse `json:"document"`
	Warning  string           `json:"warning,omitempty"`
}

// ToDocumentResponse converts a domain.Document to its response DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	files := make([]DocumentFileResponse, len(d.Files))
	for i, f := range d.Files {
		files[i] = DocumentFileResponse{FileName: f.FileName, FileURL: f.FileURL}
	}
	return DocumentResponse{
		DocumentID:         d.DocumentID,
		UserID:             d.UserID,
		Files:              files,
		CitizenID:          d.Requester.CitizenID,
		PhoneNumber:        d.Requester.PhoneNumber,
		Email:              d.Requester.Email,
		FieldName:          d.FieldName,
		ServiceName:        d.ServiceName,
		ServiceDescription: d.ServiceDescription,
		ServicePrice:       d.ServicePrice,
		PaymentID:          d.PaymentID,
		CheckoutURL:        d.CheckoutURL,
		CreatedAt:          d.CreatedAt,
	}
}
