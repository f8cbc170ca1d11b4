package domain

import "github.com/shopspring/decimal"

// DocumentFile is one stored upload belonging to a document.
type DocumentFile struct {
	FileName string `json:"fileName"`
	FileURL  string `json:"fileURL"`
}

// RequesterInfo is the citizen contact block captured at submission.
// Immutable after creation.
type RequesterInfo struct {
	CitizenID   string `json:"citizenID"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

// Document is a notarization request. The field/service name, description and
// price are denormalized onto the document at creation time so later catalog
// edits never change what the requester agreed to pay.
type Document struct {
	DocumentID string         `json:"documentID"`
	UserID     string         `json:"userID"` // owning requester
	Files      []DocumentFile `json:"files"`
	Requester  RequesterInfo  `json:"requester"`

	FieldID            string          `json:"fieldID"`
	FieldName          string          `json:"fieldName"`
	ServiceID          string          `json:"serviceID"`
	ServiceName        string          `json:"serviceName"`
	ServiceDescription string          `json:"serviceDescription"`
	ServicePrice       decimal.Decimal `json:"servicePrice"` // snapshot, not a catalog reference

	PaymentID   *string `json:"paymentID,omitempty"`
	CheckoutURL *string `json:"checkoutURL,omitempty"`

	AuditFields
}

// DocumentWithStatus pairs a document with its current workflow status for
// role-scoped listings.
type DocumentWithStatus struct {
	Document
	Status DocumentStatus `json:"status"`
}
