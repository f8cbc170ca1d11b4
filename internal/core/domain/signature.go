package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Approval is one party's sign-off sub-record.
type Approval struct {
	Approved   bool       `json:"approved"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
}

// SignatureRequest is the per-document two-party sign-off record, created
// lazily on the requester's first approval. The secretary approval may only be
// set once the requester approval is already true (the citizen signs first).
type SignatureRequest struct {
	SignatureID    string          `json:"signatureID"`
	DocumentID     string          `json:"documentID"`
	Amount         decimal.Decimal `json:"amount"`
	SignatureImage string          `json:"signatureImage"` // opaque image reference
	UserApproval   Approval        `json:"userApproval"`
	StaffApproval  Approval        `json:"staffApproval"`
	AuditFields
}
