package dto

import (
	"time"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApproveByRequesterRequest is the citizen's sign-off payload.
type ApproveByRequesterRequest struct {
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	SignatureImage string          `json:"signatureImage"`
}

// ApprovalResponse is one party's sign-off state.
type ApprovalResponse struct {
	Approved   bool       `json:"approved"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
}

// SignatureResponse is the signature request representation returned to clients.
type SignatureResponse struct {
	SignatureID   string           `json:"signatureID"`
	DocumentID    string           `json:"documentID"`
	Amount        decimal.Decimal  `json:"amount"`
	UserApproval  ApprovalResponse `json:"userApproval"`
	StaffApproval ApprovalResponse `json:"staffApproval"`
}

// ApproveByStaffResponse acknowledges the completed sign-off and carries the
// generated checkout link. Warning is set when the notification email failed
// after the sign-off itself succeeded.
type ApproveByStaffResponse struct {
	Message     string `json:"message"`
	DocumentID  string `json:"documentID"`
	CheckoutURL string `json:"checkoutUrl"`
	Warning     string `json:"warning,omitempty"`
}

// ToSignatureResponse converts a domain.SignatureRequest to its response DTO.
func ToSignatureResponse(s *domain.SignatureRequest) SignatureResponse {
	return SignatureResponse{
		SignatureID: s.SignatureID,
		DocumentID:  s.DocumentID,
		Amount:      s.Amount,
		UserApproval: ApprovalResponse{
			Approved:   s.UserApproval.Approved,
			ApprovedAt: s.UserApproval.ApprovedAt,
		},
		StaffApproval: ApprovalResponse{
			Approved:   s.StaffApproval.Approved,
			ApprovedAt: s.StaffApproval.ApprovedAt,
		},
	}
}
