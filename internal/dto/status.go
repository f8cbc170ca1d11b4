package dto

import (
	"time"

	"github.com/NotariaHQ/notaria_backend/internal/core/domain"
)

// AdvanceStatusRequest is the payload for moving a document through the
// workflow. Action validation ("accept"/"reject") happens in the workflow
// service so unknown verbs get the documented error kind.
type AdvanceStatusRequest struct {
	Action string `json:"action" binding:"required"`
}

// StatusResponse is the current workflow status of a document.
type StatusResponse struct {
	DocumentID    string                `json:"documentID"`
	Status        domain.DocumentStatus `json:"status"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
}

// AdvanceStatusResponse acknowledges a successful transition.
type AdvanceStatusResponse struct {
	Message    string                `json:"message"`
	DocumentID string                `json:"documentID"`
	Status     domain.DocumentStatus `json:"status"`
}

// DocumentWithStatusResponse annotates a document with its current status
// for role-scoped work queues.
type DocumentWithStatusResponse struct {
	DocumentResponse
	Status domain.DocumentStatus `json:"status"`
}

// ApproveHistoryResponse is one audit line of a document's trail.
type ApproveHistoryResponse struct {
	HistoryID    string                `json:"historyID"`
	ActorUserID  string                `json:"actorUserID"`
	BeforeStatus domain.DocumentStatus `json:"beforeStatus"`
	AfterStatus  domain.DocumentStatus `json:"afterStatus"`
	CreatedAt    time.Time             `json:"createdAt"`
}

// ToStatusResponse converts a domain.StatusEntry to its response DTO.
func ToStatusResponse(e *domain.StatusEntry) StatusResponse {
	return StatusResponse{
		DocumentID:    e.DocumentID,
		Status:        e.Status,
		LastUpdatedAt: e.LastUpdatedAt,
	}
}

// ToDocumentWithStatusResponses converts role-queue listings.
func ToDocumentWithStatusResponses(docs []domain.DocumentWithStatus) []DocumentWithStatusResponse {
	out := make([]DocumentWithStatusResponse, len(docs))
	for i, d := range docs {
		out[i] = DocumentWithStatusResponse{
			DocumentResponse: ToDocumentResponse(&d.Document),
			Status:           d.Status,
		}
	}
	return out
}

// ToApproveHistoryResponses converts a document's audit trail.
func ToApproveHistoryResponses(records []domain.ApproveHistoryRecord) []ApproveHistoryResponse {
	out := make([]ApproveHistoryResponse, len(records))
	for i, r := range records {
		out[i] = ApproveHistoryResponse{
			HistoryID:    r.HistoryID,
			ActorUserID:  r.ActorUserID,
			BeforeStatus: r.BeforeStatus,
			AfterStatus:  r.AfterStatus,
			CreatedAt:    r.CreatedAt,
		}
	}
	return out
}
