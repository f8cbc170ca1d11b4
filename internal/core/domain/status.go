package domain

import "time"

// DocumentStatus is the custody state of a document inside the notarization workflow.
type DocumentStatus string

const (
	StatusPending          DocumentStatus = "pending"
	StatusVerification     DocumentStatus = "verification"
	StatusProcessing       DocumentStatus = "processing"
	StatusDigitalSignature DocumentStatus = "digitalSignature"
	StatusCompleted        DocumentStatus = "completed"
	// StatusRejected is terminal and sits outside the forward order.
	StatusRejected DocumentStatus = "rejected"
)

// forwardOrder is the fixed linear progression of a document. No skipping.
var forwardOrder = []DocumentStatus{
	StatusPending,
	StatusVerification,
	StatusProcessing,
	StatusDigitalSignature,
	StatusCompleted,
}

// Next returns the forward-order successor of s. The second return value is
// false when s has no successor (last forward status, rejected, or unknown).
func (s DocumentStatus) Next() (DocumentStatus, bool) {
	for i, st := range forwardOrder {
		if st == s && i+1 < len(forwardOrder) {
			return forwardOrder[i+1], true
		}
	}
	return "", false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusRejected
}

// IsValid reports whether s is one of the defined statuses.
func (s DocumentStatus) IsValid() bool {
	if s == StatusRejected {
		return true
	}
	for _, st := range forwardOrder {
		if st == s {
			return true
		}
	}
	return false
}

// StatusEntry is the single authoritative status row for a document.
// Mutated only by the workflow service.
type StatusEntry struct {
	DocumentID    string         `json:"documentID"`
	Status        DocumentStatus `json:"status"`
	LastUpdatedAt time.Time      `json:"lastUpdatedAt"`
	LastUpdatedBy string         `json:"lastUpdatedBy"`
}

// ApproveHistoryRecord is one immutable audit line per status transition.
type ApproveHistoryRecord struct {
	HistoryID    string         `json:"historyID"`
	DocumentID   string         `json:"documentID"`
	ActorUserID  string         `json:"actorUserID"`
	BeforeStatus DocumentStatus `json:"beforeStatus"`
	AfterStatus  DocumentStatus `json:"afterStatus"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// WorkflowAction is the verb a caller applies to a document's status.
type WorkflowAction string

const (
	ActionAccept WorkflowAction = "accept"
	ActionReject WorkflowAction = "reject"
)
