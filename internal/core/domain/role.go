package domain

// StaffRole identifies an actor's workflow authority.
type StaffRole string

const (
	RoleNotary    StaffRole = "notary"
	RoleSecretary StaffRole = "secretary"
	// RoleAdmin manages the service catalog. Admins have no workflow grant.
	RoleAdmin StaffRole = "admin"
	// RoleRequester is the citizen submitting the document. Requesters never
	// drive advance(); they only participate in the signature sign-off.
	RoleRequester StaffRole = "user"
)

// RoleGrant is the read-only permission row resolved per role at request time:
// the single status the role may act on, and the statuses visible in its queue.
type RoleGrant struct {
	Role            StaffRole        `json:"role"`
	ActionStatus    DocumentStatus   `json:"actionStatus"`
	VisibleStatuses []DocumentStatus `json:"visibleStatuses"`
}
