package model

import "time"

// ReimbursementStatus tracks where a reimbursement request is in its
// approval flow.
type ReimbursementStatus string

// Reimbursement statuses.
const (
	ReimbursementPending  ReimbursementStatus = "pending"
	ReimbursementApproved ReimbursementStatus = "approved"
	ReimbursementPaid     ReimbursementStatus = "paid"
	ReimbursementRejected ReimbursementStatus = "rejected"
)

// Reimbursement is a member's request to be paid back for an expense.
// Amount is the requested sum, always non-negative.
type Reimbursement struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	Description string
	Status      ReimbursementStatus
	CreatedBy   string
	Amount      float64
}

// Ref implements Entity.
func (r *Reimbursement) Ref() EntityRef {
	return EntityRef{Type: EntityReimbursement, ID: r.ID}
}
