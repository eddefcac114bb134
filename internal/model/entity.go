// Package model defines the core domain types for the portal's entity
// relationship graph and financial context resolution.
package model

import "fmt"

// EntityType identifies the kind of a business entity in the portal.
type EntityType string

// All entity types known to the portal.
const (
	EntityReceipt       EntityType = "receipt"
	EntityTransaction   EntityType = "transaction"
	EntityReimbursement EntityType = "reimbursement"
	EntityInventory     EntityType = "inventory"
	EntityBudget        EntityType = "budget"
	EntityFAQ           EntityType = "faq"
	EntityNews          EntityType = "news"
	EntityMail          EntityType = "mail"
	EntitySubmission    EntityType = "submission"
)

// FinancialTypes is the subset of entity types that carry monetary
// context and participate in priority resolution.
var FinancialTypes = []EntityType{
	EntityReceipt,
	EntityReimbursement,
	EntityTransaction,
}

// Valid reports whether t is a known entity type.
func (t EntityType) Valid() bool {
	switch t {
	case EntityReceipt, EntityTransaction, EntityReimbursement,
		EntityInventory, EntityBudget, EntityFAQ,
		EntityNews, EntityMail, EntitySubmission:
		return true
	}
	return false
}

// IsFinancial reports whether t belongs to the financial subset.
func (t EntityType) IsFinancial() bool {
	switch t {
	case EntityReceipt, EntityReimbursement, EntityTransaction:
		return true
	}
	return false
}

// EntityRef identifies any entity uniformly by type and id.
// It is a value type with no ownership semantics.
type EntityRef struct {
	Type EntityType
	ID   string
}

// IsZero reports whether the ref has no id. Refs without ids occur for
// draft entities that have not been persisted yet.
func (r EntityRef) IsZero() bool {
	return r.ID == ""
}

// Equal reports whether two refs identify the same entity.
func (r EntityRef) Equal(other EntityRef) bool {
	return r.Type == other.Type && r.ID == other.ID
}

func (r EntityRef) String() string {
	return fmt.Sprintf("%s/%s", r.Type, r.ID)
}

// Entity is implemented by every concrete entity record that can appear
// as a relationship endpoint.
type Entity interface {
	Ref() EntityRef
}
