// Package service defines the contracts the engine requires from its
// persistence collaborators.
package service

import (
	"context"
	"time"

	"github.com/kiltahuone/paperclip/internal/model"
)

// RelationshipStore persists typed bidirectional links between
// entities. Any storage technology qualifies as long as it guarantees
// unordered-pair uniqueness and both-slot lookup.
type RelationshipStore interface {
	// CreateRelationship stores a new edge. It fails with
	// common.ErrDuplicateLink when the unordered pair already exists in
	// either slot orientation, and with common.ErrSelfLink when a and b
	// are identical.
	CreateRelationship(ctx context.Context, a, b model.EntityRef, metadata, createdBy string) (*model.Relationship, error)
	// DeleteRelationship removes an edge by id, failing with
	// common.ErrNotFound when no such edge exists.
	DeleteRelationship(ctx context.Context, id string) error
	// GetRelationshipsFor returns every edge where ref occupies either
	// slot, in creation order.
	GetRelationshipsFor(ctx context.Context, ref model.EntityRef) ([]model.Relationship, error)
	// RelationshipExists reports whether the unordered pair is linked.
	RelationshipExists(ctx context.Context, a, b model.EntityRef) (bool, error)
}

// EntityStore resolves entity refs to full records and applies
// propagated context fields to an entity's own record. Non-financial
// portal entities live in the host application; implementations return
// common.ErrUnsupportedEntityType for refs they do not manage.
type EntityStore interface {
	GetEntity(ctx context.Context, ref model.EntityRef) (model.Entity, error)
	ListEntities(ctx context.Context, entityType model.EntityType) ([]model.Entity, error)
	ApplyContext(ctx context.Context, ref model.EntityRef, update model.ContextUpdate) error
}

// Storage is the full persistence contract the portal backend supplies.
type Storage interface {
	RelationshipStore
	EntityStore

	// Receipt operations
	SaveReceipt(ctx context.Context, receipt *model.Receipt) error
	GetReceipt(ctx context.Context, id string) (*model.Receipt, error)
	ListReceipts(ctx context.Context) ([]model.Receipt, error)

	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)

	// Reimbursement operations
	SaveReimbursement(ctx context.Context, reimbursement *model.Reimbursement) error
	GetReimbursement(ctx context.Context, id string) (*model.Reimbursement, error)
	ListReimbursements(ctx context.Context) ([]model.Reimbursement, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
