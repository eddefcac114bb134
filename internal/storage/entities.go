package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/model"
)

// GetEntity resolves a ref to its full record. Only the financial
// entity types live in this store; the portal's other repositories are
// host-supplied, so any other type yields ErrUnsupportedEntityType.
func (s *SQLiteStorage) GetEntity(ctx context.Context, ref model.EntityRef) (model.Entity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateRef(ref, "ref"); err != nil {
		return nil, err
	}

	switch ref.Type {
	case model.EntityReceipt:
		return s.GetReceipt(ctx, ref.ID)
	case model.EntityTransaction:
		return s.GetTransaction(ctx, ref.ID)
	case model.EntityReimbursement:
		return s.GetReimbursement(ctx, ref.ID)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedEntityType, ref.Type)
	}
}

// ListEntities returns every stored record of the given financial type.
func (s *SQLiteStorage) ListEntities(ctx context.Context, entityType model.EntityType) ([]model.Entity, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	switch entityType {
	case model.EntityReceipt:
		receipts, err := s.ListReceipts(ctx)
		if err != nil {
			return nil, err
		}
		entities := make([]model.Entity, len(receipts))
		for i := range receipts {
			entities[i] = &receipts[i]
		}
		return entities, nil
	case model.EntityTransaction:
		transactions, err := s.ListTransactions(ctx)
		if err != nil {
			return nil, err
		}
		entities := make([]model.Entity, len(transactions))
		for i := range transactions {
			entities[i] = &transactions[i]
		}
		return entities, nil
	case model.EntityReimbursement:
		reimbursements, err := s.ListReimbursements(ctx)
		if err != nil {
			return nil, err
		}
		entities := make([]model.Entity, len(reimbursements))
		for i := range reimbursements {
			entities[i] = &reimbursements[i]
		}
		return entities, nil
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedEntityType, entityType)
	}
}

// ApplyContext writes propagated context fields into the entity's own
// record, dispatching on the entity type. Nil update fields are left
// untouched.
func (s *SQLiteStorage) ApplyContext(ctx context.Context, ref model.EntityRef, update model.ContextUpdate) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRef(ref, "ref"); err != nil {
		return err
	}
	if update.IsZero() {
		return nil
	}

	switch ref.Type {
	case model.EntityReceipt:
		return s.applyReceiptContext(ctx, ref.ID, update)
	case model.EntityTransaction:
		return s.applyTransactionContext(ctx, ref.ID, update)
	case model.EntityReimbursement:
		return s.applyReimbursementContext(ctx, ref.ID, update)
	default:
		return fmt.Errorf("%w: %s", common.ErrUnsupportedEntityType, ref.Type)
	}
}

// applyPartialUpdate issues an UPDATE over the non-nil columns only.
// Columns are sorted so the generated SQL is deterministic.
func (s *SQLiteStorage) applyPartialUpdate(ctx context.Context, table, id string, columns map[string]any) error {
	names := make([]string, 0, len(columns))
	for name, value := range columns {
		if value != nil {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	assignments := make([]string, 0, len(names)+1)
	args := make([]any, 0, len(names)+1)
	for _, name := range names {
		assignments = append(assignments, name+" = ?")
		args = append(args, columns[name])
	}
	assignments = append(assignments, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(assignments, ", "))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", table, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s %s", common.ErrNotFound, strings.TrimSuffix(table, "s"), id)
	}

	return nil
}
