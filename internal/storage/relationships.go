package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/model"
)

// CreateRelationship stores a new edge between a and b. The slot
// assignment follows the argument order but carries no meaning; the
// unordered pair is checked for uniqueness in both orientations before
// the insert, inside a single transaction.
func (s *SQLiteStorage) CreateRelationship(ctx context.Context, a, b model.EntityRef, metadata, createdBy string) (*model.Relationship, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateRef(a, "a"); err != nil {
		return nil, err
	}
	if err := validateRef(b, "b"); err != nil {
		return nil, err
	}
	if a.Equal(b) {
		return nil, fmt.Errorf("%w: %s", common.ErrSelfLink, a)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	exists, err := relationshipExistsTx(ctx, tx, a, b)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s and %s", common.ErrDuplicateLink, a, b)
	}

	rel := &model.Relationship{
		ID:        uuid.NewString(),
		AType:     a.Type,
		AID:       a.ID,
		BType:     b.Type,
		BID:       b.ID,
		Metadata:  metadata,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO relationships (id, a_type, a_id, b_type, b_id, metadata, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rel.ID, rel.AType, rel.AID, rel.BType, rel.BID, rel.Metadata, rel.CreatedBy, rel.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert relationship: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit relationship: %w", err)
	}

	return rel, nil
}

// DeleteRelationship removes an edge by id.
func (s *SQLiteStorage) DeleteRelationship(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: relationship %s", common.ErrNotFound, id)
	}

	return nil
}

// GetRelationshipsFor returns every edge where ref occupies either
// slot, in creation order. Callers must never assume which slot the
// focal entity was stored in.
func (s *SQLiteStorage) GetRelationshipsFor(ctx context.Context, ref model.EntityRef) ([]model.Relationship, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateRef(ref, "ref"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, a_type, a_id, b_type, b_id, metadata, created_by, created_at
		FROM relationships
		WHERE (a_type = ? AND a_id = ?) OR (b_type = ? AND b_id = ?)
		ORDER BY created_at ASC, id ASC
	`, ref.Type, ref.ID, ref.Type, ref.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query relationships: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanRelationships(rows)
}

// RelationshipExists reports whether the unordered pair {a, b} is
// linked, regardless of slot orientation.
func (s *SQLiteStorage) RelationshipExists(ctx context.Context, a, b model.EntityRef) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	if err := validateRef(a, "a"); err != nil {
		return false, err
	}
	if err := validateRef(b, "b"); err != nil {
		return false, err
	}

	return relationshipExistsTx(ctx, s.db, a, b)
}

func relationshipExistsTx(ctx context.Context, q queryable, a, b model.EntityRef) (bool, error) {
	var exists bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM relationships
			WHERE (a_type = ? AND a_id = ? AND b_type = ? AND b_id = ?)
			   OR (a_type = ? AND a_id = ? AND b_type = ? AND b_id = ?)
		)
	`, a.Type, a.ID, b.Type, b.ID, b.Type, b.ID, a.Type, a.ID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check relationship existence: %w", err)
	}
	return exists, nil
}

func scanRelationships(rows *sql.Rows) ([]model.Relationship, error) {
	var relationships []model.Relationship
	for rows.Next() {
		var rel model.Relationship
		var metadata, createdBy sql.NullString

		if err := rows.Scan(&rel.ID, &rel.AType, &rel.AID, &rel.BType, &rel.BID,
			&metadata, &createdBy, &rel.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan relationship: %w", err)
		}

		rel.Metadata = metadata.String
		rel.CreatedBy = createdBy.String
		relationships = append(relationships, rel)
	}

	return relationships, rows.Err()
}
