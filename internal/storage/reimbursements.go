package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/model"
)

// SaveReimbursement inserts a reimbursement, or replaces its mutable
// fields if a row with the same id already exists.
func (s *SQLiteStorage) SaveReimbursement(ctx context.Context, reimbursement *model.Reimbursement) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if reimbursement == nil {
		return fmt.Errorf("%w: reimbursement", ErrNilParameter)
	}
	if err := validateString(reimbursement.ID, "reimbursement.ID"); err != nil {
		return err
	}

	if reimbursement.Status == "" {
		reimbursement.Status = model.ReimbursementPending
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reimbursements (id, description, amount, status, created_by)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			description = excluded.description,
			amount = excluded.amount,
			status = excluded.status,
			updated_at = CURRENT_TIMESTAMP
	`, reimbursement.ID, reimbursement.Description, reimbursement.Amount,
		reimbursement.Status, reimbursement.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to save reimbursement %s: %w", reimbursement.ID, err)
	}

	return nil
}

// GetReimbursement retrieves a single reimbursement by id.
func (s *SQLiteStorage) GetReimbursement(ctx context.Context, id string) (*model.Reimbursement, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, description, amount, status, created_by, created_at, updated_at
		FROM reimbursements
		WHERE id = ?
	`, id)

	reimbursement, err := scanReimbursement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: reimbursement %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reimbursement: %w", err)
	}

	return reimbursement, nil
}

// ListReimbursements returns all reimbursements, newest first.
func (s *SQLiteStorage) ListReimbursements(ctx context.Context) ([]model.Reimbursement, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, description, amount, status, created_by, created_at, updated_at
		FROM reimbursements
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reimbursements: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reimbursements []model.Reimbursement
	for rows.Next() {
		reimbursement, scanErr := scanReimbursement(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan reimbursement: %w", scanErr)
		}
		reimbursements = append(reimbursements, *reimbursement)
	}

	return reimbursements, rows.Err()
}

// applyReimbursementContext writes propagated context fields into a
// reimbursement row. Reimbursements have no date column of their own;
// propagated dates are dropped.
func (s *SQLiteStorage) applyReimbursementContext(ctx context.Context, id string, update model.ContextUpdate) error {
	return s.applyPartialUpdate(ctx, "reimbursements", id, map[string]any{
		"description": derefString(update.Description),
		"amount":      derefFloat(update.Amount),
	})
}

func scanReimbursement(row rowScanner) (*model.Reimbursement, error) {
	var reimbursement model.Reimbursement
	var createdBy sql.NullString

	err := row.Scan(&reimbursement.ID, &reimbursement.Description, &reimbursement.Amount,
		&reimbursement.Status, &createdBy, &reimbursement.CreatedAt, &reimbursement.UpdatedAt)
	if err != nil {
		return nil, err
	}

	reimbursement.CreatedBy = createdBy.String
	return &reimbursement, nil
}
