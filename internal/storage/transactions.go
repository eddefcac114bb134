package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/model"
)

// SaveTransactions saves multiple transactions. Rows whose hash already
// exists are skipped, which makes repeated imports of the same bank
// statement a no-op.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (id, hash, date, description, category, account_id, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}

		_, err = stmt.ExecContext(ctx,
			txn.ID,
			txn.Hash,
			txn.Date,
			txn.Description,
			txn.Category,
			txn.AccountID,
			txn.Amount,
		)
		if err != nil {
			return markRetryable(fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err))
		}
	}

	return markRetryable(tx.Commit())
}

// GetTransaction retrieves a single transaction by id.
func (s *SQLiteStorage) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, hash, date, description, category, account_id, amount, created_at, updated_at
		FROM transactions
		WHERE id = ?
	`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return txn, nil
}

// ListTransactions returns all transactions, newest first.
func (s *SQLiteStorage) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hash, date, description, category, account_id, amount, created_at, updated_at
		FROM transactions
		ORDER BY date DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, *txn)
	}

	return transactions, rows.Err()
}

// applyTransactionContext writes propagated context fields into a
// transaction row.
func (s *SQLiteStorage) applyTransactionContext(ctx context.Context, id string, update model.ContextUpdate) error {
	return s.applyPartialUpdate(ctx, "transactions", id, map[string]any{
		"date":        derefTime(update.Date),
		"description": derefString(update.Description),
		"category":    derefString(update.Category),
		"amount":      derefFloat(update.Amount),
	})
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var hash, category, accountID sql.NullString

	err := row.Scan(&txn.ID, &hash, &txn.Date, &txn.Description, &category,
		&accountID, &txn.Amount, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return nil, err
	}

	txn.Hash = hash.String
	txn.Category = category.String
	txn.AccountID = accountID.String
	return &txn, nil
}
