package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/model"
)

// SaveReceipt inserts a receipt, or replaces its mutable fields if a
// row with the same id already exists.
func (s *SQLiteStorage) SaveReceipt(ctx context.Context, receipt *model.Receipt) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if receipt == nil {
		return fmt.Errorf("%w: receipt", ErrNilParameter)
	}
	if err := validateString(receipt.ID, "receipt.ID"); err != nil {
		return err
	}

	if receipt.Currency == "" {
		receipt.Currency = model.DefaultCurrency
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO receipts (id, store_name, purchase_date, total_amount, currency, items, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			store_name = excluded.store_name,
			purchase_date = excluded.purchase_date,
			total_amount = excluded.total_amount,
			currency = excluded.currency,
			items = excluded.items,
			updated_at = CURRENT_TIMESTAMP
	`, receipt.ID, receipt.StoreName, receipt.PurchaseDate, receipt.TotalAmount,
		receipt.Currency, receipt.Items, receipt.CreatedBy)
	if err != nil {
		return fmt.Errorf("failed to save receipt %s: %w", receipt.ID, err)
	}

	return nil
}

// GetReceipt retrieves a single receipt by id.
func (s *SQLiteStorage) GetReceipt(ctx context.Context, id string) (*model.Receipt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, store_name, purchase_date, total_amount, currency, items, created_by, created_at, updated_at
		FROM receipts
		WHERE id = ?
	`, id)

	receipt, err := scanReceipt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: receipt %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	return receipt, nil
}

// ListReceipts returns all receipts, newest first.
func (s *SQLiteStorage) ListReceipts(ctx context.Context) ([]model.Receipt, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, store_name, purchase_date, total_amount, currency, items, created_by, created_at, updated_at
		FROM receipts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var receipts []model.Receipt
	for rows.Next() {
		receipt, scanErr := scanReceipt(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", scanErr)
		}
		receipts = append(receipts, *receipt)
	}

	return receipts, rows.Err()
}

// applyReceiptContext writes propagated context fields into a receipt row.
func (s *SQLiteStorage) applyReceiptContext(ctx context.Context, id string, update model.ContextUpdate) error {
	return s.applyPartialUpdate(ctx, "receipts", id, map[string]any{
		"store_name":    derefString(update.Description),
		"purchase_date": derefTime(update.Date),
		"total_amount":  derefFloat(update.Amount),
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row rowScanner) (*model.Receipt, error) {
	var receipt model.Receipt
	var purchaseDate sql.NullTime
	var items, createdBy sql.NullString

	err := row.Scan(&receipt.ID, &receipt.StoreName, &purchaseDate, &receipt.TotalAmount,
		&receipt.Currency, &items, &createdBy, &receipt.CreatedAt, &receipt.UpdatedAt)
	if err != nil {
		return nil, err
	}

	receipt.PurchaseDate = purchaseDate.Time
	receipt.Items = items.String
	receipt.CreatedBy = createdBy.String
	return &receipt, nil
}

func derefString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func derefFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func derefTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
