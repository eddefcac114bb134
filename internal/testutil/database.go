// Package testutil provides test helpers for the paperclip project.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/kiltahuone/paperclip/internal/model"
	"github.com/kiltahuone/paperclip/internal/storage"
)

// SetupTestDB creates a new in-memory SQLite store, runs migrations,
// and registers cleanup.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// Receipt builds a receipt fixture with sensible defaults.
func Receipt(id, store string, total float64) *model.Receipt {
	return &model.Receipt{
		ID:           id,
		StoreName:    store,
		PurchaseDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		TotalAmount:  total,
		Currency:     model.DefaultCurrency,
		CreatedBy:    "member-1",
	}
}

// Transaction builds a transaction fixture with sensible defaults.
func Transaction(id, description string, amount float64) *model.Transaction {
	return &model.Transaction{
		ID:          id,
		Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      amount,
		AccountID:   "FI0012345",
	}
}

// Reimbursement builds a reimbursement fixture with sensible defaults.
func Reimbursement(id, description string, amount float64) *model.Reimbursement {
	return &model.Reimbursement{
		ID:          id,
		Description: description,
		Amount:      amount,
		Status:      model.ReimbursementPending,
		CreatedBy:   "member-2",
	}
}
