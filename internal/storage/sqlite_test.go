package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiltahuone/paperclip/internal/model"
)

// createTestStorage creates an in-memory store with migrations applied.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)

	require.NoError(t, store.Migrate(context.Background()))

	return store, func() {
		_ = store.Close()
	}
}

func testReceipt(id string) *model.Receipt {
	return &model.Receipt{
		ID:           id,
		StoreName:    "K-Market Oulu",
		PurchaseDate: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		TotalAmount:  50.0,
		Currency:     "EUR",
		CreatedBy:    "member-1",
	}
}

func testTransaction(id string, amount float64) model.Transaction {
	return model.Transaction{
		ID:          id,
		Date:        time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: "K-MARKET 1234",
		Amount:      amount,
		AccountID:   "FI0012345",
	}
}

func testReimbursement(id string) *model.Reimbursement {
	return &model.Reimbursement{
		ID:          id,
		Description: "groceries",
		Amount:      45.0,
		Status:      model.ReimbursementPending,
		CreatedBy:   "member-2",
	}
}

func TestNewSQLiteStorage(t *testing.T) {
	t.Run("in-memory database", func(t *testing.T) {
		store, err := NewSQLiteStorage(":memory:")
		require.NoError(t, err)
		defer func() { _ = store.Close() }()

		require.NoError(t, store.Migrate(context.Background()))
	})

	t.Run("empty path rejected", func(t *testing.T) {
		_, err := NewSQLiteStorage("")
		assert.Error(t, err)
	})
}

func TestMigrateIdempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	ctx := context.Background()

	// A second run over an up-to-date database must be a no-op.
	require.NoError(t, store.Migrate(ctx))

	var version int
	err := store.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}
