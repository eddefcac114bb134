package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiltahuone/paperclip/internal/common"
	"github.com/kiltahuone/paperclip/internal/model"
)

func TestSaveTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("saves a batch", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		err := store.SaveTransactions(ctx, []model.Transaction{
			testTransaction("tx-1", -45),
			testTransaction("tx-2", -12.5),
		})
		require.NoError(t, err)

		transactions, err := store.ListTransactions(ctx)
		require.NoError(t, err)
		assert.Len(t, transactions, 2)
	})

	t.Run("hash is filled in when missing", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		txn := testTransaction("tx-1", -45)
		require.Empty(t, txn.Hash)

		require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{txn}))

		saved, err := store.GetTransaction(ctx, "tx-1")
		require.NoError(t, err)
		assert.Equal(t, txn.GenerateHash(), saved.Hash)
	})

	t.Run("re-import of identical rows is a no-op", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		batch := []model.Transaction{testTransaction("tx-1", -45)}
		require.NoError(t, store.SaveTransactions(ctx, batch))

		// Same statement imported again under a different id: the hash
		// collides and the row is skipped.
		duplicate := testTransaction("tx-other-id", -45)
		require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{duplicate}))

		transactions, err := store.ListTransactions(ctx)
		require.NoError(t, err)
		assert.Len(t, transactions, 1)
		assert.Equal(t, "tx-1", transactions[0].ID)
	})

	t.Run("validation", func(t *testing.T) {
		store, cleanup := createTestStorage(t)
		defer cleanup()

		assert.ErrorIs(t, store.SaveTransactions(ctx, nil), ErrNilParameter)
		assert.ErrorIs(t, store.SaveTransactions(ctx, []model.Transaction{}), ErrEmptySlice)

		missingID := testTransaction("", -45)
		assert.Error(t, store.SaveTransactions(ctx, []model.Transaction{missingID}))
	})
}

func TestGetTransaction(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{testTransaction("tx-1", -45)}))

	txn, err := store.GetTransaction(ctx, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "K-MARKET 1234", txn.Description)
	assert.InDelta(t, -45.0, txn.Amount, 0.001)
	assert.Equal(t, "FI0012345", txn.AccountID)

	_, err = store.GetTransaction(ctx, "tx-404")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.GetTransaction(ctx, "")
	assert.ErrorIs(t, err, ErrEmptyString)
}
