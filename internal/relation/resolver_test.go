package relation_test

import (
	"context"
	"testing"

	"github.com/kiltahuone/paperclip/internal/model"
	"github.com/kiltahuone/paperclip/internal/relation"
	"github.com/kiltahuone/paperclip/internal/storage"
	"github.com/kiltahuone/paperclip/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedFocalWithAllContributors links a receipt, a reimbursement, and a
// transaction to one focal transaction and returns the focal ref.
func seedFocalWithAllContributors(t *testing.T, ctx context.Context, svc *relation.Service, store *storage.SQLiteStorage) model.EntityRef {
	t.Helper()

	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		*testutil.Transaction("tx-focal", "K-MARKET 1234", -45),
		*testutil.Transaction("tx-side", "SIDE ENTRY", -10),
	}))
	require.NoError(t, store.SaveReceipt(ctx, testutil.Receipt("r-1", "K-Market Oulu", 50)))
	require.NoError(t, store.SaveReimbursement(ctx, testutil.Reimbursement("rb-1", "groceries for sitsit", 45)))

	focal := model.EntityRef{Type: model.EntityTransaction, ID: "tx-focal"}
	for _, other := range []model.EntityRef{
		{Type: model.EntityReceipt, ID: "r-1"},
		{Type: model.EntityReimbursement, ID: "rb-1"},
		{Type: model.EntityTransaction, ID: "tx-side"},
	} {
		_, err := svc.Link(ctx, focal, other, "", "")
		require.NoError(t, err)
	}

	return focal
}

func TestResolveContext_ReceiptWinsOverAllContributors(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	svc := relation.New(store)

	focal := seedFocalWithAllContributors(t, ctx, svc, store)

	resolved, err := svc.ResolveContext(ctx, focal, nil)
	require.NoError(t, err)

	assert.Equal(t, model.SourceReceipt, resolved.ValueSource)
	require.NotNil(t, resolved.TotalAmount)
	assert.InDelta(t, 50.0, *resolved.TotalAmount, 0.001)
	require.NotNil(t, resolved.Description)
	assert.Equal(t, "K-Market Oulu", *resolved.Description)
	require.NotNil(t, resolved.Currency)
	assert.Equal(t, "EUR", *resolved.Currency)
	require.NotNil(t, resolved.PurchaserID)
	assert.Equal(t, "member-1", *resolved.PurchaserID)
}

func TestResolveContext_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	svc := relation.New(store)

	focal := seedFocalWithAllContributors(t, ctx, svc, store)

	first, err := svc.ResolveContext(ctx, focal, nil)
	require.NoError(t, err)
	second, err := svc.ResolveContext(ctx, focal, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveContext_UnlinkRecomputation(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	svc := relation.New(store)

	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		*testutil.Transaction("tx-1", "K-MARKET 1234", -45),
	}))
	require.NoError(t, store.SaveReceipt(ctx, testutil.Receipt("r-1", "K-Market Oulu", 50)))
	require.NoError(t, store.SaveReimbursement(ctx, testutil.Reimbursement("rb-1", "groceries", 45)))

	focal := model.EntityRef{Type: model.EntityTransaction, ID: "tx-1"}
	receiptLink, err := svc.Link(ctx, focal, model.EntityRef{Type: model.EntityReceipt, ID: "r-1"}, "", "")
	require.NoError(t, err)
	reimbLink, err := svc.Link(ctx, focal, model.EntityRef{Type: model.EntityReimbursement, ID: "rb-1"}, "", "")
	require.NoError(t, err)

	resolved, err := svc.ResolveContext(ctx, focal, nil)
	require.NoError(t, err)
	assert.Equal(t, model.SourceReceipt, resolved.ValueSource)

	// Removing the receipt promotes the reimbursement.
	require.NoError(t, svc.Unlink(ctx, receiptLink.ID))

	resolved, err = svc.ResolveContext(ctx, focal, nil)
	require.NoError(t, err)
	assert.Equal(t, model.SourceReimbursement, resolved.ValueSource)
	require.NotNil(t, resolved.TotalAmount)
	assert.InDelta(t, 45.0, *resolved.TotalAmount, 0.001)

	// Removing everything yields the empty context.
	require.NoError(t, svc.Unlink(ctx, reimbLink.ID))

	resolved, err = svc.ResolveContext(ctx, focal, nil)
	require.NoError(t, err)
	assert.Equal(t, model.SourceNone, resolved.ValueSource)
	assert.Nil(t, resolved.TotalAmount)
	assert.Nil(t, resolved.Date)
	assert.Nil(t, resolved.Description)
	assert.Nil(t, resolved.Currency)
	assert.Empty(t, resolved.LineItems)
}

func TestResolveContext_ManualOverrideAlwaysWins(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	svc := relation.New(store)

	focal := seedFocalWithAllContributors(t, ctx, svc, store)

	amount := 99.90
	resolved, err := svc.ResolveContext(ctx, focal, &model.ContextOverride{TotalAmount: &amount})
	require.NoError(t, err)

	assert.Equal(t, model.SourceManual, resolved.ValueSource)
	require.NotNil(t, resolved.TotalAmount)
	assert.InDelta(t, 99.90, *resolved.TotalAmount, 0.001)

	// Unspecified override fields keep the graph-resolved base.
	require.NotNil(t, resolved.Description)
	assert.Equal(t, "K-Market Oulu", *resolved.Description)
}

func TestResolveContext_ManualOverrideWithZeroContributors(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	svc := relation.New(store)

	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		*testutil.Transaction("tx-lonely", "UNMATCHED", -12),
	}))

	description := "hand-entered expense"
	resolved, err := svc.ResolveContext(ctx,
		model.EntityRef{Type: model.EntityTransaction, ID: "tx-lonely"},
		&model.ContextOverride{Description: &description})
	require.NoError(t, err)

	assert.Equal(t, model.SourceManual, resolved.ValueSource)
	require.NotNil(t, resolved.Description)
	assert.Equal(t, "hand-entered expense", *resolved.Description)
	assert.Nil(t, resolved.TotalAmount)
}

func TestResolveContext_DraftEntitySkipsGraphLookup(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	svc := relation.New(store)

	// A draft has no id yet; resolution must not touch the graph.
	resolved, err := svc.ResolveContext(ctx, model.EntityRef{Type: model.EntityReceipt}, nil)
	require.NoError(t, err)
	assert.Equal(t, model.SourceNone, resolved.ValueSource)
	assert.Nil(t, resolved.TotalAmount)

	amount := 20.0
	resolved, err = svc.ResolveContext(ctx, model.EntityRef{Type: model.EntityReceipt},
		&model.ContextOverride{TotalAmount: &amount})
	require.NoError(t, err)
	assert.Equal(t, model.SourceManual, resolved.ValueSource)
	require.NotNil(t, resolved.TotalAmount)
	assert.InDelta(t, 20.0, *resolved.TotalAmount, 0.001)
}

func TestResolveContext_NoTransitiveContribution(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	svc := relation.New(store)

	// receipt – transaction – reimbursement, chained.
	require.NoError(t, store.SaveReceipt(ctx, testutil.Receipt("r-1", "K-Market Oulu", 50)))
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		*testutil.Transaction("tx-1", "K-MARKET 1234", -45),
	}))
	require.NoError(t, store.SaveReimbursement(ctx, testutil.Reimbursement("rb-1", "groceries", 45)))

	txRef := model.EntityRef{Type: model.EntityTransaction, ID: "tx-1"}
	_, err := svc.Link(ctx, model.EntityRef{Type: model.EntityReceipt, ID: "r-1"}, txRef, "", "")
	require.NoError(t, err)
	_, err = svc.Link(ctx, txRef, model.EntityRef{Type: model.EntityReimbursement, ID: "rb-1"}, "", "")
	require.NoError(t, err)

	// The reimbursement sees its direct neighbor, not the receipt two
	// hops away.
	resolved, err := svc.ResolveContext(ctx,
		model.EntityRef{Type: model.EntityReimbursement, ID: "rb-1"}, nil)
	require.NoError(t, err)

	assert.Equal(t, model.SourceTransaction, resolved.ValueSource)
	require.NotNil(t, resolved.TotalAmount)
	assert.InDelta(t, -45.0, *resolved.TotalAmount, 0.001)
	require.NotNil(t, resolved.Description)
	assert.Equal(t, "K-MARKET 1234", *resolved.Description)
}

func TestResolveContext_ReceiptLineItems(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	svc := relation.New(store)

	receipt := testutil.Receipt("r-1", "K-Market Oulu", 7.5)
	receipt.Items = `[{"name":"Kahvi","quantity":2,"unit_price":2.5,"total_price":5,"source_item_id":"i-1"},` +
		`{"name":"Pulla","quantity":1,"unit_price":2.5,"total_price":2.5,"source_item_id":"i-2"}]`
	require.NoError(t, store.SaveReceipt(ctx, receipt))
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		*testutil.Transaction("tx-1", "K-MARKET 1234", -7.5),
	}))

	txRef := model.EntityRef{Type: model.EntityTransaction, ID: "tx-1"}
	_, err := svc.Link(ctx, txRef, model.EntityRef{Type: model.EntityReceipt, ID: "r-1"}, "", "")
	require.NoError(t, err)

	resolved, err := svc.ResolveContext(ctx, txRef, nil)
	require.NoError(t, err)

	require.Len(t, resolved.LineItems, 2)
	assert.Equal(t, "Kahvi", resolved.LineItems[0].Name)
	assert.InDelta(t, 5.0, resolved.LineItems[0].TotalPrice, 0.001)
}

func TestResolveContext_MalformedLineItemsDegradeToEmpty(t *testing.T) {
	ctx := context.Background()
	store := testutil.SetupTestDB(t)
	svc := relation.New(store)

	receipt := testutil.Receipt("r-broken", "K-Market Oulu", 50)
	receipt.Items = `{not valid json`
	require.NoError(t, store.SaveReceipt(ctx, receipt))
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		*testutil.Transaction("tx-1", "K-MARKET 1234", -45),
	}))

	txRef := model.EntityRef{Type: model.EntityTransaction, ID: "tx-1"}
	_, err := svc.Link(ctx, txRef, model.EntityRef{Type: model.EntityReceipt, ID: "r-broken"}, "", "")
	require.NoError(t, err)

	// A broken OCR payload never fails resolution.
	resolved, err := svc.ResolveContext(ctx, txRef, nil)
	require.NoError(t, err)

	assert.Equal(t, model.SourceReceipt, resolved.ValueSource)
	assert.Empty(t, resolved.LineItems)
	require.NotNil(t, resolved.TotalAmount)
	assert.InDelta(t, 50.0, *resolved.TotalAmount, 0.001)
}
