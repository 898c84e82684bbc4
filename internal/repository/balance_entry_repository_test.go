package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
)

func entryFixture(tenantID, clientID int64, txnID *int64, kind model.EntryType, amount, before float64, ts time.Time) *model.BalanceEntry {
	after := before + amount
	if kind == model.EntryDebit {
		after = before - amount
	}
	return &model.BalanceEntry{
		ClientID:      clientID,
		TransactionID: txnID,
		Amount:        amount,
		Type:          kind,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   "test entry",
		Timestamp:     ts,
		TenantID:      tenantID,
	}
}

func TestBalanceEntryRepository_Insert(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewBalanceEntryRepository(db)
	ctx := context.Background()

	txnID := int64(42)
	created, err := repo.Insert(ctx, entryFixture(1, 10, &txnID, model.EntryDebit, 165, 500, time.Now()))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.EntryDebit, created.Type)
	assert.Equal(t, float64(335), created.BalanceAfter)
	require.NotNil(t, created.TransactionID)
	assert.Equal(t, int64(42), *created.TransactionID)
}

func TestBalanceEntryRepository_ListByClient(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewBalanceEntryRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, kind := range []model.EntryType{model.EntryCredit, model.EntryDebit, model.EntryCredit} {
		_, err := repo.Insert(ctx, entryFixture(1, 10, nil, kind, float64(10*(i+1)), 0, base.Add(time.Duration(i)*time.Hour)))
		require.NoError(t, err)
	}
	_, err := repo.Insert(ctx, entryFixture(1, 11, nil, model.EntryCredit, 5, 0, base))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, entryFixture(2, 10, nil, model.EntryCredit, 5, 0, base))
	require.NoError(t, err)

	entries, err := repo.ListByClient(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, float64(30), entries[0].Amount)
	assert.Equal(t, float64(10), entries[2].Amount)
}

func TestBalanceEntryRepository_DeleteByTransaction(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewBalanceEntryRepository(db)
	ctx := context.Background()

	keep := int64(1)
	drop := int64(2)
	now := time.Now()
	_, err := repo.Insert(ctx, entryFixture(1, 10, &keep, model.EntryDebit, 100, 300, now))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, entryFixture(1, 10, &drop, model.EntryDebit, 50, 200, now))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, entryFixture(1, 10, &drop, model.EntryCredit, 50, 150, now))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByTransaction(ctx, drop))

	entries, err := repo.ListByClient(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].TransactionID)
	assert.Equal(t, keep, *entries[0].TransactionID)
}

func TestBalanceEntryRepository_SignedSum(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewBalanceEntryRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("no rows sums to zero", func(t *testing.T) {
		sum, err := repo.SignedSum(ctx, 1, 10)
		require.NoError(t, err)
		assert.Zero(t, sum)
	})

	t.Run("credits minus debits", func(t *testing.T) {
		_, err := repo.Insert(ctx, entryFixture(1, 10, nil, model.EntryCredit, 500, 0, now))
		require.NoError(t, err)
		_, err = repo.Insert(ctx, entryFixture(1, 10, nil, model.EntryDebit, 165, 500, now))
		require.NoError(t, err)
		_, err = repo.Insert(ctx, entryFixture(2, 10, nil, model.EntryDebit, 999, 0, now))
		require.NoError(t, err)

		sum, err := repo.SignedSum(ctx, 1, 10)
		require.NoError(t, err)
		assert.InDelta(t, 335, sum, 1e-9)
	})
}
