package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
)

func txnFixture(tenantID, appID int64, client string, date time.Time) *model.Transaction {
	return &model.Transaction{
		ClientName:      client,
		ApplicantName:   "John Doe",
		ServiceType:     model.DefaultServiceType,
		AppID:           appID,
		CountryName:     "Ruritania",
		CountryPrice:    100,
		Rate:            1.5,
		Addition:        10,
		Amount:          110,
		AmountN:         165,
		TransactionDate: &date,
		TenantID:        tenantID,
	}
}

func TestTransactionRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("creates and assigns an id", func(t *testing.T) {
		created, err := repo.Create(ctx, txnFixture(1, 5001, "Acme", now))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.IsPaid)
	})

	t.Run("duplicate app_id in the same tenant is rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, txnFixture(1, 5001, "Acme", now))
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("same app_id in another tenant is allowed", func(t *testing.T) {
		created, err := repo.Create(ctx, txnFixture(2, 5001, "Acme", now))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})
}

func TestTransactionRepository_AppIDExists(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	now := time.Now()

	created, err := repo.Create(ctx, txnFixture(1, 7001, "Acme", now))
	require.NoError(t, err)

	t.Run("existing app_id", func(t *testing.T) {
		exists, err := repo.AppIDExists(ctx, 1, 7001, 0)
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("excluding the row itself", func(t *testing.T) {
		exists, err := repo.AppIDExists(ctx, 1, 7001, created.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("other tenant does not count", func(t *testing.T) {
		exists, err := repo.AppIDExists(ctx, 2, 7001, 0)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestTransactionRepository_Update(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()
	now := time.Now()

	created, err := repo.Create(ctx, txnFixture(1, 8001, "Acme", now))
	require.NoError(t, err)
	require.NoError(t, repo.SetPaid(ctx, created.ID, true))

	t.Run("update rewrites fields but leaves is_paid alone", func(t *testing.T) {
		created.Addition = 20
		created.Amount = 120
		created.AmountN = 180
		require.NoError(t, repo.Update(ctx, created))

		got, err := repo.GetByID(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(120), got.Amount)
		assert.Equal(t, float64(180), got.AmountN)
		assert.True(t, got.IsPaid)
	})

	t.Run("missing row", func(t *testing.T) {
		missing := txnFixture(1, 8002, "Acme", now)
		missing.ID = 999
		assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
	})
}

func TestTransactionRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []struct {
		appID  int64
		client string
		date   time.Time
		amount float64
	}{
		{9001, "Acme", base, 110},
		{9002, "Acme", base.AddDate(0, 0, 1), 200},
		{9003, "Beta", base.AddDate(0, 0, 2), 50},
	}
	for _, s := range seed {
		txn := txnFixture(1, s.appID, s.client, s.date)
		txn.Amount = s.amount
		txn.AmountN = s.amount * 1.5
		_, err := repo.Create(ctx, txn)
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, txnFixture(2, 9001, "Acme", base))
	require.NoError(t, err)

	t.Run("unfiltered returns the tenant newest first with sums", func(t *testing.T) {
		rows, sums, err := repo.List(ctx, 1, model.TransactionFilter{})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, int64(9003), rows[0].AppID)
		assert.Equal(t, int64(9001), rows[2].AppID)
		assert.InDelta(t, 360, sums.SumAmount, 1e-9)
		assert.InDelta(t, 540, sums.SumAmountN, 1e-9)
	})

	t.Run("client filter", func(t *testing.T) {
		client := "Beta"
		rows, sums, err := repo.List(ctx, 1, model.TransactionFilter{ClientName: &client})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.InDelta(t, 50, sums.SumAmount, 1e-9)
	})

	t.Run("date range filter", func(t *testing.T) {
		from := base.AddDate(0, 0, 1)
		rows, _, err := repo.List(ctx, 1, model.TransactionFilter{DateFrom: &from})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("paid filter", func(t *testing.T) {
		paid := true
		rows, sums, err := repo.List(ctx, 1, model.TransactionFilter{Paid: &paid})
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.Zero(t, sums.SumAmount)
	})

	t.Run("limit and offset", func(t *testing.T) {
		rows, _, err := repo.List(ctx, 1, model.TransactionFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, int64(9002), rows[0].AppID)
	})
}

func TestTransactionRepository_SetPaid(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewTransactionRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, txnFixture(1, 9101, "Acme", time.Now()))
	require.NoError(t, err)

	require.NoError(t, repo.SetPaid(ctx, created.ID, true))
	got, err := repo.GetByID(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPaid)

	assert.ErrorIs(t, repo.SetPaid(ctx, 999, true), ErrNotFound)
}
