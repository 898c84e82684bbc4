package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
)

func TestClientRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewClientRepository(db)
	ctx := context.Background()

	t.Run("creates and returns the client", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Client{
			Name:     "Acme Travel",
			Phone:    "0912000000",
			TenantID: 1,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Acme Travel", created.Name)
		assert.Equal(t, float64(0), created.Balance)
	})

	t.Run("duplicate name in same tenant is rejected", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Client{
			Name:     "Acme Travel",
			Phone:    "0912000001",
			TenantID: 1,
		})
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})

	t.Run("same name in another tenant is allowed", func(t *testing.T) {
		created, err := repo.Create(ctx, &model.Client{
			Name:     "Acme Travel",
			Phone:    "0912000002",
			TenantID: 2,
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
	})
}

func TestClientRepository_GetByName(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewClientRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Client{
		Name:     "Beta Tours",
		Phone:    "0912111111",
		TenantID: 1,
	})
	require.NoError(t, err)

	t.Run("found in own tenant", func(t *testing.T) {
		got, err := repo.GetByName(ctx, 1, "Beta Tours")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("invisible from another tenant", func(t *testing.T) {
		_, err := repo.GetByName(ctx, 2, "Beta Tours")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := repo.GetByName(ctx, 1, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestClientRepository_Update(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewClientRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Client{
		Name:     "Gamma",
		Phone:    "0912222222",
		Balance:  150,
		TenantID: 1,
	})
	require.NoError(t, err)

	t.Run("updates name and phone but never balance", func(t *testing.T) {
		err := repo.Update(ctx, &model.Client{
			ID:       created.ID,
			Name:     "Gamma Renamed",
			Phone:    "0912333333",
			Balance:  9999,
			TenantID: 1,
		})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Gamma Renamed", got.Name)
		assert.Equal(t, "0912333333", got.Phone)
		assert.Equal(t, float64(150), got.Balance)
	})

	t.Run("missing row", func(t *testing.T) {
		err := repo.Update(ctx, &model.Client{ID: 999, Name: "x", TenantID: 1})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestClientRepository_Balances(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewClientRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.Client{
		Name:     "Delta",
		Phone:    "0912444444",
		Balance:  100,
		TenantID: 1,
	})
	require.NoError(t, err)

	t.Run("SetBalance writes an absolute value", func(t *testing.T) {
		require.NoError(t, repo.SetBalance(ctx, created.ID, 42.5))

		got, err := repo.GetByID(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 42.5, got.Balance)
	})

	t.Run("AddBalance applies a delta", func(t *testing.T) {
		require.NoError(t, repo.AddBalance(ctx, created.ID, -12.5))

		got, err := repo.GetByID(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(30), got.Balance)
	})

	t.Run("missing row", func(t *testing.T) {
		assert.ErrorIs(t, repo.SetBalance(ctx, 999, 1), ErrNotFound)
		assert.ErrorIs(t, repo.AddBalance(ctx, 999, 1), ErrNotFound)
	})
}

func TestClientRepository_List(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewClientRepository(db)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := repo.Create(ctx, &model.Client{Name: name, Phone: "1", TenantID: 1})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &model.Client{Name: "other-tenant", Phone: "1", TenantID: 2})
	require.NoError(t, err)

	list, err := repo.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "alpha", list[0].Name)
	assert.Equal(t, "zeta", list[2].Name)
}
