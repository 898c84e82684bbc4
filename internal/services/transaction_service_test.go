package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
)

func baseRequest() model.TransactionRequest {
	return model.TransactionRequest{
		ClientName:    "Acme Travel",
		ApplicantName: "John Doe",
		AppID:         5001,
		CountryName:   "Ruritania",
		Rate:          1.5,
		Addition:      10,
	}
}

func TestTransactionService_Create(t *testing.T) {
	env := setupTestEnv(t, Policy{MutateBalanceOnEditRegardlessOfPaid: true})
	client := env.seedScenario(t, 500)
	ctx := context.Background()

	t.Run("computes amounts from price, addition and rate", func(t *testing.T) {
		created, err := env.transactions.Create(ctx, 1, baseRequest())
		require.NoError(t, err)
		assert.InDelta(t, 110, created.Amount, 1e-9)
		assert.InDelta(t, 165, created.AmountN, 1e-9)
		assert.InDelta(t, 100, created.CountryPrice, 1e-9)
		assert.False(t, created.IsPaid)
		assert.Equal(t, model.DefaultServiceType, created.ServiceType)
	})

	t.Run("creating does not touch the balance", func(t *testing.T) {
		assert.Equal(t, float64(500), env.balance(t, client.ID))
	})

	t.Run("duplicate app id", func(t *testing.T) {
		_, err := env.transactions.Create(ctx, 1, baseRequest())
		assert.ErrorIs(t, err, ErrDuplicateAppID)
	})

	t.Run("unknown country", func(t *testing.T) {
		req := baseRequest()
		req.AppID = 5002
		req.CountryName = "Atlantis"
		_, err := env.transactions.Create(ctx, 1, req)
		assert.ErrorIs(t, err, ErrCountryNotFound)
	})

	t.Run("missing client name", func(t *testing.T) {
		req := baseRequest()
		req.ClientName = ""
		_, err := env.transactions.Create(ctx, 1, req)
		assert.Error(t, err)
	})
}

func TestTransactionService_Pay(t *testing.T) {
	env := setupTestEnv(t, Policy{MutateBalanceOnEditRegardlessOfPaid: true})
	client := env.seedScenario(t, 500)
	ctx := context.Background()

	created, err := env.transactions.Create(ctx, 1, baseRequest())
	require.NoError(t, err)

	t.Run("debits amount_n and records history", func(t *testing.T) {
		require.NoError(t, env.transactions.Pay(ctx, 1, created.ID))

		assert.InDelta(t, 335, env.balance(t, client.ID), 1e-9)

		got, err := env.transactions.Get(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.True(t, got.IsPaid)

		history, err := env.ledger.History(ctx, 1, client.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, model.EntryDebit, history[0].Type)
		assert.InDelta(t, 165, history[0].Amount, 1e-9)
		assert.InDelta(t, 500, history[0].BalanceBefore, 1e-9)
		assert.InDelta(t, 335, history[0].BalanceAfter, 1e-9)
	})

	t.Run("paying twice", func(t *testing.T) {
		assert.ErrorIs(t, env.transactions.Pay(ctx, 1, created.ID), ErrAlreadyPaid)
	})

	t.Run("insufficient balance leaves everything untouched", func(t *testing.T) {
		req := baseRequest()
		req.AppID = 5002
		req.Addition = 400 // amount_n = (100+400)*1.5 = 750 > 335
		big, err := env.transactions.Create(ctx, 1, req)
		require.NoError(t, err)

		err = env.transactions.Pay(ctx, 1, big.ID)
		assert.ErrorIs(t, err, ErrInsufficientBalance)

		assert.InDelta(t, 335, env.balance(t, client.ID), 1e-9)
		got, err := env.transactions.Get(ctx, 1, big.ID)
		require.NoError(t, err)
		assert.False(t, got.IsPaid)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		assert.ErrorIs(t, env.transactions.Pay(ctx, 1, 999), ErrTransactionNotFound)
	})
}

func TestTransactionService_UndoPay(t *testing.T) {
	env := setupTestEnv(t, Policy{MutateBalanceOnEditRegardlessOfPaid: true})
	client := env.seedScenario(t, 500)
	ctx := context.Background()

	created, err := env.transactions.Create(ctx, 1, baseRequest())
	require.NoError(t, err)

	t.Run("undoing an unpaid transaction", func(t *testing.T) {
		assert.ErrorIs(t, env.transactions.UndoPay(ctx, 1, created.ID), ErrNotPaid)
	})

	t.Run("refunds and wipes the transaction's history", func(t *testing.T) {
		require.NoError(t, env.transactions.Pay(ctx, 1, created.ID))
		require.NoError(t, env.transactions.UndoPay(ctx, 1, created.ID))

		assert.InDelta(t, 500, env.balance(t, client.ID), 1e-9)

		got, err := env.transactions.Get(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.False(t, got.IsPaid)

		history, err := env.ledger.History(ctx, 1, client.ID)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestTransactionService_Edit(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes amounts and applies the net difference", func(t *testing.T) {
		env := setupTestEnv(t, Policy{MutateBalanceOnEditRegardlessOfPaid: true})
		client := env.seedScenario(t, 500)

		created, err := env.transactions.Create(ctx, 1, baseRequest())
		require.NoError(t, err)
		require.NoError(t, env.transactions.Pay(ctx, 1, created.ID))
		require.InDelta(t, 335, env.balance(t, client.ID), 1e-9)

		req := baseRequest()
		req.Addition = 20
		updated, err := env.transactions.Edit(ctx, 1, created.ID, req)
		require.NoError(t, err)
		assert.InDelta(t, 120, updated.Amount, 1e-9)
		assert.InDelta(t, 180, updated.AmountN, 1e-9)
		assert.True(t, updated.IsPaid)

		// 335 + 165 (reversal) - 180 (new charge) = 320
		assert.InDelta(t, 320, env.balance(t, client.ID), 1e-9)
	})

	t.Run("mutates the balance even when unpaid under the legacy policy", func(t *testing.T) {
		env := setupTestEnv(t, Policy{MutateBalanceOnEditRegardlessOfPaid: true})
		client := env.seedScenario(t, 500)

		created, err := env.transactions.Create(ctx, 1, baseRequest())
		require.NoError(t, err)

		req := baseRequest()
		req.Addition = 20
		_, err = env.transactions.Edit(ctx, 1, created.ID, req)
		require.NoError(t, err)

		// unpaid row, yet the balance moves: +165 - 180 = -15
		assert.InDelta(t, 485, env.balance(t, client.ID), 1e-9)
	})

	t.Run("unpaid edit leaves the balance alone when the policy is off", func(t *testing.T) {
		env := setupTestEnv(t, Policy{MutateBalanceOnEditRegardlessOfPaid: false})
		client := env.seedScenario(t, 500)

		created, err := env.transactions.Create(ctx, 1, baseRequest())
		require.NoError(t, err)

		req := baseRequest()
		req.Addition = 20
		updated, err := env.transactions.Edit(ctx, 1, created.ID, req)
		require.NoError(t, err)
		assert.InDelta(t, 180, updated.AmountN, 1e-9)

		assert.Equal(t, float64(500), env.balance(t, client.ID))
	})

	t.Run("missing new client rolls the edit back", func(t *testing.T) {
		env := setupTestEnv(t, Policy{MutateBalanceOnEditRegardlessOfPaid: true})
		client := env.seedScenario(t, 500)

		created, err := env.transactions.Create(ctx, 1, baseRequest())
		require.NoError(t, err)
		require.NoError(t, env.transactions.Pay(ctx, 1, created.ID))

		req := baseRequest()
		req.ClientName = "nobody"
		_, err = env.transactions.Edit(ctx, 1, created.ID, req)
		assert.ErrorIs(t, err, ErrClientNotFound)

		// reversal credit was rolled back with everything else
		assert.InDelta(t, 335, env.balance(t, client.ID), 1e-9)
		got, err := env.transactions.Get(ctx, 1, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Travel", got.ClientName)
	})

	t.Run("duplicate app id excluding self", func(t *testing.T) {
		env := setupTestEnv(t, Policy{MutateBalanceOnEditRegardlessOfPaid: true})
		env.seedScenario(t, 500)

		first, err := env.transactions.Create(ctx, 1, baseRequest())
		require.NoError(t, err)
		second := baseRequest()
		second.AppID = 5002
		_, err = env.transactions.Create(ctx, 1, second)
		require.NoError(t, err)

		// keeping its own app id is fine
		_, err = env.transactions.Edit(ctx, 1, first.ID, baseRequest())
		require.NoError(t, err)

		// stealing another row's app id is not
		steal := baseRequest()
		steal.AppID = 5002
		_, err = env.transactions.Edit(ctx, 1, first.ID, steal)
		assert.ErrorIs(t, err, ErrDuplicateAppID)
	})
}

func TestTransactionService_Delete(t *testing.T) {
	env := setupTestEnv(t, Policy{MutateBalanceOnEditRegardlessOfPaid: true})
	client := env.seedScenario(t, 500)
	ctx := context.Background()

	created, err := env.transactions.Create(ctx, 1, baseRequest())
	require.NoError(t, err)
	require.NoError(t, env.transactions.Pay(ctx, 1, created.ID))
	require.InDelta(t, 335, env.balance(t, client.ID), 1e-9)

	stashed, err := env.transactions.Delete(ctx, 1, created.ID)
	require.NoError(t, err)

	t.Run("refunds without a history row", func(t *testing.T) {
		assert.InDelta(t, 500, env.balance(t, client.ID), 1e-9)

		history, err := env.ledger.History(ctx, 1, client.ID)
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("the row moves to the bin", func(t *testing.T) {
		_, err := env.transactions.Get(ctx, 1, created.ID)
		assert.ErrorIs(t, err, ErrTransactionNotFound)

		binned, err := env.transactions.ListBin(ctx, 1)
		require.NoError(t, err)
		require.Len(t, binned, 1)
		assert.Equal(t, created.ID, binned[0].OriginalID)
		assert.True(t, binned[0].IsPaid)
		assert.InDelta(t, 165, binned[0].AmountN, 1e-9)
	})

	t.Run("restore re-debits and preserves the paid flag", func(t *testing.T) {
		restored, err := env.transactions.Restore(ctx, 1, stashed.ID)
		require.NoError(t, err)
		assert.True(t, restored.IsPaid)
		assert.Equal(t, created.AppID, restored.AppID)

		assert.InDelta(t, 335, env.balance(t, client.ID), 1e-9)

		history, err := env.ledger.History(ctx, 1, client.ID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, model.EntryDebit, history[0].Type)

		binned, err := env.transactions.ListBin(ctx, 1)
		require.NoError(t, err)
		assert.Empty(t, binned)
	})

	t.Run("restoring a purged entry", func(t *testing.T) {
		_, err := env.transactions.Restore(ctx, 1, stashed.ID)
		assert.ErrorIs(t, err, ErrBinEntryNotFound)
	})
}

func TestTransactionService_DeleteUnpaid(t *testing.T) {
	env := setupTestEnv(t, Policy{MutateBalanceOnEditRegardlessOfPaid: true})
	client := env.seedScenario(t, 500)
	ctx := context.Background()

	created, err := env.transactions.Create(ctx, 1, baseRequest())
	require.NoError(t, err)

	_, err = env.transactions.Delete(ctx, 1, created.ID)
	require.NoError(t, err)

	// unpaid rows never charged the client, so nothing is refunded
	assert.Equal(t, float64(500), env.balance(t, client.ID))
}

func TestTransactionService_Purge(t *testing.T) {
	env := setupTestEnv(t, Policy{MutateBalanceOnEditRegardlessOfPaid: true})
	client := env.seedScenario(t, 500)
	ctx := context.Background()

	created, err := env.transactions.Create(ctx, 1, baseRequest())
	require.NoError(t, err)
	stashed, err := env.transactions.Delete(ctx, 1, created.ID)
	require.NoError(t, err)

	require.NoError(t, env.transactions.Purge(ctx, 1, stashed.ID))
	assert.ErrorIs(t, env.transactions.Purge(ctx, 1, stashed.ID), ErrBinEntryNotFound)

	// purge has no balance effects
	assert.Equal(t, float64(500), env.balance(t, client.ID))
}

func TestClientService_AdjustBalance(t *testing.T) {
	env := setupTestEnv(t, Policy{})
	client := env.seedScenario(t, 100)
	ctx := context.Background()

	t.Run("credit with history", func(t *testing.T) {
		entry, err := env.clientSvc.AdjustBalance(ctx, 1, client.ID, 50, model.EntryCredit, "manual top-up")
		require.NoError(t, err)
		assert.InDelta(t, 100, entry.BalanceBefore, 1e-9)
		assert.InDelta(t, 150, entry.BalanceAfter, 1e-9)
		assert.InDelta(t, 150, env.balance(t, client.ID), 1e-9)
	})

	t.Run("debit may overdraw", func(t *testing.T) {
		entry, err := env.clientSvc.AdjustBalance(ctx, 1, client.ID, 200, model.EntryDebit, "correction")
		require.NoError(t, err)
		assert.InDelta(t, -50, entry.BalanceAfter, 1e-9)
	})

	t.Run("non-positive amounts are rejected", func(t *testing.T) {
		_, err := env.clientSvc.AdjustBalance(ctx, 1, client.ID, 0, model.EntryCredit, "zero")
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = env.clientSvc.AdjustBalance(ctx, 1, client.ID, -5, model.EntryDebit, "negative")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := env.clientSvc.AdjustBalance(ctx, 1, 999, 10, model.EntryCredit, "ghost")
		assert.ErrorIs(t, err, ErrClientNotFound)
	})
}
