package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/internal/repository"
	"github.com/bdauda29-ux/bdj-ledger/pkg/pg"
)

// testEnv wires the full service graph on an in-memory database, the same
// way cmd/api does against postgres.
type testEnv struct {
	db           *pg.DB
	clients      *repository.ClientRepository
	transactions *TransactionService
	clientSvc    *ClientService
	countries    *CountryService
	ledger       *Ledger
	entries      *repository.BalanceEntryRepository
	bin          *repository.BinRepository
}

func setupTestEnv(t *testing.T, policy Policy) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.TenantEntity{},
		&repository.ClientEntity{},
		&repository.CountryEntity{},
		&repository.TransactionEntity{},
		&repository.BalanceEntryEntity{},
		&repository.DeletedTransactionEntity{},
		&repository.UserEntity{},
	)
	require.NoError(t, err)

	pgDB := &pg.DB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	clientRepo := repository.NewClientRepository(pgDB)
	countryRepo := repository.NewCountryRepository(pgDB)
	txnRepo := repository.NewTransactionRepository(pgDB)
	entryRepo := repository.NewBalanceEntryRepository(pgDB)
	binRepo := repository.NewBinRepository(pgDB)

	ledger := NewLedger(clientRepo, entryRepo)
	countrySvc := NewCountryService(countryRepo)

	return &testEnv{
		db:           pgDB,
		clients:      clientRepo,
		transactions: NewTransactionService(txnRepo, clientRepo, binRepo, countrySvc, ledger, policy),
		clientSvc:    NewClientService(clientRepo, ledger),
		countries:    countrySvc,
		ledger:       ledger,
		entries:      entryRepo,
		bin:          binRepo,
	}
}

// seedScenario creates the tenant-1 fixtures shared by the lifecycle tests:
// a client with an opening balance and one priced country.
func (e *testEnv) seedScenario(t *testing.T, balance float64) *model.Client {
	ctx := context.Background()

	client, err := e.clients.Create(ctx, &model.Client{
		Name:     "Acme Travel",
		Phone:    "0912000000",
		Balance:  balance,
		TenantID: 1,
	})
	require.NoError(t, err)

	_, err = e.countries.Create(ctx, 1, model.CountryCreateRequest{
		Name:  "Ruritania",
		Price: 100,
	})
	require.NoError(t, err)

	return client
}

func (e *testEnv) balance(t *testing.T, clientID int64) float64 {
	client, err := e.clients.GetByID(context.Background(), 1, clientID)
	require.NoError(t, err)
	return client.Balance
}
