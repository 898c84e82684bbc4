package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bdauda29-ux/bdj-ledger/internal/config"
	"github.com/bdauda29-ux/bdj-ledger/internal/handlers"
	"github.com/bdauda29-ux/bdj-ledger/internal/repository"
	"github.com/bdauda29-ux/bdj-ledger/internal/services"
	"github.com/bdauda29-ux/bdj-ledger/internal/session"
	xhttp "github.com/bdauda29-ux/bdj-ledger/pkg/http"
	"github.com/bdauda29-ux/bdj-ledger/pkg/logger"
	"github.com/bdauda29-ux/bdj-ledger/pkg/pg"
	"github.com/bdauda29-ux/bdj-ledger/pkg/prom"
	"github.com/bdauda29-ux/bdj-ledger/pkg/redis"
)

type healthService struct {
	db *pg.DB
}

func (h *healthService) Ping(ctx context.Context) error {
	return h.db.Read(ctx).Exec("SELECT 1").Error
}

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	if config.Get().PromNamespace != "" {
		host, _ := os.Hostname()
		if err := prom.Create(host, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed registering metrics", "error", err)
			return
		}
		if config.Get().AppDebugMetricsAddr != "" {
			go prom.ListenAndServe(config.Get().AppDebugMetricsAddr, config.Get().AppDebugMetricsURI)
		}
	}

	// repositories
	clientRepo := repository.NewClientRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	entryRepo := repository.NewBalanceEntryRepository(db)
	binRepo := repository.NewBinRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	userRepo := repository.NewUserRepository(db)

	// services
	ledger := services.NewLedger(clientRepo, entryRepo)
	countryService := services.NewCountryService(countryRepo)
	clientService := services.NewClientService(clientRepo, ledger)
	tenantService := services.NewTenantService(tenantRepo)
	userService := services.NewUserService(userRepo)
	transactionService := services.NewTransactionService(txnRepo, clientRepo, binRepo, countryService, ledger, services.Policy{
		MutateBalanceOnEditRegardlessOfPaid: config.Get().EditAlwaysMutates,
	})

	sessions := session.NewStore(redisAdap, config.Get().SessionTTL)

	// v1 handlers
	authHandler := handlers.NewAuthHandler(userService, sessions)
	tenantHandler := handlers.NewTenantHandler(tenantService, sessions)
	clientHandler := handlers.NewClientHandler(clientService, transactionService)
	countryHandler := handlers.NewCountryHandler(countryService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	healthHandler := handlers.NewHealthHandler(&healthService{db: db})

	g := s.Router.Group("/api/v1")
	handlers.RegisterAuthRoutes(g, authHandler)
	handlers.RegisterTenantRoutes(g, authHandler, tenantHandler)
	handlers.RegisterClientRoutes(g, authHandler, clientHandler)
	handlers.RegisterCountryRoutes(g, authHandler, countryHandler)
	handlers.RegisterTransactionRoutes(g, authHandler, transactionHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
