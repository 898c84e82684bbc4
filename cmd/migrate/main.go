package main

import (
	"os"
	"strings"

	"github.com/bdauda29-ux/bdj-ledger/internal/config"
	"github.com/bdauda29-ux/bdj-ledger/pkg/logger"
	"github.com/bdauda29-ux/bdj-ledger/pkg/pg"
)

func main() {
	if err := config.Load(argContainsEnvPath()); err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	dir := config.Get().MigrationsDir
	logger.Info("applying migrations", "dir", dir)
	if err := pg.Migrate(writeConf, dir); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied")
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
