package pg

import (
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// Migrate applies the goose migrations in dir against the write database.
func Migrate(cfg Config, dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	db, err := sql.Open("postgres", cfg.dsn())
	if err != nil {
		return err
	}
	defer db.Close()
	return goose.Up(db, dir)
}
