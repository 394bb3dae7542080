package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/multierr"
)

const pingTimeout = 5 * time.Second

// Database holds the SQL connection pool shared by every repository.
type Database struct {
	*sql.DB
}

// New opens a MariaDB pool sized by cfg and pings it once. The pool is
// closed again when the server cannot be reached.
func New(cfg MariaDbConfig) (*Database, error) {
	pool, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open mariadb: %w", err)
	}
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		return nil, multierr.Append(fmt.Errorf("ping mariadb: %w", err), pool.Close())
	}
	return &Database{pool}, nil
}
