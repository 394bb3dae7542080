package testutil

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	"go.uber.org/multierr"
)

type TestDB struct {
	DB      *sql.DB
	Name    string
	Cleanup func() error
}

// SetupTestDB creates an isolated database on the server named by
// TEST_DB_DSN and drops it again on Cleanup.
func SetupTestDB() (*TestDB, error) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		return nil, errors.New("TEST_DB_DSN env-var not set")
	}
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	name := fmt.Sprintf("tourism_%d", time.Now().UnixNano())
	cfg.DBName = ""
	admin, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open server connection: %w", err)
	}
	if _, err := admin.Exec("CREATE DATABASE `" + name + "` CHARACTER SET utf8mb4"); err != nil {
		return nil, multierr.Append(fmt.Errorf("create database %s: %w", name, err), admin.Close())
	}

	drop := func() error {
		_, err := admin.Exec("DROP DATABASE IF EXISTS `" + name + "`")
		return multierr.Append(err, admin.Close())
	}

	cfg.DBName = name
	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("open %s: %w", name, err), drop())
	}

	return &TestDB{
		DB:   db,
		Name: name,
		Cleanup: func() error {
			return multierr.Append(db.Close(), drop())
		},
	}, nil
}
