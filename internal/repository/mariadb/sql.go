package mariadb

import (
	"database/sql"
	"errors"

	"github.com/fhuszti/tourism-ms-go/internal/port"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return port.ErrRecordNotFound
	}
	return err
}

// deleted maps a DELETE that matched no row to port.ErrRecordNotFound.
func deleted(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return port.ErrRecordNotFound
	}
	return nil
}

// nullable stores an empty media reference as NULL.
func nullable(ref string) sql.NullString {
	return sql.NullString{String: ref, Valid: ref != ""}
}
