package testutil

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
)

const mariaDBRootPassword = "root"

type MariaDBContainerInfo struct {
	// DSN points at the server's "mysql" schema; SetupTestDB derives
	// per-test databases from it.
	DSN     string
	Cleanup func()
}

func StartMariaDBContainer() (*MariaDBContainerInfo, error) {
	var dsn string
	c, _, err := startContainer("mariadb", &dockertest.RunOptions{
		Repository: "mariadb",
		Tag:        "10.11",
		Env:        []string{"MARIADB_ROOT_PASSWORD=" + mariaDBRootPassword},
	}, "3306/tcp", func(hostPort string) error {
		dsn = fmt.Sprintf("root:%s@(%s)/mysql?parseTime=true", mariaDBRootPassword, hostPort)
		db, err := sql.Open("mysql", dsn)
		if err != nil {
			return err
		}
		defer db.Close()
		return db.Ping()
	})
	if err != nil {
		return nil, err
	}

	return &MariaDBContainerInfo{DSN: dsn, Cleanup: c.purge}, nil
}
