package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/fhuszti/tourism-ms-go/internal/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// MigrateUp applies every pending migration. A database left dirty by an
// interrupted run is forced back one version and migrated again.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}

	err = m.Up()
	var dirty migrate.ErrDirty
	switch {
	case err == nil, errors.Is(err, migrate.ErrNoChange):
	case errors.As(err, &dirty):
		if err := retryDirty(ctx, m, dirty.Version); err != nil {
			return err
		}
	default:
		return fmt.Errorf("migration up failed: %w", err)
	}

	if v, _, verr := m.Version(); verr == nil {
		logger.Infof(ctx, "schema at version %d", v)
	}
	return nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("create mysql migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("initialise migrator: %w", err)
	}
	return m, nil
}

func retryDirty(ctx context.Context, m *migrate.Migrate, version int) error {
	prev, err := previousVersion(version)
	if err != nil {
		return err
	}
	logger.Warnf(ctx, "database dirty at version %d, forcing back to %d", version, prev)
	if err := m.Force(int(prev)); err != nil {
		return fmt.Errorf("force to version %d: %w", prev, err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed after force: %w", err)
	}
	return nil
}

// previousVersion returns the embedded up-migration that precedes version.
func previousVersion(version int) (uint64, error) {
	versions, err := upVersions()
	if err != nil {
		return 0, fmt.Errorf("dirty at %d: %w", version, err)
	}
	i := slices.Index(versions, uint64(version))
	if i <= 0 {
		return 0, fmt.Errorf("could not determine previous version before %d", version)
	}
	return versions[i-1], nil
}

// upVersions lists the numeric prefixes of <version>_<name>.up.sql files in
// ascending order.
func upVersions() ([]uint64, error) {
	entries, err := migrationsFS.ReadDir(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}
	var versions []uint64
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		prefix, _, _ := strings.Cut(name, "_")
		if v, err := strconv.ParseUint(prefix, 10, 64); err == nil {
			versions = append(versions, v)
		}
	}
	slices.Sort(versions)
	return versions, nil
}
