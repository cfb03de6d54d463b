package db

import (
	"errors"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"campaign-ids/db/migrations"
)

// MigratePostgres applies the PostgreSQL migrations to the database at addr.
func MigratePostgres(addr string) error {
	return Migrate(migrations.Postgres, "postgres", addr)
}

// MigrateSQLite applies the SQLite migrations to the database file at path.
func MigrateSQLite(path string) error {
	return Migrate(migrations.SQLite, "sqlite", "sqlite://"+path)
}

// Migrate applies the up migrations found in dir of source to the database
// at the golang-migrate URL addr, up to migrations.Version. A database left
// dirty by an earlier failed run is reported instead of being migrated.
func Migrate(source fs.FS, dir, addr string) error {
	driver, err := iofs.New(source, dir)
	if err != nil {
		return err
	}
	defer driver.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", driver, addr)
	if err != nil {
		return err
	}
	defer mg.Close()

	_, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	if dirty {
		return errors.New("database is in dirty state")
	}

	if err = mg.Migrate(migrations.Version); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
