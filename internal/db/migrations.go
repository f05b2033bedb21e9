package db

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/pkger"
	"github.com/markbates/pkger"
)

// The sql files are packed into the binary by the pkger tool.
var migrationsDir = pkger.Include("/migrations")

func newMigrate(dbURL string) (*migrate.Migrate, error) {
	m, err := migrate.New("pkger://"+migrationsDir, dbURL)
	if err != nil {
		return nil, fmt.Errorf("Error reading migrations: %w", err)
	}
	return m, nil
}
func MigrateUp(dbURL string) error {
	m, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer m.Close()
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("While migrating up: %w", err)
	}
	return nil
}
func MigrateDown(dbURL string) error {
	m, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer m.Close()
	err = m.Down()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("While migrating down: %w", err)
	}
	return nil
}
func Drop(dbURL string) error {
	m, err := newMigrate(dbURL)
	if err != nil {
		return err
	}
	defer m.Close()
	err = m.Drop()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("While dropping: %w", err)
	}
	return nil
}
