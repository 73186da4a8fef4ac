// Package sqlite keeps the ledger snapshot in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/stephenafamo/bob"
	_ "modernc.org/sqlite"

	"github.com/carson-networks/budget-ledger/internal/storage"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

//go:embed migrations/*.sql
var migrations embed.FS

// Store persists snapshots into the accounts, transactions and settings tables.
type Store struct {
	DB   *sql.DB
	exec bob.DB
}

var _ storage.Store = (*Store)(nil)

// Open opens (or creates) the database at path and applies pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}
	if _, _, err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{DB: db, exec: bob.NewDB(db)}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Migrate applies every pending migration and returns the schema version
// before and after.
func Migrate(db *sql.DB) (uint, uint, error) {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return 0, 0, fmt.Errorf("iofs.New: %w", err)
	}
	driver, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return 0, 0, fmt.Errorf("sqlite.WithInstance: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return 0, 0, fmt.Errorf("migrate.NewWithInstance: %w", err)
	}

	before, _, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		before = 0
	} else if err != nil {
		return 0, 0, fmt.Errorf("m.Version: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return before, before, fmt.Errorf("m.Up: %w", err)
	}

	after, _, err := m.Version()
	if err != nil {
		return before, before, fmt.Errorf("m.Version: %w", err)
	}
	return before, after, nil
}

// Load reads the whole snapshot. An empty database yields an empty snapshot.
func (s *Store) Load(ctx context.Context) (*storage.Snapshot, error) {
	return NewReader(s.exec).Snapshot(ctx)
}

// Save replaces every stored row with snap inside one database transaction.
func (s *Store) Save(ctx context.Context, snap *storage.Snapshot) error {
	tx, err := s.exec.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("BeginTx: %w", err)
	}

	writer := NewWriter(tx)
	if err := writer.Replace(ctx, snap); err != nil {
		_ = writer.Rollback(ctx)
		return err
	}
	return writer.Commit(ctx)
}
