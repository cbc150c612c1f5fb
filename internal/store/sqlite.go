package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/polymap/internal/dbx"
	"github.com/dmitrijs2005/polymap/internal/filex"
	"github.com/dmitrijs2005/polymap/internal/logging"
	"github.com/dmitrijs2005/polymap/internal/models"
	"github.com/dmitrijs2005/polymap/internal/store/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory SQLite database.
const MemoryDSN = ":memory:"

// SQLiteStore persists the account table in a SQLite records table.
type SQLiteStore struct {
	db  *sql.DB
	log logging.Logger
}

var _ RecordStore = (*SQLiteStore)(nil)

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// OpenSQLite opens (creating if needed) the database at dsn and migrates it.
func OpenSQLite(ctx context.Context, dsn string, log logging.Logger) (*SQLiteStore, error) {
	inMemory := dsn == MemoryDSN || strings.Contains(dsn, "mode=memory")
	if !inMemory {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("prepare database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if inMemory {
		// every new connection to ":memory:" would be a fresh, empty database
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, log: log}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]models.Account, error) {
	raw, err := newRecordsRepo(s.db).Get(ctx, UsersKey)
	if err != nil {
		return nil, err
	}
	return decodeAccounts(raw)
}

func (s *SQLiteStore) LoadAll(ctx context.Context) []models.Account {
	accounts, err := s.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "record table unreadable, treating as empty", "error", err)
		return []models.Account{}
	}
	return accounts
}

func (s *SQLiteStore) SaveAll(ctx context.Context, accounts []models.Account) error {
	b, err := encodeAccounts(accounts)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return newRecordsRepo(tx).Set(ctx, UsersKey, b)
	})
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
