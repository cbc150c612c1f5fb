package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/polymap/internal/dbx"
)

// recordsRepo reads and writes raw values of the records table.
type recordsRepo struct {
	db dbx.DBTX
}

func newRecordsRepo(db dbx.DBTX) *recordsRepo {
	return &recordsRepo{db: db}
}

// Get returns (nil, nil) when the key is absent.
func (r *recordsRepo) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record[%s]: %w", key, err)
	}
	return value, nil
}

func (r *recordsRepo) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set record[%s]: %w", key, err)
	}
	return nil
}
