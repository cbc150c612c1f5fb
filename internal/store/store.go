package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/polymap/internal/common"
	"github.com/dmitrijs2005/polymap/internal/models"
)

// UsersKey is the key under which the account table is stored.
const UsersKey = "users"

// RecordStore loads and atomically replaces the account table.
type RecordStore interface {
	// LoadAll returns the full table. It never fails: missing or corrupt
	// data reads as an empty table.
	LoadAll(ctx context.Context) []models.Account

	// Load returns the full table, or an error when the stored value cannot
	// be read or decoded. A missing key is an empty table, not an error.
	Load(ctx context.Context) ([]models.Account, error)

	// SaveAll replaces the full table. A successful save is visible to the
	// next LoadAll.
	SaveAll(ctx context.Context, accounts []models.Account) error
}

// UpdatePolygons replaces the polygon list of the account with the given tax
// id and writes the table back. It returns common.ErrNotFound when no such
// account exists and leaves an unreadable table untouched.
func UpdatePolygons(ctx context.Context, rs RecordStore, taxID string, polygons []models.Polygon) error {
	accounts, err := rs.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInternal, err)
	}

	i := models.IndexByTaxID(accounts, taxID)
	if i < 0 {
		return fmt.Errorf("account %s: %w", taxID, common.ErrNotFound)
	}

	updated := make([]models.Polygon, len(polygons))
	for n, p := range polygons {
		updated[n] = p.Clone()
	}
	accounts[i].Polygons = updated

	return rs.SaveAll(ctx, accounts)
}

func decodeAccounts(raw []byte) ([]models.Account, error) {
	if len(raw) == 0 {
		return []models.Account{}, nil
	}
	var accounts []models.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("decode %s: %w", UsersKey, err)
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}

func encodeAccounts(accounts []models.Account) ([]byte, error) {
	if accounts == nil {
		accounts = []models.Account{}
	}
	b, err := json.Marshal(accounts)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", UsersKey, err)
	}
	return b, nil
}
