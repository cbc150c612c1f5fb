package store

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/polymap/internal/logging"
	"github.com/dmitrijs2005/polymap/internal/models"
)

// MemoryStore keeps the encoded table in memory. It stores the same JSON a
// durable backend would, so corrupt-data behaviour can be exercised by
// writing raw bytes with SetRaw.
type MemoryStore struct {
	mu  sync.RWMutex
	raw []byte
	log logging.Logger
}

var _ RecordStore = (*MemoryStore)(nil)

func NewMemoryStore(log logging.Logger) *MemoryStore {
	return &MemoryStore{log: log}
}

func (s *MemoryStore) Load(_ context.Context) ([]models.Account, error) {
	s.mu.RLock()
	raw := append([]byte(nil), s.raw...)
	s.mu.RUnlock()

	return decodeAccounts(raw)
}

func (s *MemoryStore) LoadAll(ctx context.Context) []models.Account {
	accounts, err := s.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "record table unreadable, treating as empty", "error", err)
		return []models.Account{}
	}
	return accounts
}

func (s *MemoryStore) SaveAll(_ context.Context, accounts []models.Account) error {
	b, err := encodeAccounts(accounts)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.raw = b
	s.mu.Unlock()
	return nil
}

// SetRaw overwrites the stored bytes verbatim.
func (s *MemoryStore) SetRaw(b []byte) {
	s.mu.Lock()
	s.raw = append([]byte(nil), b...)
	s.mu.Unlock()
}

// Raw returns a copy of the stored bytes.
func (s *MemoryStore) Raw() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.raw...)
}
