package store

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/polymap/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	s := NewMemoryStore(logging.Discard())
	ctx := context.Background()

	assert.Empty(t, s.LoadAll(ctx))

	require.NoError(t, s.SaveAll(ctx, sampleAccounts()))
	assert.Equal(t, sampleAccounts(), s.LoadAll(ctx))
}

func TestMemory_CorruptOrNullReadsAsEmpty(t *testing.T) {
	s := NewMemoryStore(logging.Discard())
	ctx := context.Background()

	for _, raw := range []string{`{oops`, `null`, `{"name":"x"}`, ``} {
		s.SetRaw([]byte(raw))
		got := s.LoadAll(ctx)
		assert.NotNil(t, got, raw)
		assert.Empty(t, got, raw)
	}
}

func TestMemory_LoadReportsCorruption(t *testing.T) {
	s := NewMemoryStore(logging.Discard())
	ctx := context.Background()

	for _, raw := range []string{``, `null`, `[]`} {
		s.SetRaw([]byte(raw))
		got, err := s.Load(ctx)
		require.NoError(t, err, raw)
		assert.Empty(t, got, raw)
	}

	for _, raw := range []string{`{oops`, `{"name":"x"}`} {
		s.SetRaw([]byte(raw))
		_, err := s.Load(ctx)
		assert.Error(t, err, raw)
	}
}

func TestMemory_SaveNilWritesEmptyArray(t *testing.T) {
	s := NewMemoryStore(logging.Discard())

	require.NoError(t, s.SaveAll(context.Background(), nil))
	assert.Equal(t, `[]`, string(s.Raw()))
}

func TestMemory_LoadReturnsIndependentCopies(t *testing.T) {
	s := NewMemoryStore(logging.Discard())
	ctx := context.Background()
	require.NoError(t, s.SaveAll(ctx, sampleAccounts()))

	first := s.LoadAll(ctx)
	first[0].Logged = false
	first[0].Polygons = nil

	second := s.LoadAll(ctx)
	assert.True(t, second[0].Logged)
	assert.Len(t, second[0].Polygons, 1)
}
