package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timbee-hwanjang86/timbee/internal/config"
	"github.com/timbee-hwanjang86/timbee/internal/kv"
)

func TestOpenStore_MemoryAndUnknown(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := openStore(ctx, config.Config{StoreBackend: config.BackendMemory})
	require.NoError(t, err)
	require.NotNil(t, closeFn)
	assert.IsType(t, &kv.MemStore{}, s)
	assert.NoError(t, closeFn())

	_, closeFn, err = openStore(ctx, config.Config{StoreBackend: "etcd"})
	require.Error(t, err)
	assert.NoError(t, closeFn())
}

func TestOpenStore_SQLite(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := openStore(ctx, config.Config{
		StoreBackend: config.BackendSQLite,
		SQLitePath:   ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	assert.IsType(t, &kv.SQLiteStore{}, s)

	require.NoError(t, s.Set(ctx, kv.KeyConfig, []byte(`{"brandName":"x"}`)))
	v, found, err := s.Get(ctx, kv.KeyConfig)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"brandName":"x"}`, string(v))
}
