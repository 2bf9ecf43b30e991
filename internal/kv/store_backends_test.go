//go:build integration
// +build integration

package kv

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Run with: go test -tags integration ./internal/kv
// against a real server given by DATABASE_URL and/or REDIS_ADDR.

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()

	s, db, err := OpenPostgres(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wipe := func() {
		_, err := db.ExecContext(ctx, `DELETE FROM kv_documents WHERE key IN ($1, $2)`, KeyProducts, KeyConfig)
		require.NoError(t, err)
	}
	wipe()
	t.Cleanup(wipe)

	storeContract(t, s)

	// Migrations are idempotent across restarts.
	require.NoError(t, RunMigrations(db))
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	prefix := fmt.Sprintf("timbee-test-%d:", time.Now().UnixNano())
	s := OpenRedis(addr, os.Getenv("REDIS_PASSWORD"), 0, prefix)
	t.Cleanup(func() {
		_ = s.client.Del(context.Background(), prefix+KeyProducts, prefix+KeyConfig).Err()
		_ = s.Close()
	})

	storeContract(t, s)
}
