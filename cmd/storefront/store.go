package main

import (
	"context"
	"fmt"

	"github.com/timbee-hwanjang86/timbee/internal/config"
	"github.com/timbee-hwanjang86/timbee/internal/kv"
)

// openStore builds the backend named by cfg.StoreBackend. The returned close
// func is never nil.
func openStore(ctx context.Context, cfg config.Config) (kv.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreBackend {
	case config.BackendMemory:
		return kv.NewMemStore(), noop, nil

	case config.BackendPostgres:
		s, db, err := kv.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return s, db.Close, nil

	case config.BackendRedis:
		s := kv.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisPrefix)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, noop, fmt.Errorf("ping redis: %w", err)
		}
		return s, s.Close, nil

	case config.BackendSQLite:
		s, err := kv.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, s.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
