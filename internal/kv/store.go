// Package kv is the persisted document store behind the catalog and the
// site configuration. Values are opaque JSON blobs overwritten whole.
package kv

import (
	"context"
	"time"
)

const (
	KeyProducts = "catalog-products"
	KeyConfig   = "catalog-config"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
)

type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Ping(ctx context.Context) error
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
