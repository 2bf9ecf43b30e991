package siteconfig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/timbee-hwanjang86/timbee/internal/kv"
	"github.com/timbee-hwanjang86/timbee/pkg/kit"
)

// ErrNotLoaded is returned by Replace after a Load failed to read the store.
var ErrNotLoaded = errors.New("site config not loaded from store")

type Service struct {
	mu       sync.RWMutex
	cfg      SiteConfig
	unsynced bool

	store kv.Store
	log   *zap.Logger
}

func NewService(store kv.Store, log *zap.Logger) *Service {
	return &Service{
		cfg:   Default(),
		store: store,
		log:   kit.OrNop(log),
	}
}

// Load reads the persisted config, falling back to Default when it is
// missing or not an object. A read error is returned and blocks Replace
// until a later Load succeeds.
func (s *Service) Load(ctx context.Context) (SiteConfig, error) {
	cfg, err := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.unsynced = true
		return SiteConfig{}, err
	}
	s.cfg = cfg
	s.unsynced = false
	return cfg, nil
}

func (s *Service) read(ctx context.Context) (SiteConfig, error) {
	raw, found, err := s.store.Get(ctx, kv.KeyConfig)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("read config: %w", err)
	}
	if !found {
		return Default(), nil
	}

	cfg, err := decode(raw)
	if err != nil {
		s.log.Warn("corrupt config document, using defaults", zap.Error(err))
		return Default(), nil
	}
	return cfg, nil
}

func (s *Service) Get() SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Replace overwrites the whole record. There is no partial update.
func (s *Service) Replace(ctx context.Context, cfg SiteConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unsynced {
		return ErrNotLoaded
	}
	if err := s.store.Set(ctx, kv.KeyConfig, raw); err != nil {
		s.log.Error("persist config failed", zap.Error(err))
		return fmt.Errorf("persist config: %w", err)
	}

	s.cfg = cfg
	return nil
}
