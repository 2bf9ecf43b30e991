package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timbee-hwanjang86/timbee/internal/kv"
	"github.com/timbee-hwanjang86/timbee/pkg/kit"
)

const idLen = 9

// ErrNotLoaded is returned by mutations after a Load failed to read the
// store. Writing then would overwrite durable data that was never seen.
var ErrNotLoaded = errors.New("catalog not loaded from store")

// Service owns the in-memory catalog and mirrors every mutation to the
// store before it becomes visible.
type Service struct {
	mu       sync.RWMutex
	products []Product
	// unsynced is set while the last Load could not read the store.
	unsynced bool

	store kv.Store
	log   *zap.Logger
}

func NewService(store kv.Store, log *zap.Logger) *Service {
	return &Service{
		products: DefaultProducts(),
		store:    store,
		log:      kit.OrNop(log),
	}
}

// Load replaces the in-memory catalog with the persisted one. A missing or
// corrupt document falls back to DefaultProducts. A failed read is returned
// and leaves memory untouched; mutations are refused until a Load succeeds.
func (s *Service) Load(ctx context.Context) ([]Product, error) {
	products, err := s.read(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.unsynced = true
		return nil, err
	}
	s.products = products
	s.unsynced = false
	return clone(products), nil
}

func (s *Service) read(ctx context.Context) ([]Product, error) {
	raw, found, err := s.store.Get(ctx, kv.KeyProducts)
	if err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	if !found {
		return DefaultProducts(), nil
	}

	products, err := decodeProducts(raw)
	if err != nil {
		s.log.Warn("corrupt products document, using defaults", zap.Error(err))
		return DefaultProducts(), nil
	}
	return products, nil
}

func (s *Service) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.products)
}

func (s *Service) FilterByBrand(filter Brand) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if filter == BrandAll {
		return clone(s.products)
	}

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if p.Brand == filter {
			out = append(out, p)
		}
	}
	return out
}

func (s *Service) Get(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := indexOf(s.products, id); i >= 0 {
		return s.products[i], true
	}
	return Product{}, false
}

// Upsert replaces the product with the same id in place, or appends it.
func (s *Service) Upsert(ctx context.Context, p Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := clone(s.products)
	if i := indexOf(next, p.ID); i >= 0 {
		next[i] = p
	} else {
		next = append(next, p)
	}

	return s.commit(ctx, next)
}

// Remove deletes id when present. An absent id is not an error.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if p.ID != id {
			next = append(next, p)
		}
	}

	return s.commit(ctx, next)
}

// commit persists next and only then swaps it in. Callers hold mu.
func (s *Service) commit(ctx context.Context, next []Product) error {
	if s.unsynced {
		return ErrNotLoaded
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	if err := s.store.Set(ctx, kv.KeyProducts, raw); err != nil {
		s.log.Error("persist products failed", zap.Error(err))
		return fmt.Errorf("persist products: %w", err)
	}

	s.products = next
	return nil
}

// GenerateID returns a short random token. Uniqueness is best effort.
func GenerateID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:idLen]
}

func indexOf(products []Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clone(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
