package catalog

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timbee-hwanjang86/timbee/internal/kv"
)

type failingStore struct {
	kv.Store
	setErr error
}

func (s failingStore) Set(ctx context.Context, key string, value []byte) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.Store.Set(ctx, key, value)
}

// flakyStore fails the next failGets reads, then behaves.
type flakyStore struct {
	kv.Store
	failGets int
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.failGets > 0 {
		s.failGets--
		return nil, false, errors.New("i/o timeout")
	}
	return s.Store.Get(ctx, key)
}

func load(t *testing.T, s *Service) []Product {
	t.Helper()
	products, err := s.Load(context.Background())
	require.NoError(t, err)
	return products
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func newProduct(id string, b Brand) Product {
	return Product{
		ID:        id,
		Name:      "Product " + id,
		Category:  "Support",
		Brand:     b,
		Price:     "$10",
		ImageURL:  "https://img.example/" + id,
		AmazonURL: "https://www.amazon.com/dp/" + id,
	}
}

func TestLoad_FallsBackToDefaults(t *testing.T) {
	ctx := context.Background()

	t.Run("missing", func(t *testing.T) {
		s := NewService(kv.NewMemStore(), nil)
		assert.Equal(t, DefaultProducts(), load(t, s))
		assert.Equal(t, DefaultProducts(), s.List())
	})

	for name, doc := range map[string]string{
		"garbage":     `{{not json`,
		"object":      `{"id":"1"}`,
		"null":        `null`,
		"string":      `"products"`,
		"numbers":     `[1,2]`,
		"null member": `[null]`,
	} {
		t.Run("corrupt "+name, func(t *testing.T) {
			store := kv.NewMemStore()
			require.NoError(t, store.Set(ctx, kv.KeyProducts, []byte(doc)))

			s := NewService(store, nil)
			assert.Equal(t, DefaultProducts(), load(t, s))
		})
	}
}

func TestLoad_ReadErrorKeepsStoredCatalog(t *testing.T) {
	ctx := context.Background()
	mem := kv.NewMemStore()
	stored := `[{"id":"only","name":"Stored","brand":"UPWELLY"}]`
	require.NoError(t, mem.Set(ctx, kv.KeyProducts, []byte(stored)))

	store := &flakyStore{Store: mem, failGets: 1}
	s := NewService(store, nil)

	_, err := s.Load(ctx)
	require.Error(t, err)

	assert.ErrorIs(t, s.Upsert(ctx, newProduct("x", BrandNeofect)), ErrNotLoaded)
	assert.ErrorIs(t, s.Remove(ctx, "only"), ErrNotLoaded)

	raw, _, err := mem.Get(ctx, kv.KeyProducts)
	require.NoError(t, err)
	assert.JSONEq(t, stored, string(raw), "stored catalog untouched")

	assert.Equal(t, []string{"only"}, ids(load(t, s)))
	require.NoError(t, s.Upsert(ctx, newProduct("x", BrandNeofect)))
	assert.Equal(t, []string{"only", "x"}, ids(load(t, NewService(mem, nil))))
}

func TestLoad_EmptyArrayIsAnEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	require.NoError(t, store.Set(ctx, kv.KeyProducts, []byte(`[]`)))

	assert.Empty(t, load(t, NewService(store, nil)))
}

func TestLoad_DecodeWithDefaults(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	require.NoError(t, store.Set(ctx, kv.KeyProducts, []byte(`[
		{"id":"a","name":"Brace","brand":"UPWELLY","legacyField":true},
		{"id":"b","brand":"ACME"},
		42,
		{"id":"a","name":"dup"},
		{"name":"no id","price":12.5}
	]`)))

	got := load(t, NewService(store, nil))
	require.Len(t, got, 3)

	assert.Equal(t, Product{ID: "a", Name: "Brace", Brand: BrandUpwelly}, got[0])
	assert.Equal(t, BrandNeofect, got[1].Brand, "unknown brand degrades to the default brand")
	assert.Equal(t, "no id", got[2].Name)
	assert.Equal(t, "12.5", got[2].Price)
	assert.Len(t, got[2].ID, idLen)
}

func TestFilterByBrand(t *testing.T) {
	s := NewService(kv.NewMemStore(), nil)

	all := s.FilterByBrand(BrandAll)
	assert.Equal(t, ids(DefaultProducts()), ids(all))

	neo := s.FilterByBrand(BrandNeofect)
	up := s.FilterByBrand(BrandUpwelly)
	assert.Equal(t, []string{"1", "3"}, ids(neo))
	assert.Equal(t, []string{"2", "4"}, ids(up))

	assert.ElementsMatch(t, ids(all), append(ids(neo), ids(up)...), "brand filters partition the catalog")
}

func TestFilterByBrand_ReturnsCopy(t *testing.T) {
	s := NewService(kv.NewMemStore(), nil)

	got := s.FilterByBrand(BrandAll)
	got[0].Name = "mutated"

	assert.Equal(t, "NEOFECT Finger Splint", s.List()[0].Name)
}

func TestUpsert_InsertAndUpdateSurviveReload(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	s := NewService(store, nil)
	load(t, s)

	p := newProduct("new", BrandUpwelly)
	require.NoError(t, s.Upsert(ctx, p))

	reloaded := load(t, NewService(store, nil))
	assert.Equal(t, []string{"1", "2", "3", "4", "new"}, ids(reloaded))

	p.Name = "Renamed"
	require.NoError(t, s.Upsert(ctx, p))
	edited := newProduct("2", BrandNeofect)
	require.NoError(t, s.Upsert(ctx, edited))

	reloaded = load(t, NewService(store, nil))
	assert.Equal(t, []string{"1", "2", "3", "4", "new"}, ids(reloaded), "updates keep position")
	assert.Equal(t, "Renamed", reloaded[4].Name)
	assert.Equal(t, edited, reloaded[1])
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	s := NewService(store, nil)

	require.NoError(t, s.Remove(ctx, "3"))
	assert.Equal(t, []string{"1", "2", "4"}, ids(load(t, NewService(store, nil))))

	require.NoError(t, s.Remove(ctx, "3"), "removing an absent id is a no-op")
	require.NoError(t, s.Remove(ctx, "does-not-exist"))
	assert.Equal(t, []string{"1", "2", "4"}, ids(load(t, NewService(store, nil))))
}

func TestMutation_PersistFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	s := NewService(failingStore{Store: kv.NewMemStore(), setErr: errors.New("disk full")}, nil)

	require.Error(t, s.Upsert(ctx, newProduct("x", BrandNeofect)))
	require.Error(t, s.Remove(ctx, "1"))

	assert.Equal(t, ids(DefaultProducts()), ids(s.List()))
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	s := NewService(store, nil)

	want := []Product{
		newProduct("z", BrandUpwelly),
		newProduct("y", BrandNeofect),
		{ID: "x", Name: `Quote "and" <tags>`, Brand: BrandUpwelly, Description: "línea\nnueva"},
	}
	for _, p := range DefaultProducts() {
		require.NoError(t, s.Remove(ctx, p.ID))
	}
	for _, p := range want {
		require.NoError(t, s.Upsert(ctx, p))
	}

	assert.Equal(t, want, load(t, NewService(store, nil)))
}

func TestScenario_NewUpwellyProduct(t *testing.T) {
	ctx := context.Background()
	s := NewService(kv.NewMemStore(), nil)
	load(t, s)

	require.NoError(t, s.Upsert(ctx, newProduct("new", BrandUpwelly)))

	assert.Contains(t, ids(s.FilterByBrand(BrandUpwelly)), "new")
	assert.NotContains(t, ids(s.FilterByBrand(BrandNeofect)), "new")
	assert.Contains(t, ids(s.FilterByBrand(BrandAll)), "new")
}

func TestGenerateID(t *testing.T) {
	re := regexp.MustCompile(`^[a-z0-9]{9}$`)
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		id := GenerateID()
		require.Regexp(t, re, id)
		seen[id] = struct{}{}
	}
	assert.Len(t, seen, 100)
}

func TestParseFilter(t *testing.T) {
	for in, want := range map[string]Brand{
		"":         BrandAll,
		"all":      BrandAll,
		"ALL":      BrandAll,
		"neofect":  BrandNeofect,
		" UPWELLY": BrandUpwelly,
	} {
		got, err := ParseFilter(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFilter("ACME")
	assert.ErrorIs(t, err, ErrInvalidBrand)
	_, err = ParseBrand("ALL")
	assert.ErrorIs(t, err, ErrInvalidBrand, "ALL is not a product brand")
}
