// Package storefront renders the public pages and the admin dashboard and
// turns form posts into catalog, config and view-state changes.
package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/timbee-hwanjang86/timbee/internal/admin"
	"github.com/timbee-hwanjang86/timbee/internal/catalog"
	"github.com/timbee-hwanjang86/timbee/internal/kv"
	"github.com/timbee-hwanjang86/timbee/internal/siteconfig"
	"github.com/timbee-hwanjang86/timbee/internal/view"
	"github.com/timbee-hwanjang86/timbee/pkg/kit"
)

const (
	readyTimeout       = 1 * time.Second
	redirectRateWindow = time.Minute
)

// App is the whole application state. Handlers read snapshots from the
// services and change anything only through their methods.
type App struct {
	Store   kv.Store
	Catalog *catalog.Service
	Config  *siteconfig.Service
	Gate    *admin.Gate
	Views   *view.Codec
	Log     *zap.Logger

	metrics *domainMetrics
}

// Load pulls both documents from the store into memory. It fails when the
// store cannot be read; serving defaults then would let the first admin edit
// overwrite the real data.
func (a *App) Load(ctx context.Context) error {
	products, err := a.Catalog.Load(ctx)
	if err != nil {
		return err
	}
	cfg, err := a.Config.Load(ctx)
	if err != nil {
		return err
	}

	kit.OrNop(a.Log).Info("storefront state loaded",
		zap.Int("products", len(products)),
		zap.String("brand", cfg.BrandName),
	)
	return nil
}

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	RedirectLimitPerMin int
}

func NewHandler(a *App, deps HTTPDeps) http.Handler {
	a.Log = kit.OrNop(a.Log)

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	a.metrics = newDomainMetrics(reg)

	r := chi.NewRouter()
	setupMiddleware(r, deps)
	setupMetrics(r, deps)
	setupRoutes(r, a, deps)

	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	r.Use(kit.NewMetrics(deps.Registry, deps.Service).Middleware)

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}

func setupRoutes(r *chi.Mux, a *App, deps HTTPDeps) {
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", a.ready)

	r.Mount("/api/products", (&catalog.API{Catalog: a.Catalog}).Routes())
	r.Mount("/api/admin", (&admin.API{
		Catalog: a.Catalog,
		Config:  a.Config,
		Gate:    a.Gate,
		Log:     a.Log,
		Hooks: admin.Hooks{
			ProductUpserted: a.metrics.upserted,
			ProductRemoved:  a.metrics.removed,
			ConfigReplaced:  a.metrics.replaced,
		},
	}).Routes())

	limiter := kit.NewIPRateLimiter(deps.RedirectLimitPerMin, redirectRateWindow)
	r.Group(func(gr chi.Router) {
		gr.Use(limiter.Middleware)
		gr.Get("/go/product/{id}", a.redirectProduct)
		gr.Get("/go/store", a.redirectStore)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(kit.NoStore)

		pr.Get("/", a.page)
		pr.Post("/view", a.setView)
		pr.Post("/filter", a.setFilter)
		pr.Post("/shop", a.shop)
		pr.Post("/menu", a.toggleMenu)

		pr.Post("/admin/open", a.openAdmin)
		pr.Post("/admin/close", a.closeAdmin)
		pr.Post("/admin/unlock", a.unlock)
		pr.Post("/admin/logout", a.logout)

		pr.Group(func(ar chi.Router) {
			ar.Use(a.requireUnlocked)
			ar.Get("/admin/products/new", a.newProductForm)
			ar.Get("/admin/products/{id}/edit", a.editProductForm)
			ar.Post("/admin/products", a.saveProduct)
			ar.Post("/admin/products/{id}/delete", a.deleteProduct)
			ar.Post("/admin/config", a.saveConfig)
		})
	})
}

func (a *App) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := a.Store.Ping(ctx); err != nil {
		a.Log.Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
		return
	}
	w.WriteHeader(http.StatusOK)
}
