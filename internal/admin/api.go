package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/timbee-hwanjang86/timbee/internal/catalog"
	"github.com/timbee-hwanjang86/timbee/internal/siteconfig"
	"github.com/timbee-hwanjang86/timbee/pkg/kit"
)

const CodeHeader = "X-Admin-Code"

// Hooks lets the caller observe successful mutations (metrics).
type Hooks struct {
	ProductUpserted func()
	ProductRemoved  func()
	ConfigReplaced  func()
}

type API struct {
	Catalog *catalog.Service
	Config  *siteconfig.Service
	Gate    *Gate
	Log     *zap.Logger
	Hooks   Hooks
}

// Routes is meant to be mounted at /api/admin.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(a.requireCode)

	r.Post("/products/id", a.newID)
	r.Put("/products/{id}", a.putProduct)
	r.Delete("/products/{id}", a.deleteProduct)
	r.Get("/config", a.getConfig)
	r.Put("/config", a.putConfig)

	return r
}

func (a *API) requireCode(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Gate.Check(r.Header.Get(CodeHeader)) {
			kit.WriteError(w, r, http.StatusUnauthorized, "invalid admin code", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *API) newID(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, map[string]string{"id": catalog.GenerateID()})
}

func (a *API) putProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var p catalog.Product
	if err := kit.DecodeJSON(w, r, &p); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}
	if p.ID == "" {
		p.ID = id
	}
	if p.ID != id {
		kit.WriteError(w, r, http.StatusBadRequest, "id mismatch", map[string]any{"path": id, "body": p.ID})
		return
	}

	p, err := ValidateProduct(p)
	if err != nil {
		writeValidationError(w, r, err)
		return
	}

	if err := a.Catalog.Upsert(r.Context(), p); err != nil {
		kit.OrNop(a.Log).Error("upsert product failed", zap.Error(err), zap.String("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	call(a.Hooks.ProductUpserted)

	kit.WriteJSON(w, http.StatusOK, p)
}

func (a *API) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := a.Catalog.Remove(r.Context(), id); err != nil {
		kit.OrNop(a.Log).Error("remove product failed", zap.Error(err), zap.String("id", id))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	call(a.Hooks.ProductRemoved)

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) getConfig(w http.ResponseWriter, _ *http.Request) {
	kit.WriteJSON(w, http.StatusOK, a.Config.Get())
}

func (a *API) putConfig(w http.ResponseWriter, r *http.Request) {
	var cfg siteconfig.SiteConfig
	if err := kit.DecodeJSON(w, r, &cfg); err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", map[string]any{"cause": err.Error()})
		return
	}

	if err := a.Config.Replace(r.Context(), cfg); err != nil {
		kit.OrNop(a.Log).Error("replace config failed", zap.Error(err))
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	call(a.Hooks.ConfigReplaced)

	kit.WriteJSON(w, http.StatusOK, cfg)
}

func writeValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var fe *FieldError
	switch {
	case errors.As(err, &fe):
		kit.WriteError(w, r, http.StatusBadRequest, "missing required fields", map[string]any{"fields": fe.Fields})
	case errors.Is(err, catalog.ErrInvalidBrand):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid brand", nil)
	default:
		kit.WriteError(w, r, http.StatusBadRequest, "invalid product", nil)
	}
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
