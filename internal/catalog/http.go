package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/timbee-hwanjang86/timbee/pkg/kit"
)

// API serves the read-only catalog JSON routes.
type API struct {
	Catalog *Service
}

// Routes is meant to be mounted at /api/products.
func (a *API) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/", a.list)
	r.Get("/{id}", a.get)

	return r
}

func (a *API) list(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("brand")
	filter, err := ParseFilter(raw)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid brand", map[string]any{
			"brand":   raw,
			"allowed": []Brand{BrandAll, BrandNeofect, BrandUpwelly},
		})
		return
	}
	kit.WriteJSON(w, http.StatusOK, a.Catalog.FilterByBrand(filter))
}

func (a *API) get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := a.Catalog.Get(id)
	if !ok {
		kit.WriteError(w, r, http.StatusNotFound, "not found", map[string]any{"id": id})
		return
	}
	kit.WriteJSON(w, http.StatusOK, p)
}
