package storefront

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/timbee-hwanjang86/timbee/internal/admin"
	"github.com/timbee-hwanjang86/timbee/internal/catalog"
	"github.com/timbee-hwanjang86/timbee/internal/view"
)

func (a *App) page(w http.ResponseWriter, r *http.Request) {
	st := a.Views.Read(r)
	d := a.pageData(st)
	if d.Admin != nil {
		d.Admin.Tab = parseTab(r.URL.Query().Get("tab"))
	}
	a.render(w, http.StatusOK, d)
}

// update applies fn to the visitor's view state, stores it, and sends the
// browser back to the page.
func (a *App) update(w http.ResponseWriter, r *http.Request, fn func(st *view.State)) {
	st := a.Views.Read(r)
	fn(&st)
	a.commitView(w, r, st, "/")
}

func (a *App) commitView(w http.ResponseWriter, r *http.Request, st view.State, to string) {
	if err := a.Views.Write(w, st); err != nil {
		a.Log.Error("encode view state failed", zap.Error(err))
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (a *App) setView(w http.ResponseWriter, r *http.Request) {
	v, err := view.ParseView(r.PostFormValue("view"))
	if err != nil {
		http.Error(w, "invalid view", http.StatusBadRequest)
		return
	}
	a.update(w, r, func(st *view.State) { st.SetView(v) })
}

func (a *App) setFilter(w http.ResponseWriter, r *http.Request) {
	b, err := catalog.ParseFilter(r.PostFormValue("brand"))
	if err != nil {
		http.Error(w, "invalid brand", http.StatusBadRequest)
		return
	}
	a.update(w, r, func(st *view.State) { st.SetBrandFilter(b) })
}

func (a *App) shop(w http.ResponseWriter, r *http.Request) {
	b, err := catalog.ParseFilter(r.PostFormValue("brand"))
	if err != nil {
		http.Error(w, "invalid brand", http.StatusBadRequest)
		return
	}
	a.update(w, r, func(st *view.State) { st.Shop(b) })
}

func (a *App) toggleMenu(w http.ResponseWriter, r *http.Request) {
	a.update(w, r, func(st *view.State) { st.ToggleMenu() })
}

func (a *App) openAdmin(w http.ResponseWriter, r *http.Request) {
	a.update(w, r, func(st *view.State) { st.OpenAdmin() })
}

func (a *App) closeAdmin(w http.ResponseWriter, r *http.Request) {
	a.update(w, r, func(st *view.State) { st.CloseAdmin() })
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	a.update(w, r, func(st *view.State) { st.Logout() })
}

func (a *App) unlock(w http.ResponseWriter, r *http.Request) {
	st := a.Views.Read(r)
	if st.AdminUnlocked {
		st.OpenAdmin()
		a.commitView(w, r, st, "/")
		return
	}

	ok := a.Gate.Check(r.PostFormValue("code"))
	a.metrics.unlock(ok)
	if !ok {
		st.OpenAdmin()
		d := a.pageData(st)
		d.Gate.Error = "Invalid access code."
		a.render(w, http.StatusUnauthorized, d)
		return
	}

	st.Unlock()
	st.OpenAdmin()
	a.commitView(w, r, st, "/")
}

func (a *App) requireUnlocked(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Views.Read(r).AdminUnlocked {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) dashboard(r *http.Request) pageData {
	st := a.Views.Read(r)
	st.OpenAdmin()
	return a.pageData(st)
}

func (a *App) newProductForm(w http.ResponseWriter, r *http.Request) {
	d := a.dashboard(r)
	d.Admin.Editing = &catalog.Product{ID: catalog.GenerateID(), Brand: catalog.BrandNeofect}
	d.Admin.IsNew = true
	a.render(w, http.StatusOK, d)
}

func (a *App) editProductForm(w http.ResponseWriter, r *http.Request) {
	p, ok := a.Catalog.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, catalog.ErrNotFound.Error(), http.StatusNotFound)
		return
	}

	d := a.dashboard(r)
	d.Admin.Editing = &p
	a.render(w, http.StatusOK, d)
}

func (a *App) saveProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	submitted := admin.ProductFromForm(r.PostForm)
	p, err := admin.ValidateProduct(submitted)
	if err != nil {
		d := a.dashboard(r)
		d.Admin.Editing = &submitted
		_, exists := a.Catalog.Get(submitted.ID)
		d.Admin.IsNew = !exists

		var fe *admin.FieldError
		switch {
		case errors.As(err, &fe):
			d.Admin.Missing = fe.Fields
		case errors.Is(err, catalog.ErrInvalidBrand):
			d.Admin.Problem = "Choose NEOFECT or UPWELLY."
		default:
			d.Admin.Problem = err.Error()
		}
		a.render(w, http.StatusBadRequest, d)
		return
	}

	if err := a.Catalog.Upsert(r.Context(), p); err != nil {
		http.Error(w, "could not save product", http.StatusInternalServerError)
		return
	}
	a.metrics.upserted()

	http.Redirect(w, r, "/?tab="+tabProducts, http.StatusSeeOther)
}

func (a *App) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := a.Catalog.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		http.Error(w, "could not delete product", http.StatusInternalServerError)
		return
	}
	a.metrics.removed()

	http.Redirect(w, r, "/?tab="+tabProducts, http.StatusSeeOther)
}

func (a *App) saveConfig(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	cfg := admin.ConfigFromForm(a.Config.Get(), r.PostForm)
	if err := a.Config.Replace(r.Context(), cfg); err != nil {
		http.Error(w, "could not save settings", http.StatusInternalServerError)
		return
	}
	a.metrics.replaced()

	tab := parseTab(r.PostForm.Get("tab"))
	http.Redirect(w, r, "/?tab="+url.QueryEscape(tab), http.StatusSeeOther)
}

func (a *App) redirectProduct(w http.ResponseWriter, r *http.Request) {
	p, ok := a.Catalog.Get(chi.URLParam(r, "id"))
	if !ok || p.AmazonURL == "" {
		http.NotFound(w, r)
		return
	}
	a.metrics.redirects.WithLabelValues("product", string(p.Brand)).Inc()
	redirectVerbatim(w, p.AmazonURL)
}

func (a *App) redirectStore(w http.ResponseWriter, r *http.Request) {
	target := a.Config.Get().AmazonURL
	if target == "" {
		http.NotFound(w, r)
		return
	}
	a.metrics.redirects.WithLabelValues("store", "").Inc()
	redirectVerbatim(w, target)
}

// redirectVerbatim skips http.Redirect's path cleaning; stored marketplace
// links are passed through untouched.
func redirectVerbatim(w http.ResponseWriter, target string) {
	w.Header().Set("Location", target)
	w.WriteHeader(http.StatusFound)
}
