package storefront

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/timbee-hwanjang86/timbee/internal/catalog"
	"github.com/timbee-hwanjang86/timbee/internal/siteconfig"
	"github.com/timbee-hwanjang86/timbee/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"lower": func(b catalog.Brand) string {
		if b == catalog.BrandNeofect {
			return "neofect"
		}
		return "upwelly"
	},
	"navlink": func(v, label string, current view.View) navLink {
		return navLink{View: v, Label: label, Active: view.View(v) == current}
	},
	"shop": func(brand, label, class string) shopButton {
		return shopButton{Brand: brand, Label: label, Class: class}
	},
	"tab": func(name, label, current string) tabLink {
		return tabLink{Name: name, Label: label, Active: name == current}
	},
	"trustBadges":  func() []string { return trustBadges },
	"aboutPillars": func() []pillar { return aboutPillars },
}).ParseFS(templateFS, "templates/*.html"))

type navLink struct {
	View   string
	Label  string
	Active bool
}

type shopButton struct {
	Brand string
	Label string
	Class string
}

type tabLink struct {
	Name   string
	Label  string
	Active bool
}

type pillar struct {
	Title string
	Desc  string
}

var trustBadges = []string{"ISO Certified", "FDA Approved", "Physician Recommended", "Global Shipping", "Direct Support"}

var aboutPillars = []pillar{
	{
		Title: "Carefully Selected",
		Desc:  "We browse the market to find only the most reliable medical supports for our collection.",
	},
	{
		Title: "Easy Access",
		Desc:  "We link you directly to verified Amazon listings for fast and secure global delivery.",
	},
	{
		Title: "Verified Brands",
		Desc:  "We only partner with established names like NEOFECT and UPWELLY to ensure you get the real deal.",
	},
}

const (
	tabProducts = "products"
	tabGeneral  = "general"
	tabFooter   = "footer"
)

var filters = []catalog.Brand{catalog.BrandAll, catalog.BrandNeofect, catalog.BrandUpwelly}

type pageData struct {
	State  view.State
	Page   string
	Config siteconfig.SiteConfig
	// Accent is the configured primary color, emitted without validation.
	Accent template.CSS
	Year   int

	Products []catalog.Product
	Filters  []catalog.Brand

	Gate  *gateData
	Admin *adminData
}

type gateData struct {
	Error string
}

type adminData struct {
	Tab      string
	Products []catalog.Product
	Brands   []catalog.Brand

	Editing *catalog.Product
	IsNew   bool
	Missing []string
	Problem string
}

func (a *App) pageData(st view.State) pageData {
	cfg := a.Config.Get()
	d := pageData{
		State:   st,
		Page:    string(st.View),
		Config:  cfg,
		Accent:  template.CSS(cfg.PrimaryColor),
		Year:    time.Now().Year(),
		Filters: filters,
	}

	switch {
	case st.ShowDashboard():
		d.Page = "dashboard"
		d.Admin = &adminData{
			Tab:      tabProducts,
			Products: a.Catalog.List(),
			Brands:   catalog.Brands,
		}
	case st.ShowGate():
		d.Page = "gate"
		d.Gate = &gateData{}
	case st.View == view.Products:
		d.Products = a.Catalog.FilterByBrand(st.Filter)
	}
	return d
}

func parseTab(s string) string {
	switch s {
	case tabGeneral, tabFooter:
		return s
	}
	return tabProducts
}

// render buffers the page so a template failure never leaves a half page.
func (a *App) render(w http.ResponseWriter, status int, d pageData) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, "page", d); err != nil {
		a.Log.Error("render page failed", zap.Error(err), zap.String("page", d.Page))
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
