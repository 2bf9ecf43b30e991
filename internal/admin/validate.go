package admin

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/timbee-hwanjang86/timbee/internal/catalog"
	"github.com/timbee-hwanjang86/timbee/internal/siteconfig"
)

var ErrMissingFields = errors.New("missing required fields")

// FieldError lists the required fields that were left empty.
type FieldError struct {
	Fields []string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingFields, strings.Join(e.Fields, ", "))
}

func (e *FieldError) Unwrap() error { return ErrMissingFields }

// ValidateProduct trims every field and enforces the edit form's required
// set: name, category, price, imageUrl, amazonUrl. Description is optional.
func ValidateProduct(p catalog.Product) (catalog.Product, error) {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Description = strings.TrimSpace(p.Description)
	p.Price = strings.TrimSpace(p.Price)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	p.AmazonURL = strings.TrimSpace(p.AmazonURL)

	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", p.Name},
		{"category", p.Category},
		{"price", p.Price},
		{"imageUrl", p.ImageURL},
		{"amazonUrl", p.AmazonURL},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return p, &FieldError{Fields: missing}
	}

	b, err := catalog.ParseBrand(string(p.Brand))
	if err != nil {
		return p, err
	}
	p.Brand = b

	if p.ID == "" {
		p.ID = catalog.GenerateID()
	}
	return p, nil
}

// ProductFromForm reads the product edit form. The brand is passed through
// unparsed so ValidateProduct reports it.
func ProductFromForm(form url.Values) catalog.Product {
	return catalog.Product{
		ID:          form.Get("id"),
		Name:        form.Get("name"),
		Category:    form.Get("category"),
		Brand:       catalog.Brand(form.Get("brand")),
		Description: form.Get("description"),
		Price:       form.Get("price"),
		ImageURL:    form.Get("imageUrl"),
		AmazonURL:   form.Get("amazonUrl"),
	}
}

// ConfigFromForm overlays the submitted fields on base. Fields absent from
// the form keep base's value, so each admin tab can post only its own part
// and the service still receives a whole record.
func ConfigFromForm(base siteconfig.SiteConfig, form url.Values) siteconfig.SiteConfig {
	for key, dst := range map[string]*string{
		"brandName":       &base.BrandName,
		"primaryColor":    &base.PrimaryColor,
		"logo":            &base.Logo,
		"seoDescription":  &base.SEODescription,
		"footerAbout":     &base.FooterAbout,
		"footerCopyright": &base.FooterCopyright,
		"amazonUrl":       &base.AmazonURL,
		"address":         &base.Address,
	} {
		if _, ok := form[key]; ok {
			*dst = strings.TrimSpace(form.Get(key))
		}
	}
	return base
}
