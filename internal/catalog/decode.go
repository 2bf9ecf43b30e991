package catalog

import (
	"encoding/json"
	"errors"
	"strconv"
)

var (
	errNotArray   = errors.New("products document is not a JSON array")
	errNoProducts = errors.New("products document has no product objects")
)

// decodeProducts is lenient per element: missing fields become zero values,
// an unknown brand becomes NEOFECT, a missing id is generated, non-objects
// are dropped and a repeated id keeps its first occurrence. A document that
// is not an array, or a non-empty array without a single object, is an
// error. An empty array is a valid empty catalog.
func decodeProducts(raw []byte) ([]Product, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, errNotArray
	}
	if elems == nil {
		return nil, errNotArray
	}

	out := make([]Product, 0, len(elems))
	seen := make(map[string]struct{}, len(elems))

	for _, e := range elems {
		var fields map[string]any
		if err := json.Unmarshal(e, &fields); err != nil || fields == nil {
			continue
		}

		p := Product{
			ID:          str(fields, "id"),
			Name:        str(fields, "name"),
			Category:    str(fields, "category"),
			Description: str(fields, "description"),
			Price:       str(fields, "price"),
			ImageURL:    str(fields, "imageUrl"),
			AmazonURL:   str(fields, "amazonUrl"),
		}

		b, err := ParseBrand(str(fields, "brand"))
		if err != nil {
			b = BrandNeofect
		}
		p.Brand = b

		if p.ID == "" {
			p.ID = GenerateID()
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}

		out = append(out, p)
	}

	if len(elems) > 0 && len(out) == 0 {
		return nil, errNoProducts
	}
	return out, nil
}

func str(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}
