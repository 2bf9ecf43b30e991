package catalog

import (
	"errors"
	"strings"
)

type Brand string

const (
	BrandNeofect Brand = "NEOFECT"
	BrandUpwelly Brand = "UPWELLY"

	// BrandAll is a filter value only; no product carries it.
	BrandAll Brand = "ALL"
)

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidBrand = errors.New("invalid brand")
)

// Brands lists the product lines in display order.
var Brands = []Brand{BrandNeofect, BrandUpwelly}

// Product is one catalog entry. Price is display text; nothing computes with it.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Brand       Brand  `json:"brand"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"imageUrl"`
	AmazonURL   string `json:"amazonUrl"`
}

func ParseBrand(s string) (Brand, error) {
	switch Brand(strings.ToUpper(strings.TrimSpace(s))) {
	case BrandNeofect:
		return BrandNeofect, nil
	case BrandUpwelly:
		return BrandUpwelly, nil
	}
	return "", ErrInvalidBrand
}

// ParseFilter is ParseBrand plus ALL. An empty string means ALL.
func ParseFilter(s string) (Brand, error) {
	s = strings.TrimSpace(s)
	if s == "" || Brand(strings.ToUpper(s)) == BrandAll {
		return BrandAll, nil
	}
	return ParseBrand(s)
}

func DefaultProducts() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "NEOFECT Finger Splint",
			Category:    "Rehabilitation",
			Brand:       BrandNeofect,
			Description: "High-tech rehabilitation device for stroke survivors and hand injury patients.",
			Price:       "$49.99",
			ImageURL:    "https://m.media-amazon.com/images/I/61+I6x9NvrL._SL1500_.jpg",
			AmazonURL:   "https://www.amazon.com/dp/B08J49HFKK?th=1",
		},
		{
			ID:          "2",
			Name:        "UPWELLY FootLift Pro LEFT",
			Category:    "Back Support",
			Brand:       BrandUpwelly,
			Description: "Orthopedic grade back support designed for all-day comfort and postural correction.",
			Price:       "$39.9",
			ImageURL:    "https://m.media-amazon.com/images/I/81UQDPRHzVL._SL1500_.jpg",
			AmazonURL:   "https://www.amazon.com/dp/B0FQN35CC1?th=1",
		},
		{
			ID:          "3",
			Name:        "NEOFECT Drop Foot Brace",
			Category:    "Mobility",
			Brand:       BrandNeofect,
			Description: "Innovative AFO solution for foot drop relief and gait improvement.",
			Price:       "$54.99",
			ImageURL:    "https://m.media-amazon.com/images/I/71dYk2E2z-L._AC_UY218_.jpg",
			AmazonURL:   "https://www.amazon.com/dp/B0D716YT7W?th=1",
		},
		{
			ID:          "4",
			Name:        "UPWELLY FootLift Pro RIGHT",
			Category:    "Joint Support",
			Brand:       BrandUpwelly,
			Description: "3D compression technology for knee stability and pain management.",
			Price:       "$39.9",
			ImageURL:    "https://m.media-amazon.com/images/I/81CdSA8JbJL._SL1500_.jpg",
			AmazonURL:   "https://www.amazon.com/dp/B0FQN11PSF?th=1",
		},
	}
}
