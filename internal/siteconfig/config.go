// Package siteconfig holds the single brand-presentation record.
package siteconfig

import (
	"encoding/json"
	"errors"
)

type SiteConfig struct {
	BrandName       string `json:"brandName"`
	PrimaryColor    string `json:"primaryColor"`
	Logo            string `json:"logo"`
	SEODescription  string `json:"seoDescription"`
	FooterAbout     string `json:"footerAbout"`
	FooterCopyright string `json:"footerCopyright"`
	AmazonURL       string `json:"amazonUrl"`
	Address         string `json:"address"`
}

func Default() SiteConfig {
	return SiteConfig{
		BrandName:       "timbee",
		PrimaryColor:    "#0056B3",
		Logo:            "timbee",
		SEODescription:  "Premium Medical Supplies & Equipment. Specialized in NEOFECT and UPWELLY professional supports.",
		FooterAbout:     "timbee is dedicated to providing high-quality medical grade braces and supports through our curated selection of NEOFECT and UPWELLY products.",
		FooterCopyright: "All rights reserved.",
		AmazonURL:       "https://www.amazon.com/s?me=AVQYY6T108GIT&marketplaceID=ATVPDKIKX0DER",
		Address:         "",
	}
}

var errNotObject = errors.New("config document is not a JSON object")

// decode starts from Default and overwrites only the fields present as
// strings, so a document written by an older schema still renders.
func decode(raw []byte) (SiteConfig, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return SiteConfig{}, errNotObject
	}

	cfg := Default()
	for key, dst := range map[string]*string{
		"brandName":       &cfg.BrandName,
		"primaryColor":    &cfg.PrimaryColor,
		"logo":            &cfg.Logo,
		"seoDescription":  &cfg.SEODescription,
		"footerAbout":     &cfg.FooterAbout,
		"footerCopyright": &cfg.FooterCopyright,
		"amazonUrl":       &cfg.AmazonURL,
		"address":         &cfg.Address,
	} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			*dst = s
		}
	}
	return cfg, nil
}
