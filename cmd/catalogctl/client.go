package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/timbee-hwanjang86/timbee/internal/admin"
	"github.com/timbee-hwanjang86/timbee/internal/catalog"
	"github.com/timbee-hwanjang86/timbee/internal/siteconfig"
	"github.com/timbee-hwanjang86/timbee/pkg/kit"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrBadStatus   = errors.New("bad status")
	ErrUnavailable = errors.New("storefront unavailable")
)

const clientTimeout = 3 * time.Second

// Client talks to the storefront's /api routes.
type Client struct {
	BaseURL   string
	AdminCode string
	HTTP      *http.Client
}

func NewClient(baseURL, adminCode string) *Client {
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL:   baseURL,
		AdminCode: adminCode,
		HTTP:      &http.Client{Timeout: clientTimeout},
	}
}

func (c *Client) List(ctx context.Context, brand string) ([]catalog.Product, error) {
	path := "/api/products"
	if brand != "" {
		path += "?brand=" + url.QueryEscape(brand)
	}
	var out []catalog.Product
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id string) (catalog.Product, error) {
	var p catalog.Product
	err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, &p)
	return p, err
}

// Put upserts p. An empty id is filled in by the server first.
func (c *Client) Put(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	if p.ID == "" {
		var gen struct {
			ID string `json:"id"`
		}
		if err := c.do(ctx, http.MethodPost, "/api/admin/products/id", nil, &gen); err != nil {
			return catalog.Product{}, err
		}
		p.ID = gen.ID
	}

	var out catalog.Product
	err := c.do(ctx, http.MethodPut, "/api/admin/products/"+url.PathEscape(p.ID), p, &out)
	return out, err
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/products/"+url.PathEscape(id), nil, nil)
}

func (c *Client) Config(ctx context.Context) (siteconfig.SiteConfig, error) {
	var cfg siteconfig.SiteConfig
	err := c.do(ctx, http.MethodGet, "/api/admin/config", nil, &cfg)
	return cfg, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AdminCode != "" {
		req.Header.Set(admin.CodeHeader, c.AdminCode)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return ErrNotFound
	case resp.StatusCode >= 300:
		return badStatus(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func badStatus(resp *http.Response) error {
	var env kit.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, kit.MaxBodyBytes)).Decode(&env); err == nil && env.Error != "" {
		return fmt.Errorf("%w: status=%d: %s", ErrBadStatus, resp.StatusCode, env.Error)
	}
	return fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
}
