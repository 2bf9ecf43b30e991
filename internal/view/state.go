// Package view is the per-visitor UI state: which page is showing, which
// brand filter is active, and the menu/admin toggles. Nothing here is
// persisted server-side.
package view

import (
	"errors"
	"strings"

	"github.com/timbee-hwanjang86/timbee/internal/catalog"
)

type View string

const (
	Home     View = "home"
	Products View = "products"
	About    View = "about"
	Admin    View = "admin"
)

var ErrInvalidView = errors.New("invalid view")

func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case Home, Products, About, Admin:
		return v, nil
	}
	return "", ErrInvalidView
}

type State struct {
	View          View
	Filter        catalog.Brand
	MenuOpen      bool
	AdminOpen     bool
	AdminUnlocked bool
}

func Default() State {
	return State{View: Home, Filter: catalog.BrandAll}
}

// SetView navigates. The brand filter is left alone so it survives
// navigation; the mobile menu closes.
func (s *State) SetView(v View) {
	s.View = v
	s.MenuOpen = false
}

func (s *State) SetBrandFilter(b catalog.Brand) {
	s.Filter = b
}

// Shop is the brand-tile intent: filter, then show products.
func (s *State) Shop(b catalog.Brand) {
	s.SetBrandFilter(b)
	s.SetView(Products)
}

func (s *State) ToggleMenu() {
	s.MenuOpen = !s.MenuOpen
}

func (s *State) OpenAdmin() {
	s.AdminOpen = true
	s.MenuOpen = false
}

// CloseAdmin leaves the admin surface; an admin page falls back to home.
func (s *State) CloseAdmin() {
	s.AdminOpen = false
	if s.View == Admin {
		s.View = Home
	}
}

func (s *State) Unlock() {
	s.AdminUnlocked = true
}

func (s *State) Logout() {
	s.CloseAdmin()
	s.AdminUnlocked = false
}

// ShowDashboard reports whether the admin dashboard replaces the page.
func (s State) ShowDashboard() bool {
	return s.AdminUnlocked && s.adminRequested()
}

// ShowGate reports whether the code prompt should render.
func (s State) ShowGate() bool {
	return !s.AdminUnlocked && s.adminRequested()
}

func (s State) adminRequested() bool {
	return s.AdminOpen || s.View == Admin
}
