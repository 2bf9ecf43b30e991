package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timbee-hwanjang86/timbee/internal/catalog"
)

func TestState_FilterSurvivesNavigation(t *testing.T) {
	s := Default()
	s.SetBrandFilter(catalog.BrandUpwelly)
	s.SetView(About)
	s.SetView(Home)

	assert.Equal(t, catalog.BrandUpwelly, s.Filter)
	assert.Equal(t, Home, s.View)
}

func TestState_Shop(t *testing.T) {
	s := Default()
	s.ToggleMenu()
	s.Shop(catalog.BrandNeofect)

	assert.Equal(t, Products, s.View)
	assert.Equal(t, catalog.BrandNeofect, s.Filter)
	assert.False(t, s.MenuOpen, "navigating closes the menu")
}

func TestState_Admin(t *testing.T) {
	s := Default()
	assert.False(t, s.ShowGate())
	assert.False(t, s.ShowDashboard())

	s.OpenAdmin()
	assert.True(t, s.ShowGate())
	assert.False(t, s.ShowDashboard())

	s.Unlock()
	assert.False(t, s.ShowGate())
	assert.True(t, s.ShowDashboard())

	s.CloseAdmin()
	assert.False(t, s.ShowDashboard())
	assert.True(t, s.AdminUnlocked, "closing keeps the unlock")

	s.OpenAdmin()
	s.Logout()
	assert.False(t, s.AdminOpen)
	assert.False(t, s.AdminUnlocked)

	s.SetView(Admin)
	assert.True(t, s.ShowGate())

	s.Unlock()
	assert.True(t, s.ShowDashboard(), "the admin view opens the dashboard once unlocked")
	s.CloseAdmin()
	assert.Equal(t, Home, s.View)
	assert.False(t, s.ShowDashboard())
}

func TestParseView(t *testing.T) {
	for _, in := range []string{"home", "Products", " about ", "ADMIN"} {
		_, err := ParseView(in)
		assert.NoError(t, err, in)
	}
	_, err := ParseView("checkout")
	assert.ErrorIs(t, err, ErrInvalidView)
}

func TestCodec_RoundTrip(t *testing.T) {
	c := NewCodec("secret", false)

	want := State{View: Products, Filter: catalog.BrandUpwelly, MenuOpen: true, AdminOpen: true, AdminUnlocked: true}
	raw, err := c.Encode(want)
	require.NoError(t, err)

	assert.Equal(t, want, c.Decode(raw))
}

func TestCodec_RejectsTampering(t *testing.T) {
	raw, err := NewCodec("other-secret", false).Encode(State{View: Admin, Filter: catalog.BrandAll, AdminOpen: true, AdminUnlocked: true})
	require.NoError(t, err)

	c := NewCodec("secret", false)
	assert.Equal(t, Default(), c.Decode(raw))
	assert.Equal(t, Default(), c.Decode("garbage"))
	assert.Equal(t, Default(), c.Decode(""))
}

func TestCodec_RotatedCodeRevokesUnlock(t *testing.T) {
	before := NewCodec("secret", false).BindUnlock("timbee2025")
	st := State{View: Products, Filter: catalog.BrandUpwelly, AdminOpen: true, AdminUnlocked: true}
	raw, err := before.Encode(st)
	require.NoError(t, err)

	assert.Equal(t, st, NewCodec("secret", false).BindUnlock(" timbee2025 ").Decode(raw), "same code after restart")

	got := NewCodec("secret", false).BindUnlock("rotated-code").Decode(raw)
	assert.False(t, got.AdminUnlocked)
	assert.True(t, got.AdminOpen)
	assert.Equal(t, Products, got.View)
	assert.Equal(t, catalog.BrandUpwelly, got.Filter)
	assert.True(t, got.ShowGate(), "the visitor is asked for the new code")
}

func TestCodec_Cookie(t *testing.T) {
	c := NewCodec("secret", true)
	want := State{View: About, Filter: catalog.BrandNeofect}

	rec := httptest.NewRecorder()
	require.NoError(t, c.Write(rec, want))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, CookieName, ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Zero(t, ck.MaxAge)
	assert.True(t, ck.Expires.IsZero())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ck)
	assert.Equal(t, want, c.Read(req))

	assert.Equal(t, Default(), c.Read(httptest.NewRequest(http.MethodGet, "/", nil)))
}
