package view

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/timbee-hwanjang86/timbee/internal/catalog"
)

const (
	CookieName = "timbee_view"
	issuer     = "timbee-storefront"
)

type claims struct {
	View     string `json:"v"`
	Filter   string `json:"f"`
	Menu     bool   `json:"m,omitempty"`
	Admin    bool   `json:"a,omitempty"`
	Unlocked bool   `json:"u,omitempty"`
	// Gate ties an unlock to the admin code it was granted under.
	Gate string `json:"g,omitempty"`
	jwt.RegisteredClaims
}

// Codec carries State in an HS256-signed session cookie.
type Codec struct {
	secret    []byte
	secure    bool
	unlockTag string
}

func NewCodec(secret string, secure bool) *Codec {
	c := &Codec{secret: []byte(secret), secure: secure}
	c.unlockTag = c.tag("")
	return c
}

// BindUnlock ties AdminUnlocked to code: cookies unlocked under any other
// code decode as locked, so rotating ADMIN_CODE revokes old sessions even
// when the view secret is kept.
func (c *Codec) BindUnlock(code string) *Codec {
	c.unlockTag = c.tag(strings.TrimSpace(code))
	return c
}

// tag is keyed by the view secret so the claim reveals nothing about code.
func (c *Codec) tag(code string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte("admin-unlock:" + code))
	return hex.EncodeToString(mac.Sum(nil)[:16])
}

func (c *Codec) Encode(s State) (string, error) {
	cl := claims{
		View:     string(s.View),
		Filter:   string(s.Filter),
		Menu:     s.MenuOpen,
		Admin:    s.AdminOpen,
		Unlocked: s.AdminUnlocked,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: issuer,
		},
	}
	if s.AdminUnlocked {
		cl.Gate = c.unlockTag
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
}

// Decode never fails: anything unverifiable becomes Default.
func (c *Codec) Decode(raw string) State {
	if raw == "" {
		return Default()
	}

	var cl claims
	tok, err := jwt.ParseWithClaims(raw, &cl, func(*jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil || tok == nil || !tok.Valid {
		return Default()
	}

	s := Default()
	if v, err := ParseView(cl.View); err == nil {
		s.View = v
	}
	if b, err := catalog.ParseFilter(cl.Filter); err == nil {
		s.Filter = b
	}
	s.MenuOpen = cl.Menu
	s.AdminOpen = cl.Admin
	s.AdminUnlocked = cl.Unlocked && hmac.Equal([]byte(cl.Gate), []byte(c.unlockTag))
	return s
}

func (c *Codec) Read(r *http.Request) State {
	ck, err := r.Cookie(CookieName)
	if errors.Is(err, http.ErrNoCookie) || ck == nil {
		return Default()
	}
	return c.Decode(ck.Value)
}

// Write sets a session cookie; it has no expiry, so the state resets when
// the browser session ends.
func (c *Codec) Write(w http.ResponseWriter, s State) error {
	v, err := c.Encode(s)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    v,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
