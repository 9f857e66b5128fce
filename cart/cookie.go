package cart

import (
	"net/http"
	"time"
)

const (
	DefaultCookieName = "wa_cart"
	DefaultCookieTTL  = 30 * 24 * time.Hour
)

// CookieStore carries cart tokens in an HTTP-only, SameSite=Lax cookie
// scoped to the whole site.
type CookieStore struct {
	codec  *Codec
	name   string
	maxAge time.Duration
	secure bool
}

type CookieOption func(*CookieStore)

func WithCookieName(name string) CookieOption {
	return func(s *CookieStore) {
		if name != "" {
			s.name = name
		}
	}
}

func WithCookieMaxAge(maxAge time.Duration) CookieOption {
	return func(s *CookieStore) {
		if maxAge > 0 {
			s.maxAge = maxAge
		}
	}
}

func WithSecureCookie(secure bool) CookieOption {
	return func(s *CookieStore) {
		s.secure = secure
	}
}

func NewCookieStore(codec *Codec, opts ...CookieOption) (*CookieStore, error) {
	if codec == nil {
		return nil, ErrMissingSecret
	}
	store := &CookieStore{
		codec:  codec,
		name:   DefaultCookieName,
		maxAge: DefaultCookieTTL,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(store)
	}
	return store, nil
}

func (s *CookieStore) Name() string {
	return s.name
}

// Token returns the raw cookie value, or "" when the cookie is absent.
func (s *CookieStore) Token(r *http.Request) string {
	if r == nil {
		return ""
	}
	cookie, err := r.Cookie(s.name)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Read decodes and normalizes the request cart. Missing, forged or malformed
// cookies yield an empty cart.
func (s *CookieStore) Read(r *http.Request, catalog Catalog) Cart {
	raw, ok := s.codec.Decode(s.Token(r))
	if !ok {
		return Cart{Items: []LineItem{}}
	}
	return Normalize(raw, catalog)
}

func (s *CookieStore) Write(w http.ResponseWriter, c Cart) {
	s.SetToken(w, s.codec.Encode(c))
}

func (s *CookieStore) SetToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.maxAge / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *CookieStore) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
