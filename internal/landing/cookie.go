package landing

import (
	"net/http"
	"strings"
	"time"
)

const (
	cookiePrefix   = "vg_"
	cookieMaxAge   = 365 * 24 * time.Hour
	viewportCookie = cookiePrefix + "vw"
)

// CookieStore keeps gate state in one cookie per key. Writes are sent as
// Set-Cookie on the current response and are visible to later reads within
// the same request.
type CookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	secure  bool
	pending map[string]*string
}

func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{w: w, r: r, secure: secure, pending: make(map[string]*string)}
}

func (s *CookieStore) Get(key string) (string, bool) {
	if v, ok := s.pending[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	c, err := s.r.Cookie(CookieName(key))
	if err != nil {
		return "", false
	}
	return c.Value, true
}

func (s *CookieStore) Set(key, value string) {
	http.SetCookie(s.w, s.cookie(key, value, int(cookieMaxAge/time.Second)))
	s.pending[key] = &value
}

// SetFor writes a cookie that the browser drops after ttl.
func (s *CookieStore) SetFor(key, value string, ttl time.Duration) {
	maxAge := int(ttl / time.Second)
	if maxAge < 1 {
		maxAge = 1
	}
	http.SetCookie(s.w, s.cookie(key, value, maxAge))
	s.pending[key] = &value
}

func (s *CookieStore) Remove(key string) {
	http.SetCookie(s.w, s.cookie(key, "", -1))
	s.pending[key] = nil
}

func (s *CookieStore) cookie(key, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName(key),
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// CookieName maps a store key onto a valid cookie name.
func CookieName(key string) string {
	return cookiePrefix + strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '.' || r == '_':
			return r
		default:
			return '_'
		}
	}, key)
}
