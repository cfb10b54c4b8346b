package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

// CookieOptions is the closed set of attributes applied to the session
// cookie. A typed struct rather than a free-form map so a misspelled key
// cannot silently disable expiration.
type CookieOptions struct {
	HTTPOnly bool
	Secure   bool
	SameSite string
	MaxAge   time.Duration
}

// CookieManager sets, reads and clears the session cookie with
// consistent attributes.
type CookieManager struct {
	name     string
	defaults CookieOptions
}

// NewCookieManager builds a manager. Secure should be true in
// production; maxAge matches the token TTL.
func NewCookieManager(secure bool, maxAge time.Duration) *CookieManager {
	return &CookieManager{
		name: SessionCookieName,
		defaults: CookieOptions{
			HTTPOnly: true,
			Secure:   secure,
			SameSite: fiber.CookieSameSiteStrictMode,
			MaxAge:   maxAge,
		},
	}
}

// Set writes the session cookie with default attributes.
func (m *CookieManager) Set(c *fiber.Ctx, value string) {
	m.SetWithOptions(c, value, m.defaults)
}

// SetWithOptions writes the session cookie with explicit attributes.
func (m *CookieManager) SetWithOptions(c *fiber.Ctx, value string, opts CookieOptions) {
	c.Cookie(&fiber.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(opts.MaxAge.Seconds()),
		Expires:  time.Now().Add(opts.MaxAge),
		Secure:   opts.Secure,
		HTTPOnly: opts.HTTPOnly,
		SameSite: opts.SameSite,
	})
}

// Clear expires the session cookie using the same attributes it was set
// with, so the removal always matches. Idempotent when no cookie exists.
func (m *CookieManager) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		Secure:   m.defaults.Secure,
		HTTPOnly: m.defaults.HTTPOnly,
		SameSite: m.defaults.SameSite,
	})
}

// Read returns the session cookie value, if present.
func (m *CookieManager) Read(c *fiber.Ctx) (string, bool) {
	value := c.Cookies(m.name)
	return value, value != ""
}
