package helpers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieManager binds session tokens to the response and reads them back.
type CookieManager struct {
	Name   string
	Domain string
	Secure bool
}

func NewCookie(name, domain string, secure bool) *CookieManager {
	return &CookieManager{Name: name, Domain: domain, Secure: secure}
}

// Set writes an HttpOnly, SameSite=Strict cookie that lives as long as the token.
func (m *CookieManager) Set(c *gin.Context, tok SessionToken) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(m.Name, tok.Value, maxAgeFrom(tok.IssuedAt, tok.ExpiresAt), "/", m.Domain, m.Secure, true)
}

// Read returns the token carried by the request, or "" when there is none.
func (m *CookieManager) Read(c *gin.Context) string {
	v, err := c.Cookie(m.Name)
	if err != nil {
		return ""
	}
	return v
}

// Clear tells the client to drop the cookie. The token itself stays valid until it expires.
func (m *CookieManager) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(m.Name, "", -1, "/", m.Domain, m.Secure, true)
}

func maxAgeFrom(iat, exp time.Time) int {
	sec := int(exp.Sub(iat).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}
