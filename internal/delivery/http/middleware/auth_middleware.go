package middleware

import (
	"strings"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// AuthCookieName is the cookie browser clients carry their session token in.
const AuthCookieName = "auth_token"

// TokenVerifier checks a session token for one role.
type TokenVerifier interface {
	Verify(token, role string) (*auth.Claims, error)
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

func authenticate(c *gin.Context, tokens TokenVerifier, role domain.Role) (string, bool) {
	token := bearerToken(c)
	if token == "" {
		c.Error(apperror.Unauthorized("Authorization header or auth_token cookie required"))
		c.Abort()
		return "", false
	}

	claims, err := tokens.Verify(token, string(role))
	if err != nil {
		c.Error(apperror.Unauthorized("Invalid or expired token"))
		c.Abort()
		return "", false
	}
	return claims.Subject, true
}

// RequireSeeker admits only seeker tokens and stores a domain.SeekerPrincipal.
func RequireSeeker(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authenticate(c, tokens, domain.RoleSeeker)
		if !ok {
			return
		}
		c.Set(string(domain.KeyPrincipal), domain.SeekerPrincipal{ID: id})
		c.Next()
	}
}

// RequireEmployer admits only employer tokens and stores a domain.EmployerPrincipal.
func RequireEmployer(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := authenticate(c, tokens, domain.RoleEmployer)
		if !ok {
			return
		}
		c.Set(string(domain.KeyPrincipal), domain.EmployerPrincipal{ID: id})
		c.Next()
	}
}

func SeekerFrom(c *gin.Context) (domain.SeekerPrincipal, bool) {
	v, _ := c.Get(string(domain.KeyPrincipal))
	p, ok := v.(domain.SeekerPrincipal)
	return p, ok
}

func EmployerFrom(c *gin.Context) (domain.EmployerPrincipal, bool) {
	v, _ := c.Get(string(domain.KeyPrincipal))
	p, ok := v.(domain.EmployerPrincipal)
	return p, ok
}
