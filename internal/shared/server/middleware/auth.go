package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aerogap-backend/internal/shared/auth"
	"aerogap-backend/internal/shared/server/respond"
)

const (
	guestHeader  = "X-Guest-Id"
	guestPrefix  = "guest:"
	bearerPrefix = "bearer "
)

// AuthConfig configures identity resolution.
type AuthConfig struct {
	Secret      []byte
	AllowGuests bool
}

// Auth resolves the caller from a bearer JWT or, when guests are allowed, an
// X-Guest-Id header. A bearer header that fails verification is rejected even
// if a guest id is also present.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}

		if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
			claims, ok := verifyBearer(cfg.Secret, header)
			if !ok {
				unauthorized(c, "missing or invalid token")
				return
			}
			setIdentity(c, Identity{
				UserID: claims.Sub,
				Email:  strings.ToLower(strings.TrimSpace(claims.Email)),
				Name:   strings.TrimSpace(claims.Name),
			})
			c.Next()
			return
		}

		guestID := strings.TrimSpace(c.GetHeader(guestHeader))
		if !cfg.AllowGuests || guestID == "" {
			unauthorized(c, "missing identity")
			return
		}
		if !validRequestID(guestID) {
			unauthorized(c, "invalid guest id")
			return
		}
		setIdentity(c, Identity{UserID: guestPrefix + guestID, Guest: true})
		c.Next()
	}
}

func verifyBearer(secret []byte, header string) (auth.Claims, bool) {
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return auth.Claims{}, false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return auth.Claims{}, false
	}
	claims, err := auth.VerifyJWT(secret, token)
	return claims, err == nil
}

func unauthorized(c *gin.Context, message string) {
	respond.Error(c, http.StatusUnauthorized, "unauthorized", message, nil)
}

// AdminSet is the lower-cased set of admin emails.
type AdminSet map[string]struct{}

func NewAdminSet(emails []string) AdminSet {
	set := make(AdminSet, len(emails))
	for _, e := range emails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			set[e] = struct{}{}
		}
	}
	return set
}

// Allows reports whether id is a signed-in admin. Guests never are.
func (s AdminSet) Allows(id Identity) bool {
	if id.Guest || id.Email == "" {
		return false
	}
	_, ok := s[id.Email]
	return ok
}

// RequireAdmin lets through only signed-in users on the admin list. It must
// run after Auth.
func RequireAdmin(adminEmails []string) gin.HandlerFunc {
	admins := NewAdminSet(adminEmails)
	return func(c *gin.Context) {
		if !admins.Allows(IdentityFromContext(c)) {
			respond.Error(c, http.StatusForbidden, "forbidden", "admin access required", nil)
			return
		}
		c.Next()
	}
}
