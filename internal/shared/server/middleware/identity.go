package middleware

import "github.com/gin-gonic/gin"

const (
	userIDKey    = "userId"
	userEmailKey = "userEmail"
	userNameKey  = "userName"
	isGuestKey   = "isGuest"
)

// Identity is the caller resolved by Auth.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Guest  bool
}

func setIdentity(c *gin.Context, id Identity) {
	c.Set(userIDKey, id.UserID)
	if id.Email != "" {
		c.Set(userEmailKey, id.Email)
	}
	if id.Name != "" {
		c.Set(userNameKey, id.Name)
	}
	c.Set(isGuestKey, id.Guest)
}

// IdentityFromContext returns the caller, or a zero Identity before Auth ran.
func IdentityFromContext(c *gin.Context) Identity {
	return Identity{
		UserID: UserIDFromContext(c),
		Email:  UserEmailFromContext(c),
		Name:   UserNameFromContext(c),
		Guest:  IsGuest(c),
	}
}

func UserIDFromContext(c *gin.Context) string    { return contextString(c, userIDKey) }
func UserEmailFromContext(c *gin.Context) string { return contextString(c, userEmailKey) }
func UserNameFromContext(c *gin.Context) string  { return contextString(c, userNameKey) }

// IsGuest reports whether the caller authenticated with a guest header.
func IsGuest(c *gin.Context) bool {
	if c == nil {
		return false
	}
	return c.GetBool(isGuestKey)
}

func contextString(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	return c.GetString(key)
}
