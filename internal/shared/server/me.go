package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"aerogap-backend/internal/shared/server/middleware"
	"aerogap-backend/internal/shared/server/respond"
)

type meResponse struct {
	UserID  string `json:"userId"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	IsGuest bool   `json:"isGuest"`
	IsAdmin bool   `json:"isAdmin"`
}

// registerMeRoutes attaches GET /me, which echoes the resolved caller.
func registerMeRoutes(rg *gin.RouterGroup, adminEmails []string) {
	admins := middleware.NewAdminSet(adminEmails)
	rg.GET("/me", func(c *gin.Context) {
		id := middleware.IdentityFromContext(c)
		if id.UserID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}
		respond.OK(c, meResponse{
			UserID:  id.UserID,
			Email:   id.Email,
			Name:    id.Name,
			IsGuest: id.Guest,
			IsAdmin: admins.Allows(id),
		})
	})
}
