// Package rest is the HTTP surface of userhub: gin routes, request
// validation and the mapping from error kinds to status codes.
package rest

import (
	"github.com/dmitrijs2005/userhub/internal/logging"
	"github.com/gin-gonic/gin"
)

// NewRouter wires routes and middleware. Only the login route is rate
// limited.
func NewRouter(h *Handler, tokens TokenVerifier, limiter *LoginLimiter, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.Use(RequestLogger(logger))
	r.Use(Recovery(logger))

	requireToken := BearerAuth(tokens, logger)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", limiter.Middleware(logger), h.Login)
		authGroup.GET("/profile", requireToken, h.Profile)
	}

	usersGroup := r.Group("/users")
	{
		usersGroup.POST("/register", h.Register)
		usersGroup.PATCH("/profile-picture", requireToken, h.UpdateProfilePicture)
	}

	r.GET("/health", h.Health)

	return r
}
