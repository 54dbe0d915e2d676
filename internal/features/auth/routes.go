package auth

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the auth endpoints. requireAuth guards /me; the
// remaining middlewares (rate limiting) apply to the whole group.
func RegisterRoutes(router *gin.RouterGroup, service *Service, requireAuth gin.HandlerFunc, middlewares ...gin.HandlerFunc) {
	handler := NewHandler(service)

	auth := router.Group("/auth")
	auth.Use(middlewares...)
	{
		auth.GET("/github/authorize", handler.Authorize)
		auth.POST("/github/exchange", handler.Exchange)
		auth.POST("/refresh", handler.Refresh)
		auth.GET("/me", requireAuth, handler.Me)
	}
}
