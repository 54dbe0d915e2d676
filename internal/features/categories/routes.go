// ================== internal/features/categories/routes.go ==================
package categories

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, service *Service, middlewares ...gin.HandlerFunc) {
	handler := NewHandler(service)

	categories := router.Group("/categories")
	categories.Use(middlewares...)
	{
		categories.GET("", handler.List)
		categories.POST("", handler.Create)
		categories.PUT("/:id", handler.Update)
		categories.DELETE("/:id", handler.Delete)
	}
}
