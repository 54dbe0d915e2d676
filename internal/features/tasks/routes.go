package tasks

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup, service *Service, middlewares ...gin.HandlerFunc) {
	handler := NewHandler(service)

	tasks := router.Group("/tasks")
	tasks.Use(middlewares...)
	{
		tasks.GET("", handler.List)
		tasks.POST("", handler.Create)
		tasks.PUT("/:id", handler.Update)
		tasks.DELETE("/:id", handler.Delete)
	}
}
