package router

import (
	"foodswap/internal/adapter/api/handler"
	"foodswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupFoodRouter initializes food listing routes
func SetupFoodRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	foodHandler := handler.GetFoodHandler()

	items := e.Group("/v1/food-items")
	items.Use(authMiddleware.Authenticate)

	items.POST("", foodHandler.CreateFoodItem)
	items.GET("", foodHandler.ListAvailable)
	items.GET("/my-items", foodHandler.ListMyItems)
	items.GET("/:id", foodHandler.GetFoodItem)
	items.PUT("/:id", foodHandler.UpdateFoodItem)
	items.DELETE("/:id", foodHandler.DeleteFoodItem)
}
