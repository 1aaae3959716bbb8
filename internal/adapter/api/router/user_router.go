package router

import (
	"foodswap/internal/adapter/api/handler"
	"foodswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupUserRouter initializes user profile routes
func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", userHandler.Me)
	users.GET("/:id", userHandler.GetProfile)
}
