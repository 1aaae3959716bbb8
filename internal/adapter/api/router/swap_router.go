package router

import (
	"foodswap/internal/adapter/api/handler"
	"foodswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

// SetupSwapRouter initializes swap lifecycle routes
func SetupSwapRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	swapHandler := handler.GetSwapHandler()

	// All swap routes require authentication
	swaps := e.Group("/v1/swaps")
	swaps.Use(authMiddleware.Authenticate)

	swaps.POST("", swapHandler.RequestSwap, middleware.ClaimRateLimit())
	swaps.GET("", swapHandler.ListMySwaps)
	swaps.GET("/pending", swapHandler.ListPending)
	swaps.GET("/:id", swapHandler.GetSwap)
	swaps.PUT("/:id/status", swapHandler.SetStatus)
	swaps.PUT("/:id/review", swapHandler.SubmitReview)
	swaps.POST("/:id/messages", swapHandler.SendMessage)
	swaps.GET("/:id/messages", swapHandler.ListMessages)
}
