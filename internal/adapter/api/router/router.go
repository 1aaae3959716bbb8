package router

import (
	"foodswap/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupUserRouter(e, authMiddleware)
	SetupFoodRouter(e, authMiddleware)
	SetupSwapRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
