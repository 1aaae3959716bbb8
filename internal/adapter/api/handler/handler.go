package handler

import (
	"foodswap/internal/usecase"
)

var (
	foodHandler *FoodHandler
	swapHandler *SwapHandler
	userHandler *UserHandler
)

func Setup(
	foodUseCase *usecase.FoodUseCase,
	swapUseCase *usecase.SwapUseCase,
	userUseCase *usecase.UserUseCase,
) {
	foodHandler = NewFoodHandler(foodUseCase)
	swapHandler = NewSwapHandler(swapUseCase)
	userHandler = NewUserHandler(userUseCase)
}

func GetFoodHandler() *FoodHandler {
	return foodHandler
}

func GetSwapHandler() *SwapHandler {
	return swapHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}
