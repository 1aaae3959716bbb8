package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"foodswap/internal/usecase"
	"foodswap/pkg/errors"
	"foodswap/pkg/response"
	"foodswap/pkg/utils"
)

type FoodHandler struct {
	foodUseCase *usecase.FoodUseCase
}

func NewFoodHandler(foodUseCase *usecase.FoodUseCase) *FoodHandler {
	return &FoodHandler{
		foodUseCase: foodUseCase,
	}
}

type foodItemRequest struct {
	Title         string          `json:"title" validate:"required,max=120"`
	Description   string          `json:"description,omitempty" validate:"max=2000"`
	Quantity      int             `json:"quantity" validate:"required,min=1"`
	Unit          string          `json:"unit" validate:"required,max=30"`
	Category      string          `json:"category" validate:"required,max=50"`
	DietaryFlags  map[string]bool `json:"dietary_flags,omitempty"`
	Price         float64         `json:"price" validate:"min=0"`
	OriginalPrice float64         `json:"original_price,omitempty" validate:"min=0"`
	IsFree        bool            `json:"is_free"`
	PickupOnly    bool            `json:"pickup_only"`
	ExpiresAt     time.Time       `json:"expires_at" validate:"required"`
	Latitude      float64         `json:"latitude,omitempty"`
	Longitude     float64         `json:"longitude,omitempty"`
	Address       string          `json:"address,omitempty" validate:"max=300"`
	Images        []string        `json:"images,omitempty" validate:"max=10,dive,url"`
}

func (r *foodItemRequest) toInput() usecase.FoodItemInput {
	return usecase.FoodItemInput{
		Title:         r.Title,
		Description:   r.Description,
		Quantity:      r.Quantity,
		Unit:          r.Unit,
		Category:      r.Category,
		DietaryFlags:  r.DietaryFlags,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		IsFree:        r.IsFree,
		PickupOnly:    r.PickupOnly,
		ExpiresAt:     r.ExpiresAt,
		Latitude:      r.Latitude,
		Longitude:     r.Longitude,
		Address:       r.Address,
		Images:        r.Images,
	}
}

func (h *FoodHandler) CreateFoodItem(c echo.Context) error {
	var req foodItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	item, err := h.foodUseCase.CreateFoodItem(c.Request().Context(), userID, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *FoodHandler) GetFoodItem(c echo.Context) error {
	itemID := c.Param("id")
	if itemID == "" {
		return response.Error(c, errors.BadRequest("Food item ID is required", nil))
	}

	item, err := h.foodUseCase.GetFoodItem(c.Request().Context(), itemID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *FoodHandler) UpdateFoodItem(c echo.Context) error {
	itemID := c.Param("id")
	if itemID == "" {
		return response.Error(c, errors.BadRequest("Food item ID is required", nil))
	}

	var req foodItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	item, err := h.foodUseCase.UpdateFoodItem(c.Request().Context(), userID, itemID, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *FoodHandler) DeleteFoodItem(c echo.Context) error {
	itemID := c.Param("id")
	if itemID == "" {
		return response.Error(c, errors.BadRequest("Food item ID is required", nil))
	}

	userID := c.Get("uid").(string)

	if err := h.foodUseCase.DeleteFoodItem(c.Request().Context(), userID, itemID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Food item deleted"})
}

func (h *FoodHandler) ListAvailable(c echo.Context) error {
	filter := usecase.FoodItemFilter{
		Category: c.QueryParam("category"),
		FreeOnly: c.QueryParam("free") == "true",
	}

	pagination := utils.GetPaginationParams(c)

	items, total, err := h.foodUseCase.ListAvailable(
		c.Request().Context(),
		filter,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}

func (h *FoodHandler) ListMyItems(c echo.Context) error {
	status := c.QueryParam("status")

	pagination := utils.GetPaginationParams(c)

	userID := c.Get("uid").(string)

	items, total, err := h.foodUseCase.ListMyItems(
		c.Request().Context(),
		userID,
		status,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, pagination.Page, pagination.PageSize)
}
