package handler

import (
	"github.com/labstack/echo/v4"

	"foodswap/internal/usecase"
	"foodswap/pkg/errors"
	"foodswap/pkg/response"
	"foodswap/pkg/utils"
)

type SwapHandler struct {
	swapUseCase *usecase.SwapUseCase
}

func NewSwapHandler(swapUseCase *usecase.SwapUseCase) *SwapHandler {
	return &SwapHandler{
		swapUseCase: swapUseCase,
	}
}

type requestSwapRequest struct {
	FoodItemID    string `json:"food_item_id" validate:"required"`
	OfferedItemID string `json:"offered_item_id,omitempty"`
	Message       string `json:"message,omitempty" validate:"max=1000"`
	IsSwap        bool   `json:"is_swap"`
	IsPurchase    bool   `json:"is_purchase"`
}

func (h *SwapHandler) RequestSwap(c echo.Context) error {
	var req requestSwapRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	swap, err := h.swapUseCase.RequestSwap(c.Request().Context(), userID, usecase.RequestSwapInput{
		FoodItemID:    req.FoodItemID,
		OfferedItemID: req.OfferedItemID,
		Message:       req.Message,
		IsSwap:        req.IsSwap,
		IsPurchase:    req.IsPurchase,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, swap)
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected completed cancelled"`
}

func (h *SwapHandler) SetStatus(c echo.Context) error {
	swapID := c.Param("id")
	if swapID == "" {
		return response.Error(c, errors.BadRequest("Swap ID is required", nil))
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	swap, err := h.swapUseCase.SetStatus(c.Request().Context(), userID, swapID, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, swap)
}

type submitReviewRequest struct {
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Review    string `json:"review,omitempty" validate:"max=2000"`
	ReviewFor string `json:"review_for" validate:"required,oneof=provider requester"`
}

func (h *SwapHandler) SubmitReview(c echo.Context) error {
	swapID := c.Param("id")
	if swapID == "" {
		return response.Error(c, errors.BadRequest("Swap ID is required", nil))
	}

	var req submitReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	swap, err := h.swapUseCase.SubmitReview(c.Request().Context(), userID, swapID, usecase.SubmitReviewInput{
		ReviewFor: req.ReviewFor,
		Rating:    req.Rating,
		Review:    req.Review,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, swap)
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (h *SwapHandler) SendMessage(c echo.Context) error {
	swapID := c.Param("id")
	if swapID == "" {
		return response.Error(c, errors.BadRequest("Swap ID is required", nil))
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	swap, err := h.swapUseCase.SendMessage(c.Request().Context(), userID, swapID, req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, swap.Messages[len(swap.Messages)-1])
}

func (h *SwapHandler) ListMessages(c echo.Context) error {
	swapID := c.Param("id")
	if swapID == "" {
		return response.Error(c, errors.BadRequest("Swap ID is required", nil))
	}

	userID := c.Get("uid").(string)

	messages, err := h.swapUseCase.ListMessages(c.Request().Context(), userID, swapID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

func (h *SwapHandler) GetSwap(c echo.Context) error {
	swapID := c.Param("id")
	if swapID == "" {
		return response.Error(c, errors.BadRequest("Swap ID is required", nil))
	}

	userID := c.Get("uid").(string)

	swap, err := h.swapUseCase.GetSwapByID(c.Request().Context(), userID, swapID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, swap)
}

func (h *SwapHandler) ListMySwaps(c echo.Context) error {
	role := c.QueryParam("role")     // "requester" or "provider"
	status := c.QueryParam("status") // lifecycle status filter

	pagination := utils.GetPaginationParams(c)

	userID := c.Get("uid").(string)

	swaps, total, err := h.swapUseCase.ListMySwaps(
		c.Request().Context(),
		userID,
		role,
		status,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, swaps, total, pagination.Page, pagination.PageSize)
}

func (h *SwapHandler) ListPending(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	userID := c.Get("uid").(string)

	swaps, total, err := h.swapUseCase.ListPending(
		c.Request().Context(),
		userID,
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, swaps, total, pagination.Page, pagination.PageSize)
}
