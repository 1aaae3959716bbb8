package usecase

import (
	"context"
	"time"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/internal/domain/service"
	"foodswap/pkg/errors"
	"foodswap/pkg/logger"
	"foodswap/pkg/utils"
)

type SwapUseCase struct {
	swapRepo     repository.SwapRepository
	foodItemRepo repository.FoodItemRepository
	userRepo     repository.UserRepository
}

func NewSwapUseCase(
	swapRepo repository.SwapRepository,
	foodItemRepo repository.FoodItemRepository,
	userRepo repository.UserRepository,
) *SwapUseCase {
	return &SwapUseCase{
		swapRepo:     swapRepo,
		foodItemRepo: foodItemRepo,
		userRepo:     userRepo,
	}
}

type RequestSwapInput struct {
	FoodItemID    string
	OfferedItemID string
	Message       string
	IsSwap        bool
	IsPurchase    bool
}

// RequestSwap creates a pending swap and reserves the items it references.
// The availability checks here run against a plain read; the authoritative
// check is repeated inside the repository transaction, so of two concurrent
// requests for the same item exactly one wins.
func (uc *SwapUseCase) RequestSwap(ctx context.Context, requesterID string, input RequestSwapInput) (*entity.Swap, error) {
	item, err := uc.foodItemRepo.GetByID(ctx, input.FoodItemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID == requesterID {
		return nil, errors.BadRequest("Cannot claim your own food item", nil)
	}

	if item.Status != entity.FoodItemAvailable {
		return nil, errors.ItemUnavailable(nil)
	}

	if input.OfferedItemID != "" {
		if input.OfferedItemID == input.FoodItemID {
			return nil, errors.BadRequest("Offered item cannot be the claimed item", nil)
		}

		offered, err := uc.foodItemRepo.GetByID(ctx, input.OfferedItemID)
		if err != nil {
			return nil, errors.OfferedItemUnavailable(err)
		}
		if offered.OwnerID != requesterID || offered.Status != entity.FoodItemAvailable {
			return nil, errors.OfferedItemUnavailable(nil)
		}
	}

	var amount float64
	if !item.IsFree {
		amount = item.Price
	}

	swap := &entity.Swap{
		FoodItemID:    input.FoodItemID,
		OfferedItemID: input.OfferedItemID,
		RequesterID:   requesterID,
		ProviderID:    item.OwnerID,
		Message:       input.Message,
		IsSwap:        input.IsSwap || input.OfferedItemID != "",
		IsPurchase:    input.IsPurchase && !item.IsFree,
		Amount:        amount,
	}

	if err := uc.swapRepo.CreateWithReservation(ctx, swap); err != nil {
		return nil, err
	}

	logger.Info("Swap %s created: item %s requested by %s from %s", swap.ID, swap.FoodItemID, swap.RequesterID, swap.ProviderID)

	return swap, nil
}

// authorizeTransition applies the per-edge actor rules: the provider decides
// on pending requests, the requester confirms receipt, and either side may
// withdraw.
func authorizeTransition(swap *entity.Swap, actorID, newStatus string) error {
	switch newStatus {
	case entity.SwapAccepted, entity.SwapRejected:
		if actorID != swap.ProviderID {
			return errors.Forbidden("Only the provider can accept or reject a swap request", nil)
		}
	case entity.SwapCompleted:
		if actorID != swap.RequesterID {
			return errors.Forbidden("Only the requester can mark a swap as completed", nil)
		}
	case entity.SwapCancelled:
		// Either participant may cancel.
	}
	return nil
}

// SetStatus drives the swap through its lifecycle. Side effects on the food
// items and on both users' reputation are persisted atomically with the
// status write.
func (uc *SwapUseCase) SetStatus(ctx context.Context, actorID, swapID, newStatus string) (*entity.Swap, error) {
	if !entity.IsValidSwapStatus(newStatus) || newStatus == entity.SwapPending {
		return nil, errors.BadRequest("Invalid swap status", nil)
	}

	swap, err := uc.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.IsParticipant(actorID) {
		return nil, errors.Forbidden("You are not a participant in this swap", nil)
	}

	if !entity.CanTransition(swap.Status, newStatus) {
		return nil, errors.InvalidTransition(swap.Status, newStatus)
	}

	if err := authorizeTransition(swap, actorID, newStatus); err != nil {
		return nil, err
	}

	expected := swap.Status
	now := time.Now()
	swap.Status = newStatus

	var itemStatus string
	var deltas []repository.ReputationDelta

	switch newStatus {
	case entity.SwapAccepted:
		swap.AcceptedAt = &now
		// Items stay reserved until completion.

	case entity.SwapRejected, entity.SwapCancelled:
		swap.ClosedAt = &now
		itemStatus = entity.FoodItemAvailable

	case entity.SwapCompleted:
		swap.CompletedAt = &now
		itemStatus = entity.FoodItemCompleted

		requester := repository.ReputationDelta{UserID: swap.RequesterID, ItemsReceived: 1}
		provider := repository.ReputationDelta{UserID: swap.ProviderID, ItemsShared: 1}
		if swap.IsItemSwap() {
			// On a true exchange the provider also received the
			// offered item.
			provider.ItemsReceived = 1
		}
		deltas = []repository.ReputationDelta{requester, provider}
	}

	if err := uc.swapRepo.Transition(ctx, swap, expected, itemStatus, deltas); err != nil {
		return nil, err
	}

	logger.Info("Swap %s: %s -> %s by %s", swap.ID, expected, newStatus, actorID)

	return swap, nil
}

type SubmitReviewInput struct {
	ReviewFor string
	Rating    int
	Review    string
}

// SubmitReview records a rating for one side of a completed swap. The
// requester may always review the provider; the provider may review the
// requester only on a true item-for-item exchange, since on a giveaway or
// purchase the provider received nothing to rate.
func (uc *SwapUseCase) SubmitReview(ctx context.Context, actorID, swapID string, input SubmitReviewInput) (*entity.Swap, error) {
	swap, err := uc.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.IsParticipant(actorID) {
		return nil, errors.Forbidden("You are not a participant in this swap", nil)
	}

	if swap.Status != entity.SwapCompleted {
		return nil, errors.NotCompleted("Swap must be completed before it can be reviewed")
	}

	switch input.ReviewFor {
	case "provider":
		if actorID != swap.RequesterID {
			return nil, errors.Forbidden("Only the requester can review the provider", nil)
		}
	case "requester":
		if actorID != swap.ProviderID {
			return nil, errors.Forbidden("Only the provider can review the requester", nil)
		}
		if !swap.IsItemSwap() {
			return nil, errors.Forbidden("The requester can only be reviewed on item-for-item swaps", nil)
		}
	default:
		return nil, errors.BadRequest("Invalid review target", nil)
	}

	rating := service.ClampRating(input.Rating)

	// The at-most-once check runs inside the repository transaction so a
	// repeat submission cannot double-count into the rating sum.
	updated, err := uc.swapRepo.SaveReview(ctx, swapID, input.ReviewFor, rating, input.Review)
	if err != nil {
		return nil, err
	}

	logger.Info("Swap %s: %s reviewed by %s (%d stars)", swapID, input.ReviewFor, actorID, rating)

	return updated, nil
}

// SendMessage appends to the swap's embedded chat log. Messaging opens when
// the provider accepts and stays open after completion for dispute
// resolution; there is no edit or delete.
func (uc *SwapUseCase) SendMessage(ctx context.Context, actorID, swapID, content string) (*entity.Swap, error) {
	swap, err := uc.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.IsParticipant(actorID) {
		return nil, errors.Forbidden("You are not a participant in this swap", nil)
	}

	if swap.Status != entity.SwapAccepted && swap.Status != entity.SwapCompleted {
		return nil, errors.BadRequest("Messages can only be sent on accepted or completed swaps", nil)
	}

	msg := entity.SwapMessage{
		SenderID:  actorID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	return uc.swapRepo.AppendMessage(ctx, swapID, msg)
}

func (uc *SwapUseCase) ListMessages(ctx context.Context, actorID, swapID string) ([]entity.SwapMessage, error) {
	swap, err := uc.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.IsParticipant(actorID) {
		return nil, errors.Forbidden("You are not a participant in this swap", nil)
	}

	return swap.Messages, nil
}

func (uc *SwapUseCase) GetSwapByID(ctx context.Context, actorID, swapID string) (*entity.Swap, error) {
	swap, err := uc.swapRepo.GetByID(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.IsParticipant(actorID) {
		return nil, errors.Forbidden("You don't have permission to view this swap", nil)
	}

	return swap, nil
}

func (uc *SwapUseCase) ListMySwaps(ctx context.Context, userID, role, status string, page, limit int) ([]*entity.Swap, int64, error) {
	if role != "" && role != "requester" && role != "provider" {
		return nil, 0, errors.BadRequest("Role must be requester or provider", nil)
	}
	if status != "" && !entity.IsValidSwapStatus(status) {
		return nil, 0, errors.BadRequest("Invalid swap status filter", nil)
	}

	pagination := utils.NewPaginationParams(page, limit)

	return uc.swapRepo.ListByUser(ctx, userID, role, status, pagination.PageSize, pagination.Offset)
}

// ListPending is the provider's inbox of claims awaiting a decision.
func (uc *SwapUseCase) ListPending(ctx context.Context, providerID string, page, limit int) ([]*entity.Swap, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)

	return uc.swapRepo.ListPendingByProvider(ctx, providerID, pagination.PageSize, pagination.Offset)
}
