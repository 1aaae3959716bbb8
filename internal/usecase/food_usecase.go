package usecase

import (
	"context"
	"time"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/pkg/errors"
	"foodswap/pkg/utils"
)

type FoodUseCase struct {
	foodItemRepo repository.FoodItemRepository
}

func NewFoodUseCase(foodItemRepo repository.FoodItemRepository) *FoodUseCase {
	return &FoodUseCase{
		foodItemRepo: foodItemRepo,
	}
}

type FoodItemInput struct {
	Title         string
	Description   string
	Quantity      int
	Unit          string
	Category      string
	DietaryFlags  map[string]bool
	Price         float64
	OriginalPrice float64
	IsFree        bool
	PickupOnly    bool
	ExpiresAt     time.Time
	Latitude      float64
	Longitude     float64
	Address       string
	Images        []string
}

func (uc *FoodUseCase) CreateFoodItem(ctx context.Context, ownerID string, input FoodItemInput) (*entity.FoodItem, error) {
	if !input.ExpiresAt.After(time.Now()) {
		return nil, errors.BadRequest("Expiration must be in the future", nil)
	}

	price := input.Price
	if input.IsFree {
		price = 0
	}

	item := &entity.FoodItem{
		OwnerID:       ownerID,
		Title:         input.Title,
		Description:   input.Description,
		Quantity:      input.Quantity,
		Unit:          input.Unit,
		Category:      input.Category,
		DietaryFlags:  input.DietaryFlags,
		Price:         price,
		OriginalPrice: input.OriginalPrice,
		IsFree:        input.IsFree,
		PickupOnly:    input.PickupOnly,
		ExpiresAt:     input.ExpiresAt,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		Address:       input.Address,
		Images:        input.Images,
	}

	if err := uc.foodItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *FoodUseCase) GetFoodItem(ctx context.Context, id string) (*entity.FoodItem, error) {
	return uc.foodItemRepo.GetByID(ctx, id)
}

// UpdateFoodItem replaces the listing's editable fields. Once an item is
// reserved, completed or expired its listing is frozen; only the swap ledger
// and the sweeper touch it from then on.
func (uc *FoodUseCase) UpdateFoodItem(ctx context.Context, ownerID, id string, input FoodItemInput) (*entity.FoodItem, error) {
	item, err := uc.foodItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if item.OwnerID != ownerID {
		return nil, errors.Forbidden("You don't own this food item", nil)
	}

	if item.Status != entity.FoodItemAvailable {
		return nil, errors.BadRequest("Only available items can be updated", nil)
	}

	if !input.ExpiresAt.After(time.Now()) {
		return nil, errors.BadRequest("Expiration must be in the future", nil)
	}

	item.Title = input.Title
	item.Description = input.Description
	item.Quantity = input.Quantity
	item.Unit = input.Unit
	item.Category = input.Category
	item.DietaryFlags = input.DietaryFlags
	item.Price = input.Price
	if input.IsFree {
		item.Price = 0
	}
	item.OriginalPrice = input.OriginalPrice
	item.IsFree = input.IsFree
	item.PickupOnly = input.PickupOnly
	item.ExpiresAt = input.ExpiresAt
	item.Latitude = input.Latitude
	item.Longitude = input.Longitude
	item.Address = input.Address
	item.Images = input.Images

	if err := uc.foodItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (uc *FoodUseCase) DeleteFoodItem(ctx context.Context, ownerID, id string) error {
	item, err := uc.foodItemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if item.OwnerID != ownerID {
		return errors.Forbidden("You don't own this food item", nil)
	}

	if item.Status == entity.FoodItemReserved {
		return errors.BadRequest("Cannot delete an item with an active swap", nil)
	}

	return uc.foodItemRepo.Delete(ctx, id)
}

type FoodItemFilter struct {
	Category string
	FreeOnly bool
}

func (uc *FoodUseCase) ListAvailable(ctx context.Context, filter FoodItemFilter, page, limit int) ([]*entity.FoodItem, int64, error) {
	query := map[string]interface{}{
		"status": entity.FoodItemAvailable,
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.FreeOnly {
		query["isFree"] = true
	}

	pagination := utils.NewPaginationParams(page, limit)

	return uc.foodItemRepo.List(ctx, query, pagination.PageSize, pagination.Offset)
}

func (uc *FoodUseCase) ListMyItems(ctx context.Context, ownerID, status string, page, limit int) ([]*entity.FoodItem, int64, error) {
	pagination := utils.NewPaginationParams(page, limit)

	return uc.foodItemRepo.ListByOwner(ctx, ownerID, status, pagination.PageSize, pagination.Offset)
}
