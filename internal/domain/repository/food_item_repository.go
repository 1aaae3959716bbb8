package repository

import (
	"context"
	"time"

	"foodswap/internal/domain/entity"
)

type FoodItemRepository interface {
	Create(ctx context.Context, item *entity.FoodItem) error
	GetByID(ctx context.Context, id string) (*entity.FoodItem, error)
	Update(ctx context.Context, item *entity.FoodItem) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.FoodItem, int64, error)
	ListByOwner(ctx context.Context, ownerID, status string, limit, offset int) ([]*entity.FoodItem, int64, error)

	// ExpireBefore moves every item that is still available and whose
	// expiry is at or before cutoff to expired. Each item is flipped with
	// a conditional write so a concurrent reservation wins over the sweep.
	// Returns the number of items expired.
	ExpireBefore(ctx context.Context, cutoff time.Time) (int, error)
}
