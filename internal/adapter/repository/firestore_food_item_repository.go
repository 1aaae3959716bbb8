package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/pkg/errors"
	"foodswap/pkg/logger"
)

type firestoreFoodItemRepository struct {
	client *firestore.Client
}

func NewFirestoreFoodItemRepository(client *firestore.Client) repository.FoodItemRepository {
	return &firestoreFoodItemRepository{
		client: client,
	}
}

func (r *firestoreFoodItemRepository) Create(ctx context.Context, item *entity.FoodItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	item.Status = entity.FoodItemAvailable
	item.IsAvailable = true

	_, err := r.client.Collection("food_items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to create food item", err)
	}

	return nil
}

func (r *firestoreFoodItemRepository) GetByID(ctx context.Context, id string) (*entity.FoodItem, error) {
	doc, err := r.client.Collection("food_items").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Food item", err)
		}
		return nil, errors.Internal("Failed to get food item", err)
	}

	var item entity.FoodItem
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse food item data", err)
	}

	return &item, nil
}

func (r *firestoreFoodItemRepository) Update(ctx context.Context, item *entity.FoodItem) error {
	item.UpdatedAt = time.Now()

	_, err := r.client.Collection("food_items").Doc(item.ID).Set(ctx, item)
	if err != nil {
		return errors.Internal("Failed to update food item", err)
	}

	return nil
}

func (r *firestoreFoodItemRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection("food_items").Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete food item", err)
	}

	return nil
}

func (r *firestoreFoodItemRepository) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.FoodItem, int64, error) {
	collection := r.client.Collection("food_items")
	query := collection.OrderBy("createdAt", firestore.Desc)

	for key, value := range filter {
		query = query.Where(key, "==", value)
	}

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count food items", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var items []*entity.FoodItem

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate food items", err)
		}

		var item entity.FoodItem
		if err := doc.DataTo(&item); err != nil {
			return nil, 0, errors.Internal("Failed to parse food item data", err)
		}
		items = append(items, &item)
	}

	return items, total, nil
}

func (r *firestoreFoodItemRepository) ListByOwner(ctx context.Context, ownerID, status string, limit, offset int) ([]*entity.FoodItem, int64, error) {
	filter := map[string]interface{}{
		"ownerId": ownerID,
	}
	if status != "" {
		filter["status"] = status
	}

	return r.List(ctx, filter, limit, offset)
}

// ExpireBefore queries candidates outside a transaction, then flips each one
// inside its own transaction that re-checks the status. An item reserved
// between the query and the flip is left alone.
func (r *firestoreFoodItemRepository) ExpireBefore(ctx context.Context, cutoff time.Time) (int, error) {
	query := r.client.Collection("food_items").
		Where("status", "==", entity.FoodItemAvailable).
		Where("expiresAt", "<=", cutoff)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to query expiring food items", err)
	}

	expired := 0
	for _, doc := range docs {
		docRef := r.client.Collection("food_items").Doc(doc.Ref.ID)

		flipped := false
		err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			flipped = false

			snap, err := tx.Get(docRef)
			if err != nil {
				return err
			}

			var item entity.FoodItem
			if err := snap.DataTo(&item); err != nil {
				return err
			}

			// A swap may have reserved the item since the query ran;
			// the reservation wins.
			if item.Status != entity.FoodItemAvailable || item.ExpiresAt.After(cutoff) {
				return nil
			}

			item.Status = entity.FoodItemExpired
			item.IsAvailable = false
			item.UpdatedAt = time.Now()

			flipped = true
			return tx.Set(docRef, &item)
		})
		if err != nil {
			logger.Error("Failed to expire food item %s: %v", doc.Ref.ID, err)
			continue
		}
		if flipped {
			expired++
		}
	}

	return expired, nil
}
