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
	"foodswap/internal/domain/service"
	"foodswap/pkg/errors"
)

type firestoreSwapRepository struct {
	client *firestore.Client
}

func NewFirestoreSwapRepository(client *firestore.Client) repository.SwapRepository {
	return &firestoreSwapRepository{
		client: client,
	}
}

// CreateWithReservation checks and reserves every referenced item in the
// same transaction that inserts the swap. Two concurrent claims on the same
// item serialize here: the loser re-reads a reserved item and fails.
func (r *firestoreSwapRepository) CreateWithReservation(ctx context.Context, swap *entity.Swap) error {
	if swap.ID == "" {
		swap.ID = uuid.New().String()
	}

	now := time.Now()
	swap.CreatedAt = now
	swap.UpdatedAt = now
	swap.Status = entity.SwapPending
	swap.Participants = []string{swap.RequesterID, swap.ProviderID}
	if swap.Messages == nil {
		swap.Messages = []entity.SwapMessage{}
	}

	swapRef := r.client.Collection("swaps").Doc(swap.ID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// Firestore requires all reads before any write.
		items := make([]*entity.FoodItem, 0, 2)
		refs := make([]*firestore.DocumentRef, 0, 2)

		for i, itemID := range swap.ItemIDs() {
			offered := i > 0

			itemRef := r.client.Collection("food_items").Doc(itemID)
			snap, err := tx.Get(itemRef)
			if err != nil {
				if status.Code(err) == codes.NotFound {
					return errors.NotFound("Food item", err)
				}
				return errors.Internal("Failed to get food item", err)
			}

			var item entity.FoodItem
			if err := snap.DataTo(&item); err != nil {
				return errors.Internal("Failed to parse food item data", err)
			}

			if item.Status != entity.FoodItemAvailable {
				if offered {
					return errors.OfferedItemUnavailable(nil)
				}
				return errors.ItemUnavailable(nil)
			}

			items = append(items, &item)
			refs = append(refs, itemRef)
		}

		for i, item := range items {
			item.Status = entity.FoodItemReserved
			item.IsAvailable = false
			item.UpdatedAt = now
			if err := tx.Set(refs[i], item); err != nil {
				return errors.Internal("Failed to reserve food item", err)
			}
		}

		if err := tx.Set(swapRef, swap); err != nil {
			return errors.Internal("Failed to create swap", err)
		}

		return nil
	})
}

// userForUpdate reads a participant's profile inside a transaction.
// Participants authenticate through Firebase and can act before anything
// lazy-creates their profile document, so a missing doc counts as a
// zero-valued profile and the reputation write upserts it.
func userForUpdate(tx *firestore.Transaction, ref *firestore.DocumentRef, userID string, now time.Time) (*entity.User, error) {
	snap, err := tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return &entity.User{ID: userID, CreatedAt: now}, nil
		}
		return nil, errors.Internal("Failed to get user", err)
	}

	var user entity.User
	if err := snap.DataTo(&user); err != nil {
		return nil, errors.Internal("Failed to parse user data", err)
	}

	return &user, nil
}

func (r *firestoreSwapRepository) GetByID(ctx context.Context, id string) (*entity.Swap, error) {
	doc, err := r.client.Collection("swaps").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Swap", err)
		}
		return nil, errors.Internal("Failed to get swap", err)
	}

	var swap entity.Swap
	if err := doc.DataTo(&swap); err != nil {
		return nil, errors.Internal("Failed to parse swap data", err)
	}

	return &swap, nil
}

// Transition persists a status change together with its food-item and
// reputation side effects. The swap's stored status is re-read inside the
// transaction, so a concurrent transition on the same swap loses cleanly.
func (r *firestoreSwapRepository) Transition(ctx context.Context, swap *entity.Swap, expectedStatus, itemStatus string, deltas []repository.ReputationDelta) error {
	swapRef := r.client.Collection("swaps").Doc(swap.ID)
	now := time.Now()

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(swapRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Swap", err)
			}
			return errors.Internal("Failed to get swap", err)
		}

		var stored entity.Swap
		if err := snap.DataTo(&stored); err != nil {
			return errors.Internal("Failed to parse swap data", err)
		}

		if stored.Status != expectedStatus {
			return errors.InvalidTransition(stored.Status, swap.Status)
		}

		items := make([]*entity.FoodItem, 0, 2)
		itemRefs := make([]*firestore.DocumentRef, 0, 2)
		if itemStatus != "" {
			for _, itemID := range swap.ItemIDs() {
				itemRef := r.client.Collection("food_items").Doc(itemID)
				itemSnap, err := tx.Get(itemRef)
				if err != nil {
					return errors.Internal("Failed to get food item", err)
				}

				var item entity.FoodItem
				if err := itemSnap.DataTo(&item); err != nil {
					return errors.Internal("Failed to parse food item data", err)
				}

				items = append(items, &item)
				itemRefs = append(itemRefs, itemRef)
			}
		}

		users := make([]*entity.User, 0, 2)
		userRefs := make([]*firestore.DocumentRef, 0, 2)
		for _, delta := range deltas {
			userRef := r.client.Collection("users").Doc(delta.UserID)
			user, err := userForUpdate(tx, userRef, delta.UserID, now)
			if err != nil {
				return err
			}

			users = append(users, user)
			userRefs = append(userRefs, userRef)
		}

		swap.UpdatedAt = now
		if err := tx.Set(swapRef, swap); err != nil {
			return errors.Internal("Failed to update swap", err)
		}

		for i, item := range items {
			item.Status = itemStatus
			item.IsAvailable = itemStatus == entity.FoodItemAvailable
			item.UpdatedAt = now
			if err := tx.Set(itemRefs[i], item); err != nil {
				return errors.Internal("Failed to update food item", err)
			}
		}

		for i, user := range users {
			user.ItemsShared += deltas[i].ItemsShared
			user.ItemsReceived += deltas[i].ItemsReceived
			user.TrustScore = service.TrustScore(user.RatingSum, user.RatingCount, user.ItemsShared, user.ItemsReceived)
			user.UpdatedAt = now
			if err := tx.Set(userRefs[i], user); err != nil {
				return errors.Internal("Failed to update user reputation", err)
			}
		}

		return nil
	})
}

// SaveReview writes a rating for one side of a completed swap and folds it
// into the rated user's reputation. The "rating still zero" check runs in
// the same transaction as the write, so a double submission cannot
// double-count into the rating sum.
func (r *firestoreSwapRepository) SaveReview(ctx context.Context, swapID, reviewFor string, rating int, review string) (*entity.Swap, error) {
	swapRef := r.client.Collection("swaps").Doc(swapID)
	now := time.Now()

	var updated entity.Swap

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(swapRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Swap", err)
			}
			return errors.Internal("Failed to get swap", err)
		}

		var swap entity.Swap
		if err := snap.DataTo(&swap); err != nil {
			return errors.Internal("Failed to parse swap data", err)
		}

		if swap.Status != entity.SwapCompleted {
			return errors.NotCompleted("Swap must be completed before it can be reviewed")
		}

		var ratedUserID string
		switch reviewFor {
		case "provider":
			if swap.ProviderRating != 0 {
				return errors.AlreadyReviewed("Provider has already been reviewed for this swap")
			}
			swap.ProviderRating = rating
			swap.ProviderReview = review
			ratedUserID = swap.ProviderID
		case "requester":
			if swap.RequesterRating != 0 {
				return errors.AlreadyReviewed("Requester has already been reviewed for this swap")
			}
			swap.RequesterRating = rating
			swap.RequesterReview = review
			ratedUserID = swap.RequesterID
		default:
			return errors.BadRequest("Invalid review target", nil)
		}

		userRef := r.client.Collection("users").Doc(ratedUserID)
		user, err := userForUpdate(tx, userRef, ratedUserID, now)
		if err != nil {
			return err
		}

		user.RatingSum += rating
		user.RatingCount++
		user.TrustScore = service.TrustScore(user.RatingSum, user.RatingCount, user.ItemsShared, user.ItemsReceived)
		user.UpdatedAt = now

		swap.UpdatedAt = now

		if err := tx.Set(swapRef, &swap); err != nil {
			return errors.Internal("Failed to update swap", err)
		}
		if err := tx.Set(userRef, user); err != nil {
			return errors.Internal("Failed to update user reputation", err)
		}

		updated = swap
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *firestoreSwapRepository) AppendMessage(ctx context.Context, swapID string, msg entity.SwapMessage) (*entity.Swap, error) {
	swapRef := r.client.Collection("swaps").Doc(swapID)

	var updated entity.Swap

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(swapRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Swap", err)
			}
			return errors.Internal("Failed to get swap", err)
		}

		var swap entity.Swap
		if err := snap.DataTo(&swap); err != nil {
			return errors.Internal("Failed to parse swap data", err)
		}

		if swap.Status != entity.SwapAccepted && swap.Status != entity.SwapCompleted {
			return errors.BadRequest("Messages can only be sent on accepted or completed swaps", nil)
		}

		swap.Messages = append(swap.Messages, msg)
		swap.UpdatedAt = msg.CreatedAt

		if err := tx.Set(swapRef, &swap); err != nil {
			return errors.Internal("Failed to append message", err)
		}

		updated = swap
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (r *firestoreSwapRepository) ListByUser(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Swap, int64, error) {
	collection := r.client.Collection("swaps")

	var query firestore.Query
	switch role {
	case "requester":
		query = collection.Where("requesterId", "==", userID)
	case "provider":
		query = collection.Where("providerId", "==", userID)
	default:
		query = collection.Where("participants", "array-contains", userID)
	}

	if status != "" {
		query = query.Where("status", "==", status)
	}
	query = query.OrderBy("createdAt", firestore.Desc)

	return r.listSwaps(ctx, query, limit, offset)
}

func (r *firestoreSwapRepository) ListPendingByProvider(ctx context.Context, providerID string, limit, offset int) ([]*entity.Swap, int64, error) {
	query := r.client.Collection("swaps").
		Where("providerId", "==", providerID).
		Where("status", "==", entity.SwapPending).
		OrderBy("createdAt", firestore.Desc)

	return r.listSwaps(ctx, query, limit, offset)
}

func (r *firestoreSwapRepository) listSwaps(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Swap, int64, error) {
	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count swaps", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var swaps []*entity.Swap

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate swaps", err)
		}

		var swap entity.Swap
		if err := doc.DataTo(&swap); err != nil {
			return nil, 0, errors.Internal("Failed to parse swap data", err)
		}
		swaps = append(swaps, &swap)
	}

	return swaps, total, nil
}
