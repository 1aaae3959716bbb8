package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/internal/domain/service"
	"foodswap/pkg/errors"
)

// memStore backs the fake repositories. One mutex guards everything, which
// gives the fakes the same all-or-nothing semantics as a Firestore
// transaction and makes the create-swap race test meaningful.
type memStore struct {
	mu    sync.Mutex
	items map[string]*entity.FoodItem
	swaps map[string]*entity.Swap
	users map[string]*entity.User
}

func newMemStore() *memStore {
	return &memStore{
		items: make(map[string]*entity.FoodItem),
		swaps: make(map[string]*entity.Swap),
		users: make(map[string]*entity.User),
	}
}

func copyItem(item *entity.FoodItem) *entity.FoodItem {
	c := *item
	return &c
}

func copySwap(swap *entity.Swap) *entity.Swap {
	c := *swap
	c.Messages = append([]entity.SwapMessage(nil), swap.Messages...)
	c.Participants = append([]string(nil), swap.Participants...)
	return &c
}

func copyUser(user *entity.User) *entity.User {
	c := *user
	return &c
}

type fakeFoodItemRepo struct {
	store *memStore
}

func (r *fakeFoodItemRepo) Create(ctx context.Context, item *entity.FoodItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	item.Status = entity.FoodItemAvailable
	item.IsAvailable = true

	r.store.items[item.ID] = copyItem(item)
	return nil
}

func (r *fakeFoodItemRepo) GetByID(ctx context.Context, id string) (*entity.FoodItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.items[id]
	if !ok {
		return nil, errors.NotFound("Food item", nil)
	}
	return copyItem(item), nil
}

func (r *fakeFoodItemRepo) Update(ctx context.Context, item *entity.FoodItem) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.items[item.ID]; !ok {
		return errors.NotFound("Food item", nil)
	}
	item.UpdatedAt = time.Now()
	r.store.items[item.ID] = copyItem(item)
	return nil
}

func (r *fakeFoodItemRepo) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.items, id)
	return nil
}

func matchItem(item *entity.FoodItem, filter map[string]interface{}) bool {
	for key, value := range filter {
		switch key {
		case "status":
			if item.Status != value.(string) {
				return false
			}
		case "category":
			if item.Category != value.(string) {
				return false
			}
		case "isFree":
			if item.IsFree != value.(bool) {
				return false
			}
		case "ownerId":
			if item.OwnerID != value.(string) {
				return false
			}
		}
	}
	return true
}

func (r *fakeFoodItemRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.FoodItem, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matched []*entity.FoodItem
	for _, item := range r.store.items {
		if matchItem(item, filter) {
			matched = append(matched, copyItem(item))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeFoodItemRepo) ListByOwner(ctx context.Context, ownerID, status string, limit, offset int) ([]*entity.FoodItem, int64, error) {
	filter := map[string]interface{}{"ownerId": ownerID}
	if status != "" {
		filter["status"] = status
	}
	return r.List(ctx, filter, limit, offset)
}

func (r *fakeFoodItemRepo) ExpireBefore(ctx context.Context, cutoff time.Time) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	expired := 0
	for _, item := range r.store.items {
		if item.Status != entity.FoodItemAvailable || item.ExpiresAt.After(cutoff) {
			continue
		}
		item.Status = entity.FoodItemExpired
		item.IsAvailable = false
		item.UpdatedAt = time.Now()
		expired++
	}
	return expired, nil
}

type fakeSwapRepo struct {
	store *memStore
}

func (r *fakeSwapRepo) CreateWithReservation(ctx context.Context, swap *entity.Swap) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

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

	reserved := make([]*entity.FoodItem, 0, 2)
	for i, itemID := range swap.ItemIDs() {
		item, ok := r.store.items[itemID]
		if !ok {
			return errors.NotFound("Food item", nil)
		}
		if item.Status != entity.FoodItemAvailable {
			if i > 0 {
				return errors.OfferedItemUnavailable(nil)
			}
			return errors.ItemUnavailable(nil)
		}
		reserved = append(reserved, item)
	}

	for _, item := range reserved {
		item.Status = entity.FoodItemReserved
		item.IsAvailable = false
		item.UpdatedAt = now
	}

	r.store.swaps[swap.ID] = copySwap(swap)
	return nil
}

func (r *fakeSwapRepo) GetByID(ctx context.Context, id string) (*entity.Swap, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	swap, ok := r.store.swaps[id]
	if !ok {
		return nil, errors.NotFound("Swap", nil)
	}
	return copySwap(swap), nil
}

func (r *fakeSwapRepo) Transition(ctx context.Context, swap *entity.Swap, expectedStatus, itemStatus string, deltas []repository.ReputationDelta) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.swaps[swap.ID]
	if !ok {
		return errors.NotFound("Swap", nil)
	}
	if stored.Status != expectedStatus {
		return errors.InvalidTransition(stored.Status, swap.Status)
	}

	now := time.Now()
	swap.UpdatedAt = now
	r.store.swaps[swap.ID] = copySwap(swap)

	if itemStatus != "" {
		for _, itemID := range swap.ItemIDs() {
			item, ok := r.store.items[itemID]
			if !ok {
				return errors.NotFound("Food item", nil)
			}
			item.Status = itemStatus
			item.IsAvailable = itemStatus == entity.FoodItemAvailable
			item.UpdatedAt = now
		}
	}

	for _, delta := range deltas {
		user, ok := r.store.users[delta.UserID]
		if !ok {
			// Missing profile, same upsert as the Firestore repository.
			user = &entity.User{ID: delta.UserID, CreatedAt: now}
			r.store.users[delta.UserID] = user
		}
		user.ItemsShared += delta.ItemsShared
		user.ItemsReceived += delta.ItemsReceived
		user.TrustScore = service.TrustScore(user.RatingSum, user.RatingCount, user.ItemsShared, user.ItemsReceived)
		user.UpdatedAt = now
	}

	return nil
}

func (r *fakeSwapRepo) SaveReview(ctx context.Context, swapID, reviewFor string, rating int, review string) (*entity.Swap, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	swap, ok := r.store.swaps[swapID]
	if !ok {
		return nil, errors.NotFound("Swap", nil)
	}
	if swap.Status != entity.SwapCompleted {
		return nil, errors.NotCompleted("Swap must be completed before it can be reviewed")
	}

	var ratedUserID string
	switch reviewFor {
	case "provider":
		if swap.ProviderRating != 0 {
			return nil, errors.AlreadyReviewed("Provider has already been reviewed for this swap")
		}
		swap.ProviderRating = rating
		swap.ProviderReview = review
		ratedUserID = swap.ProviderID
	case "requester":
		if swap.RequesterRating != 0 {
			return nil, errors.AlreadyReviewed("Requester has already been reviewed for this swap")
		}
		swap.RequesterRating = rating
		swap.RequesterReview = review
		ratedUserID = swap.RequesterID
	default:
		return nil, errors.BadRequest("Invalid review target", nil)
	}

	user, ok := r.store.users[ratedUserID]
	if !ok {
		user = &entity.User{ID: ratedUserID, CreatedAt: time.Now()}
		r.store.users[ratedUserID] = user
	}

	now := time.Now()
	user.RatingSum += rating
	user.RatingCount++
	user.TrustScore = service.TrustScore(user.RatingSum, user.RatingCount, user.ItemsShared, user.ItemsReceived)
	user.UpdatedAt = now
	swap.UpdatedAt = now

	return copySwap(swap), nil
}

func (r *fakeSwapRepo) AppendMessage(ctx context.Context, swapID string, msg entity.SwapMessage) (*entity.Swap, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	swap, ok := r.store.swaps[swapID]
	if !ok {
		return nil, errors.NotFound("Swap", nil)
	}
	if swap.Status != entity.SwapAccepted && swap.Status != entity.SwapCompleted {
		return nil, errors.BadRequest("Messages can only be sent on accepted or completed swaps", nil)
	}

	swap.Messages = append(swap.Messages, msg)
	swap.UpdatedAt = msg.CreatedAt

	return copySwap(swap), nil
}

func (r *fakeSwapRepo) ListByUser(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Swap, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matched []*entity.Swap
	for _, swap := range r.store.swaps {
		switch role {
		case "requester":
			if swap.RequesterID != userID {
				continue
			}
		case "provider":
			if swap.ProviderID != userID {
				continue
			}
		default:
			if !swap.IsParticipant(userID) {
				continue
			}
		}
		if status != "" && swap.Status != status {
			continue
		}
		matched = append(matched, copySwap(swap))
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (r *fakeSwapRepo) ListPendingByProvider(ctx context.Context, providerID string, limit, offset int) ([]*entity.Swap, int64, error) {
	return r.ListByUser(ctx, providerID, "provider", entity.SwapPending, limit, offset)
}

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.store.users[user.ID] = copyUser(user)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return copyUser(user), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	user.UpdatedAt = time.Now()
	r.store.users[user.ID] = copyUser(user)
	return nil
}
