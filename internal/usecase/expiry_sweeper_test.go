package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodswap/internal/domain/entity"
	"foodswap/pkg/errors"
)

func (f *fixture) addItemExpiring(t *testing.T, ownerID string, expiresAt time.Time) *entity.FoodItem {
	t.Helper()

	item := &entity.FoodItem{
		OwnerID:   ownerID,
		Title:     "Leftover curry",
		Quantity:  2,
		Unit:      "portion",
		Category:  "meals",
		IsFree:    true,
		ExpiresAt: expiresAt,
	}
	require.NoError(t, f.itemRepo.Create(context.Background(), item))
	return item
}

func TestSweepExpiresOnlyAvailableItems(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	stale := f.addItemExpiring(t, "alice", past)
	fresh := f.addItemExpiring(t, "alice", future)

	// A reserved item past its deadline belongs to a live swap and must
	// not be expired out from under it.
	claimed := f.addItem(t, "alice")
	swap, err := f.swaps.RequestSwap(ctx, "bob", RequestSwapInput{FoodItemID: claimed.ID})
	require.NoError(t, err)
	f.store.mu.Lock()
	f.store.items[claimed.ID].ExpiresAt = past
	f.store.mu.Unlock()

	done := f.completedSwap(t, "alice", "bob", false)
	f.store.mu.Lock()
	f.store.items[done.FoodItemID].ExpiresAt = past
	f.store.mu.Unlock()

	sweeper := NewExpirySweeper(f.itemRepo, time.Minute)
	expired, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	assert.Equal(t, entity.FoodItemExpired, f.itemStatus(t, stale.ID))
	assert.Equal(t, entity.FoodItemAvailable, f.itemStatus(t, fresh.ID))
	assert.Equal(t, entity.FoodItemReserved, f.itemStatus(t, swap.FoodItemID))
	assert.Equal(t, entity.FoodItemCompleted, f.itemStatus(t, done.FoodItemID))
}

func TestSweepIsIdempotent(t *testing.T) {
	f := newFixture(t, "alice")
	ctx := context.Background()

	f.addItemExpiring(t, "alice", time.Now().Add(-time.Minute))

	sweeper := NewExpirySweeper(f.itemRepo, time.Minute)

	expired, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	expired, err = sweeper.SweepOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, expired)
}

func TestExpiredItemCannotBeClaimed(t *testing.T) {
	f := newFixture(t, "alice", "bob")
	ctx := context.Background()

	item := f.addItemExpiring(t, "alice", time.Now().Add(-time.Minute))

	sweeper := NewExpirySweeper(f.itemRepo, time.Minute)
	_, err := sweeper.SweepOnce(ctx)
	require.NoError(t, err)

	// The loser of an expiry-vs-claim race sees the item as gone, not a
	// server error.
	_, err = f.swaps.RequestSwap(ctx, "bob", RequestSwapInput{FoodItemID: item.ID})
	assert.True(t, errors.Is(err, "ITEM_UNAVAILABLE"))
}
