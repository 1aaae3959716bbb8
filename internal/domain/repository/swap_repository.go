package repository

import (
	"context"

	"foodswap/internal/domain/entity"
)

// ReputationDelta describes counter changes applied to one user atomically
// with a swap write. The user's trust score is recomputed in the same
// transaction.
type ReputationDelta struct {
	UserID        string
	ItemsShared   int
	ItemsReceived int
}

type SwapRepository interface {
	// CreateWithReservation inserts the swap and flips every item it
	// references from available to reserved in a single transaction.
	// If any item is not available the whole transaction fails: the
	// primary item with ITEM_UNAVAILABLE, the offered item with
	// OFFERED_ITEM_UNAVAILABLE.
	CreateWithReservation(ctx context.Context, swap *entity.Swap) error

	GetByID(ctx context.Context, id string) (*entity.Swap, error)

	// Transition writes the swap only if its stored status still equals
	// expectedStatus, then in the same transaction moves the referenced
	// items to itemStatus (empty string leaves them untouched) and applies
	// the reputation deltas.
	Transition(ctx context.Context, swap *entity.Swap, expectedStatus, itemStatus string, deltas []ReputationDelta) error

	// SaveReview records a rating for one side of a completed swap and
	// updates the rated user's reputation atomically. The write fails if
	// that side has already been rated.
	SaveReview(ctx context.Context, swapID, reviewFor string, rating int, review string) (*entity.Swap, error)

	// AppendMessage adds one entry to the swap's embedded message log.
	// The log is append-only; the swap must currently be accepted or
	// completed.
	AppendMessage(ctx context.Context, swapID string, msg entity.SwapMessage) (*entity.Swap, error)

	ListByUser(ctx context.Context, userID, role, status string, limit, offset int) ([]*entity.Swap, int64, error)
	ListPendingByProvider(ctx context.Context, providerID string, limit, offset int) ([]*entity.Swap, int64, error)
}
