package entity

import (
	"time"
)

const (
	SwapPending   = "pending"
	SwapAccepted  = "accepted"
	SwapRejected  = "rejected"
	SwapCompleted = "completed"
	SwapCancelled = "cancelled"
)

// swapTransitions is the full transition table of the swap lifecycle.
// Anything not listed here is an invalid transition; rejected, completed
// and cancelled are terminal.
var swapTransitions = map[string][]string{
	SwapPending:   {SwapAccepted, SwapRejected, SwapCancelled},
	SwapAccepted:  {SwapCompleted, SwapCancelled},
	SwapRejected:  {},
	SwapCompleted: {},
	SwapCancelled: {},
}

// CanTransition reports whether a swap may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range swapTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidSwapStatus reports whether s is one of the known lifecycle statuses.
func IsValidSwapStatus(s string) bool {
	_, ok := swapTransitions[s]
	return ok
}

type SwapMessage struct {
	SenderID  string    `json:"sender_id" firestore:"senderId"`
	Content   string    `json:"content" firestore:"content"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}

type Swap struct {
	ID            string `json:"id" firestore:"id"`
	FoodItemID    string `json:"food_item_id" firestore:"foodItemId"`
	OfferedItemID string `json:"offered_item_id,omitempty" firestore:"offeredItemId,omitempty"`
	RequesterID   string `json:"requester_id" firestore:"requesterId"`
	ProviderID    string `json:"provider_id" firestore:"providerId"`

	// Participants mirrors [RequesterID, ProviderID] so both sides of a
	// swap can be queried with a single array-contains filter.
	Participants []string `json:"-" firestore:"participants"`

	// Message is the note attached when the swap was requested; it is
	// immutable after creation. Ongoing conversation goes in Messages.
	Message string `json:"message,omitempty" firestore:"message,omitempty"`

	Status     string  `json:"status" firestore:"status"` // pending, accepted, rejected, completed, cancelled
	IsSwap     bool    `json:"is_swap" firestore:"isSwap"`
	IsPurchase bool    `json:"is_purchase" firestore:"isPurchase"`
	Amount     float64 `json:"amount" firestore:"amount"`

	// Ratings are 0 until the corresponding side has been reviewed; each
	// may be written at most once, and only while the swap is completed.
	RequesterRating int    `json:"requester_rating" firestore:"requesterRating"`
	ProviderRating  int    `json:"provider_rating" firestore:"providerRating"`
	RequesterReview string `json:"requester_review,omitempty" firestore:"requesterReview,omitempty"`
	ProviderReview  string `json:"provider_review,omitempty" firestore:"providerReview,omitempty"`

	Messages []SwapMessage `json:"messages" firestore:"messages"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	AcceptedAt  *time.Time `json:"accepted_at,omitempty" firestore:"acceptedAt,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
	ClosedAt    *time.Time `json:"closed_at,omitempty" firestore:"closedAt,omitempty"`
}

// IsParticipant reports whether userID is one of the two parties.
func (s *Swap) IsParticipant(userID string) bool {
	return s.RequesterID == userID || s.ProviderID == userID
}

// IsItemSwap reports whether this is a true item-for-item exchange, as
// opposed to a one-way giveaway or purchase.
func (s *Swap) IsItemSwap() bool {
	return s.IsSwap && s.OfferedItemID != ""
}

// ItemIDs returns the primary item id plus the offered item id when present.
func (s *Swap) ItemIDs() []string {
	ids := []string{s.FoodItemID}
	if s.OfferedItemID != "" {
		ids = append(ids, s.OfferedItemID)
	}
	return ids
}
