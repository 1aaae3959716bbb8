package entity

import (
	"time"
)

const (
	FoodItemAvailable = "available"
	FoodItemReserved  = "reserved"
	FoodItemCompleted = "completed"
	FoodItemExpired   = "expired"
)

type FoodItem struct {
	ID          string `json:"id" firestore:"id"`
	OwnerID     string `json:"owner_id" firestore:"ownerId"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
	Quantity    int    `json:"quantity" firestore:"quantity"`
	Unit        string `json:"unit" firestore:"unit"`
	Category    string `json:"category" firestore:"category"`

	DietaryFlags map[string]bool `json:"dietary_flags,omitempty" firestore:"dietaryFlags,omitempty"`

	Price         float64 `json:"price" firestore:"price"`
	OriginalPrice float64 `json:"original_price,omitempty" firestore:"originalPrice,omitempty"`
	IsFree        bool    `json:"is_free" firestore:"isFree"`
	PickupOnly    bool    `json:"pickup_only" firestore:"pickupOnly"`

	ExpiresAt time.Time `json:"expires_at" firestore:"expiresAt"`

	Latitude  float64 `json:"latitude,omitempty" firestore:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty" firestore:"longitude,omitempty"`
	Address   string  `json:"address,omitempty" firestore:"address,omitempty"`

	Images []string `json:"images,omitempty" firestore:"images,omitempty"`

	// Status is the single concurrency gate for claims: only the swap
	// ledger and the expiry sweeper may move it, and only through
	// conditional writes.
	Status      string `json:"status" firestore:"status"` // available, reserved, completed, expired
	IsAvailable bool   `json:"is_available" firestore:"isAvailable"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
