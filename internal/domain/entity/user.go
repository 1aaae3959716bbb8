package entity

import (
	"time"
)

type User struct {
	ID       string `json:"id" firestore:"id"`
	Email    string `json:"email" firestore:"email"`
	Username string `json:"username" firestore:"username"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Bio      string `json:"bio,omitempty" firestore:"bio,omitempty"`

	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`
	Address   string `json:"address,omitempty" firestore:"address,omitempty"`

	// Reputation counters. TrustScore is always recomputed from the other
	// four fields (see service.TrustScore); it is never set independently
	// and never decremented on its own.
	RatingSum     int `json:"rating_sum" firestore:"ratingSum"`
	RatingCount   int `json:"rating_count" firestore:"ratingCount"`
	TrustScore    int `json:"trust_score" firestore:"trustScore"`
	ItemsShared   int `json:"items_shared" firestore:"itemsShared"`
	ItemsReceived int `json:"items_received" firestore:"itemsReceived"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
