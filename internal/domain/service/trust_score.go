package service

import (
	"math"
)

const (
	ratingWeight   = 70.0
	activityWeight = 30.0
	activityCap    = 20
)

// TrustScore derives a user's 0-100 reputation from their accumulated
// ratings and swap activity. Up to 70 points come from the average rating
// and up to 30 from activity volume, which stops counting after 20 swaps.
// The score is recomputed from scratch every time so repeated calls with
// the same inputs always agree.
func TrustScore(ratingSum, ratingCount, itemsShared, itemsReceived int) int {
	var avgRating float64
	if ratingCount > 0 {
		avgRating = float64(ratingSum) / float64(ratingCount)
	}

	ratingPart := avgRating / 5 * ratingWeight

	swapCount := itemsShared + itemsReceived
	if swapCount > activityCap {
		swapCount = activityCap
	}
	activityPart := float64(swapCount) / activityCap * activityWeight

	return int(math.Round(ratingPart + activityPart))
}

// ClampRating forces a submitted rating into the 1-5 star range.
func ClampRating(rating int) int {
	if rating < 1 {
		return 1
	}
	if rating > 5 {
		return 5
	}
	return rating
}
