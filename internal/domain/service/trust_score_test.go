package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrustScore(t *testing.T) {
	// No history at all.
	assert.Equal(t, 0, TrustScore(0, 0, 0, 0))

	// One five-star rating, no activity yet: full rating part only.
	assert.Equal(t, 70, TrustScore(5, 1, 0, 0))

	// Average of 4 stars with activity at the cap.
	assert.Equal(t, 86, TrustScore(8, 2, 10, 10))

	// Perfect ratings plus capped activity hit the ceiling.
	assert.Equal(t, 100, TrustScore(25, 5, 15, 10))

	// Activity counts but no ratings yet.
	assert.Equal(t, 30, TrustScore(0, 0, 20, 5))
}

func TestTrustScoreActivityCap(t *testing.T) {
	// Anything past 20 total swaps adds nothing.
	capped := TrustScore(0, 0, 10, 10)
	assert.Equal(t, capped, TrustScore(0, 0, 100, 200))
}

func TestTrustScoreDeterminism(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, 86, TrustScore(8, 2, 10, 10))
	}
}

func TestTrustScoreBounds(t *testing.T) {
	cases := [][4]int{
		{0, 0, 0, 0},
		{5, 1, 0, 0},
		{50, 10, 3, 7},
		{500, 100, 400, 400},
	}
	for _, c := range cases {
		score := TrustScore(c[0], c[1], c[2], c[3])
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 1, ClampRating(0))
	assert.Equal(t, 1, ClampRating(-3))
	assert.Equal(t, 5, ClampRating(9))
	assert.Equal(t, 3, ClampRating(3))
}
