package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwapTransitionTable(t *testing.T) {
	allowed := map[string][]string{
		SwapPending:  {SwapAccepted, SwapRejected, SwapCancelled},
		SwapAccepted: {SwapCompleted, SwapCancelled},
	}

	statuses := []string{SwapPending, SwapAccepted, SwapRejected, SwapCompleted, SwapCancelled}

	for _, from := range statuses {
		for _, to := range statuses {
			want := false
			for _, next := range allowed[from] {
				if next == to {
					want = true
				}
			}
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []string{SwapRejected, SwapCompleted, SwapCancelled} {
		for _, to := range []string{SwapPending, SwapAccepted, SwapRejected, SwapCompleted, SwapCancelled} {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestIsValidSwapStatus(t *testing.T) {
	assert.True(t, IsValidSwapStatus(SwapPending))
	assert.True(t, IsValidSwapStatus(SwapCancelled))
	assert.False(t, IsValidSwapStatus("shipped"))
	assert.False(t, IsValidSwapStatus(""))
}

func TestSwapHelpers(t *testing.T) {
	swap := &Swap{RequesterID: "bob", ProviderID: "alice", FoodItemID: "item-1"}

	assert.True(t, swap.IsParticipant("bob"))
	assert.True(t, swap.IsParticipant("alice"))
	assert.False(t, swap.IsParticipant("mallory"))

	assert.False(t, swap.IsItemSwap())
	assert.Equal(t, []string{"item-1"}, swap.ItemIDs())

	swap.IsSwap = true
	assert.False(t, swap.IsItemSwap(), "isSwap without an offered item is not a true exchange")

	swap.OfferedItemID = "item-2"
	assert.True(t, swap.IsItemSwap())
	assert.Equal(t, []string{"item-1", "item-2"}, swap.ItemIDs())
}
