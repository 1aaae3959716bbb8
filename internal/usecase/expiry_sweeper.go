package usecase

import (
	"context"
	"time"

	"foodswap/internal/domain/repository"
	"foodswap/pkg/logger"
)

// ExpirySweeper periodically demotes listings past their expiration to
// expired. It only ever touches items that are still available, so it never
// interferes with a reserved or completed swap.
type ExpirySweeper struct {
	foodItemRepo repository.FoodItemRepository
	interval     time.Duration
}

func NewExpirySweeper(foodItemRepo repository.FoodItemRepository, interval time.Duration) *ExpirySweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &ExpirySweeper{
		foodItemRepo: foodItemRepo,
		interval:     interval,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *ExpirySweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)

	go func() {
		for {
			select {
			case <-ticker.C:
				if _, err := s.SweepOnce(ctx); err != nil {
					logger.Error("Expiry sweep failed: %v", err)
				}
			case <-ctx.Done():
				ticker.Stop()
				return
			}
		}
	}()

	logger.Info("Expiry sweeper started (interval %s)", s.interval)
}

// SweepOnce expires everything past its deadline right now.
func (s *ExpirySweeper) SweepOnce(ctx context.Context) (int, error) {
	expired, err := s.foodItemRepo.ExpireBefore(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		logger.Info("Expiry sweep marked %d item(s) expired", expired)
	}

	return expired, nil
}
