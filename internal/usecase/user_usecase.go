package usecase

import (
	"context"

	"foodswap/internal/domain/entity"
	"foodswap/internal/domain/repository"
	"foodswap/pkg/errors"
	"foodswap/pkg/logger"
)

type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

// Me returns the caller's profile, lazily creating an empty one the first
// time an authenticated user shows up. Identity itself comes from the
// external auth layer; reputation fields start at zero.
func (uc *UserUseCase) Me(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	user = &entity.User{ID: userID}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("Created profile for user %s", userID)

	return user, nil
}

// PublicProfile is the reputation view other users see.
type PublicProfile struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Bio           string `json:"bio,omitempty"`
	AvatarURL     string `json:"avatar_url,omitempty"`
	TrustScore    int    `json:"trust_score"`
	RatingCount   int    `json:"rating_count"`
	ItemsShared   int    `json:"items_shared"`
	ItemsReceived int    `json:"items_received"`
}

func (uc *UserUseCase) GetPublicProfile(ctx context.Context, userID string) (*PublicProfile, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PublicProfile{
		ID:            user.ID,
		Username:      user.Username,
		Bio:           user.Bio,
		AvatarURL:     user.AvatarURL,
		TrustScore:    user.TrustScore,
		RatingCount:   user.RatingCount,
		ItemsShared:   user.ItemsShared,
		ItemsReceived: user.ItemsReceived,
	}, nil
}
