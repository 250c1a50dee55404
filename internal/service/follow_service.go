package service

import (
	"context"
	"fmt"

	"chirp/internal/models"
	"chirp/internal/repository"
)

type FollowService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewFollowService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *FollowService {
	return &FollowService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Follow makes followerID follow targetID and returns the followed user.
func (s *FollowService) Follow(ctx context.Context, followerID, targetID uint) (*models.User, error) {
	if followerID == targetID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewNotFoundError("User to follow does not exist")
		}
		return nil, err
	}

	exists, err := s.followRepo.Exists(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewConflictError(fmt.Sprintf("You already follow %s", target.Name))
	}

	if err := s.followRepo.Create(ctx, followerID, targetID); err != nil {
		return nil, err
	}
	return target, nil
}

// Unfollow removes the follow edge from followerID to targetID and returns
// the unfollowed user.
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) (*models.User, error) {
	if followerID == targetID {
		return nil, models.NewValidationError("You cannot unfollow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NewNotFoundError("User to unfollow does not exist")
		}
		return nil, err
	}

	exists, err := s.followRepo.Exists(ctx, followerID, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewConflictError(fmt.Sprintf("You don't follow %s", target.Name))
	}

	if err := s.followRepo.Delete(ctx, followerID, targetID); err != nil {
		return nil, err
	}
	return target, nil
}

// Profile returns the user together with their follower and following counts.
func (s *FollowService) Profile(ctx context.Context, userID uint) (*models.User, int64, int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}

	return user, followers, following, nil
}
