package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
}

type CreatePostInput struct {
	UserID      uint
	Title       string
	Description string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Description == "" {
		return nil, models.NewValidationError("Please submit all the required fields.")
	}

	const maxTitleLen = 300
	const maxDescriptionLen = 50000

	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Description) > maxDescriptionLen {
		return nil, models.NewValidationError("Description too long (max 50000 characters)")
	}

	post := &models.Post{
		Title:       in.Title,
		Description: in.Description,
		UserID:      in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// GetUserPosts returns every post by the author, newest first. A positive
// limit restricts the result set; zero returns them all.
func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	if limit < 0 {
		limit = 0
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.postRepo.GetByUserID(ctx, userID, limit, offset)
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	// Only the author may delete; authorship never changes after creation.
	if post.UserID != in.UserID {
		return models.NewForbiddenError("You are not authorized to delete this post")
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

func (s *PostService) LikePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if isLiked {
		return nil, models.NewConflictError("Post already liked")
	}

	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}

func (s *PostService) UnlikePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if !isLiked {
		return nil, models.NewConflictError("Post not liked")
	}

	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, postID)
}
