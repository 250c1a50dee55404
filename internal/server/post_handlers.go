// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postDetail is the public representation of a post with its likes and comments.
type postDetail struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	PostedBy    string          `json:"posted_by"`
	Likes       int             `json:"likes"`
	Comments    []commentDetail `json:"comments"`
	CreatedAt   string          `json:"created_at"`
}

type commentDetail struct {
	ID          uint   `json:"id"`
	Comment     string `json:"comment"`
	CommentedBy string `json:"commented_by"`
	CreatedAt   string `json:"created_at"`
}

func toPostDetail(post *models.Post) postDetail {
	comments := make([]commentDetail, 0, len(post.Comments))
	for _, cm := range post.Comments {
		comments = append(comments, commentDetail{
			ID:          cm.ID,
			Comment:     cm.Body,
			CommentedBy: cm.User.Name,
			CreatedAt:   cm.CreatedAt.UTC().Format(fullTimeFormat),
		})
	}
	return postDetail{
		ID:          post.ID,
		Title:       post.Title,
		Description: post.Description,
		PostedBy:    post.User.Name,
		Likes:       post.LikesCount,
		Comments:    comments,
		CreatedAt:   post.CreatedAt.UTC().Format(fullTimeFormat),
	}
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":          post.ID,
		"title":       post.Title,
		"description": post.Description,
		"created_at":  post.CreatedAt.UTC().Format(timeOfDayFormat),
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(toPostDetail(post))
}

// GetMyPosts handles GET /api/all_posts
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	p := parsePagination(c)

	posts, err := s.postService.GetUserPosts(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]postDetail, 0, len(posts))
	for _, post := range posts {
		out = append(out, toPostDetail(post))
	}

	return c.JSON(fiber.Map{
		"posts": out,
	})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.DeletePost(c.Context(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: postID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

// LikePost handles POST /api/like/:id
func (s *Server) LikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.postService.LikePost(c.Context(), currentUserID(c), postID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post liked successfully",
	})
}

// UnlikePost handles POST /api/unlike/:id
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if _, err := s.postService.UnlikePost(c.Context(), currentUserID(c), postID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post unliked successfully",
	})
}
