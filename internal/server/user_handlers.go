// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// GetProfile handles GET /api/user
func (s *Server) GetProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, followers, following, err := s.followService.Profile(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"name":      user.Name,
		"followers": followers,
		"following": following,
	})
}

// FollowUser handles POST /api/follow/:id
func (s *Server) FollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	target, err := s.followService.Follow(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("You started following %s", target.Name),
	})
}

// UnfollowUser handles POST /api/unfollow/:id
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	target, err := s.followService.Unfollow(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("You unfollowed %s", target.Name),
	})
}
