package repository

import (
	"context"
	"testing"
	"time"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "carol", Email: "carol@e.com"}
	db.Create(user)
	post := &models.Post{Title: "t", Description: "d", UserID: user.ID}
	db.Create(post)

	t.Run("Create and GetByID", func(t *testing.T) {
		comment := &models.Comment{Body: "hello", UserID: user.ID, PostID: post.ID}
		require.NoError(t, repo.Create(ctx, comment))
		require.NotZero(t, comment.ID)

		got, err := repo.GetByID(ctx, comment.ID)
		require.NoError(t, err)
		assert.Equal(t, "hello", got.Body)
		assert.Equal(t, "carol", got.User.Name)
	})

	t.Run("GetByID Missing", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		require.Error(t, err)
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("ListByPost Newest First", func(t *testing.T) {
		older := &models.Comment{
			Body:      "first",
			UserID:    user.ID,
			PostID:    post.ID,
			CreatedAt: time.Now().Add(-time.Hour),
		}
		require.NoError(t, db.Create(older).Error)

		comments, err := repo.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "hello", comments[0].Body)
		assert.Equal(t, "first", comments[1].Body)
	})
}
