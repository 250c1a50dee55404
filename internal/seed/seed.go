// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder builds domain entities and persists them to the database.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run populates the database with test data.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	posts, err := s.createPosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := s.createFollows(users); err != nil {
		return fmt.Errorf("failed to create follows: %w", err)
	}

	if err := s.createEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create likes and comments: %w", err)
	}

	return nil
}

// ClearAll deletes all seeded rows. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"likes", "comments", "follows", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) createUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Name:     gofakeit.Name(),
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: string(hashed),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) createPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.r.Intn(len(users))]
		post := &models.Post{
			Title:       gofakeit.Sentence(5),
			Description: gofakeit.Paragraph(1, 3, 5, "\n"),
			UserID:      author.ID,
			// realistic created_at spread over the last 90 days
			CreatedAt: time.Now().Add(-time.Duration(s.r.Intn(90*24)) * time.Hour),
		}
		posts = append(posts, post)
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *Seeder) createFollows(users []*models.User) error {
	for _, u := range users {
		// each user follows a handful of others
		for i := 0; i < 5 && len(users) > 1; i++ {
			target := users[s.r.Intn(len(users))]
			if target.ID == u.ID {
				continue
			}
			follow := &models.Follow{FollowerID: u.ID, FolloweeID: target.ID}
			if err := s.db.Where("follower_id = ? AND followee_id = ?", u.ID, target.ID).
				FirstOrCreate(follow).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) createEngagement(users []*models.User, posts []*models.Post) error {
	if len(users) == 0 {
		return nil
	}

	likeCount := 0
	commentCount := 0
	for _, post := range posts {
		for i := 0; i < s.r.Intn(8); i++ {
			liker := users[s.r.Intn(len(users))]
			like := &models.Like{UserID: liker.ID, PostID: post.ID}
			if err := s.db.Where("user_id = ? AND post_id = ?", liker.ID, post.ID).
				FirstOrCreate(like).Error; err != nil {
				return err
			}
			likeCount++
		}
		for i := 0; i < s.r.Intn(4); i++ {
			commenter := users[s.r.Intn(len(users))]
			comment := &models.Comment{
				Body:   gofakeit.Sentence(12),
				UserID: commenter.ID,
				PostID: post.ID,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return err
			}
			commentCount++
		}
	}
	log.Printf("%d likes and %d comments created", likeCount, commentCount)
	return nil
}
