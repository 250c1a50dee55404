package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chirp/internal/config"
	"chirp/internal/models"
	"chirp/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFollowTestApp(userRepo *MockUserRepository, followRepo *MockFollowRepository) *fiber.App {
	app := fiber.New()
	s := &Server{
		config:        &config.Config{JWTSecret: "test_secret"},
		followService: service.NewFollowService(userRepo, followRepo),
	}

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Get("/user", s.GetProfile)
	app.Post("/follow/:id", s.FollowUser)
	app.Post("/unfollow/:id", s.UnfollowUser)
	return app
}

func TestGetProfile(t *testing.T) {
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)
	app := newFollowTestApp(userRepo, followRepo)

	userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Name: "alice"}, nil)
	followRepo.On("CountFollowers", mock.Anything, uint(1)).Return(int64(4), nil)
	followRepo.On("CountFollowing", mock.Anything, uint(1)).Return(int64(2), nil)

	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Name      string `json:"name"`
		Followers int64  `json:"followers"`
		Following int64  `json:"following"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "alice", out.Name)
	assert.Equal(t, int64(4), out.Followers)
	assert.Equal(t, int64(2), out.Following)
}

func TestFollowUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)
	app := newFollowTestApp(userRepo, followRepo)

	userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2, Name: "bob"}, nil)
	followRepo.On("Exists", mock.Anything, uint(1), uint(2)).Return(false, nil).Once()
	followRepo.On("Create", mock.Anything, uint(1), uint(2)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/follow/2", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "You started following bob", out["message"])

	// second follow of the same user conflicts
	followRepo.On("Exists", mock.Anything, uint(1), uint(2)).Return(true, nil)

	req = httptest.NewRequest(http.MethodPost, "/follow/2", nil)
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "You already follow bob", out["error"])
}

func TestFollowSelfRejected(t *testing.T) {
	app := newFollowTestApp(new(MockUserRepository), new(MockFollowRepository))

	req := httptest.NewRequest(http.MethodPost, "/follow/1", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFollowMissingUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)
	app := newFollowTestApp(userRepo, followRepo)

	userRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("User does not exists"))

	req := httptest.NewRequest(http.MethodPost, "/follow/99", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "User to follow does not exist", out["error"])
}

func TestUnfollowUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	followRepo := new(MockFollowRepository)
	app := newFollowTestApp(userRepo, followRepo)

	userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2, Name: "bob"}, nil)
	followRepo.On("Exists", mock.Anything, uint(1), uint(2)).Return(true, nil).Once()
	followRepo.On("Delete", mock.Anything, uint(1), uint(2)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/unfollow/2", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "You unfollowed bob", out["message"])

	// unfollowing again conflicts
	followRepo.On("Exists", mock.Anything, uint(1), uint(2)).Return(false, nil)

	req = httptest.NewRequest(http.MethodPost, "/unfollow/2", nil)
	resp, _ = app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "You don't follow bob", out["error"])
}
