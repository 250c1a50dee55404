package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chirp/internal/config"
	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSignup(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)

	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}

	app.Post("/signup", s.Signup)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"name":     "Test User",
				"email":    "test@example.com",
				"password": "SecurePass12!",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil)
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate User",
			body: map[string]string{
				"name":     "Test User",
				"email":    "exists@example.com",
				"password": "SecurePass12!",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "exists@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"name":     "Test User",
				"email":    "weak@example.com",
				"password": "short",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"email": "test@example.com",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestLogin(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)

	s := &Server{
		config:   &config.Config{JWTSecret: "test_secret"},
		userRepo: mockRepo,
	}

	app.Post("/authenticate", s.Login)

	hashed, err := bcrypt.GenerateFromPassword([]byte("SecurePass12!"), bcrypt.DefaultCost)
	require.NoError(t, err)
	known := &models.User{ID: 1, Name: "Test User", Email: "test@example.com", Password: string(hashed)}

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
		wantToken      bool
	}{
		{
			name: "Unknown User",
			body: map[string]string{
				"email":    "nobody@example.com",
				"password": "SecurePass12!",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Wrong Password",
			body: map[string]string{
				"email":    "test@example.com",
				"password": "WrongPass12!",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(known, nil)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "Success",
			body: map[string]string{
				"email":    "test@example.com",
				"password": "SecurePass12!",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(known, nil)
			},
			expectedStatus: http.StatusOK,
			wantToken:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/authenticate", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.wantToken {
				var out map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
				assert.NotEmpty(t, out["token"])
			}
		})
	}
}
