package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"chirp/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestServer_AuthRequired(t *testing.T) {
	secret := "test-secret-key-12345678901234567890123456789012"
	s := &Server{
		config: &config.Config{JWTSecret: secret},
	}
	app := fiber.New()

	app.All("/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		userID := c.Locals("userID")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"userID": userID})
	})

	generateToken := func(userID uint, issuer, audience string, exp time.Duration) string {
		claims := jwt.MapClaims{
			"sub": strconv.FormatUint(uint64(userID), 10),
			"iss": issuer,
			"aud": audience,
			"exp": time.Now().Add(exp).Unix(),
			"jti": "test-jti-valid-length",
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		str, _ := token.SignedString([]byte(secret))
		return str
	}

	validToken := generateToken(123, "chirp-api", "chirp-client", time.Hour)

	tests := []struct {
		name           string
		authHeader     string
		xAuthToken     string
		tokenParam     string
		bodyToken      string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "Valid Bearer Token",
			authHeader:     "Bearer " + validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Valid Token via X-Auth-Token Header",
			xAuthToken:     validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Valid Token via Query Param",
			tokenParam:     validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Valid Token via JSON Body",
			bodyToken:      validToken,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + generateToken(123, "chirp-api", "chirp-client", -time.Hour),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid Token",
		},
		{
			name:           "Invalid Issuer",
			authHeader:     "Bearer " + generateToken(123, "wrong-issuer", "chirp-client", time.Hour),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid Token",
		},
		{
			name:           "Invalid Audience",
			authHeader:     "Bearer " + generateToken(123, "chirp-api", "wrong-audience", time.Hour),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid Token",
		},
		{
			name:           "Missing Token Everywhere",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "A token is required for authentication",
		},
		{
			name:           "Malformed Bearer Format",
			authHeader:     "BearerTokenOnly",
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "A token is required for authentication",
		},
		{
			name: "Invalid Subject Type",
			authHeader: "Bearer " + func() string {
				claims := jwt.MapClaims{"sub": 123, "iss": "chirp-api", "aud": "chirp-client", "exp": time.Now().Add(time.Hour).Unix()}
				token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
				str, _ := token.SignedString([]byte(secret))
				return str
			}(),
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Invalid Token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/protected"
			if tt.tokenParam != "" {
				path += "?token=" + tt.tokenParam
			}

			var req *http.Request
			if tt.bodyToken != "" {
				body, _ := json.Marshal(map[string]string{"token": tt.bodyToken})
				req = httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
			} else {
				req = httptest.NewRequest(http.MethodGet, path, nil)
			}
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.xAuthToken != "" {
				req.Header.Set("X-Auth-Token", tt.xAuthToken)
			}

			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var body map[string]interface{}
			_ = json.NewDecoder(resp.Body).Decode(&body)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, float64(123), body["userID"])
			} else if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, body["error"])
			}
			_ = resp.Body.Close()
		})
	}
}
