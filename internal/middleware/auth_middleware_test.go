package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"flowboard/internal/auth"
	"flowboard/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/protected")
	protected.Use(middleware.JWTAuthMiddleware(auth.NewIssuer(testSecret, time.Hour)))

	protected.GET("/resource", func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "User ID not found in context"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Access granted",
			"userId":   userID,
			"username": c.GetString(middleware.UsernameKey),
		})
	})

	return r
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, "/protected/resource", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestJWTAuthMiddleware_ValidToken(t *testing.T) {
	// Arrange
	router := setupRouter()
	userID := uuid.New()
	token, err := auth.NewIssuer(testSecret, time.Hour).GenerateToken(userID, "alice")
	assert.NoError(t, err)

	// Act
	resp := get(router, "Bearer "+token)

	// Assert
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Access granted")
	assert.Contains(t, resp.Body.String(), userID.String())
	assert.Contains(t, resp.Body.String(), "alice")
}

func TestJWTAuthMiddleware_NoAuthHeader(t *testing.T) {
	resp := get(setupRouter(), "")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Authorization header is required")
}

func TestJWTAuthMiddleware_InvalidAuthFormat(t *testing.T) {
	router := setupRouter()

	for _, header := range []string{"InvalidFormat token123", "Bearer", "Bearer "} {
		resp := get(router, header)

		assert.Equal(t, http.StatusUnauthorized, resp.Code, header)
		assert.Contains(t, resp.Body.String(), "Authorization header format must be Bearer {token}")
	}
}

func TestJWTAuthMiddleware_InvalidToken(t *testing.T) {
	resp := get(setupRouter(), "Bearer invalid-token")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}

func TestJWTAuthMiddleware_ExpiredToken(t *testing.T) {
	past := func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := auth.NewIssuer(testSecret, time.Hour, auth.WithClock(past)).GenerateToken(uuid.New(), "alice")
	assert.NoError(t, err)

	resp := get(setupRouter(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}

func TestJWTAuthMiddleware_TokenWithInvalidUserID(t *testing.T) {
	// Arrange
	claims := jwt.MapClaims{
		"sub": "not-a-valid-uuid",
		"exp": jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tokenString, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))

	// Act
	resp := get(setupRouter(), "Bearer "+tokenString)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "Invalid or expired token")
}
