package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/layebamba/eventify/internal/helpers"
	"github.com/layebamba/eventify/internal/models"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("db", db)
		c.Next()
	}
}

// JWTAuthMiddleware verifies the bearer token and attaches the caller's
// identity to the request context. Missing token yields 401, a token that
// fails verification yields 403.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Access token required.")
			c.Abort()
			return
		}

		userID, role, err := parseToken(tokenString)
		if err != nil {
			helpers.RespondWithError(c, http.StatusForbidden, "Invalid or expired token.")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// OptionalJWTMiddleware attaches the identity when a valid bearer token is
// present and lets the request through anonymously otherwise.
func OptionalJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := extractBearerToken(c)
		if err == nil {
			if userID, role, parseErr := parseToken(tokenString); parseErr == nil {
				c.Set("user_id", userID)
				c.Set("role", role)
			}
		}
		c.Next()
	}
}

func RequireOrganizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != models.RoleOrganizer {
			helpers.RespondWithError(c, http.StatusForbidden, "Organizer access required.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", fmt.Errorf("authorization header missing")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return "", fmt.Errorf("invalid authorization header format")
	}
	return tokenString, nil
}

func parseToken(tokenString string) (uuid.UUID, string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return uuid.Nil, "", fmt.Errorf("JWT_SECRET not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("invalid token claims")
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("user_id claim missing")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("invalid user_id claim")
	}

	role, ok := claims["role"].(string)
	if !ok {
		return uuid.Nil, "", fmt.Errorf("role claim missing")
	}

	return userID, role, nil
}
