// middlewares/auth_middleware.go
package middlewares

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired validates the bearer token and stores the caller's identity on
// the gin context under "userID" and "username".
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, username, ok := parseBearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("userID", userID)
		c.Set("username", username)
		c.Next()
	}
}

// AuthOrLoginRedirect accepts authenticated callers like AuthRequired, but
// sends anonymous ones to the login page with a next parameter instead of a
// plain 401. Used on write endpoints reachable from anonymous views.
func AuthOrLoginRedirect() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, username, ok := parseBearer(c); ok {
			c.Set("userID", userID)
			c.Set("username", username)
			c.Next()
			return
		}
		next := url.QueryEscape(c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/accounts/login?next="+next)
		c.Abort()
	}
}

// OptionalAuth sets the identity when a valid token is present and never
// blocks the request.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, username, ok := parseBearer(c); ok {
			c.Set("userID", userID)
			c.Set("username", username)
		}
		c.Next()
	}
}

func parseBearer(c *gin.Context) (uint, string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return 0, "", false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		return 0, "", false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", false
	}

	username, _ := claims["username"].(string)
	switch id := claims["userId"].(type) {
	case float64: // JSON-decoded numbers come back as float64
		return uint(id), username, true
	case int64:
		return uint(id), username, true
	}
	return 0, "", false
}
