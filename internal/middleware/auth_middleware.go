package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/apperror"
	"github.com/sanketpawarr68-jpg/gavran-magic/internal/pkg/response"
)

// GuestUserID marks an unauthenticated shopper. Carts and orders created
// without a session are keyed under this sentinel.
const GuestUserID = "guest"

var (
	errUnauthorized = apperror.New(
		apperror.CodeUnauthorized,
		"Unauthorized access",
		http.StatusUnauthorized,
	)

	errInvalidToken = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid authentication token",
		http.StatusBadRequest,
	)

	errTokenExpired = apperror.New(
		apperror.CodeUnauthorized,
		"Authentication token expired",
		http.StatusUnauthorized,
	)
)

func parseToken(c *gin.Context) (string, error) {
	tokenString, err := c.Cookie("access_token")
	if err != nil {
		return "", errUnauthorized
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		if err != nil && strings.Contains(err.Error(), "expired") {
			return "", errTokenExpired
		}
		return "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errInvalidToken
	}

	return userID, nil
}

// AuthMiddleware rejects requests without a valid session.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseToken(c)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware lets guests through. Missing or invalid tokens
// fall back to the guest sentinel instead of failing the request.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := parseToken(c)
		if err != nil {
			c.Set("user_id", GuestUserID)
			c.Next()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// UserID reads the id set by the auth middlewares, guest when absent.
func UserID(c *gin.Context) string {
	if uid := c.GetString("user_id"); uid != "" {
		return uid
	}
	return GuestUserID
}
