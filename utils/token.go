package utils

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/NakibIheb20/carthatamaz-platform/domain"
)

const tokenDuration = 24 * time.Hour

// CurrentUserKey is where DeserializeUser stores the authenticated user
// in the Gin context.
const CurrentUserKey = "currentUser"

func CreateToken(email string, secretKey string) (string, error) {
	now := time.Now().UTC()

	claims := jwt.MapClaims{
		"sub": email,
		"exp": now.Add(tokenDuration).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("create: sign token: %w", err)
	}

	return token, nil
}

func ValidateToken(token string, secretKey string) (string, error) {
	parsedToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected method: %s", t.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return "", fmt.Errorf("validate: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return "", fmt.Errorf("validate: invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return "", fmt.Errorf("validate: invalid subject claim")
	}
	return sub, nil
}

type UserLookup func(ctx context.Context, email string) (*domain.User, error)

// DeserializeUser resolves the bearer token to a user and stores it in the
// request context for handlers downstream.
func DeserializeUser(findUserByEmail UserLookup, secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var accessToken string
		cookie, err := ctx.Cookie("access_token")

		authorizationHeader := ctx.Request.Header.Get("Authorization")
		fields := strings.Fields(authorizationHeader)

		if len(fields) != 0 && fields[0] == "Bearer" {
			accessToken = fields[1]
		} else if err == nil {
			accessToken = cookie
		}

		if accessToken == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "You are not logged in"})
			return
		}

		email, err := ValidateToken(accessToken, secretKey)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": err.Error()})
			return
		}

		user, err := findUserByEmail(ctx.Request.Context(), email)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "fail", "message": "The user belonging to this token no longer exists"})
			return
		}

		ctx.Set(CurrentUserKey, user)
		ctx.Next()
	}
}

// CurrentUser pulls the authenticated user out of the Gin context.
func CurrentUser(ctx *gin.Context) (*domain.User, bool) {
	value, exists := ctx.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}
