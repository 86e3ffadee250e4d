package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/fitlife/gymsched/internal/authz"
	userRepo "github.com/fitlife/gymsched/internal/modules/user/repository"
	"github.com/fitlife/gymsched/pkg/apperror"
	"github.com/fitlife/gymsched/pkg/response"
)

type AuthMiddleware struct {
	userRepo userRepo.UserRepository
	secret   string
}

func NewAuthMiddleware(userRepo userRepo.UserRepository, secret string) *AuthMiddleware {
	return &AuthMiddleware{
		userRepo: userRepo,
		secret:   secret,
	}
}

// RequireAuth rejects requests without a valid bearer token. The user row is
// re-read per request so the caller's role is never stale.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := m.resolveCaller(c)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !caller.IsAuthenticated() {
			response.Error(c, apperror.AuthRequired())
			c.Abort()
			return
		}

		c.Set(response.CallerKey, caller)
		c.Next()
	}
}

// OptionalAuth attaches a caller context without requiring one. Sign-up and
// login use it: they must know whether a session already exists, but an
// absent or stale token just means anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, err := m.resolveCaller(c)
		if err != nil {
			caller = authz.Anonymous()
		}

		c.Set(response.CallerKey, caller)
		c.Next()
	}
}

func (m *AuthMiddleware) resolveCaller(c *gin.Context) (authz.Caller, error) {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}

	if tokenString == "" {
		return authz.Anonymous(), nil
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})
	if err != nil || !token.Valid {
		return authz.Anonymous(), apperror.New(http.StatusUnauthorized, apperror.KindAuthRequired, "invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return authz.Anonymous(), apperror.New(http.StatusUnauthorized, apperror.KindAuthRequired, "invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return authz.Anonymous(), apperror.New(http.StatusUnauthorized, apperror.KindAuthRequired, "invalid token subject")
	}

	user, err := m.userRepo.UserByID(c.Request.Context(), userID)
	if err != nil {
		return authz.Anonymous(), err
	}
	if user == nil {
		return authz.Anonymous(), apperror.New(http.StatusUnauthorized, apperror.KindAuthRequired, "user not found")
	}

	role, err := authz.RoleOf(user)
	if err != nil {
		return authz.Anonymous(), apperror.New(http.StatusUnauthorized, apperror.KindAuthRequired, "user role does not resolve")
	}

	return authz.Authenticated(user.ID, role), nil
}
