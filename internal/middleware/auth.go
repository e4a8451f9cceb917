package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/doctor-api/pkg/auth"
	apperrors "github.com/jwalitptl/doctor-api/pkg/errors"
	"github.com/jwalitptl/doctor-api/pkg/httputil"
)

const (
	ContextUserID    = "userID"
	ContextUserEmail = "userEmail"
	ContextUserRole  = "userRole"
)

type AuthMiddleware struct {
	jwtSvc auth.JWTService
}

func NewAuthMiddleware(jwtSvc auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtSvc: jwtSvc}
}

// Authenticate verifies the bearer token and stores the caller in the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httputil.RespondWithError(c, apperrors.Unauthorized("missing authorization header", nil))
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			httputil.RespondWithError(c, apperrors.Unauthorized("invalid authorization format", nil))
			return
		}

		claims, err := m.jwtSvc.ValidateToken(token)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Unauthorized("invalid token", err))
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRole, claims.Role)
		c.Next()
	}
}
