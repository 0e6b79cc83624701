package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/coursely/coursely-backend/internal/model"
	"github.com/coursely/coursely-backend/internal/response"
	"github.com/coursely/coursely-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName is the http-only cookie carrying the session token.
	SessionCookieName = "adminSessionId"

	// ContextKeyAdmin is the Gin context key for the resolved admin.
	ContextKeyAdmin = "admin"
)

// RequireAdmin validates the session token from the adminSessionId cookie
// (falling back to the Authorization header) and resolves the acting admin
// record. Unauthenticated requests are rejected before any handler runs.
func RequireAdmin(authService *service.AuthService, accounts *service.AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := authService.ValidateToken(tokenStr)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenExpired)
				return
			}
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		// The token carries an identity snapshot, but the record is resolved
		// fresh so a deleted admin cannot keep acting on a live token.
		admin, err := accounts.GetByID(c.Request.Context(), claims.AdminID)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyAdmin, admin)
		c.Next()
	}
}

// CurrentAdmin retrieves the resolved admin from the Gin context.
func CurrentAdmin(c *gin.Context) *model.Admin {
	val, exists := c.Get(ContextKeyAdmin)
	if !exists {
		return nil
	}
	admin, ok := val.(*model.Admin)
	if !ok {
		return nil
	}
	return admin
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	// Fallback for API clients that send the token as a bearer header.
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return ""
}
