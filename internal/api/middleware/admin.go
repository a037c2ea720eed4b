package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenhouse/cinema-api/internal/domain"
)

type UserFinder interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

// RequireAdmin gates management endpoints. It must run after VerifyJWT.
func RequireAdmin(users UserFinder) gin.HandlerFunc {
	return requireRole(users, func(user domain.User) bool {
		return user.IsAdmin()
	})
}

// RequireCustomer gates purchase and ticket endpoints; administrators
// manage the schedule but do not buy tickets.
func RequireCustomer(users UserFinder) gin.HandlerFunc {
	return requireRole(users, func(user domain.User) bool {
		return !user.IsAdmin()
	})
}

func requireRole(users UserFinder, allowed func(domain.User) bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		userID, ok := ctx.Value(ContextKeyUserID).(uint)
		if !ok {
			ctx.AbortWithStatus(http.StatusUnauthorized)

			return
		}

		user, err := users.GetUser(ctx.Request.Context(), userID)
		if err != nil {
			ctx.AbortWithStatus(http.StatusUnauthorized)

			return
		}

		if !allowed(user) {
			ctx.AbortWithStatus(http.StatusForbidden)

			return
		}

		ctx.Next()
	}
}
