package v1

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/screenhouse/cinema-api/internal/api/middleware"
)

var errNotAuthenticated = errors.New("not authenticated")

func getUserIDFromContext(ctx *gin.Context) (uint, error) {
	userID, ok := ctx.Value(middleware.ContextKeyUserID).(uint)
	if !ok {
		return 0, errNotAuthenticated
	}

	return userID, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}

	return uint(id), nil
}
