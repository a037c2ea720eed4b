package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenhouse/cinema-api/internal/api/handler/v1/response"
	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	Profile(ctx context.Context, id uint) (domain.User, float64, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetUser godoc
// @Summary      Get a user's profile with wallet balance and total spent
// @Tags         users
// @Produce      json
// @Param        userID   path       int  true "user ID"
// @Success      200 {object}   response.ProfileResponse
// @Failure      401 {object}   response.Err
// @Failure      403 {object}   response.Err
// @Failure      404 {object}   response.Err
// @Failure      500 {object}   response.Err
// @Router       /users/{userID} [get]
// @Security     BearerToken
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	requesterID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	userID, err := parseIDParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	// Only the user themselves or an admin may read a profile.
	if requesterID != userID {
		requester, err := h.svc.GetUser(ctx.Request.Context(), requesterID)
		if err != nil || !requester.IsAdmin() {
			response.RenderErr(ctx, response.ErrPermissionDenied())

			return
		}
	}

	user, spent, err := h.svc.Profile(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))

			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.Profile -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.ProfileResponse{
		User:       user,
		TotalSpent: spent,
	})
}
