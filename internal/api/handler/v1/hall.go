package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenhouse/cinema-api/internal/api/handler/v1/request"
	"github.com/screenhouse/cinema-api/internal/api/handler/v1/response"
	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/service"
)

type HallService interface {
	CreateHall(ctx context.Context, hall domain.Hall) (domain.Hall, error)
	GetHall(ctx context.Context, id uint) (domain.Hall, error)
	ListHalls(ctx context.Context) ([]domain.Hall, error)
	UpdateHall(ctx context.Context, hall domain.Hall) (domain.Hall, error)
}

type HallHandler struct {
	svc HallService
}

func NewHallHandler(svc HallService) *HallHandler {
	return &HallHandler{
		svc: svc,
	}
}

// HandleCreateHall godoc
// @Summary      Create a hall
// @Tags         halls
// @Produce      json
// @Param        request   body      request.CreateHallRequest true "request body"
// @Success      201      {object}   domain.Hall
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /halls [post]
// @Security     BearerToken
func (h *HallHandler) HandleCreateHall(ctx *gin.Context) {
	var req request.CreateHallRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	hall, err := h.svc.CreateHall(ctx.Request.Context(), domain.Hall{
		Name:        req.Name,
		Rows:        req.Rows,
		SeatsPerRow: req.SeatsPerRow,
	})
	if err != nil {
		if errors.Is(err, service.ErrHallNameExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrHallNameExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateHall -> h.svc.CreateHall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, hall)
}

// HandleGetHall godoc
// @Summary      Get a hall by ID
// @Tags         halls
// @Produce      json
// @Param        hallID   path       int  true "hall ID"
// @Success      200      {object}   domain.Hall
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /halls/{hallID} [get]
// @Security     BearerToken
func (h *HallHandler) HandleGetHall(ctx *gin.Context) {
	hallID, err := parseIDParam(ctx, "hallID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	hall, err := h.svc.GetHall(ctx.Request.Context(), hallID)
	if err != nil {
		if errors.Is(err, service.ErrHallNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("hall", "ID", hallID))

			return
		}

		err = fmt.Errorf("v1.HandleGetHall -> h.svc.GetHall -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, hall)
}

// HandleListHalls godoc
// @Summary      List all halls
// @Tags         halls
// @Produce      json
// @Success      200      {array}    domain.Hall
// @Failure      500      {object}   response.Err
// @Router       /halls [get]
// @Security     BearerToken
func (h *HallHandler) HandleListHalls(ctx *gin.Context) {
	halls, err := h.svc.ListHalls(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListHalls -> h.svc.ListHalls -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, halls)
}

// HandleUpdateHall godoc
// @Summary      Update a hall that has no sold tickets
// @Tags         halls
// @Produce      json
// @Param        hallID   path       int  true "hall ID"
// @Param        request  body       request.UpdateHallRequest true "request body"
// @Success      200      {object}   domain.Hall
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /halls/{hallID} [patch]
// @Security     BearerToken
func (h *HallHandler) HandleUpdateHall(ctx *gin.Context) {
	hallID, err := parseIDParam(ctx, "hallID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateHallRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	hall, err := h.svc.UpdateHall(ctx.Request.Context(), domain.Hall{
		ID:          hallID,
		Name:        req.Name,
		Rows:        req.Rows,
		SeatsPerRow: req.SeatsPerRow,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHallNotFound):
			response.RenderErr(ctx, response.ErrNotFound("hall", "ID", hallID))
		case errors.Is(err, domain.ErrHallNotEditable):
			response.RenderErr(ctx, response.ErrBadRequest(domain.ErrHallNotEditable))
		case errors.Is(err, service.ErrHallNameExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrHallNameExists))
		default:
			err = fmt.Errorf("v1.HandleUpdateHall -> h.svc.UpdateHall -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, hall)
}
