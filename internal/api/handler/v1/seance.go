package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/screenhouse/cinema-api/internal/api/handler/v1/request"
	"github.com/screenhouse/cinema-api/internal/api/handler/v1/response"
	"github.com/screenhouse/cinema-api/internal/domain"
	"github.com/screenhouse/cinema-api/internal/service"
)

type SeanceService interface {
	CreateSeance(ctx context.Context, input service.CreateSeanceInput) (domain.Seance, error)
	CreateSeanceRange(ctx context.Context, input service.CreateSeanceRangeInput) ([]domain.Seance, error)
	UpdateSeance(ctx context.Context, id uint, patch service.UpdateSeancePatch) (domain.Seance, error)
	ListSeances(ctx context.Context, input service.ListSeancesInput) ([]domain.Seance, error)
	ListSeancesOn(ctx context.Context, dayOffset int) ([]domain.Seance, error)
	GetSeanceWithSeats(ctx context.Context, id uint) (domain.Seance, []domain.SeatRef, error)
}

type SeanceHandler struct {
	svc SeanceService
}

func NewSeanceHandler(svc SeanceService) *SeanceHandler {
	return &SeanceHandler{
		svc: svc,
	}
}

// HandleCreateSeance godoc
// @Summary      Schedule one seance, or a daily series when a date range is given
// @Tags         seances
// @Produce      json
// @Param        request   body      request.CreateSeanceRequest true "request body"
// @Success      201      {array}    domain.Seance
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /seances [post]
// @Security     BearerToken
func (h *SeanceHandler) HandleCreateSeance(ctx *gin.Context) {
	var req request.CreateSeanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var created []domain.Seance
	var err error

	if req.IsSeries() {
		created, err = h.svc.CreateSeanceRange(ctx.Request.Context(), service.CreateSeanceRangeInput{
			HallID:    req.HallID,
			FilmID:    req.FilmID,
			DateFrom:  req.ParsedDateFrom(),
			DateTo:    req.ParsedDateTo(),
			TimeOfDay: req.ParsedTimeOfDay(),
			Price:     req.Price,
		})
	} else {
		var seance domain.Seance
		seance, err = h.svc.CreateSeance(ctx.Request.Context(), service.CreateSeanceInput{
			HallID: req.HallID,
			FilmID: req.FilmID,
			Start:  req.ParsedStartTime(),
			Price:  req.Price,
		})
		created = []domain.Seance{seance}
	}

	if err != nil {
		h.renderScheduleErr(ctx, "HandleCreateSeance", req.HallID, req.FilmID, err)

		return
	}

	ctx.JSON(http.StatusCreated, created)
}

// HandleUpdateSeance godoc
// @Summary      Reschedule or reprice a seance with no sold tickets
// @Tags         seances
// @Produce      json
// @Param        seanceID path       int  true "seance ID"
// @Param        request  body       request.UpdateSeanceRequest true "request body"
// @Success      200      {object}   domain.Seance
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /seances/{seanceID} [patch]
// @Security     BearerToken
func (h *SeanceHandler) HandleUpdateSeance(ctx *gin.Context) {
	seanceID, err := parseIDParam(ctx, "seanceID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateSeanceRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	updated, err := h.svc.UpdateSeance(ctx.Request.Context(), seanceID, service.UpdateSeancePatch{
		HallID: req.HallID,
		FilmID: req.FilmID,
		Start:  req.ParsedStartTime(),
		Price:  req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSeanceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("seance", "ID", seanceID))
		case errors.Is(err, domain.ErrSeanceStarted),
			errors.Is(err, domain.ErrSeanceNotEditable),
			errors.Is(err, domain.ErrSeanceHasSales):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			h.renderScheduleErr(ctx, "HandleUpdateSeance", 0, 0, err)
		}

		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleListSeances godoc
// @Summary      List seances, defaulting to those starting today or later
// @Tags         seances
// @Produce      json
// @Param        hall       query    int    false "filter by hall"
// @Param        start_time query    string false "window start (2006-01-02T15:04:05); alone it means today from this time on"
// @Param        end_time   query    string false "window end, exclusive (2006-01-02T15:04:05)"
// @Success      200      {array}    domain.Seance
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /seances [get]
// @Security     BearerToken
func (h *SeanceHandler) HandleListSeances(ctx *gin.Context) {
	input, err := parseListSeancesInput(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	seances, err := h.svc.ListSeances(ctx.Request.Context(), input)
	if err != nil {
		err = fmt.Errorf("v1.HandleListSeances -> h.svc.ListSeances -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, seances)
}

// HandleListSeancesToday godoc
// @Summary      List today's seances
// @Tags         seances
// @Produce      json
// @Success      200      {array}    domain.Seance
// @Failure      500      {object}   response.Err
// @Router       /seances/today [get]
// @Security     BearerToken
func (h *SeanceHandler) HandleListSeancesToday(ctx *gin.Context) {
	h.listSeancesOn(ctx, 0)
}

// HandleListSeancesTomorrow godoc
// @Summary      List tomorrow's seances
// @Tags         seances
// @Produce      json
// @Success      200      {array}    domain.Seance
// @Failure      500      {object}   response.Err
// @Router       /seances/tomorrow [get]
// @Security     BearerToken
func (h *SeanceHandler) HandleListSeancesTomorrow(ctx *gin.Context) {
	h.listSeancesOn(ctx, 1)
}

func (h *SeanceHandler) listSeancesOn(ctx *gin.Context, dayOffset int) {
	seances, err := h.svc.ListSeancesOn(ctx.Request.Context(), dayOffset)
	if err != nil {
		err = fmt.Errorf("v1.listSeancesOn -> h.svc.ListSeancesOn -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, seances)
}

// HandleGetSeance godoc
// @Summary      Get a seance with its occupied seats
// @Tags         seances
// @Produce      json
// @Param        seanceID path       int  true "seance ID"
// @Success      200      {object}   response.SeanceDetail
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /seances/{seanceID} [get]
// @Security     BearerToken
func (h *SeanceHandler) HandleGetSeance(ctx *gin.Context) {
	seanceID, err := parseIDParam(ctx, "seanceID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	seance, occupied, err := h.svc.GetSeanceWithSeats(ctx.Request.Context(), seanceID)
	if err != nil {
		if errors.Is(err, service.ErrSeanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("seance", "ID", seanceID))

			return
		}

		err = fmt.Errorf("v1.HandleGetSeance -> h.svc.GetSeanceWithSeats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.SeanceDetail{
		Seance:        seance,
		OccupiedSeats: occupied,
	})
}

func (h *SeanceHandler) renderScheduleErr(ctx *gin.Context, op string, hallID, filmID uint, err error) {
	switch {
	case errors.Is(err, service.ErrHallNotFound):
		response.RenderErr(ctx, response.ErrNotFound("hall", "ID", hallID))
	case errors.Is(err, service.ErrFilmNotFound):
		response.RenderErr(ctx, response.ErrNotFound("film", "ID", filmID))
	case errors.Is(err, domain.ErrStartInPast), errors.Is(err, domain.ErrBeforeReleaseDate):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, domain.ErrSeanceOverlap):
		response.RenderErr(ctx, response.ErrConflict(domain.ErrSeanceOverlap))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

const listTimeLayout = "2006-01-02T15:04:05"

func parseListSeancesInput(ctx *gin.Context) (service.ListSeancesInput, error) {
	var input service.ListSeancesInput

	if raw := ctx.Query("hall"); raw != "" {
		var hallID uint64
		if _, err := fmt.Sscanf(raw, "%d", &hallID); err != nil {
			return input, fmt.Errorf("invalid hall (%v)", raw)
		}
		id := uint(hallID)
		input.HallID = &id
	}

	if raw := ctx.Query("start_time"); raw != "" {
		t, err := time.ParseInLocation(listTimeLayout, raw, time.Local)
		if err != nil {
			return input, fmt.Errorf("invalid start_time (%v)", raw)
		}
		input.StartTime = &t
	}

	if raw := ctx.Query("end_time"); raw != "" {
		t, err := time.ParseInLocation(listTimeLayout, raw, time.Local)
		if err != nil {
			return input, fmt.Errorf("invalid end_time (%v)", raw)
		}
		input.EndTime = &t
	}

	return input, nil
}
