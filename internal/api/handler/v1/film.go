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

type FilmService interface {
	CreateFilm(ctx context.Context, film domain.Film) (domain.Film, error)
	GetFilm(ctx context.Context, id uint) (domain.Film, error)
	ListFilms(ctx context.Context) ([]domain.Film, error)
}

type FilmHandler struct {
	svc FilmService
}

func NewFilmHandler(svc FilmService) *FilmHandler {
	return &FilmHandler{
		svc: svc,
	}
}

// HandleCreateFilm godoc
// @Summary      Create a film
// @Tags         films
// @Produce      json
// @Param        request   body      request.CreateFilmRequest true "request body"
// @Success      201      {object}   domain.Film
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /films [post]
// @Security     BearerToken
func (h *FilmHandler) HandleCreateFilm(ctx *gin.Context) {
	var req request.CreateFilmRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	film, err := h.svc.CreateFilm(ctx.Request.Context(), domain.Film{
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: req.ParsedReleaseDate(),
		DurationMin: req.DurationMin,
		ImageURL:    req.ImageURL,
		TitleImgURL: req.TitleImgURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrFilmExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrFilmExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateFilm -> h.svc.CreateFilm -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, film)
}

// HandleGetFilm godoc
// @Summary      Get a film by ID
// @Tags         films
// @Produce      json
// @Param        filmID   path       int  true "film ID"
// @Success      200      {object}   domain.Film
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /films/{filmID} [get]
// @Security     BearerToken
func (h *FilmHandler) HandleGetFilm(ctx *gin.Context) {
	filmID, err := parseIDParam(ctx, "filmID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	film, err := h.svc.GetFilm(ctx.Request.Context(), filmID)
	if err != nil {
		if errors.Is(err, service.ErrFilmNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("film", "ID", filmID))

			return
		}

		err = fmt.Errorf("v1.HandleGetFilm -> h.svc.GetFilm -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, film)
}

// HandleListFilms godoc
// @Summary      List all films with their seance spans
// @Tags         films
// @Produce      json
// @Success      200      {array}    domain.Film
// @Failure      500      {object}   response.Err
// @Router       /films [get]
// @Security     BearerToken
func (h *FilmHandler) HandleListFilms(ctx *gin.Context) {
	films, err := h.svc.ListFilms(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListFilms -> h.svc.ListFilms -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, films)
}
