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

type TicketService interface {
	Purchase(ctx context.Context, userID, seanceID uint, seats []domain.SeatRef) ([]domain.Ticket, error)
	ListUserTickets(ctx context.Context, userID uint) ([]domain.Ticket, error)
	GetUserTicket(ctx context.Context, id, userID uint) (domain.Ticket, error)
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

// HandlePurchase godoc
// @Summary      Buy seats for a seance as one all-or-nothing purchase
// @Tags         tickets
// @Produce      json
// @Param        seanceID  path      int  true "seance ID"
// @Param        request   body      request.PurchaseRequest true "request body"
// @Success      201      {array}    domain.Ticket
// @Failure      400      {object}   response.Err
// @Failure      402      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /seances/{seanceID}/purchase [post]
// @Security     BearerToken
func (h *TicketHandler) HandlePurchase(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	seanceID, err := parseIDParam(ctx, "seanceID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.PurchaseRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	seats := make([]domain.SeatRef, len(req.Seats))
	for i, s := range req.Seats {
		seats[i] = domain.SeatRef{Row: s.Row, Seat: s.Seat}
	}

	tickets, err := h.svc.Purchase(ctx.Request.Context(), userID, seanceID, seats)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSeanceNotFound):
			response.RenderErr(ctx, response.ErrNotFound("seance", "ID", seanceID))
		case errors.Is(err, domain.ErrSaleClosed),
			errors.Is(err, domain.ErrEmptySelection),
			errors.Is(err, domain.ErrSeatOutOfRange):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, domain.ErrSoldOut), errors.Is(err, domain.ErrSeatTaken):
			response.RenderErr(ctx, response.ErrConflict(err))
		case errors.Is(err, domain.ErrInsufficientFunds):
			response.RenderErr(ctx, response.ErrPaymentRequired(domain.ErrInsufficientFunds))
		default:
			err = fmt.Errorf("v1.HandlePurchase -> h.svc.Purchase -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, tickets)
}

// HandleListMyTickets godoc
// @Summary      List the authenticated user's tickets
// @Tags         tickets
// @Produce      json
// @Success      200      {array}    domain.Ticket
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets [get]
// @Security     BearerToken
func (h *TicketHandler) HandleListMyTickets(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	tickets, err := h.svc.ListUserTickets(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMyTickets -> h.svc.ListUserTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, tickets)
}

// HandleGetMyTicket godoc
// @Summary      Get one of the authenticated user's tickets
// @Tags         tickets
// @Produce      json
// @Param        ticketID path       int  true "ticket ID"
// @Success      200      {object}   domain.Ticket
// @Failure      401      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /tickets/{ticketID} [get]
// @Security     BearerToken
func (h *TicketHandler) HandleGetMyTicket(ctx *gin.Context) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	ticketID, err := parseIDParam(ctx, "ticketID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ticket, err := h.svc.GetUserTicket(ctx.Request.Context(), ticketID, userID)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ticket", "ID", ticketID))

			return
		}

		err = fmt.Errorf("v1.HandleGetMyTicket -> h.svc.GetUserTicket -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, ticket)
}
