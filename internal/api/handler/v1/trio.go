package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lctp-br/lctp-api/internal/api/handler/v1/request"
	"github.com/lctp-br/lctp-api/internal/api/handler/v1/response"
	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/rules"
	"github.com/lctp-br/lctp-api/internal/service"
)

type TrioService interface {
	Validate(ctx context.Context, eventID, categoryID uint, memberIDs [domain.TrioSize]uint) (rules.Verdict, error)
	Create(ctx context.Context, eventID, categoryID uint, memberIDs [domain.TrioSize]uint) (domain.Trio, error)
	Draw(ctx context.Context, eventID, categoryID uint) ([]domain.Trio, error)
	FindByID(ctx context.Context, id uint) (domain.Trio, error)
	FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.Trio, error)
	UpdateStatus(ctx context.Context, id uint, status domain.TrioStatus) error
}

type TrioHandler struct {
	svc TrioService
}

func NewTrioHandler(svc TrioService) *TrioHandler {
	return &TrioHandler{
		svc: svc,
	}
}

// HandleValidateTrio godoc
// @Summary      Check a trio composition without registering it
// @Tags         trios
// @Produce      json
// @Param        request   body      request.CreateTrioRequest true "request body"
// @Success      200      {object}   response.ValidateTrioResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /trios/validate [post]
// @Security BearerAuth
func (h *TrioHandler) HandleValidateTrio(ctx *gin.Context) {
	req, ok := bindTrioRequest(ctx)
	if !ok {
		return
	}

	verdict, err := h.svc.Validate(ctx.Request.Context(), req.EventID, req.CategoryID, trioMemberIDs(req))
	if err != nil {
		renderTrioLookupErr(ctx, err, "v1.HandleValidateTrio -> h.svc.Validate")
		return
	}

	ctx.JSON(http.StatusOK, response.ValidateTrioResponse{
		Eligible: verdict.Eligible,
		Reason:   verdict.Reason,
	})
}

// HandleCreateTrio godoc
// @Summary      Register a trio
// @Tags         trios
// @Produce      json
// @Param        request   body      request.CreateTrioRequest true "request body"
// @Success      201      {object}   domain.Trio
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /trios [post]
// @Security BearerAuth
func (h *TrioHandler) HandleCreateTrio(ctx *gin.Context) {
	req, ok := bindTrioRequest(ctx)
	if !ok {
		return
	}

	trio, err := h.svc.Create(ctx.Request.Context(), req.EventID, req.CategoryID, trioMemberIDs(req))
	if err != nil {
		if errors.Is(err, service.ErrTrioNotEligible) {
			response.RenderErr(ctx, response.ErrUnprocessable(err))
			return
		}

		renderTrioLookupErr(ctx, err, "v1.HandleCreateTrio -> h.svc.Create")
		return
	}

	ctx.JSON(http.StatusCreated, trio)
}

// HandleDrawTrios godoc
// @Summary      Draw trios for an event category
// @Tags         trios
// @Produce      json
// @Param        request   body      request.DrawTriosRequest true "request body"
// @Success      201      {array}    domain.Trio
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /trios/draw [post]
// @Security BearerAuth
func (h *TrioHandler) HandleDrawTrios(ctx *gin.Context) {
	var req request.DrawTriosRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	trios, err := h.svc.Draw(ctx.Request.Context(), req.EventID, req.CategoryID)
	if err != nil {
		if errors.Is(err, service.ErrDrawNotSupported) || errors.Is(err, service.ErrNotEnoughCompetitors) {
			response.RenderErr(ctx, response.ErrUnprocessable(err))
			return
		}

		renderTrioLookupErr(ctx, err, "v1.HandleDrawTrios -> h.svc.Draw")
		return
	}

	ctx.JSON(http.StatusCreated, trios)
}

// HandleGetTrio godoc
// @Summary      Get one trio
// @Tags         trios
// @Produce      json
// @Param        trioID   path      int  true  "trio ID"
// @Success      200  {object}  domain.Trio
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /trios/{trioID} [get]
// @Security BearerAuth
func (h *TrioHandler) HandleGetTrio(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "trioID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	trio, err := h.svc.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTrioNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("trio", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetTrio -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, trio)
}

// HandleListTrios godoc
// @Summary      List trios of an event category
// @Tags         trios
// @Produce      json
// @Param        eventID      query     int  true  "event ID"
// @Param        categoryID   query     int  true  "category ID"
// @Success      200  {array}   domain.Trio
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /trios [get]
// @Security BearerAuth
func (h *TrioHandler) HandleListTrios(ctx *gin.Context) {
	eventID, err := parseIDQuery(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	categoryID, err := parseIDQuery(ctx, "categoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	trios, err := h.svc.FindByEventAndCategory(ctx.Request.Context(), eventID, categoryID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListTrios -> h.svc.FindByEventAndCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, trios)
}

// HandleUpdateTrioStatus godoc
// @Summary      Update a trio's status
// @Tags         trios
// @Produce      json
// @Param        trioID   path      int  true  "trio ID"
// @Param        request   body      request.UpdateTrioStatusRequest true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /trios/{trioID}/status [put]
// @Security BearerAuth
func (h *TrioHandler) HandleUpdateTrioStatus(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "trioID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateTrioStatusRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.UpdateStatus(ctx.Request.Context(), id, domain.TrioStatus(req.Status)); err != nil {
		if errors.Is(err, service.ErrTrioNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("trio", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateTrioStatus -> h.svc.UpdateStatus -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func bindTrioRequest(ctx *gin.Context) (request.CreateTrioRequest, bool) {
	var req request.CreateTrioRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return req, false
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return req, false
	}

	return req, true
}

func trioMemberIDs(req request.CreateTrioRequest) [domain.TrioSize]uint {
	var ids [domain.TrioSize]uint
	copy(ids[:], req.CompetitorIDs)
	return ids
}

func renderTrioLookupErr(ctx *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.RenderErr(ctx, response.ErrNotFound("event", "error", err))
	case errors.Is(err, service.ErrCategoryNotFound):
		response.RenderErr(ctx, response.ErrNotFound("category", "error", err))
	case errors.Is(err, service.ErrCompetitorNotFound):
		response.RenderErr(ctx, response.ErrNotFound("competitor", "error", err))
	case errors.Is(err, service.ErrUnknownCategoryType):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", op, err)))
	}
}
