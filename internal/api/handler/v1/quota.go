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
	"github.com/lctp-br/lctp-api/internal/service"
)

type QuotaService interface {
	Create(ctx context.Context, competitorID, eventID, categoryID uint) (domain.ParticipationQuota, error)
	FindByID(ctx context.Context, id uint) (domain.ParticipationQuota, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.ParticipationQuota, error)
	Block(ctx context.Context, id uint, reason string) error
	Unblock(ctx context.Context, id uint) error
	AutoProvision(ctx context.Context, competitorIDs []uint) (int, error)
}

type QuotaHandler struct {
	svc QuotaService
}

func NewQuotaHandler(svc QuotaService) *QuotaHandler {
	return &QuotaHandler{
		svc: svc,
	}
}

// HandleCreateQuota godoc
// @Summary      Provision a participation quota
// @Tags         quotas
// @Produce      json
// @Param        request   body      request.CreateQuotaRequest true "request body"
// @Success      201      {object}   domain.ParticipationQuota
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /quotas [post]
// @Security BearerAuth
func (h *QuotaHandler) HandleCreateQuota(ctx *gin.Context) {
	var req request.CreateQuotaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	quota, err := h.svc.Create(ctx.Request.Context(), req.CompetitorID, req.EventID, req.CategoryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuotaExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrQuotaExists))
		case errors.Is(err, service.ErrCompetitorNotFound):
			response.RenderErr(ctx, response.ErrNotFound("competitor", "ID", req.CompetitorID))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", req.EventID))
		default:
			err = fmt.Errorf("v1.HandleCreateQuota -> h.svc.Create -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, quota)
}

// HandleGetQuota godoc
// @Summary      Get one participation quota
// @Tags         quotas
// @Produce      json
// @Param        quotaID   path      int  true  "quota ID"
// @Success      200  {object}  domain.ParticipationQuota
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /quotas/{quotaID} [get]
// @Security BearerAuth
func (h *QuotaHandler) HandleGetQuota(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "quotaID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	quota, err := h.svc.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuotaNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("quota", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetQuota -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, quota)
}

// HandleListQuotasByEvent godoc
// @Summary      List an event's participation quotas
// @Tags         quotas
// @Produce      json
// @Param        eventID   path      int  true  "event ID"
// @Success      200  {array}   domain.ParticipationQuota
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/quotas [get]
// @Security BearerAuth
func (h *QuotaHandler) HandleListQuotasByEvent(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "eventID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	quotas, err := h.svc.FindByEvent(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListQuotasByEvent -> h.svc.FindByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, quotas)
}

// HandleBlockQuota godoc
// @Summary      Block a competitor's quota
// @Tags         quotas
// @Produce      json
// @Param        quotaID   path      int  true  "quota ID"
// @Param        request   body      request.BlockQuotaRequest true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /quotas/{quotaID}/block [post]
// @Security BearerAuth
func (h *QuotaHandler) HandleBlockQuota(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "quotaID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.BlockQuotaRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.Block(ctx.Request.Context(), id, req.Reason); err != nil {
		if errors.Is(err, service.ErrQuotaNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("quota", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleBlockQuota -> h.svc.Block -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUnblockQuota godoc
// @Summary      Unblock a competitor's quota
// @Tags         quotas
// @Produce      json
// @Param        quotaID   path      int  true  "quota ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /quotas/{quotaID}/block [delete]
// @Security BearerAuth
func (h *QuotaHandler) HandleUnblockQuota(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "quotaID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.Unblock(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrQuotaNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("quota", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleUnblockQuota -> h.svc.Unblock -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAutoProvision godoc
// @Summary      Provision quotas across upcoming events
// @Tags         quotas
// @Produce      json
// @Param        request   body      request.AutoProvisionRequest true "request body"
// @Success      200      {object}   response.AutoProvisionResponse
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /quotas/auto-provision [post]
// @Security BearerAuth
func (h *QuotaHandler) HandleAutoProvision(ctx *gin.Context) {
	var req request.AutoProvisionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	created, err := h.svc.AutoProvision(ctx.Request.Context(), req.CompetitorIDs)
	if err != nil {
		err = fmt.Errorf("v1.HandleAutoProvision -> h.svc.AutoProvision -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.AutoProvisionResponse{
		Created: created,
	})
}
