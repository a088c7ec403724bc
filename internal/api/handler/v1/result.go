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

type ResultService interface {
	Open(ctx context.Context, trioID uint) (domain.RunResult, error)
	FindByID(ctx context.Context, id uint) (domain.RunResult, error)
	FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.RunResult, error)
	RecordRun(ctx context.Context, resultID uint, attemptTime *float64, status domain.TrioStatus) (domain.RunResult, error)
	UpdatePrize(ctx context.Context, id uint, prizeValue float64) error
	RecomputePlacements(ctx context.Context, eventID, categoryID uint) ([]domain.RunResult, error)
}

type ResultHandler struct {
	svc ResultService
}

func NewResultHandler(svc ResultService) *ResultHandler {
	return &ResultHandler{
		svc: svc,
	}
}

// HandleOpenResult godoc
// @Summary      Open the result sheet of a trio
// @Tags         results
// @Produce      json
// @Param        request   body      request.OpenResultRequest true "request body"
// @Success      201      {object}   domain.RunResult
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /results [post]
// @Security BearerAuth
func (h *ResultHandler) HandleOpenResult(ctx *gin.Context) {
	var req request.OpenResultRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.Open(ctx.Request.Context(), req.TrioID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResultExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrResultExists))
		case errors.Is(err, service.ErrTrioNotFound):
			response.RenderErr(ctx, response.ErrNotFound("trio", "ID", req.TrioID))
		default:
			err = fmt.Errorf("v1.HandleOpenResult -> h.svc.Open -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, result)
}

// HandleGetResult godoc
// @Summary      Get one result sheet
// @Tags         results
// @Produce      json
// @Param        resultID   path      int  true  "result ID"
// @Success      200  {object}  domain.RunResult
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /results/{resultID} [get]
// @Security BearerAuth
func (h *ResultHandler) HandleGetResult(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "resultID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("result", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetResult -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleListResults godoc
// @Summary      List the results of an event category
// @Tags         results
// @Produce      json
// @Param        eventID      query     int  true  "event ID"
// @Param        categoryID   query     int  true  "category ID"
// @Success      200  {array}   domain.RunResult
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /results [get]
// @Security BearerAuth
func (h *ResultHandler) HandleListResults(ctx *gin.Context) {
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

	results, err := h.svc.FindByEventAndCategory(ctx.Request.Context(), eventID, categoryID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListResults -> h.svc.FindByEventAndCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, results)
}

// HandleRecordRun godoc
// @Summary      Record one attempt for a trio
// @Tags         results
// @Produce      json
// @Param        resultID   path      int  true  "result ID"
// @Param        request   body      request.RecordRunRequest true "request body"
// @Success      200      {object}   domain.RunResult
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /results/{resultID}/runs [post]
// @Security BearerAuth
func (h *ResultHandler) HandleRecordRun(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "resultID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.RecordRunRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	result, err := h.svc.RecordRun(ctx.Request.Context(), id, req.Time, domain.TrioStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrResultNotFound):
			response.RenderErr(ctx, response.ErrNotFound("result", "ID", id))
		case errors.Is(err, service.ErrQuotaBlocked),
			errors.Is(err, service.ErrQuotaExhausted),
			errors.Is(err, service.ErrQuotaNotFound),
			errors.Is(err, service.ErrTrioNotActive),
			errors.Is(err, service.ErrRunLimitReached):
			response.RenderErr(ctx, response.ErrUnprocessable(err))
		default:
			err = fmt.Errorf("v1.HandleRecordRun -> h.svc.RecordRun -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// HandleUpdatePrize godoc
// @Summary      Set the prize money of a result
// @Tags         results
// @Produce      json
// @Param        resultID   path      int  true  "result ID"
// @Param        request   body      request.UpdatePrizeRequest true "request body"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /results/{resultID}/prize [put]
// @Security BearerAuth
func (h *ResultHandler) HandleUpdatePrize(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "resultID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdatePrizeRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.UpdatePrize(ctx.Request.Context(), id, req.PrizeValue); err != nil {
		if errors.Is(err, service.ErrResultNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("result", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePrize -> h.svc.UpdatePrize -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleRecomputePlacements godoc
// @Summary      Recompute the placements of an event category
// @Tags         results
// @Produce      json
// @Param        eventID      query     int  true  "event ID"
// @Param        categoryID   query     int  true  "category ID"
// @Success      200  {array}   domain.RunResult
// @Failure      400  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /results/placements [post]
// @Security BearerAuth
func (h *ResultHandler) HandleRecomputePlacements(ctx *gin.Context) {
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

	ranked, err := h.svc.RecomputePlacements(ctx.Request.Context(), eventID, categoryID)
	if err != nil {
		if errors.Is(err, service.ErrInconsistentResults) {
			response.RenderErr(ctx, response.ErrUnprocessable(err))
			return
		}

		err = fmt.Errorf("v1.HandleRecomputePlacements -> h.svc.RecomputePlacements -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, ranked)
}
