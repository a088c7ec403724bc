package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lctp-br/lctp-api/internal/api/handler/v1/response"
	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/service"
)

type ScoreService interface {
	Compute(ctx context.Context, eventID, categoryID uint) ([]domain.ScoreRecord, error)
	FindByEventAndCategory(ctx context.Context, eventID, categoryID uint) ([]domain.ScoreRecord, error)
	Ranking(ctx context.Context, categoryID uint) ([]domain.RankingEntry, error)
}

type ScoreHandler struct {
	svc ScoreService
}

func NewScoreHandler(svc ScoreService) *ScoreHandler {
	return &ScoreHandler{
		svc: svc,
	}
}

// HandleComputeScores godoc
// @Summary      Compute championship points for an event category
// @Tags         scores
// @Produce      json
// @Param        eventID      query     int  true  "event ID"
// @Param        categoryID   query     int  true  "category ID"
// @Success      200  {array}   domain.ScoreRecord
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      422  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /scores/compute [post]
// @Security BearerAuth
func (h *ScoreHandler) HandleComputeScores(ctx *gin.Context) {
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

	records, err := h.svc.Compute(ctx.Request.Context(), eventID, categoryID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlacementsMissing), errors.Is(err, service.ErrInvalidPlacement):
			response.RenderErr(ctx, response.ErrUnprocessable(err))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrCategoryNotFound):
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", categoryID))
		default:
			err = fmt.Errorf("v1.HandleComputeScores -> h.svc.Compute -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleListScores godoc
// @Summary      List the score records of an event category
// @Tags         scores
// @Produce      json
// @Param        eventID      query     int  true  "event ID"
// @Param        categoryID   query     int  true  "category ID"
// @Success      200  {array}   domain.ScoreRecord
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /scores [get]
// @Security BearerAuth
func (h *ScoreHandler) HandleListScores(ctx *gin.Context) {
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

	records, err := h.svc.FindByEventAndCategory(ctx.Request.Context(), eventID, categoryID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListScores -> h.svc.FindByEventAndCategory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, records)
}

// HandleGetRanking godoc
// @Summary      Get the championship ranking
// @Tags         scores
// @Produce      json
// @Param        categoryID   query     int  false  "category ID, omit for the overall ranking"
// @Success      200  {array}   domain.RankingEntry
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /scores/ranking [get]
// @Security BearerAuth
func (h *ScoreHandler) HandleGetRanking(ctx *gin.Context) {
	var categoryID uint
	if raw := ctx.Query("categoryID"); raw != "" {
		id, err := parseIDQuery(ctx, "categoryID")
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		categoryID = id
	}

	entries, err := h.svc.Ranking(ctx.Request.Context(), categoryID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetRanking -> h.svc.Ranking -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, entries)
}
