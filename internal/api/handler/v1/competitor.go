package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lctp-br/lctp-api/internal/api/handler/v1/request"
	"github.com/lctp-br/lctp-api/internal/api/handler/v1/response"
	"github.com/lctp-br/lctp-api/internal/domain"
	"github.com/lctp-br/lctp-api/internal/service"
)

type CompetitorService interface {
	Create(ctx context.Context, competitor domain.Competitor) (domain.Competitor, error)
	FindByID(ctx context.Context, id uint) (domain.Competitor, error)
	FindAll(ctx context.Context, onlyActive bool) ([]domain.Competitor, error)
	Update(ctx context.Context, competitor domain.Competitor) (domain.Competitor, error)
	Deactivate(ctx context.Context, id uint) error
}

type CompetitorHandler struct {
	svc CompetitorService
}

func NewCompetitorHandler(svc CompetitorService) *CompetitorHandler {
	return &CompetitorHandler{
		svc: svc,
	}
}

// HandleCreateCompetitor godoc
// @Summary      Register a competitor
// @Tags         competitors
// @Produce      json
// @Param        request   body      request.CreateCompetitorRequest true "request body"
// @Success      201      {object}   domain.Competitor
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /competitors [post]
// @Security BearerAuth
func (h *CompetitorHandler) HandleCreateCompetitor(ctx *gin.Context) {
	var req request.CreateCompetitorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	competitor, err := h.svc.Create(ctx.Request.Context(), domain.Competitor{
		Name:       req.Name,
		BirthDate:  req.BirthDate,
		Handicap:   req.Handicap,
		Sex:        req.Sex,
		City:       req.City,
		State:      req.State,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidHandicap) || errors.Is(err, service.ErrInvalidSex) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateCompetitor -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, competitor)
}

// HandleGetCompetitor godoc
// @Summary      Get one competitor
// @Tags         competitors
// @Produce      json
// @Param        competitorID   path      int  true  "competitor ID"
// @Success      200  {object}  domain.Competitor
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /competitors/{competitorID} [get]
// @Security BearerAuth
func (h *CompetitorHandler) HandleGetCompetitor(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "competitorID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	competitor, err := h.svc.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCompetitorNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("competitor", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetCompetitor -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, competitor)
}

// HandleListCompetitors godoc
// @Summary      List competitors
// @Tags         competitors
// @Produce      json
// @Param        active   query     bool  false  "only active competitors"
// @Success      200  {array}   domain.Competitor
// @Failure      500  {object}  response.Err
// @Router       /competitors [get]
// @Security BearerAuth
func (h *CompetitorHandler) HandleListCompetitors(ctx *gin.Context) {
	onlyActive := ctx.Query("active") == "true"

	competitors, err := h.svc.FindAll(ctx.Request.Context(), onlyActive)
	if err != nil {
		err = fmt.Errorf("v1.HandleListCompetitors -> h.svc.FindAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, competitors)
}

// HandleUpdateCompetitor godoc
// @Summary      Update a competitor
// @Tags         competitors
// @Produce      json
// @Param        competitorID   path      int  true  "competitor ID"
// @Param        request   body      request.UpdateCompetitorRequest true "request body"
// @Success      200  {object}  domain.Competitor
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /competitors/{competitorID} [put]
// @Security BearerAuth
func (h *CompetitorHandler) HandleUpdateCompetitor(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "competitorID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateCompetitorRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	competitor, err := h.svc.Update(ctx.Request.Context(), domain.Competitor{
		ID:         id,
		Name:       req.Name,
		BirthDate:  req.BirthDate,
		Handicap:   req.Handicap,
		Sex:        req.Sex,
		City:       req.City,
		State:      req.State,
		CategoryID: req.CategoryID,
		Active:     req.Active,
	})
	if err != nil {
		if errors.Is(err, service.ErrCompetitorNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("competitor", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateCompetitor -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, competitor)
}

// HandleDeactivateCompetitor godoc
// @Summary      Deactivate a competitor
// @Tags         competitors
// @Produce      json
// @Param        competitorID   path      int  true  "competitor ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /competitors/{competitorID} [delete]
// @Security BearerAuth
func (h *CompetitorHandler) HandleDeactivateCompetitor(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "competitorID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.Deactivate(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrCompetitorNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("competitor", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeactivateCompetitor -> h.svc.Deactivate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %v %q", name, raw)
	}

	return uint(id), nil
}

func parseIDQuery(ctx *gin.Context, name string) (uint, error) {
	raw := ctx.Query(name)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %v %q", name, raw)
	}

	return uint(id), nil
}
