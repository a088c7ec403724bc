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

type CategoryService interface {
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	FindByID(ctx context.Context, id uint) (domain.Category, error)
	FindAll(ctx context.Context, onlyActive bool) ([]domain.Category, error)
	Update(ctx context.Context, category domain.Category) (domain.Category, error)
	RulesFor(categoryType domain.CategoryType) (rules.RuleSet, error)
}

type CategoryHandler struct {
	svc CategoryService
}

func NewCategoryHandler(svc CategoryService) *CategoryHandler {
	return &CategoryHandler{
		svc: svc,
	}
}

// HandleCreateCategory godoc
// @Summary      Create a category
// @Tags         categories
// @Produce      json
// @Param        request   body      request.CreateCategoryRequest true "request body"
// @Success      201      {object}   domain.Category
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /categories [post]
// @Security BearerAuth
func (h *CategoryHandler) HandleCreateCategory(ctx *gin.Context) {
	var req request.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	category, err := h.svc.Create(ctx.Request.Context(), domain.Category{
		Name:        req.Name,
		Type:        domain.CategoryType(req.Type),
		Description: req.Description,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownCategoryType) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		if errors.Is(err, service.ErrCategoryNameExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrCategoryNameExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateCategory -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, category)
}

// HandleGetCategory godoc
// @Summary      Get one category with its rule set
// @Tags         categories
// @Produce      json
// @Param        categoryID   path      int  true  "category ID"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /categories/{categoryID} [get]
// @Security BearerAuth
func (h *CategoryHandler) HandleGetCategory(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "categoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	category, err := h.svc.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetCategory -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	set, err := h.svc.RulesFor(category.Type)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetCategory -> h.svc.RulesFor -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"category": category,
		"rules":    set,
	})
}

// HandleListCategories godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        active   query     bool  false  "only active categories"
// @Success      200  {array}   domain.Category
// @Failure      500  {object}  response.Err
// @Router       /categories [get]
// @Security BearerAuth
func (h *CategoryHandler) HandleListCategories(ctx *gin.Context) {
	onlyActive := ctx.Query("active") == "true"

	categories, err := h.svc.FindAll(ctx.Request.Context(), onlyActive)
	if err != nil {
		err = fmt.Errorf("v1.HandleListCategories -> h.svc.FindAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

// HandleUpdateCategory godoc
// @Summary      Update a category
// @Tags         categories
// @Produce      json
// @Param        categoryID   path      int  true  "category ID"
// @Param        request   body      request.CreateCategoryRequest true "request body"
// @Success      200  {object}  domain.Category
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /categories/{categoryID} [put]
// @Security BearerAuth
func (h *CategoryHandler) HandleUpdateCategory(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "categoryID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CreateCategoryRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	category, err := h.svc.Update(ctx.Request.Context(), domain.Category{
		ID:          id,
		Name:        req.Name,
		Type:        domain.CategoryType(req.Type),
		Description: req.Description,
		Active:      true,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("category", "ID", id))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateCategory -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, category)
}
