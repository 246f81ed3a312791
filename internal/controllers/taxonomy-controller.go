package controllers

import (
	"errors"
	"net/http"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/gin-gonic/gin"
)

// TaxonomyController handles HTTP requests for tags and ingredients
type TaxonomyController interface {
	ListTags(c *gin.Context)
	UpdateTag(c *gin.Context)
	DeleteTag(c *gin.Context)
	ListIngredients(c *gin.Context)
	UpdateIngredient(c *gin.Context)
	DeleteIngredient(c *gin.Context)
}

type taxonomyController struct {
	service services.TaxonomyService
}

// NewTaxonomyController creates a new instance of TaxonomyController
func NewTaxonomyController(service services.TaxonomyService) *taxonomyController {
	return &taxonomyController{service: service}
}

// ListTags godoc
// @Summary List tags
// @Description List the authenticated user's tags ordered by name
// @Tags tags
// @Produce json
// @Success 200 {array} models.Tag
// @Security BearerAuth
// @Router /api/v1/tags [get]
func (tc *taxonomyController) ListTags(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	tags, err := tc.service.ListTags(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve tags"))
		return
	}
	ctx.JSON(http.StatusOK, tags)
}

// UpdateTag godoc
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Success 200 {object} models.Tag
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/tags/{id} [patch]
func (tc *taxonomyController) UpdateTag(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	tagID, ok := pathID(ctx)
	if !ok {
		return
	}

	var input services.NameInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag, err := tc.service.UpdateTag(userID, tagID, input.Name)
	if err != nil {
		tc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, tag)
}

// DeleteTag godoc
// @Summary Delete a tag
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/tags/{id} [delete]
func (tc *taxonomyController) DeleteTag(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	tagID, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := tc.service.DeleteTag(userID, tagID); err != nil {
		tc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// ListIngredients godoc
// @Summary List ingredients
// @Description List the authenticated user's ingredients ordered by name
// @Tags ingredients
// @Produce json
// @Success 200 {array} models.Ingredient
// @Security BearerAuth
// @Router /api/v1/ingredients [get]
func (tc *taxonomyController) ListIngredients(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	ingredients, err := tc.service.ListIngredients(userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve ingredients"))
		return
	}
	ctx.JSON(http.StatusOK, ingredients)
}

// UpdateIngredient godoc
// @Summary Rename an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 200 {object} models.Ingredient
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ingredients/{id} [patch]
func (tc *taxonomyController) UpdateIngredient(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	ingredientID, ok := pathID(ctx)
	if !ok {
		return
	}

	var input services.NameInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ingredient, err := tc.service.UpdateIngredient(userID, ingredientID, input.Name)
	if err != nil {
		tc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ingredient)
}

// DeleteIngredient godoc
// @Summary Delete an ingredient
// @Tags ingredients
// @Produce json
// @Param id path int true "Ingredient ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/ingredients/{id} [delete]
func (tc *taxonomyController) DeleteIngredient(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	ingredientID, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := tc.service.DeleteIngredient(userID, ingredientID); err != nil {
		tc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

func (tc *taxonomyController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTagNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrTagNotFound, "Tag not found"))
	case errors.Is(err, services.ErrIngredientNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrIngredientNotFound, "Ingredient not found"))
	default:
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Operation failed"))
	}
}
