package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/gin-gonic/gin"
)

// RecipeController handles HTTP requests related to recipes
type RecipeController interface {
	// ListRecipes retrieves the caller's recipes with optional filtering
	ListRecipes(c *gin.Context)
	// GetRecipeByID retrieves one of the caller's recipes by its ID
	GetRecipeByID(c *gin.Context)
	// CreateRecipe creates a new recipe
	CreateRecipe(c *gin.Context)
	// UpdateRecipe applies a partial update to a recipe
	UpdateRecipe(c *gin.Context)
	// ReplaceRecipe applies a full update to a recipe
	ReplaceRecipe(c *gin.Context)
	// DeleteRecipe deletes a recipe by its ID
	DeleteRecipe(c *gin.Context)
	// UploadRecipeImage attaches an uploaded image to a recipe
	UploadRecipeImage(c *gin.Context)
}

type recipeController struct {
	service services.RecipeService
}

// NewRecipeController creates a new instance of RecipeController
func NewRecipeController(service services.RecipeService) *recipeController {
	return &recipeController{service: service}
}

// ListRecipes godoc
// @Summary List recipes
// @Description List the authenticated user's recipes, newest first, optionally filtered by tag or ingredient ids
// @Tags recipes
// @Accept json
// @Produce json
// @Param tags query string false "Comma-separated tag ids"
// @Param ingredients query string false "Comma-separated ingredient ids"
// @Success 200 {array} models.Recipe
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/recipes [get]
func (rc *recipeController) ListRecipes(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	filters := services.RecipeFilters{
		TagIDs:        services.ParseIDList(ctx.Query("tags")),
		IngredientIDs: services.ParseIDList(ctx.Query("ingredients")),
	}

	recipes, err := rc.service.ListRecipes(userID, filters)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve recipes"))
		return
	}
	ctx.JSON(http.StatusOK, recipes)
}

// GetRecipeByID godoc
// @Summary Get recipe by ID
// @Description Get a single recipe owned by the authenticated user
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.Recipe
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [get]
func (rc *recipeController) GetRecipeByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	recipeID, ok := pathID(ctx)
	if !ok {
		return
	}

	recipe, err := rc.service.GetRecipeByID(userID, recipeID)
	if err != nil {
		rc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe)
}

// CreateRecipe godoc
// @Summary Create a new recipe
// @Description Create a recipe with optional tag and ingredient name lists; names that already exist for the user are attached, others are created
// @Tags recipes
// @Accept json
// @Produce json
// @Param recipe body services.RecipeInput true "Recipe payload"
// @Success 201 {object} models.Recipe
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/recipes [post]
func (rc *recipeController) CreateRecipe(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input services.RecipeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := rc.service.CreateRecipe(userID, input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create recipe"))
		return
	}
	ctx.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe godoc
// @Summary Partially update a recipe
// @Description Apply only the provided fields; a present tags/ingredients list fully replaces the association set. Owner cannot be changed.
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body services.RecipeUpdate true "Fields to update"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} map[string]string
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [patch]
func (rc *recipeController) UpdateRecipe(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	recipeID, ok := pathID(ctx)
	if !ok {
		return
	}

	var input services.RecipeUpdate
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := rc.service.UpdateRecipe(userID, recipeID, input)
	if err != nil {
		rc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe)
}

// ReplaceRecipe godoc
// @Summary Fully update a recipe
// @Description Same semantics as PATCH but all non-optional fields are required
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param recipe body services.RecipeInput true "Complete recipe payload"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} map[string]string
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [put]
func (rc *recipeController) ReplaceRecipe(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	recipeID, ok := pathID(ctx)
	if !ok {
		return
	}

	// Binding RecipeInput enforces completeness of the scalar fields; the
	// repository-level semantics are the same as a partial update.
	var input services.RecipeInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := services.RecipeUpdate{
		Title:       &input.Title,
		Description: &input.Description,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Link:        &input.Link,
	}
	// Association lists keep partial-update semantics: only a present list,
	// empty included, replaces the set. An absent key leaves it untouched.
	if input.Tags != nil {
		update.Tags = &input.Tags
	}
	if input.Ingredients != nil {
		update.Ingredients = &input.Ingredients
	}

	recipe, err := rc.service.UpdateRecipe(userID, recipeID, update)
	if err != nil {
		rc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe)
}

// DeleteRecipe godoc
// @Summary Delete a recipe
// @Description Delete a recipe and its tag/ingredient links; the tags and ingredients themselves are kept
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id} [delete]
func (rc *recipeController) DeleteRecipe(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	recipeID, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := rc.service.DeleteRecipe(userID, recipeID); err != nil {
		rc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusNoContent, nil)
}

// UploadRecipeImage godoc
// @Summary Upload a recipe image
// @Description Attach an image to a recipe; payloads that do not decode as an image are rejected without changing the recipe
// @Tags recipes
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.Recipe
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/v1/recipes/{id}/image [post]
func (rc *recipeController) UploadRecipeImage(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	recipeID, ok := pathID(ctx)
	if !ok {
		return
	}

	header, err := ctx.FormFile("image")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Missing image file"))
		return
	}

	file, err := header.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Unreadable image file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Unreadable image file"))
		return
	}

	recipe, err := rc.service.SaveRecipeImage(userID, recipeID, data, header.Filename)
	if err != nil {
		rc.respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, recipe)
}

// respondError maps service errors to HTTP responses
func (rc *recipeController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRecipeNotFound):
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrRecipeNotFound, "Recipe not found"))
	case errors.Is(err, services.ErrNotAnImage):
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrInvalidImage, "Uploaded file is not a valid image"))
	default:
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Operation failed"))
	}
}
