package controllers

import (
	"net/http"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/gin-gonic/gin"
)

// UserController exposes the authenticated user's own profile and a
// staff-only listing of all accounts
type UserController struct {
	service services.UserService
}

func NewUserController(service services.UserService) *UserController {
	return &UserController{service: service}
}

// Me godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/users/me [get]
func (uc *UserController) Me(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}
	user, err := uc.service.GetUserByID(userID)
	if err != nil {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrNotFound, "User not found"))
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// UpdateMe godoc
// @Summary Update own profile
// @Description Update name and/or password. Email is immutable.
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.UserUpdate true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/users/me [patch]
func (uc *UserController) UpdateMe(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var input services.UserUpdate
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := uc.service.UpdateUser(userID, input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to update user"))
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// ListUsers godoc
// @Summary List all users
// @Description Staff only
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/users [get]
func (uc *UserController) ListUsers(ctx *gin.Context) {
	users, err := uc.service.ListUsers()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve users"))
		return
	}
	ctx.JSON(http.StatusOK, users)
}
