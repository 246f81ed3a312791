package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/franciscosanchezn/gin-recipe-api/internal/middleware"
	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/franciscosanchezn/gin-recipe-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type failingValidator struct{}

func (failingValidator) Validate([]byte) error { return services.ErrNotAnImage }

type passingValidator struct{}

func (passingValidator) Validate([]byte) error { return nil }

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Recipe{}, &models.Tag{}, &models.Ingredient{})
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	user := &models.User{Email: email, Password: "hashed", IsActive: true}
	require.NoError(t, db.Create(user).Error)
	return user
}

// setupRecipeRouter wires the recipe routes behind a stub auth middleware
// that authenticates every request as userID.
func setupRecipeRouter(db *gorm.DB, validator services.ImageValidator, uploadDir string, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)

	service := services.NewRecipeService(db, validator, uploadDir)
	controller := NewRecipeController(service)

	router := gin.New()
	authed := router.Group("/api/v1")
	authed.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	authed.GET("/recipes", controller.ListRecipes)
	authed.POST("/recipes", controller.CreateRecipe)
	authed.GET("/recipes/:id", controller.GetRecipeByID)
	authed.PATCH("/recipes/:id", controller.UpdateRecipe)
	authed.PUT("/recipes/:id", controller.ReplaceRecipe)
	authed.DELETE("/recipes/:id", controller.DeleteRecipe)
	authed.POST("/recipes/:id/image", controller.UploadRecipeImage)
	return router
}

func jsonRequest(router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func createRecipeViaAPI(t *testing.T, router *gin.Engine, payload map[string]any) models.Recipe {
	if _, ok := payload["title"]; !ok {
		payload["title"] = "Sample recipe"
	}
	if _, ok := payload["time_minutes"]; !ok {
		payload["time_minutes"] = 12
	}
	if _, ok := payload["price"]; !ok {
		payload["price"] = "5.25"
	}
	res := jsonRequest(router, http.MethodPost, "/api/v1/recipes", payload)
	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	var recipe models.Recipe
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &recipe))
	return recipe
}

func TestRecipesRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	middleware.SetJWTSecret("test-secret")

	db := setupTestDB(t)
	service := services.NewRecipeService(db, passingValidator{}, t.TempDir())
	controller := NewRecipeController(service)

	router := gin.New()
	router.GET("/api/v1/recipes", middleware.JWTAuth(), controller.ListRecipes)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestCreateRecipeWithTags(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	recipe := createRecipeViaAPI(t, router, map[string]any{
		"title":        "Thai curry",
		"time_minutes": 30,
		"price":        "5.99",
		"tags":         []map[string]string{{"name": "Thai"}, {"name": "Dinner"}},
	})

	assert.Equal(t, user.ID, recipe.UserID)
	require.Len(t, recipe.Tags, 2)
	for _, tag := range recipe.Tags {
		assert.Equal(t, user.ID, tag.UserID)
	}
}

func TestCreateRecipeMissingTitle(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	res := jsonRequest(router, http.MethodPost, "/api/v1/recipes", map[string]any{
		"time_minutes": 30,
		"price":        "5.25",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCreateRecipeMissingPrice(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	res := jsonRequest(router, http.MethodPost, "/api/v1/recipes", map[string]any{
		"title":        "No price",
		"time_minutes": 30,
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestCreateRecipeAcceptsZeroTimeMinutes(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	recipe := createRecipeViaAPI(t, router, map[string]any{
		"time_minutes": 0,
	})
	assert.Equal(t, 0, recipe.TimeMinutes)
}

func TestUpdateRecipeIgnoresOwnerField(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	other := createTestUser(t, db, "other@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	recipe := createRecipeViaAPI(t, router, map[string]any{})

	res := jsonRequest(router, http.MethodPatch, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), map[string]any{
		"title":   "New title",
		"user":    other.ID,
		"user_id": other.ID,
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var stored models.Recipe
	require.NoError(t, db.First(&stored, recipe.ID).Error)
	assert.Equal(t, "New title", stored.Title)
	assert.Equal(t, user.ID, stored.UserID, "owner must never change through an update payload")
}

func TestUpdateRecipeClearsTags(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	recipe := createRecipeViaAPI(t, router, map[string]any{
		"tags": []map[string]string{{"name": "Dessert"}},
	})

	res := jsonRequest(router, http.MethodPatch, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), map[string]any{
		"tags": []map[string]string{},
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var updated models.Recipe
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &updated))
	assert.Empty(t, updated.Tags)

	var count int64
	db.Model(&models.Tag{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestReplaceRecipeRequiresAllFields(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	recipe := createRecipeViaAPI(t, router, map[string]any{})

	res := jsonRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), map[string]any{
		"description": "missing title",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	// Title alone is not enough either: time and price are required too,
	// otherwise they would be silently overwritten with zero.
	res = jsonRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), map[string]any{
		"title": "Replaced",
	})
	assert.Equal(t, http.StatusBadRequest, res.Code)

	var stored models.Recipe
	require.NoError(t, db.First(&stored, recipe.ID).Error)
	assert.NotEqual(t, "Replaced", stored.Title)
	assert.Equal(t, 12, stored.TimeMinutes)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("5.25")), "price = %s", stored.Price)
}

func TestReplaceRecipeKeepsAbsentAssociations(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	recipe := createRecipeViaAPI(t, router, map[string]any{
		"tags":        []map[string]string{{"name": "Dinner"}},
		"ingredients": []map[string]string{{"name": "Salt"}},
	})

	res := jsonRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), map[string]any{
		"title":        "Replaced",
		"time_minutes": 25,
		"price":        "9.75",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var updated models.Recipe
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &updated))
	assert.Equal(t, "Replaced", updated.Title)
	require.Len(t, updated.Tags, 1, "absent tags key must leave the set untouched")
	assert.Equal(t, "Dinner", updated.Tags[0].Name)
	require.Len(t, updated.Ingredients, 1)
	assert.Equal(t, "Salt", updated.Ingredients[0].Name)
}

func TestReplaceRecipeClearsPresentEmptyTagList(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	recipe := createRecipeViaAPI(t, router, map[string]any{
		"tags": []map[string]string{{"name": "Dinner"}},
	})

	res := jsonRequest(router, http.MethodPut, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), map[string]any{
		"title":        "Replaced",
		"time_minutes": 25,
		"price":        "9.75",
		"tags":         []map[string]string{},
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var updated models.Recipe
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &updated))
	assert.Empty(t, updated.Tags)
}

func TestDeleteRecipe(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	recipe := createRecipeViaAPI(t, router, map[string]any{})

	res := jsonRequest(router, http.MethodDelete, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), nil)
	assert.Equal(t, http.StatusNoContent, res.Code)

	var count int64
	db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestRecipeOfOtherUserIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")

	ownerRouter := setupRecipeRouter(db, passingValidator{}, t.TempDir(), owner.ID)
	recipe := createRecipeViaAPI(t, ownerRouter, map[string]any{})

	intruderRouter := setupRecipeRouter(db, passingValidator{}, t.TempDir(), intruder.ID)

	res := jsonRequest(intruderRouter, http.MethodGet, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	res = jsonRequest(intruderRouter, http.MethodDelete, fmt.Sprintf("/api/v1/recipes/%d", recipe.ID), nil)
	assert.Equal(t, http.StatusNotFound, res.Code)

	var count int64
	db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestListRecipesWithTagFilter(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	tagged := createRecipeViaAPI(t, router, map[string]any{
		"title": "Tagged",
		"tags":  []map[string]string{{"name": "Quick"}},
	})
	createRecipeViaAPI(t, router, map[string]any{"title": "Untagged"})

	var tag models.Tag
	require.NoError(t, db.Where("user_id = ? AND name = ?", user.ID, "Quick").First(&tag).Error)

	res := jsonRequest(router, http.MethodGet, fmt.Sprintf("/api/v1/recipes?tags=%d,notanid", tag.ID), nil)
	require.Equal(t, http.StatusOK, res.Code)

	var recipes []models.Recipe
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &recipes))
	require.Len(t, recipes, 1)
	assert.Equal(t, tagged.ID, recipes[0].ID)
}

func TestUploadRecipeImageRejectsNonImage(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, failingValidator{}, t.TempDir(), user.ID)

	recipe := createRecipeViaAPI(t, router, map[string]any{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "note.txt")
	require.NoError(t, err)
	part.Write([]byte("notanimage"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%d/image", recipe.ID), &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var stored models.Recipe
	require.NoError(t, db.First(&stored, recipe.ID).Error)
	assert.Empty(t, stored.Image, "failed upload must not change the stored image reference")
}

func TestUploadRecipeImage(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "test@example.com")
	router := setupRecipeRouter(db, passingValidator{}, t.TempDir(), user.ID)

	recipe := createRecipeViaAPI(t, router, map[string]any{})

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	part.Write([]byte("image bytes"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/v1/recipes/%d/image", recipe.ID), &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var stored models.Recipe
	require.NoError(t, db.First(&stored, recipe.ID).Error)
	assert.Contains(t, stored.Image, "uploads")
	assert.Contains(t, stored.Image, ".jpg")
}
