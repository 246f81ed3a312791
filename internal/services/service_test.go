package services

import (
	"fmt"
	"testing"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

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

var recipeCounter int

func minutesPtr(v int) *int { return &v }

func pricePtr(s string) *decimal.Decimal {
	price := decimal.RequireFromString(s)
	return &price
}

func createTestRecipe(t *testing.T, svc RecipeService, userID uint, tags ...string) models.Recipe {
	recipeCounter++
	names := make([]NameInput, 0, len(tags))
	for _, tag := range tags {
		names = append(names, NameInput{Name: tag})
	}
	recipe, err := svc.CreateRecipe(userID, RecipeInput{
		Title:       fmt.Sprintf("Sample recipe %d", recipeCounter),
		Description: "Sample description of recipe.",
		TimeMinutes: minutesPtr(5),
		Price:       pricePtr("5.25"),
		Link:        "https://www.recipe.example/recipe.pdf",
		Tags:        names,
	})
	require.NoError(t, err)
	return recipe
}

// stubValidator lets tests control the image codec outcome.
type stubValidator struct {
	err error
}

func (s stubValidator) Validate([]byte) error { return s.err }

func newTestRecipeService(t *testing.T, db *gorm.DB, codecErr error) RecipeService {
	return NewRecipeService(db, stubValidator{err: codecErr}, t.TempDir())
}

func tagNames(tags []models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func recipeIDs(recipes []models.Recipe) []uint {
	ids := make([]uint, 0, len(recipes))
	for _, recipe := range recipes {
		ids = append(ids, recipe.ID)
	}
	return ids
}
