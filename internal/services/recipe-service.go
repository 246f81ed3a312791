package services

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeInput is the payload for creating a recipe. Title, time and price
// must all be present; the pointer fields let a legitimate zero bind without
// tripping the required check. Optional tags and ingredients are name lists
// resolved against the owner's existing rows.
type RecipeInput struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	TimeMinutes *int             `json:"time_minutes" binding:"required,min=0"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Link        string           `json:"link" binding:"omitempty,url"`
	Tags        []NameInput      `json:"tags"`
	Ingredients []NameInput      `json:"ingredients"`
}

// RecipeUpdate is the payload for a partial update. Nil pointers mean the
// field was absent and stays untouched. A present Tags or Ingredients list,
// even an empty one, fully replaces the corresponding association set.
type RecipeUpdate struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	TimeMinutes *int             `json:"time_minutes" binding:"omitempty,min=0"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link" binding:"omitempty,url"`
	Tags        *[]NameInput     `json:"tags"`
	Ingredients *[]NameInput     `json:"ingredients"`
}

// RecipeService provides owner-scoped recipe operations over the database
type RecipeService interface {
	// ListRecipes retrieves the owner's recipes, newest first, optionally filtered
	ListRecipes(userID uint, filters RecipeFilters) ([]models.Recipe, error)
	// GetRecipeByID retrieves one of the owner's recipes with its associations
	GetRecipeByID(userID, recipeID uint) (models.Recipe, error)
	// CreateRecipe persists a recipe and its resolved associations atomically
	CreateRecipe(userID uint, input RecipeInput) (models.Recipe, error)
	// UpdateRecipe applies the fields present in input to one of the owner's recipes
	UpdateRecipe(userID, recipeID uint, input RecipeUpdate) (models.Recipe, error)
	// DeleteRecipe removes a recipe and its association rows
	DeleteRecipe(userID, recipeID uint) error
	// SaveRecipeImage validates and stores an uploaded image for a recipe
	SaveRecipeImage(userID, recipeID uint, data []byte, filename string) (models.Recipe, error)
}

// recipeService is the implementation of the RecipeService interface
type recipeService struct {
	db        *gorm.DB
	images    ImageValidator
	uploadDir string
}

// NewRecipeService creates a new instance of RecipeService
func NewRecipeService(db *gorm.DB, images ImageValidator, uploadDir string) RecipeService {
	return &recipeService{db: db, images: images, uploadDir: uploadDir}
}

func (s *recipeService) ListRecipes(userID uint, filters RecipeFilters) ([]models.Recipe, error) {
	query := s.db.Model(&models.Recipe{}).Where("recipes.user_id = ?", userID)

	if len(filters.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filters.TagIDs)
	}
	if len(filters.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filters.IngredientIDs)
	}

	var recipes []models.Recipe
	err := query.
		Distinct("recipes.*").
		Preload("Tags").
		Preload("Ingredients").
		Order("recipes.id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *recipeService) GetRecipeByID(userID, recipeID uint) (models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Recipe{}, ErrRecipeNotFound
		}
		return models.Recipe{}, err
	}
	return recipe, nil
}

func (s *recipeService) CreateRecipe(userID uint, input RecipeInput) (models.Recipe, error) {
	recipe := models.Recipe{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		TimeMinutes: *input.TimeMinutes,
		Price:       *input.Price,
		Link:        input.Link,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		tags, err := resolveNames(tx, userID, input.Tags, newTag)
		if err != nil {
			return err
		}
		ingredients, err := resolveNames(tx, userID, input.Ingredients, newIngredient)
		if err != nil {
			return err
		}
		recipe.Tags = tags
		recipe.Ingredients = ingredients
		return tx.Create(&recipe).Error
	})
	if err != nil {
		return models.Recipe{}, err
	}

	return s.GetRecipeByID(userID, recipe.ID)
}

func (s *recipeService) UpdateRecipe(userID, recipeID uint, input RecipeUpdate) (models.Recipe, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("user_id = ?", userID).First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		// Explicit allow-list of mutable columns. The owner column is not in
		// it, so a payload can never reassign a recipe to another user.
		updates := map[string]interface{}{}
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.TimeMinutes != nil {
			updates["time_minutes"] = *input.TimeMinutes
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.Link != nil {
			updates["link"] = *input.Link
		}
		if len(updates) > 0 {
			if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
				return err
			}
		}

		if input.Tags != nil {
			tags, err := resolveNames(tx, userID, *input.Tags, newTag)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		if input.Ingredients != nil {
			ingredients, err := resolveNames(tx, userID, *input.Ingredients, newIngredient)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Ingredients").Replace(ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.Recipe{}, err
	}

	return s.GetRecipeByID(userID, recipeID)
}

func (s *recipeService) DeleteRecipe(userID, recipeID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.Where("user_id = ?", userID).First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		// Select(clause.Associations) removes the join rows but leaves the
		// tag and ingredient rows themselves in place.
		return tx.Select(clause.Associations).Delete(&recipe).Error
	})
}

func (s *recipeService) SaveRecipeImage(userID, recipeID uint, data []byte, filename string) (models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Where("user_id = ?", userID).First(&recipe, recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Recipe{}, ErrRecipeNotFound
		}
		return models.Recipe{}, err
	}

	if err := s.images.Validate(data); err != nil {
		return models.Recipe{}, err
	}

	imagePath := RecipeImagePath(filename)
	fullPath := filepath.Join(s.uploadDir, imagePath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return models.Recipe{}, err
	}
	if err := os.WriteFile(fullPath, data, 0o644); err != nil {
		return models.Recipe{}, err
	}

	previous := recipe.Image
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&recipe).Update("image", imagePath).Error
	})
	if err != nil {
		os.Remove(fullPath)
		return models.Recipe{}, err
	}
	if previous != "" {
		os.Remove(filepath.Join(s.uploadDir, previous))
	}

	return s.GetRecipeByID(userID, recipeID)
}
