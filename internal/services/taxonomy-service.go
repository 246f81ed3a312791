package services

import (
	"errors"
	"strings"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// TaxonomyService manages a user's tags and ingredients outside the recipe
// write path: listing, renaming and deleting. Rows created implicitly during
// recipe writes show up here as well.
type TaxonomyService interface {
	ListTags(userID uint) ([]models.Tag, error)
	UpdateTag(userID, tagID uint, name string) (models.Tag, error)
	DeleteTag(userID, tagID uint) error
	ListIngredients(userID uint) ([]models.Ingredient, error)
	UpdateIngredient(userID, ingredientID uint, name string) (models.Ingredient, error)
	DeleteIngredient(userID, ingredientID uint) error
}

type taxonomyService struct {
	db *gorm.DB
}

func NewTaxonomyService(db *gorm.DB) TaxonomyService {
	return &taxonomyService{db: db}
}

func listOwned[T taxonomyKind](db *gorm.DB, userID uint) ([]T, error) {
	var rows []T
	if err := db.Where("user_id = ?", userID).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *taxonomyService) ListTags(userID uint) ([]models.Tag, error) {
	return listOwned[models.Tag](s.db, userID)
}

func (s *taxonomyService) ListIngredients(userID uint) ([]models.Ingredient, error) {
	return listOwned[models.Ingredient](s.db, userID)
}

func (s *taxonomyService) UpdateTag(userID, tagID uint, name string) (models.Tag, error) {
	var tag models.Tag
	err := s.db.Where("user_id = ?", userID).First(&tag, tagID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Tag{}, ErrTagNotFound
		}
		return models.Tag{}, err
	}
	if err := s.db.Model(&tag).Update("name", strings.TrimSpace(name)).Error; err != nil {
		return models.Tag{}, err
	}
	return tag, nil
}

func (s *taxonomyService) UpdateIngredient(userID, ingredientID uint, name string) (models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.Where("user_id = ?", userID).First(&ingredient, ingredientID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Ingredient{}, ErrIngredientNotFound
		}
		return models.Ingredient{}, err
	}
	if err := s.db.Model(&ingredient).Update("name", strings.TrimSpace(name)).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

// DeleteTag removes a tag and its recipe links. Recipes keep existing.
func (s *taxonomyService) DeleteTag(userID, tagID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.Where("user_id = ?", userID).First(&tag, tagID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTagNotFound
			}
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&tag).Error
	})
}

// DeleteIngredient removes an ingredient and its recipe links.
func (s *taxonomyService) DeleteIngredient(userID, ingredientID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ingredient models.Ingredient
		if err := tx.Where("user_id = ?", userID).First(&ingredient, ingredientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIngredientNotFound
			}
			return err
		}
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", ingredient.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&ingredient).Error
	})
}
