package services

import (
	"strings"

	"github.com/franciscosanchezn/gin-recipe-api/internal/models"
	"gorm.io/gorm"
)

// NameInput carries a single tag or ingredient name in a request payload.
type NameInput struct {
	Name string `json:"name" binding:"required"`
}

// taxonomyKind constrains the generic resolver to the two entity kinds that
// share attach-or-create semantics.
type taxonomyKind interface {
	models.Tag | models.Ingredient
}

func newTag(userID uint, name string) models.Tag {
	return models.Tag{UserID: userID, Name: name}
}

func newIngredient(userID uint, name string) models.Ingredient {
	return models.Ingredient{UserID: userID, Name: name}
}

// resolveNames maps an ordered list of names to rows of kind T owned by
// userID, creating the ones that do not exist yet. Lookups and inserts run
// on tx so they are covered by the caller's transaction and roll back with
// it. Duplicate names in the input resolve to the same single row.
func resolveNames[T taxonomyKind](tx *gorm.DB, userID uint, names []NameInput, build func(userID uint, name string) T) ([]T, error) {
	resolved := make([]T, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, item := range names {
		name := strings.TrimSpace(item.Name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		cond := build(userID, name)
		var row T
		if err := tx.Where(&cond).FirstOrCreate(&row, cond).Error; err != nil {
			return nil, err
		}
		resolved = append(resolved, row)
	}

	return resolved, nil
}
