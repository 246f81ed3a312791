package models

// Tag is a user-owned label attached to recipes.
// The (user_id, name) pair is the resolution key: the same name for the
// same owner always maps to the same row.
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex:idx_tag_owner_name;not null" json:"user_id"`
	Name   string `gorm:"uniqueIndex:idx_tag_owner_name;not null" json:"name"`
}

// Ingredient is a user-owned ingredient attached to recipes.
// Same ownership and uniqueness semantics as Tag.
type Ingredient struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex:idx_ingredient_owner_name;not null" json:"user_id"`
	Name   string `gorm:"uniqueIndex:idx_ingredient_owner_name;not null" json:"name"`
}
