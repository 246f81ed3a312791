package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe represents a recipe owned by a single user.
// Tags and ingredients are many-to-many and scoped to the same owner.
type Recipe struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"index;not null" json:"user_id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Link        string          `json:"link"`
	Image       string          `json:"image"`
	Tags        []Tag           `gorm:"many2many:recipe_tags;" json:"tags"`
	Ingredients []Ingredient    `gorm:"many2many:recipe_ingredients;" json:"ingredients"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
