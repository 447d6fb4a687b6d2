package models

import "github.com/shopspring/decimal"

// Ingredient is a user-owned recipe attribute. Duplicate names are allowed,
// both across users and within one user.
type Ingredient struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"not null;size:255"`
	UserID uint   `gorm:"not null;index"`
}

// Tag is a user-owned recipe attribute with the same duplicate policy as
// Ingredient.
type Tag struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"not null;size:255"`
	UserID uint   `gorm:"not null;index"`
}

// Recipe links to tags and ingredients by ID. The linked rows must exist but
// are not required to belong to the recipe's owner.
type Recipe struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"not null;index"`
	Title       string `gorm:"not null;size:255"`
	TimeMinutes int    `gorm:"not null"`
	// Price carries at most 5 digits with 2 decimal places.
	Price       decimal.Decimal `gorm:"type:numeric;not null"`
	Link        string          `gorm:"not null;default:''"`
	ImagePath   string          `gorm:"not null;default:''"`
	Ingredients []Ingredient    `gorm:"many2many:recipe_ingredients"`
	Tags        []Tag           `gorm:"many2many:recipe_tags"`
}
