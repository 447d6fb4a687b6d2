package db

import (
	"fmt"

	"github.com/dorazhang07/ladle/internal/models"
	"gorm.io/gorm"
)

// OwnedAttribute covers the two named, user-owned recipe attributes. Both
// share the list/create contract; the differences live in AttributeConfig.
type OwnedAttribute interface {
	models.Tag | models.Ingredient
}

// AttributeConfig carries the per-entity listing behaviour: the join table
// feeding the assigned-only filter and the display ordering (empty means
// insertion order).
type AttributeConfig struct {
	JoinTable  string
	JoinColumn string
	OrderBy    string
}

func TagAttributeConfig() AttributeConfig {
	return AttributeConfig{
		JoinTable:  "recipe_tags",
		JoinColumn: "tag_id",
		OrderBy:    "name DESC",
	}
}

func IngredientAttributeConfig() AttributeConfig {
	return AttributeConfig{
		JoinTable:  "recipe_ingredients",
		JoinColumn: "ingredient_id",
	}
}

type AttributeRepository[T OwnedAttribute] struct {
	database *gorm.DB
	config   AttributeConfig
}

func NewAttributeRepository[T OwnedAttribute](database *gorm.DB, config AttributeConfig) *AttributeRepository[T] {
	return &AttributeRepository[T]{database: database, config: config}
}

// ListByOwner returns the owner's rows only. With assignedOnly set, rows not
// referenced by any recipe are filtered out.
func (repo *AttributeRepository[T]) ListByOwner(userID uint, assignedOnly bool) ([]T, error) {
	query := repo.database.Where("user_id = ?", userID)
	if assignedOnly {
		subquery := fmt.Sprintf("id IN (SELECT %s FROM %s)", repo.config.JoinColumn, repo.config.JoinTable)
		query = query.Where(subquery)
	}
	if repo.config.OrderBy != "" {
		query = query.Order(repo.config.OrderBy)
	}

	attributes := make([]T, 0)
	if err := query.Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}

func (repo *AttributeRepository[T]) Create(attribute *T) error {
	return repo.database.Create(attribute).Error
}

// FindByIDs loads the rows for the given IDs in one query. Callers compare
// the result length against the requested IDs to detect unknown references.
func (repo *AttributeRepository[T]) FindByIDs(ids []uint) ([]T, error) {
	attributes := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return attributes, nil
	}
	if err := repo.database.Where("id IN ?", ids).Find(&attributes).Error; err != nil {
		return nil, err
	}
	return attributes, nil
}
