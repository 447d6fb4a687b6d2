package db

import (
	"github.com/dorazhang07/ladle/internal/models"
	"gorm.io/gorm"
)

type RecipeRepository struct {
	database *gorm.DB
}

func NewRecipeRepository(database *gorm.DB) *RecipeRepository {
	return &RecipeRepository{database: database}
}

// ListByOwner returns the owner's recipes with associations loaded. ID
// filters use OR semantics within one list and AND semantics across the two
// lists: with both present a recipe must match at least one tag ID and at
// least one ingredient ID.
func (repo *RecipeRepository) ListByOwner(userID uint, tagIDs []uint, ingredientIDs []uint) ([]models.Recipe, error) {
	query := repo.database.
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID)

	if len(tagIDs) > 0 {
		query = query.Where("id IN (SELECT recipe_id FROM recipe_tags WHERE tag_id IN ?)", tagIDs)
	}
	if len(ingredientIDs) > 0 {
		query = query.Where("id IN (SELECT recipe_id FROM recipe_ingredients WHERE ingredient_id IN ?)", ingredientIDs)
	}

	recipes := make([]models.Recipe, 0)
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// FindByIDForOwner scopes the lookup to the owner. A recipe belonging to
// someone else comes back as gorm.ErrRecordNotFound, indistinguishable from
// a missing row.
func (repo *RecipeRepository) FindByIDForOwner(recipeID uint, userID uint) (models.Recipe, error) {
	var recipe models.Recipe
	if err := repo.database.
		Preload("Tags").
		Preload("Ingredients").
		Where("id = ? AND user_id = ?", recipeID, userID).
		First(&recipe).Error; err != nil {
		return models.Recipe{}, err
	}
	return recipe, nil
}

func (repo *RecipeRepository) Create(recipe *models.Recipe) error {
	return repo.database.Create(recipe).Error
}

// Update applies scalar field changes and, for each non-nil association
// slice, replaces that relation wholesale. Everything happens in one
// transaction so concurrent readers never see a half-replaced set.
func (repo *RecipeRepository) Update(
	recipe *models.Recipe,
	fields map[string]any,
	tags *[]models.Tag,
	ingredients *[]models.Ingredient,
) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(recipe).Updates(fields).Error; err != nil {
				return err
			}
		}
		if tags != nil {
			if err := replaceAssociation(tx, recipe, "Tags", *tags); err != nil {
				return err
			}
			recipe.Tags = *tags
		}
		if ingredients != nil {
			if err := replaceAssociation(tx, recipe, "Ingredients", *ingredients); err != nil {
				return err
			}
			recipe.Ingredients = *ingredients
		}
		return nil
	})
}

// replaceAssociation swaps a relation set wholesale; an empty replacement
// clears it.
func replaceAssociation[T any](tx *gorm.DB, recipe *models.Recipe, name string, values []T) error {
	association := tx.Model(recipe).Association(name)
	if len(values) == 0 {
		return association.Clear()
	}
	return association.Replace(values)
}

func (repo *RecipeRepository) UpdateImagePath(recipeID uint, imagePath string) error {
	return repo.database.Model(&models.Recipe{}).
		Where("id = ?", recipeID).
		Update("image_path", imagePath).Error
}

func (repo *RecipeRepository) Delete(recipe *models.Recipe) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(recipe).Error
	})
}
