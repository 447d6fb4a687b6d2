package db

import (
	"github.com/dorazhang07/ladle/internal/models"
	"gorm.io/gorm"
)

type Repositories struct {
	Users       *UserRepository
	Tokens      *TokenRepository
	Tags        *AttributeRepository[models.Tag]
	Ingredients *AttributeRepository[models.Ingredient]
	Recipes     *RecipeRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Tokens:      NewTokenRepository(database),
		Tags:        NewAttributeRepository[models.Tag](database, TagAttributeConfig()),
		Ingredients: NewAttributeRepository[models.Ingredient](database, IngredientAttributeConfig()),
		Recipes:     NewRecipeRepository(database),
	}
}
