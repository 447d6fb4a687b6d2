package db

import (
	"errors"
	"testing"

	"github.com/dorazhang07/ladle/internal/models"
	"gorm.io/gorm"
)

func TestRecipeListByOwnerScopesAndPreloads(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)
	user := newTestDatabaseUser(t, database, "test@example.com")
	other := newTestDatabaseUser(t, database, "other@example.com")
	repo := NewRecipeRepository(database)

	tag := models.Tag{Name: "Vegan", UserID: user.ID}
	if err := database.Create(&tag).Error; err != nil {
		t.Fatalf("create tag fixture: %v", err)
	}
	mine := createTestRecipeRow(t, database, user.ID, "Lentil soup")
	if err := database.Model(&mine).Association("Tags").Append(&tag); err != nil {
		t.Fatalf("assign tag: %v", err)
	}
	createTestRecipeRow(t, database, other.ID, "Beef stew")

	recipes, err := repo.ListByOwner(user.ID, nil, nil)
	if err != nil {
		t.Fatalf("list recipes: %v", err)
	}
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}
	if len(recipes[0].Tags) != 1 || recipes[0].Tags[0].Name != "Vegan" {
		t.Fatalf("expected preloaded tags, got %#v", recipes[0].Tags)
	}
}

func TestRecipeListByOwnerFiltersByAssociations(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)
	user := newTestDatabaseUser(t, database, "test@example.com")
	repo := NewRecipeRepository(database)

	tag := models.Tag{Name: "Curry", UserID: user.ID}
	ingredient := models.Ingredient{Name: "Ginger", UserID: user.ID}
	if err := database.Create(&tag).Error; err != nil {
		t.Fatalf("create tag fixture: %v", err)
	}
	if err := database.Create(&ingredient).Error; err != nil {
		t.Fatalf("create ingredient fixture: %v", err)
	}

	tagged := createTestRecipeRow(t, database, user.ID, "Chickpea curry")
	both := createTestRecipeRow(t, database, user.ID, "Ginger curry")
	createTestRecipeRow(t, database, user.ID, "Plain rice")
	if err := database.Model(&tagged).Association("Tags").Append(&tag); err != nil {
		t.Fatalf("assign tag: %v", err)
	}
	if err := database.Model(&both).Association("Tags").Append(&tag); err != nil {
		t.Fatalf("assign tag: %v", err)
	}
	if err := database.Model(&both).Association("Ingredients").Append(&ingredient); err != nil {
		t.Fatalf("assign ingredient: %v", err)
	}

	byTag, err := repo.ListByOwner(user.ID, []uint{tag.ID}, nil)
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(byTag) != 2 {
		t.Fatalf("expected 2 tagged recipes, got %d", len(byTag))
	}

	// Tag and ingredient filters combine conjunctively.
	byBoth, err := repo.ListByOwner(user.ID, []uint{tag.ID}, []uint{ingredient.ID})
	if err != nil {
		t.Fatalf("list by tag and ingredient: %v", err)
	}
	if len(byBoth) != 1 || byBoth[0].Title != "Ginger curry" {
		t.Fatalf("expected only the recipe matching both filters, got %#v", byBoth)
	}
}

func TestRecipeFindByIDForOwner(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)
	user := newTestDatabaseUser(t, database, "test@example.com")
	other := newTestDatabaseUser(t, database, "other@example.com")
	repo := NewRecipeRepository(database)

	recipe := createTestRecipeRow(t, database, user.ID, "Lentil soup")

	found, err := repo.FindByIDForOwner(recipe.ID, user.ID)
	if err != nil {
		t.Fatalf("find for owner: %v", err)
	}
	if found.ID != recipe.ID {
		t.Fatalf("found recipe %d, want %d", found.ID, recipe.ID)
	}

	if _, err := repo.FindByIDForOwner(recipe.ID, other.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("foreign owner: expected ErrRecordNotFound, got %v", err)
	}
	if _, err := repo.FindByIDForOwner(9999, user.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing row: expected ErrRecordNotFound, got %v", err)
	}
}

func TestRecipeUpdateReplacesAndClearsAssociations(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)
	user := newTestDatabaseUser(t, database, "test@example.com")
	repo := NewRecipeRepository(database)

	original := models.Tag{Name: "Dinner", UserID: user.ID}
	replacement := models.Tag{Name: "Lunch", UserID: user.ID}
	for _, tag := range []*models.Tag{&original, &replacement} {
		if err := database.Create(tag).Error; err != nil {
			t.Fatalf("create tag fixture: %v", err)
		}
	}
	recipe := createTestRecipeRow(t, database, user.ID, "Chicken tikka")
	if err := database.Model(&recipe).Association("Tags").Append(&original); err != nil {
		t.Fatalf("assign tag: %v", err)
	}

	replacementTags := []models.Tag{replacement}
	if err := repo.Update(&recipe, map[string]any{"title": "Paneer tikka"}, &replacementTags, nil); err != nil {
		t.Fatalf("update with replacement: %v", err)
	}

	reloaded, err := repo.FindByIDForOwner(recipe.ID, user.ID)
	if err != nil {
		t.Fatalf("reload recipe: %v", err)
	}
	if reloaded.Title != "Paneer tikka" {
		t.Fatalf("title not updated, got %q", reloaded.Title)
	}
	if len(reloaded.Tags) != 1 || reloaded.Tags[0].ID != replacement.ID {
		t.Fatalf("expected the replacement tag, got %#v", reloaded.Tags)
	}

	empty := []models.Tag{}
	if err := repo.Update(&recipe, nil, &empty, nil); err != nil {
		t.Fatalf("update with empty replacement: %v", err)
	}
	reloaded, err = repo.FindByIDForOwner(recipe.ID, user.ID)
	if err != nil {
		t.Fatalf("reload recipe: %v", err)
	}
	if len(reloaded.Tags) != 0 {
		t.Fatalf("empty replacement must clear the relation, got %#v", reloaded.Tags)
	}
}

func TestRecipeUpdateNilReplacementLeavesAssociations(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)
	user := newTestDatabaseUser(t, database, "test@example.com")
	repo := NewRecipeRepository(database)

	tag := models.Tag{Name: "Spicy", UserID: user.ID}
	if err := database.Create(&tag).Error; err != nil {
		t.Fatalf("create tag fixture: %v", err)
	}
	recipe := createTestRecipeRow(t, database, user.ID, "Chili")
	if err := database.Model(&recipe).Association("Tags").Append(&tag); err != nil {
		t.Fatalf("assign tag: %v", err)
	}

	if err := repo.Update(&recipe, map[string]any{"time_minutes": 45}, nil, nil); err != nil {
		t.Fatalf("update scalars only: %v", err)
	}

	reloaded, err := repo.FindByIDForOwner(recipe.ID, user.ID)
	if err != nil {
		t.Fatalf("reload recipe: %v", err)
	}
	if reloaded.TimeMinutes != 45 {
		t.Fatalf("time_minutes not updated, got %d", reloaded.TimeMinutes)
	}
	if len(reloaded.Tags) != 1 {
		t.Fatalf("nil replacement must keep the relation, got %#v", reloaded.Tags)
	}
}

func TestRecipeDeleteRemovesJoinRows(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)
	user := newTestDatabaseUser(t, database, "test@example.com")
	repo := NewRecipeRepository(database)

	tag := models.Tag{Name: "Dessert", UserID: user.ID}
	if err := database.Create(&tag).Error; err != nil {
		t.Fatalf("create tag fixture: %v", err)
	}
	recipe := createTestRecipeRow(t, database, user.ID, "Tiramisu")
	if err := database.Model(&recipe).Association("Tags").Append(&tag); err != nil {
		t.Fatalf("assign tag: %v", err)
	}

	if err := repo.Delete(&recipe); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}

	var recipeCount int64
	if err := database.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Count(&recipeCount).Error; err != nil {
		t.Fatalf("count recipes: %v", err)
	}
	if recipeCount != 0 {
		t.Fatal("recipe row still present after delete")
	}

	var joinCount int64
	if err := database.Table("recipe_tags").Where("recipe_id = ?", recipe.ID).Count(&joinCount).Error; err != nil {
		t.Fatalf("count join rows: %v", err)
	}
	if joinCount != 0 {
		t.Fatal("join rows still present after delete")
	}

	var tagCount int64
	if err := database.Model(&models.Tag{}).Where("id = ?", tag.ID).Count(&tagCount).Error; err != nil {
		t.Fatalf("count tags: %v", err)
	}
	if tagCount != 1 {
		t.Fatal("deleting a recipe must not delete its tags")
	}
}

func TestRecipeUpdateImagePath(t *testing.T) {
	t.Parallel()

	database := newTestDatabase(t)
	user := newTestDatabaseUser(t, database, "test@example.com")
	repo := NewRecipeRepository(database)

	recipe := createTestRecipeRow(t, database, user.ID, "Shakshuka")
	if err := repo.UpdateImagePath(recipe.ID, "uploads/recipe/abc.png"); err != nil {
		t.Fatalf("update image path: %v", err)
	}

	reloaded, err := repo.FindByIDForOwner(recipe.ID, user.ID)
	if err != nil {
		t.Fatalf("reload recipe: %v", err)
	}
	if reloaded.ImagePath != "uploads/recipe/abc.png" {
		t.Fatalf("image path not recorded, got %q", reloaded.ImagePath)
	}
}
