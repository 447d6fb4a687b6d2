package api

import (
	"errors"
	"strings"

	"github.com/dorazhang07/ladle/internal/api/metrics"
	"github.com/dorazhang07/ladle/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// recipeWritePayload serves both PUT and PATCH. Pointer fields distinguish
// an omitted key from an explicit value; full updates treat an omitted
// relation key as "clear the relation".
type recipeWritePayload struct {
	Title       *string          `json:"title"`
	TimeMinutes *int             `json:"time_minutes"`
	Price       *decimal.Decimal `json:"price"`
	Link        *string          `json:"link"`
	Tags        *[]uint          `json:"tags"`
	Ingredients *[]uint          `json:"ingredients"`
}

func (handler *Handler) ListRecipes(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	tagIDs, err := parseIDListQuery(c.Query("tags"))
	if err != nil {
		return apiFieldErrors(c, map[string]string{"tags": "tags must be a comma-separated list of ids"})
	}
	ingredientIDs, err := parseIDListQuery(c.Query("ingredients"))
	if err != nil {
		return apiFieldErrors(c, map[string]string{"ingredients": "ingredients must be a comma-separated list of ids"})
	}

	recipes, err := handler.repositories.Recipes.ListByOwner(user.ID, tagIDs, ingredientIDs)
	if err != nil {
		handler.log.Error().Err(err).Msg("list recipes")
		return apiError(c, fiber.StatusInternalServerError, "failed to list recipes")
	}

	summaries := make([]recipeSummaryResponse, 0, len(recipes))
	for _, recipe := range recipes {
		summaries = append(summaries, handler.newRecipeSummary(recipe))
	}
	return c.JSON(summaries)
}

func (handler *Handler) GetRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recipe, ok, err := handler.findOwnedRecipe(c, user)
	if err != nil {
		return err
	}
	if !ok {
		return apiError(c, fiber.StatusNotFound, "recipe not found")
	}
	return c.JSON(handler.newRecipeDetail(recipe))
}

func (handler *Handler) CreateRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := recipeWritePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if fields := validateRecipeScalars(payload); fields != nil {
		return apiFieldErrors(c, fields)
	}

	tags, ingredients, fields, err := handler.resolveAssociations(payload.Tags, payload.Ingredients)
	if err != nil {
		handler.log.Error().Err(err).Msg("resolve recipe associations")
		return apiError(c, fiber.StatusInternalServerError, "failed to create recipe")
	}
	if fields != nil {
		return apiFieldErrors(c, fields)
	}

	recipe := models.Recipe{
		UserID:      user.ID,
		Title:       strings.TrimSpace(*payload.Title),
		TimeMinutes: *payload.TimeMinutes,
		Price:       *payload.Price,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if payload.Link != nil {
		recipe.Link = strings.TrimSpace(*payload.Link)
	}

	if err := handler.repositories.Recipes.Create(&recipe); err != nil {
		handler.log.Error().Err(err).Msg("create recipe")
		return apiError(c, fiber.StatusInternalServerError, "failed to create recipe")
	}

	metrics.RecipesCreatedTotal.Inc()
	return c.Status(fiber.StatusCreated).JSON(handler.newRecipeDetail(recipe))
}

// UpdateRecipe implements PUT: every mutable field is replaced, and an
// omitted tags or ingredients key clears that relation entirely.
func (handler *Handler) UpdateRecipe(c *fiber.Ctx) error {
	return handler.applyRecipeUpdate(c, false)
}

// PartialUpdateRecipe implements PATCH: only supplied fields change.
func (handler *Handler) PartialUpdateRecipe(c *fiber.Ctx) error {
	return handler.applyRecipeUpdate(c, true)
}

func (handler *Handler) applyRecipeUpdate(c *fiber.Ctx, partial bool) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recipe, ok, err := handler.findOwnedRecipe(c, user)
	if err != nil {
		return err
	}
	if !ok {
		return apiError(c, fiber.StatusNotFound, "recipe not found")
	}

	payload := recipeWritePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if !partial {
		if fields := validateRecipeScalars(payload); fields != nil {
			return apiFieldErrors(c, fields)
		}
	} else if fields := validateSuppliedRecipeScalars(payload); fields != nil {
		return apiFieldErrors(c, fields)
	}

	tags, ingredients, fields, err := handler.resolveAssociations(payload.Tags, payload.Ingredients)
	if err != nil {
		handler.log.Error().Err(err).Msg("resolve recipe associations")
		return apiError(c, fiber.StatusInternalServerError, "failed to update recipe")
	}
	if fields != nil {
		return apiFieldErrors(c, fields)
	}

	changes := map[string]any{}
	if payload.Title != nil {
		changes["title"] = strings.TrimSpace(*payload.Title)
	}
	if payload.TimeMinutes != nil {
		changes["time_minutes"] = *payload.TimeMinutes
	}
	if payload.Price != nil {
		changes["price"] = *payload.Price
	}
	if payload.Link != nil {
		changes["link"] = strings.TrimSpace(*payload.Link)
	} else if !partial {
		changes["link"] = ""
	}

	var tagsReplacement *[]models.Tag
	var ingredientsReplacement *[]models.Ingredient
	if payload.Tags != nil || !partial {
		tagsReplacement = &tags
	}
	if payload.Ingredients != nil || !partial {
		ingredientsReplacement = &ingredients
	}

	if err := handler.repositories.Recipes.Update(&recipe, changes, tagsReplacement, ingredientsReplacement); err != nil {
		handler.log.Error().Err(err).Msg("update recipe")
		return apiError(c, fiber.StatusInternalServerError, "failed to update recipe")
	}

	updated, err := handler.repositories.Recipes.FindByIDForOwner(recipe.ID, user.ID)
	if err != nil {
		handler.log.Error().Err(err).Msg("reload recipe")
		return apiError(c, fiber.StatusInternalServerError, "failed to update recipe")
	}
	return c.JSON(handler.newRecipeDetail(updated))
}

func (handler *Handler) DeleteRecipe(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	recipe, ok, err := handler.findOwnedRecipe(c, user)
	if err != nil {
		return err
	}
	if !ok {
		return apiError(c, fiber.StatusNotFound, "recipe not found")
	}

	if err := handler.repositories.Recipes.Delete(&recipe); err != nil {
		handler.log.Error().Err(err).Msg("delete recipe")
		return apiError(c, fiber.StatusInternalServerError, "failed to delete recipe")
	}

	if recipe.ImagePath != "" {
		if err := handler.images.Delete(recipe.ImagePath); err != nil {
			handler.log.Warn().Err(err).Str("path", recipe.ImagePath).Msg("release recipe image")
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// findOwnedRecipe loads the recipe scoped to the caller. A recipe owned by
// another user reports not-found, exactly like a missing row.
func (handler *Handler) findOwnedRecipe(c *fiber.Ctx, user models.User) (models.Recipe, bool, error) {
	recipeID, err := parseIDParam(c)
	if err != nil {
		return models.Recipe{}, false, apiError(c, fiber.StatusBadRequest, "invalid recipe id")
	}

	recipe, err := handler.repositories.Recipes.FindByIDForOwner(recipeID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Recipe{}, false, nil
		}
		handler.log.Error().Err(err).Msg("load recipe")
		return models.Recipe{}, false, apiError(c, fiber.StatusInternalServerError, "failed to load recipe")
	}
	return recipe, true, nil
}

// validateRecipeScalars enforces the full-update contract: title,
// time_minutes and price are all required.
func validateRecipeScalars(payload recipeWritePayload) map[string]string {
	fields := map[string]string{}
	if payload.Title == nil || strings.TrimSpace(*payload.Title) == "" {
		fields["title"] = "title is required"
	}
	if payload.TimeMinutes == nil {
		fields["time_minutes"] = "time_minutes is required"
	}
	if payload.Price == nil {
		fields["price"] = "price is required"
	}
	if len(fields) > 0 {
		return fields
	}
	return validateSuppliedRecipeScalars(payload)
}

func validateSuppliedRecipeScalars(payload recipeWritePayload) map[string]string {
	fields := map[string]string{}
	if payload.Title != nil && strings.TrimSpace(*payload.Title) == "" {
		fields["title"] = "title must not be blank"
	}
	if payload.TimeMinutes != nil && *payload.TimeMinutes < 0 {
		fields["time_minutes"] = "time_minutes must be at least 0"
	}
	if payload.Price != nil && !isValidPrice(*payload.Price) {
		fields["price"] = "price must have at most 5 digits and 2 decimal places"
	}
	if len(fields) > 0 {
		return fields
	}
	return nil
}

// resolveAssociations exchanges ID lists for rows. The IDs must exist;
// cross-user references are allowed, matching the stored behaviour clients
// depend on.
func (handler *Handler) resolveAssociations(tagIDs *[]uint, ingredientIDs *[]uint) ([]models.Tag, []models.Ingredient, map[string]string, error) {
	tags := []models.Tag{}
	ingredients := []models.Ingredient{}

	if tagIDs != nil && len(*tagIDs) > 0 {
		found, err := handler.repositories.Tags.FindByIDs(*tagIDs)
		if err != nil {
			return nil, nil, nil, err
		}
		if len(found) != len(uniqueIDs(*tagIDs)) {
			return nil, nil, map[string]string{"tags": "unknown tag id"}, nil
		}
		tags = found
	}
	if ingredientIDs != nil && len(*ingredientIDs) > 0 {
		found, err := handler.repositories.Ingredients.FindByIDs(*ingredientIDs)
		if err != nil {
			return nil, nil, nil, err
		}
		if len(found) != len(uniqueIDs(*ingredientIDs)) {
			return nil, nil, map[string]string{"ingredients": "unknown ingredient id"}, nil
		}
		ingredients = found
	}
	return tags, ingredients, nil, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	return unique
}
