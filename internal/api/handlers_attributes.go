package api

import (
	"strings"

	"github.com/dorazhang07/ladle/internal/db"
	"github.com/dorazhang07/ladle/internal/models"
	"github.com/gofiber/fiber/v2"
)

// Tags and ingredients share one list/create contract; the handlers below
// delegate to generic helpers parameterized by entity type.

func (handler *Handler) ListTags(c *fiber.Ctx) error {
	return listOwnedAttributes(handler, c, handler.repositories.Tags, tagResponses)
}

func (handler *Handler) CreateTag(c *fiber.Ctx) error {
	return createOwnedAttribute(handler, c, handler.repositories.Tags,
		func(name string, userID uint) models.Tag {
			return models.Tag{Name: name, UserID: userID}
		},
		func(tag models.Tag) attributeResponse {
			return attributeResponse{ID: tag.ID, Name: tag.Name}
		})
}

func (handler *Handler) ListIngredients(c *fiber.Ctx) error {
	return listOwnedAttributes(handler, c, handler.repositories.Ingredients, ingredientResponses)
}

func (handler *Handler) CreateIngredient(c *fiber.Ctx) error {
	return createOwnedAttribute(handler, c, handler.repositories.Ingredients,
		func(name string, userID uint) models.Ingredient {
			return models.Ingredient{Name: name, UserID: userID}
		},
		func(ingredient models.Ingredient) attributeResponse {
			return attributeResponse{ID: ingredient.ID, Name: ingredient.Name}
		})
}

func listOwnedAttributes[T db.OwnedAttribute](
	handler *Handler,
	c *fiber.Ctx,
	repo *db.AttributeRepository[T],
	toResponses func([]T) []attributeResponse,
) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	assignedOnly := parseBoolValue(c.Query("assigned_only"))
	attributes, err := repo.ListByOwner(user.ID, assignedOnly)
	if err != nil {
		handler.log.Error().Err(err).Msg("list attributes")
		return apiError(c, fiber.StatusInternalServerError, "failed to list")
	}
	return c.JSON(toResponses(attributes))
}

type attributePayload struct {
	Name string `json:"name"`
}

func createOwnedAttribute[T db.OwnedAttribute](
	handler *Handler,
	c *fiber.Ctx,
	repo *db.AttributeRepository[T],
	build func(name string, userID uint) T,
	toResponse func(T) attributeResponse,
) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := attributePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return apiFieldErrors(c, map[string]string{"name": "name is required"})
	}
	if len(name) > 255 {
		return apiFieldErrors(c, map[string]string{"name": "name must be at most 255 characters"})
	}

	// Owner comes from the resolved token, never from the payload.
	attribute := build(name, user.ID)
	if err := repo.Create(&attribute); err != nil {
		handler.log.Error().Err(err).Msg("create attribute")
		return apiError(c, fiber.StatusInternalServerError, "failed to create")
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(attribute))
}
