package api

import (
	"bytes"
	"errors"
	"io"

	"github.com/dorazhang07/ladle/internal/api/metrics"
	"github.com/dorazhang07/ladle/internal/storage"
	"github.com/gofiber/fiber/v2"
)

// UploadRecipeImage accepts a multipart "image" field, validates that the
// bytes decode as an image, stores the file and records its path on the
// recipe. A rejected upload leaves any existing image untouched.
func (handler *Handler) UploadRecipeImage(c *fiber.Ctx) error {
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

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return apiFieldErrors(c, map[string]string{"image": "image file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apiFieldErrors(c, map[string]string{"image": "image file is unreadable"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return apiFieldErrors(c, map[string]string{"image": "image file is unreadable"})
	}

	ext, err := storage.SniffImage(data)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			metrics.ImageUploadsTotal.WithLabelValues("invalid").Inc()
			return apiFieldErrors(c, map[string]string{"image": "upload a valid image"})
		}
		handler.log.Error().Err(err).Msg("sniff image")
		return apiError(c, fiber.StatusInternalServerError, "failed to store image")
	}

	storagePath, err := handler.images.Store(ext, bytes.NewReader(data))
	if err != nil {
		handler.log.Error().Err(err).Msg("store image")
		return apiError(c, fiber.StatusInternalServerError, "failed to store image")
	}

	previousPath := recipe.ImagePath
	if err := handler.repositories.Recipes.UpdateImagePath(recipe.ID, storagePath); err != nil {
		if deleteErr := handler.images.Delete(storagePath); deleteErr != nil {
			handler.log.Warn().Err(deleteErr).Str("path", storagePath).Msg("release orphaned image")
		}
		handler.log.Error().Err(err).Msg("persist image path")
		return apiError(c, fiber.StatusInternalServerError, "failed to store image")
	}

	// The replaced file is released once the new path is durably recorded.
	if previousPath != "" {
		if err := handler.images.Delete(previousPath); err != nil {
			handler.log.Warn().Err(err).Str("path", previousPath).Msg("release replaced image")
		}
	}

	metrics.ImageUploadsTotal.WithLabelValues("ok").Inc()
	return c.JSON(fiber.Map{
		"id":    recipe.ID,
		"image": handler.images.URL(storagePath),
	})
}
