package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp builds the fiber application with the shared middleware, error
// handler and all routes registered. The caller mounts deployment-specific
// routes (static media) before listening.
func NewApp(handler *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Ladle",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
		BodyLimit:             16 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(handler.RequestLogger)
	app.Use(handler.RequestMetrics)
	RegisterRoutes(app, handler)
	return app
}

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	accounts := app.Group("/accounts")
	accounts.Post("/create/", handler.CreateAccount)
	accounts.Post("/token/", handler.CreateToken)
	accounts.Get("/me/", handler.AuthRequired, handler.GetProfile)
	accounts.Put("/me/", handler.AuthRequired, handler.UpdateProfile)
	accounts.Patch("/me/", handler.AuthRequired, handler.UpdateProfile)

	recipe := app.Group("/recipe", handler.AuthRequired)
	recipe.Get("/ingredients/", handler.ListIngredients)
	recipe.Post("/ingredients/", handler.CreateIngredient)
	recipe.Get("/tags/", handler.ListTags)
	recipe.Post("/tags/", handler.CreateTag)

	recipe.Get("/recipes/", handler.ListRecipes)
	recipe.Post("/recipes/", handler.CreateRecipe)
	recipe.Get("/recipes/:id/", handler.GetRecipe)
	recipe.Put("/recipes/:id/", handler.UpdateRecipe)
	recipe.Patch("/recipes/:id/", handler.PartialUpdateRecipe)
	recipe.Delete("/recipes/:id/", handler.DeleteRecipe)
	recipe.Post("/recipes/:id/upload-image/", handler.UploadRecipeImage)
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": message})
}
