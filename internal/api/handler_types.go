package api

import (
	"github.com/dorazhang07/ladle/internal/db"
	"github.com/dorazhang07/ladle/internal/models"
	"github.com/dorazhang07/ladle/internal/services"
	"github.com/dorazhang07/ladle/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const contextUserKey = "ladle_user"

type Handler struct {
	db           *gorm.DB
	repositories *db.Repositories
	authService  *services.AuthService
	images       storage.ImageStore
	log          zerolog.Logger
}

func NewHandler(database *gorm.DB, images storage.ImageStore, policy services.PasswordPolicy, log zerolog.Logger) *Handler {
	repositories := db.NewRepositories(database)
	return &Handler{
		db:           database,
		repositories: repositories,
		authService:  services.NewAuthService(repositories.Users, repositories.Tokens, policy),
		images:       images,
		log:          log,
	}
}

func currentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(contextUserKey).(models.User)
	return user, ok
}
