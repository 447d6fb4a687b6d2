package api

import (
	"path/filepath"
	"testing"

	"github.com/dorazhang07/ladle/internal/db"
	"github.com/dorazhang07/ladle/internal/services"
	"github.com/dorazhang07/ladle/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	app, database, _ := newTestAppWithMedia(t)
	return app, database
}

func newTestAppWithMedia(t *testing.T) (*fiber.App, *gorm.DB, string) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "ladle-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	mediaDir := t.TempDir()
	images := storage.NewDiskStore(mediaDir, "/media")
	policy := services.NewPasswordPolicy(services.DefaultMinPasswordLength)
	handler := NewHandler(database, images, policy, zerolog.Nop())

	return NewApp(handler), database, mediaDir
}
