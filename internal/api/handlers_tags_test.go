package api

import (
	"net/http"
	"testing"

	"github.com/dorazhang07/ladle/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func authorizedRequest(t *testing.T, method string, target string, payload any, authHeader string) *http.Request {
	t.Helper()

	request := jsonRequest(t, method, target, payload)
	request.Header.Set("Authorization", authHeader)
	return request
}

func createTestRecipe(t *testing.T, database *gorm.DB, user models.User, title string) models.Recipe {
	t.Helper()

	recipe := models.Recipe{
		UserID:      user.ID,
		Title:       title,
		TimeMinutes: 10,
		Price:       decimal.NewFromFloat(5.00),
	}
	if err := database.Create(&recipe).Error; err != nil {
		t.Fatalf("create recipe fixture: %v", err)
	}
	return recipe
}

func listAttributes(t *testing.T, app *fiber.App, target string, authHeader string) []map[string]any {
	t.Helper()

	request := authorizedRequest(t, http.MethodGet, target, nil, authHeader)
	response := performRequest(t, app, request)
	requireStatus(t, response, http.StatusOK)

	items := []map[string]any{}
	decodeJSONBody(t, response.Body, &items)
	return items
}

func TestListTagsRequiresAuth(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	response := performRequest(t, app, jsonRequest(t, http.MethodGet, "/recipe/tags/", nil))
	requireStatus(t, response, http.StatusUnauthorized)
}

func TestListTagsOrderedByNameDescending(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	user := createTestUser(t, database, "test@example.com", "testpassword")
	authHeader := obtainAuthHeader(t, app, "test@example.com", "testpassword")

	for _, name := range []string{"Dessert", "Vegan", "Breakfast"} {
		if err := database.Create(&models.Tag{Name: name, UserID: user.ID}).Error; err != nil {
			t.Fatalf("create tag fixture: %v", err)
		}
	}

	items := listAttributes(t, app, "/recipe/tags/", authHeader)
	if len(items) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(items))
	}
	expected := []string{"Vegan", "Dessert", "Breakfast"}
	for i, name := range expected {
		if items[i]["name"] != name {
			t.Fatalf("expected tag %q at position %d, got %#v", name, i, items[i])
		}
	}
}

func TestListTagsLimitedToUser(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	user := createTestUser(t, database, "test@example.com", "testpassword")
	other := createTestUser(t, database, "other@example.com", "testpassword")
	authHeader := obtainAuthHeader(t, app, "test@example.com", "testpassword")

	if err := database.Create(&models.Tag{Name: "Comfort Food", UserID: user.ID}).Error; err != nil {
		t.Fatalf("create tag fixture: %v", err)
	}
	if err := database.Create(&models.Tag{Name: "Fruity", UserID: other.ID}).Error; err != nil {
		t.Fatalf("create tag fixture: %v", err)
	}

	items := listAttributes(t, app, "/recipe/tags/", authHeader)
	if len(items) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(items))
	}
	if items[0]["name"] != "Comfort Food" {
		t.Fatalf("unexpected tag returned: %#v", items[0])
	}
}

func TestCreateTagForcesOwner(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	user := createTestUser(t, database, "test@example.com", "testpassword")
	authHeader := obtainAuthHeader(t, app, "test@example.com", "testpassword")

	request := authorizedRequest(t, http.MethodPost, "/recipe/tags/", map[string]string{"name": "Simple"}, authHeader)
	response := performRequest(t, app, request)
	requireStatus(t, response, http.StatusCreated)

	var tag models.Tag
	if err := database.Where("name = ?", "Simple").First(&tag).Error; err != nil {
		t.Fatalf("load created tag: %v", err)
	}
	if tag.UserID != user.ID {
		t.Fatalf("tag owner is %d, want %d", tag.UserID, user.ID)
	}
}

func TestCreateTagBlankName(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	createTestUser(t, database, "test@example.com", "testpassword")
	authHeader := obtainAuthHeader(t, app, "test@example.com", "testpassword")

	request := authorizedRequest(t, http.MethodPost, "/recipe/tags/", map[string]string{"name": "   "}, authHeader)
	response := performRequest(t, app, request)
	requireStatus(t, response, http.StatusBadRequest)

	fields := readFieldErrors(t, response.Body)
	if fields["name"] == "" {
		t.Fatalf("expected a name field error, got %#v", fields)
	}

	var count int64
	if err := database.Model(&models.Tag{}).Count(&count).Error; err != nil {
		t.Fatalf("count tags: %v", err)
	}
	if count != 0 {
		t.Fatal("rejected tag must not be persisted")
	}
}

func TestListTagsAssignedOnly(t *testing.T) {
	t.Parallel()

	app, database := newTestApp(t)
	user := createTestUser(t, database, "test@example.com", "testpassword")
	authHeader := obtainAuthHeader(t, app, "test@example.com", "testpassword")

	assigned := models.Tag{Name: "Dinner", UserID: user.ID}
	unassigned := models.Tag{Name: "Lunch", UserID: user.ID}
	if err := database.Create(&assigned).Error; err != nil {
		t.Fatalf("create tag fixture: %v", err)
	}
	if err := database.Create(&unassigned).Error; err != nil {
		t.Fatalf("create tag fixture: %v", err)
	}

	recipe := createTestRecipe(t, database, user, "Coriander eggs on toast")
	if err := database.Model(&recipe).Association("Tags").Append(&assigned); err != nil {
		t.Fatalf("assign tag to recipe: %v", err)
	}

	items := listAttributes(t, app, "/recipe/tags/?assigned_only=1", authHeader)
	if len(items) != 1 {
		t.Fatalf("expected 1 assigned tag, got %d", len(items))
	}
	if items[0]["name"] != "Dinner" {
		t.Fatalf("unexpected tag returned: %#v", items[0])
	}
}
