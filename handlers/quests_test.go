package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"questlog/models"
)

func newCatalogApp(adminID uint) *fiber.App {
	app := fiber.New()
	authed := func(c *fiber.Ctx) error {
		if adminID != 0 {
			c.Locals("userId", float64(adminID))
		}
		return c.Next()
	}
	app.Get("/api/quests", GetQuests)
	app.Post("/api/admin/quests", authed, CreateQuest)
	app.Put("/api/admin/quests/:id", authed, UpdateQuest)
	app.Delete("/api/admin/quests/:id", authed, DeleteQuest)
	app.Post("/api/admin/challenges", authed, CreateChallenge)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("failed to parse response %q: %v", raw, err)
	}
	return resp.StatusCode, parsed
}

func seedAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()

	admin := &models.User{Username: "admin", Password: "x", DisplayName: "Admin", IsAdmin: true, Level: 1}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	return admin
}

func TestCreateQuestSlugsTitle(t *testing.T) {
	db := newHandlerTestDB(t)
	admin := seedAdmin(t, db)
	app := newCatalogApp(admin.ID)

	status, body := doJSON(t, app, "POST", "/api/admin/quests",
		`{"title":"Morning Training!","category":"might","xp_reward":50,"gold_reward":25}`)
	if status != 201 {
		t.Fatalf("expected 201, got %d: %v", status, body)
	}
	quest := body["quest"].(map[string]interface{})
	if quest["id"].(string) != "morning-training" {
		t.Fatalf("expected slug morning-training, got %v", quest["id"])
	}
}

func TestCreateQuestSuffixesSlugCollisions(t *testing.T) {
	db := newHandlerTestDB(t)
	admin := seedAdmin(t, db)
	app := newCatalogApp(admin.ID)

	ids := make([]string, 0, 3)
	for i := 0; i < 2; i++ {
		status, body := doJSON(t, app, "POST", "/api/admin/quests",
			`{"title":"Morning Training","category":"might","xp_reward":50,"gold_reward":25}`)
		if status != 201 {
			t.Fatalf("create %d: expected 201, got %d: %v", i, status, body)
		}
		ids = append(ids, body["quest"].(map[string]interface{})["id"].(string))
	}

	// Collisions are checked across both catalogs
	status, body := doJSON(t, app, "POST", "/api/admin/challenges",
		`{"title":"Morning Training","category":"might","xp_reward":200,"gold_reward":100}`)
	if status != 201 {
		t.Fatalf("challenge: expected 201, got %d: %v", status, body)
	}
	ids = append(ids, body["challenge"].(map[string]interface{})["id"].(string))

	want := []string{"morning-training", "morning-training-2", "morning-training-3"}
	for i, w := range want {
		if ids[i] != w {
			t.Fatalf("id %d: expected %q, got %q", i, w, ids[i])
		}
	}
}

func TestCreateQuestValidation(t *testing.T) {
	db := newHandlerTestDB(t)
	admin := seedAdmin(t, db)
	app := newCatalogApp(admin.ID)

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"xp_reward":50}`},
		{"negative xp", `{"title":"Bad Quest","xp_reward":-1}`},
		{"negative gold", `{"title":"Bad Quest","gold_reward":-1}`},
		{"symbols-only title", `{"title":"!!!","xp_reward":10}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := doJSON(t, app, "POST", "/api/admin/quests", tc.body)
			if status != 400 {
				t.Fatalf("expected 400, got %d: %v", status, body)
			}
		})
	}
}

func TestUpdateQuestPartial(t *testing.T) {
	db := newHandlerTestDB(t)
	admin := seedAdmin(t, db)
	app := newCatalogApp(admin.ID)

	quest := &models.Quest{ID: "morning-training", Title: "Morning Training", Category: "might", XPReward: 50, GoldReward: 25, IsActive: true}
	if err := db.Create(quest).Error; err != nil {
		t.Fatalf("failed to create quest: %v", err)
	}

	status, body := doJSON(t, app, "PUT", "/api/admin/quests/morning-training", `{"xp_reward":80}`)
	if status != 200 {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}

	var reloaded models.Quest
	if err := db.First(&reloaded, "id = ?", "morning-training").Error; err != nil {
		t.Fatalf("failed to reload quest: %v", err)
	}
	if reloaded.XPReward != 80 {
		t.Fatalf("expected xp 80, got %d", reloaded.XPReward)
	}
	// Untouched fields keep their values
	if reloaded.GoldReward != 25 || reloaded.Title != "Morning Training" {
		t.Fatalf("partial update clobbered other fields: %+v", reloaded)
	}

	status, body = doJSON(t, app, "PUT", "/api/admin/quests/nonexistent", `{"xp_reward":80}`)
	if status != 404 {
		t.Fatalf("expected 404, got %d: %v", status, body)
	}
}

func TestDeleteQuest(t *testing.T) {
	db := newHandlerTestDB(t)
	admin := seedAdmin(t, db)
	app := newCatalogApp(admin.ID)

	quest := &models.Quest{ID: "morning-training", Title: "Morning Training", XPReward: 50, IsActive: true}
	if err := db.Create(quest).Error; err != nil {
		t.Fatalf("failed to create quest: %v", err)
	}

	status, _ := doJSON(t, app, "DELETE", "/api/admin/quests/morning-training", "")
	if status != 200 {
		t.Fatalf("expected 200, got %d", status)
	}
	status, _ = doJSON(t, app, "DELETE", "/api/admin/quests/morning-training", "")
	if status != 404 {
		t.Fatalf("expected 404 on second delete, got %d", status)
	}
}

func TestGetQuestsFiltersInactive(t *testing.T) {
	db := newHandlerTestDB(t)
	app := newCatalogApp(0)

	active := &models.Quest{ID: "active-quest", Title: "Active", XPReward: 10, IsActive: true}
	inactive := &models.Quest{ID: "retired-quest", Title: "Retired", XPReward: 10}
	if err := db.Create(active).Error; err != nil {
		t.Fatalf("failed to create quest: %v", err)
	}
	if err := db.Create(inactive).Error; err != nil {
		t.Fatalf("failed to create quest: %v", err)
	}
	// The zero value would be overwritten by the column default on insert
	if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate quest: %v", err)
	}

	status, body := doJSON(t, app, "GET", "/api/quests", "")
	if status != 200 {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if body["count"].(float64) != 1 {
		t.Fatalf("expected 1 active quest, got %v", body["count"])
	}
	quests := body["quests"].([]interface{})
	if quests[0].(map[string]interface{})["id"].(string) != "active-quest" {
		t.Fatalf("expected active-quest, got %v", quests[0])
	}
}
