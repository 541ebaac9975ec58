package services

import (
	"encoding/json"
	"questlog/models"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// A single connection keeps every session on the same :memory: database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Quest{},
		&models.Challenge{},
		&models.QuestCompletion{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, xp, gold, level int) *models.User {
	t.Helper()

	user := models.User{
		Username:   username,
		Experience: xp,
		Gold:       gold,
		Level:      level,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return &user
}

func createTestQuest(t *testing.T, db *gorm.DB, id, category string, xp, gold int) *models.Quest {
	t.Helper()

	quest := models.Quest{
		ID:         id,
		Title:      id,
		Category:   category,
		XPReward:   xp,
		GoldReward: gold,
		IsActive:   true,
	}
	if err := db.Create(&quest).Error; err != nil {
		t.Fatalf("failed to create test quest: %v", err)
	}
	return &quest
}

func createTestChallenge(t *testing.T, db *gorm.DB, id, category string, xp, gold int) *models.Challenge {
	t.Helper()

	challenge := models.Challenge{
		ID:         id,
		Title:      id,
		Category:   category,
		XPReward:   xp,
		GoldReward: gold,
		IsActive:   true,
	}
	if err := db.Create(&challenge).Error; err != nil {
		t.Fatalf("failed to create test challenge: %v", err)
	}
	return &challenge
}

// setFateBlob stores a daily fate for the user dated the given day.
func setFateBlob(t *testing.T, db *gorm.DB, userID uint, date string, effect models.FateEffect) {
	t.Helper()

	blob, err := json.Marshal(models.DailyFate{Date: date, Effect: effect})
	if err != nil {
		t.Fatalf("failed to marshal fate blob: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Update("daily_fate", string(blob)).Error; err != nil {
		t.Fatalf("failed to store fate blob: %v", err)
	}
}

// fixedClock pins a service clock to a known UTC day.
var testDay = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testDay }

func getTestUser(t *testing.T, db *gorm.DB, id uint) *models.User {
	t.Helper()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	return &user
}
