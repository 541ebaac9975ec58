// database/migrate.go - Database Migration Runner
package database

import (
	"log"
	"questlog/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Quest{},
		&models.Challenge{},
		&models.QuestCompletion{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates secondary indexes not covered by model tags
func createIndexes() {
	db := GetDB()

	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_level ON users(level DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_experience ON users(experience DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	// Catalog indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_quests_active ON quests(is_active)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_challenges_active ON challenges(is_active)")

	// Completion indexes; the (user_id, quest_id) unique index comes from the
	// model tag and backs the ledger's no-double-grant guarantee.
	db.Exec("CREATE INDEX IF NOT EXISTS idx_completions_user_completed_at ON quest_completions(user_id, completed_at DESC)")
}
