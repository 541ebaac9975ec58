// database/seed.go - Default Catalog Seed Data
package database

import (
	"log"
	"questlog/models"
)

// SeedCatalogs inserts the starter quest and challenge catalogs when the
// tables are empty. Admin-created entries are never touched.
func SeedCatalogs() {
	db := GetDB()

	var questCount int64
	db.Model(&models.Quest{}).Count(&questCount)
	if questCount == 0 {
		quests := []models.Quest{
			{ID: "morning-training", Title: "Morning Training", Description: "Complete your morning exercise routine.", Category: "might", XPReward: 50, GoldReward: 25, Icon: "⚔️", IsActive: true},
			{ID: "read-a-chapter", Title: "Read a Chapter", Description: "Read one chapter of any book.", Category: "wisdom", XPReward: 40, GoldReward: 20, Icon: "📖", IsActive: true},
			{ID: "drink-water", Title: "Drink Water", Description: "Drink eight glasses of water today.", Category: "vitality", XPReward: 20, GoldReward: 10, Icon: "💧", IsActive: true},
			{ID: "tidy-the-keep", Title: "Tidy the Keep", Description: "Clean or organize one room.", Category: "order", XPReward: 30, GoldReward: 15, Icon: "🏰", IsActive: true},
			{ID: "early-rise", Title: "Early Rise", Description: "Get out of bed before 7am.", Category: "vitality", XPReward: 35, GoldReward: 15, Icon: "🌅", IsActive: true},
			{ID: "practice-a-craft", Title: "Practice a Craft", Description: "Spend 30 minutes on a skill you are learning.", Category: "wisdom", XPReward: 45, GoldReward: 20, Icon: "🔨", IsActive: true},
		}
		if err := db.Create(&quests).Error; err != nil {
			log.Printf("Failed to seed quests: %v", err)
		} else {
			log.Printf("✅ Seeded %d default quests", len(quests))
		}
	}

	var challengeCount int64
	db.Model(&models.Challenge{}).Count(&challengeCount)
	if challengeCount == 0 {
		challenges := []models.Challenge{
			{ID: "seven-day-streak", Title: "Seven Day Streak", Description: "Complete at least one quest every day for a week.", Category: "order", XPReward: 200, GoldReward: 100, Icon: "🔥", IsActive: true},
			{ID: "tournament-of-might", Title: "Tournament of Might", Description: "Finish three might quests in a single day.", Category: "might", XPReward: 150, GoldReward: 75, Icon: "🏆", IsActive: true},
			{ID: "scholars-vigil", Title: "Scholar's Vigil", Description: "Read every day for five days.", Category: "wisdom", XPReward: 150, GoldReward: 75, Icon: "🕯️", IsActive: true},
		}
		if err := db.Create(&challenges).Error; err != nil {
			log.Printf("Failed to seed challenges: %v", err)
		} else {
			log.Printf("✅ Seeded %d default challenges", len(challenges))
		}
	}
}
