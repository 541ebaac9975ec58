// cmd/quest-importer - bulk-imports quest/challenge definitions from JSON
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"questlog/database"
	"questlog/models"

	"github.com/gosimple/slug"
	"github.com/joho/godotenv"
	"gorm.io/gorm/clause"
)

type importFile struct {
	Quests     []importDef `json:"quests"`
	Challenges []importDef `json:"challenges"`
}

type importDef struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	XPReward    int    `json:"xp_reward"`
	GoldReward  int    `json:"gold_reward"`
	Icon        string `json:"icon"`
}

func main() {
	path := flag.String("file", "./quests.json", "path to the catalog JSON file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	db := database.GetDB()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal("Failed to read JSON file:", err)
	}

	var file importFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Fatal("Failed to parse JSON:", err)
	}

	fmt.Printf("Found %d quests, %d challenges\n\n", len(file.Quests), len(file.Challenges))

	imported := 0
	for _, def := range file.Quests {
		quest := models.Quest{
			ID:          defID(def),
			Title:       def.Title,
			Description: def.Description,
			Category:    def.Category,
			XPReward:    def.XPReward,
			GoldReward:  def.GoldReward,
			Icon:        def.Icon,
			IsActive:    true,
		}
		if quest.ID == "" || quest.Title == "" {
			log.Printf("Skipping quest with empty id/title: %+v", def)
			continue
		}
		// Reward edits apply to future grants only; existing completion
		// snapshots are untouched.
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "category", "xp_reward", "gold_reward", "icon"}),
		}).Create(&quest).Error; err != nil {
			log.Printf("Error importing quest %s: %v", quest.ID, err)
			continue
		}
		imported++
	}

	for _, def := range file.Challenges {
		challenge := models.Challenge{
			ID:          defID(def),
			Title:       def.Title,
			Description: def.Description,
			Category:    def.Category,
			XPReward:    def.XPReward,
			GoldReward:  def.GoldReward,
			Icon:        def.Icon,
			IsActive:    true,
		}
		if challenge.ID == "" || challenge.Title == "" {
			log.Printf("Skipping challenge with empty id/title: %+v", def)
			continue
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "category", "xp_reward", "gold_reward", "icon"}),
		}).Create(&challenge).Error; err != nil {
			log.Printf("Error importing challenge %s: %v", challenge.ID, err)
			continue
		}
		imported++
	}

	fmt.Printf("\n✓ Imported %d catalog entries\n", imported)

	var questCount, challengeCount int64
	db.Model(&models.Quest{}).Count(&questCount)
	db.Model(&models.Challenge{}).Count(&challengeCount)
	fmt.Printf("✓ Catalog now holds %d quests, %d challenges\n", questCount, challengeCount)
}

func defID(def importDef) string {
	if def.ID != "" {
		return slug.Make(def.ID)
	}
	return slug.Make(def.Title)
}
