// handlers/progression.go
package handlers

import (
	"questlog/database"
	"questlog/middleware"
	"questlog/models"
	"questlog/services"

	"github.com/gofiber/fiber/v2"
)

// GetProgression returns the user's aggregate progression.
// GET /api/progression
func GetProgression(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	db := database.GetDB()
	var user models.User

	if err := db.First(&user, userID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "User not found"})
	}

	var completions int64
	db.Model(&models.QuestCompletion{}).Where("user_id = ?", userID).Count(&completions)

	intoLevel, nextLevel := services.LevelProgress(user.Experience)
	progress := 0.0
	if nextLevel > 0 {
		progress = float64(intoLevel) / float64(nextLevel) * 100
	}

	return c.JSON(fiber.Map{
		"success":          true,
		"level":            user.Level,
		"experience":       user.Experience,
		"gold":             user.Gold,
		"xp_into_level":    intoLevel,
		"xp_to_next_level": nextLevel,
		"progress_percent": progress,
		"completed_quests": completions,
	})
}
