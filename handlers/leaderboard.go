// handlers/leaderboard.go
package handlers

import (
	"questlog/database"
	"questlog/models"
	"questlog/utils"

	"github.com/gofiber/fiber/v2"
)

// GetLeaderboard returns the global leaderboard, guests excluded.
// GET /api/leaderboard?category=level&limit=100&offset=0
func GetLeaderboard(c *fiber.Ctx) error {
	category := c.Query("category", "level")
	limit := utils.ClampInt(utils.ParseIntDefault(c.Query("limit"), 100), 1, 100)
	offset := utils.MaxInt(utils.ParseIntDefault(c.Query("offset"), 0), 0)

	var orderBy string
	switch category {
	case "xp":
		orderBy = "experience DESC, level DESC"
	case "gold":
		orderBy = "gold DESC, experience DESC"
	case "level":
		orderBy = "level DESC, experience DESC"
	default:
		category = "level"
		orderBy = "level DESC, experience DESC"
	}

	db := database.GetDB()
	var users []models.User

	if err := db.Where("is_guest = ?", false).
		Order(orderBy).
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to fetch leaderboard",
		})
	}

	// Remove sensitive data
	for i := range users {
		users[i].Password = ""
		users[i].Email = nil
		users[i].DailyFate = ""
	}

	var total int64
	db.Model(&models.User{}).Where("is_guest = ?", false).Count(&total)

	return c.JSON(fiber.Map{
		"success":  true,
		"users":    users,
		"category": category,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}
