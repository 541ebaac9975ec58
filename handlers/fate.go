// handlers/fate.go - Daily Fate Endpoints
package handlers

import (
	"questlog/database"
	"questlog/middleware"
	"questlog/services"

	"github.com/gofiber/fiber/v2"
)

// GetFate returns the user's active fate effect for today, or null.
// GET /api/fate
func GetFate(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	svc := services.NewFateService(database.GetDB())
	effect, err := svc.ActiveEffect(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch fate"})
	}

	if effect == nil {
		return c.JSON(fiber.Map{"success": true, "fate": nil})
	}
	return c.JSON(fiber.Map{"success": true, "fate": effect})
}

// RollFate rolls today's fate effect. Rolling again the same day returns the
// existing effect unchanged.
// POST /api/fate/roll
func RollFate(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	svc := services.NewFateService(database.GetDB())
	fate, rolled, err := svc.RollDaily(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to roll fate"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"rolled":  rolled,
		"date":    fate.Date,
		"fate":    fate.Effect,
	})
}
