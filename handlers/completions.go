// handlers/completions.go - Quest Completion Endpoints
package handlers

import (
	"errors"
	"questlog/database"
	"questlog/middleware"
	"questlog/services"

	"github.com/gofiber/fiber/v2"
)

// QuestCompletionRequest deliberately binds only the quest id and the flag.
// Clients sometimes send xpReward/goldReward alongside; those fields are not
// even parsed — rewards are always recomputed server-side.
type QuestCompletionRequest struct {
	QuestID   string `json:"questId"`
	Completed *bool  `json:"completed"`
}

// SetQuestCompletion toggles a completion and returns the verified reward.
// POST /api/quest-completion
func SetQuestCompletion(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req QuestCompletionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	if req.QuestID == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "questId is required"})
	}
	if req.Completed == nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "completed must be a boolean"})
	}

	svc := services.NewCompletionService(database.GetDB())
	result, err := svc.SetCompletion(userID, req.QuestID, *req.Completed)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "questId is required"})
		case errors.Is(err, services.ErrQuestNotFound):
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Quest not found"})
		default:
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update completion"})
		}
	}

	var verified interface{}
	if result.Action == services.ActionInserted || result.Action == services.ActionUpdated {
		verified = fiber.Map{"xp": result.XP, "gold": result.Gold}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"action":      result.Action,
			"xp_earned":   result.XP,
			"gold_earned": result.Gold,
		},
		"verifiedRewards": verified,
	})
}

// GetQuestCompletion returns one record (?questId=) or all of the user's
// records ordered by completion time.
// GET /api/quest-completion
func GetQuestCompletion(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	svc := services.NewCompletionService(database.GetDB())

	questID := c.Query("questId")
	if questID != "" {
		record, err := svc.GetCompletion(userID, questID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch completion"})
		}
		resp := fiber.Map{
			"success":   true,
			"completed": record != nil && record.Completed,
		}
		if record != nil {
			resp["completion"] = record
		} else {
			resp["completion"] = nil
		}
		return c.JSON(resp)
	}

	records, err := svc.ListCompletions(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch completions"})
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"completions": records,
		"count":       len(records),
	})
}
