// handlers/quests.go - Quest & Challenge Catalog
package handlers

import (
	"errors"
	"fmt"
	"questlog/database"
	"questlog/middleware"
	"questlog/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type CreateQuestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	XPReward    int    `json:"xp_reward"`
	GoldReward  int    `json:"gold_reward"`
	Icon        string `json:"icon"`
	IsActive    *bool  `json:"is_active"`
}

type UpdateQuestRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	XPReward    *int    `json:"xp_reward"`
	GoldReward  *int    `json:"gold_reward"`
	Icon        *string `json:"icon"`
	IsActive    *bool   `json:"is_active"`
}

// GetQuests lists active quests
// GET /api/quests
func GetQuests(c *fiber.Ctx) error {
	db := database.GetDB()

	var quests []models.Quest
	if err := db.Where("is_active = ?", true).
		Order("category, title").
		Find(&quests).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch quests"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"quests":  quests,
		"count":   len(quests),
	})
}

// GetChallenges lists active challenges
// GET /api/challenges
func GetChallenges(c *fiber.Ctx) error {
	db := database.GetDB()

	var challenges []models.Challenge
	if err := db.Where("is_active = ?", true).
		Order("category, title").
		Find(&challenges).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch challenges"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"challenges": challenges,
		"count":      len(challenges),
	})
}

// questSlug derives a unique catalog id from a title, suffixing on collision.
// exists is checked across both catalogs so lookups stay unambiguous.
func questSlug(db *gorm.DB, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		return "", errors.New("title produces an empty id")
	}

	candidate := base
	for i := 2; ; i++ {
		var quest models.Quest
		questErr := db.Select("id").First(&quest, "id = ?", candidate).Error
		var challenge models.Challenge
		challengeErr := db.Select("id").First(&challenge, "id = ?", candidate).Error

		if errors.Is(questErr, gorm.ErrRecordNotFound) && errors.Is(challengeErr, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if questErr != nil && !errors.Is(questErr, gorm.ErrRecordNotFound) {
			return "", questErr
		}
		if challengeErr != nil && !errors.Is(challengeErr, gorm.ErrRecordNotFound) {
			return "", challengeErr
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// CreateQuest creates a catalog quest (admin only)
// POST /api/admin/quests
func CreateQuest(c *fiber.Ctx) error {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req CreateQuestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Title is required"})
	}
	if req.XPReward < 0 || req.GoldReward < 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Rewards must be non-negative"})
	}

	db := database.GetDB()
	id, err := questSlug(db, req.Title)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid title"})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	quest := models.Quest{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		XPReward:    req.XPReward,
		GoldReward:  req.GoldReward,
		Icon:        req.Icon,
		IsActive:    isActive,
		CreatedBy:   &adminID,
	}

	if err := db.Create(&quest).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create quest"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "quest": quest})
}

// UpdateQuest updates a catalog quest (admin only). Reward edits affect
// future grants only; existing ledger snapshots are never rewritten.
// PUT /api/admin/quests/:id
func UpdateQuest(c *fiber.Ctx) error {
	id := c.Params("id")
	db := database.GetDB()

	var quest models.Quest
	if err := db.First(&quest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "error": "Quest not found"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to fetch quest"})
	}

	var req UpdateQuestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.XPReward != nil {
		if *req.XPReward < 0 {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Rewards must be non-negative"})
		}
		updates["xp_reward"] = *req.XPReward
	}
	if req.GoldReward != nil {
		if *req.GoldReward < 0 {
			return c.Status(400).JSON(fiber.Map{"success": false, "error": "Rewards must be non-negative"})
		}
		updates["gold_reward"] = *req.GoldReward
	}
	if req.Icon != nil {
		updates["icon"] = *req.Icon
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := db.Model(&quest).Updates(updates).Error; err != nil {
			return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to update quest"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "quest": quest})
}

// DeleteQuest removes a catalog quest (admin only). Completion records keep
// their snapshots, so revokes of an already-deleted quest still reverse the
// exact granted amount.
// DELETE /api/admin/quests/:id
func DeleteQuest(c *fiber.Ctx) error {
	id := c.Params("id")
	db := database.GetDB()

	res := db.Delete(&models.Quest{}, "id = ?", id)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete quest"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Quest not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// CreateChallenge creates a catalog challenge (admin only)
// POST /api/admin/challenges
func CreateChallenge(c *fiber.Ctx) error {
	adminID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Unauthorized"})
	}

	var req CreateQuestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid request body"})
	}
	if req.Title == "" {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Title is required"})
	}
	if req.XPReward < 0 || req.GoldReward < 0 {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Rewards must be non-negative"})
	}

	db := database.GetDB()
	id, err := questSlug(db, req.Title)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"success": false, "error": "Invalid title"})
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	challenge := models.Challenge{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		XPReward:    req.XPReward,
		GoldReward:  req.GoldReward,
		Icon:        req.Icon,
		IsActive:    isActive,
		CreatedBy:   &adminID,
	}

	if err := db.Create(&challenge).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to create challenge"})
	}

	return c.Status(201).JSON(fiber.Map{"success": true, "challenge": challenge})
}

// DeleteChallenge removes a catalog challenge (admin only)
// DELETE /api/admin/challenges/:id
func DeleteChallenge(c *fiber.Ctx) error {
	id := c.Params("id")
	db := database.GetDB()

	res := db.Delete(&models.Challenge{}, "id = ?", id)
	if res.Error != nil {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Failed to delete challenge"})
	}
	if res.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{"success": false, "error": "Challenge not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
