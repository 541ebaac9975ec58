// services/reward_catalog.go - Reward Catalog Lookup
package services

import (
	"errors"
	"questlog/models"
	"strings"

	"gorm.io/gorm"
)

var ErrQuestNotFound = errors.New("quest not found")

// RewardDefinition is the server-side ground truth for what a completion is
// worth. Client-supplied reward amounts are never consulted.
type RewardDefinition struct {
	ID       string
	BaseXP   int
	BaseGold int
	Category string
}

// RewardCatalog resolves quest and challenge definitions by id. Read-only.
type RewardCatalog struct {
	DB *gorm.DB
}

func NewRewardCatalog(db *gorm.DB) *RewardCatalog {
	return &RewardCatalog{DB: db}
}

// Lookup tries the quest catalog first, then challenges. First match wins.
func (rc *RewardCatalog) Lookup(id string) (*RewardDefinition, error) {
	var quest models.Quest
	err := rc.DB.First(&quest, "id = ?", id).Error
	if err == nil {
		return &RewardDefinition{
			ID:       quest.ID,
			BaseXP:   quest.XPReward,
			BaseGold: quest.GoldReward,
			Category: NormalizeCategory(quest.Category),
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var challenge models.Challenge
	err = rc.DB.First(&challenge, "id = ?", id).Error
	if err == nil {
		return &RewardDefinition{
			ID:       challenge.ID,
			BaseXP:   challenge.XPReward,
			BaseGold: challenge.GoldReward,
			Category: NormalizeCategory(challenge.Category),
		}, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuestNotFound
	}
	return nil, err
}

// NormalizeCategory lowercases and trims a category, falling back to
// "general" when empty.
func NormalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return "general"
	}
	return category
}

// CategoryMatches reports whether a reward category satisfies a fate effect's
// category. The rule is a case-insensitive substring test, not equality, so
// an effect for "might" covers "might" and "might-training" alike.
func CategoryMatches(rewardCategory, effectCategory string) bool {
	effectCategory = strings.ToLower(strings.TrimSpace(effectCategory))
	if effectCategory == "" {
		return false
	}
	return strings.Contains(NormalizeCategory(rewardCategory), effectCategory)
}
