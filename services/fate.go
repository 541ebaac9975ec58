// services/fate.go - Daily Fate Bonus
package services

import (
	"encoding/json"
	"errors"
	"math/rand"
	"questlog/models"
	"time"

	"gorm.io/gorm"
)

// Reward is an (xp, gold) amount pair.
type Reward struct {
	XP   int `json:"xp"`
	Gold int `json:"gold"`
}

// FateService resolves a user's active daily fate effect and applies it to
// base rewards. The blob is re-read on every grant; nothing about it is
// persisted downstream except the multiplied result.
type FateService struct {
	DB *gorm.DB

	// Now is overridable in tests; defaults to UTC wall clock.
	Now func() time.Time
}

func NewFateService(db *gorm.DB) *FateService {
	return &FateService{
		DB:  db,
		Now: func() time.Time { return time.Now().UTC() },
	}
}

func multiplier(v float64) *float64 { return &v }

// fateTable holds the effects a daily roll can land on.
var fateTable = []models.FateEffect{
	{Type: models.FateXPBoost, XPMultiplier: multiplier(1.5)},
	{Type: models.FateXPBoost, XPMultiplier: multiplier(2)},
	{Type: models.FateGoldBoost, GoldMultiplier: multiplier(1.5)},
	{Type: models.FateGoldBoost, GoldMultiplier: multiplier(2)},
	{Type: models.FateMixed, XPMultiplier: multiplier(1.25), GoldMultiplier: multiplier(1.25)},
	{Type: models.FateCategoryBoost, Category: "might", XPMultiplier: multiplier(2)},
	{Type: models.FateCategoryBoost, Category: "wisdom", XPMultiplier: multiplier(2)},
	{Type: models.FateCategoryBoost, Category: "vitality", GoldMultiplier: multiplier(2)},
}

// today returns the current UTC calendar day as YYYY-MM-DD.
func (s *FateService) today() string {
	return s.Now().Format("2006-01-02")
}

// ActiveEffect returns the user's fate effect for today, or nil when the user
// has no blob, the blob doesn't parse, or it is dated another day.
func (s *FateService) ActiveEffect(userID uint) (*models.FateEffect, error) {
	var user models.User
	err := s.DB.Select("daily_fate").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if user.DailyFate == "" {
		return nil, nil
	}

	var fate models.DailyFate
	if err := json.Unmarshal([]byte(user.DailyFate), &fate); err != nil {
		return nil, nil
	}
	if fate.Date != s.today() {
		return nil, nil
	}
	return &fate.Effect, nil
}

// ApplyToReward adjusts a base reward by the user's active fate effect, if
// any. Persistence errors propagate; an absent or stale effect leaves the
// base untouched.
func (s *FateService) ApplyToReward(base Reward, category string, userID uint) (Reward, error) {
	effect, err := s.ActiveEffect(userID)
	if err != nil {
		return base, err
	}
	if effect == nil {
		return base, nil
	}
	return ApplyEffect(base, category, effect), nil
}

// ApplyEffect is the pure multiplier computation. Rounding is always floor
// so the granted amount is exactly reproducible from the same snapshot.
func ApplyEffect(base Reward, category string, effect *models.FateEffect) Reward {
	applyBonus := false
	switch effect.Type {
	case models.FateXPBoost, models.FateGoldBoost, models.FateMixed:
		applyBonus = true
	case models.FateCategoryBoost:
		applyBonus = CategoryMatches(category, effect.Category)
	}
	if !applyBonus {
		return base
	}

	result := base
	if effect.XPMultiplier != nil {
		result.XP = int(float64(base.XP) * *effect.XPMultiplier)
	}
	if effect.GoldMultiplier != nil {
		result.Gold = int(float64(base.Gold) * *effect.GoldMultiplier)
	}
	return result
}

// RollDaily picks today's fate effect for the user, at most once per day.
// Returns the stored fate and whether this call performed the roll.
func (s *FateService) RollDaily(userID uint) (*models.DailyFate, bool, error) {
	var user models.User
	if err := s.DB.Select("id", "daily_fate").First(&user, userID).Error; err != nil {
		return nil, false, err
	}

	if user.DailyFate != "" {
		var existing models.DailyFate
		if err := json.Unmarshal([]byte(user.DailyFate), &existing); err == nil && existing.Date == s.today() {
			return &existing, false, nil
		}
	}

	fate := models.DailyFate{
		Date:   s.today(),
		Effect: fateTable[rand.Intn(len(fateTable))],
	}
	blob, err := json.Marshal(fate)
	if err != nil {
		return nil, false, err
	}
	if err := s.DB.Model(&models.User{}).Where("id = ?", userID).
		Update("daily_fate", string(blob)).Error; err != nil {
		return nil, false, err
	}
	return &fate, true, nil
}
