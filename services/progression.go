// services/progression.go - Per-User Progression Aggregate
package services

import (
	"math"
	"questlog/models"

	"gorm.io/gorm"
)

// ProgressionAggregator applies and reverses reward deltas against the user
// row. Methods take the caller's transaction handle so ledger and aggregate
// writes commit or roll back together. A missing user row is a no-op, not an
// error: progression is best-effort relative to completion tracking.
type ProgressionAggregator struct{}

// ApplyDelta adds a reward to the aggregate and raises the level if the new
// experience total warrants it. The additions run as in-place SQL arithmetic
// so concurrent grants on different quests never lose updates.
func (a *ProgressionAggregator) ApplyDelta(tx *gorm.DB, userID uint, delta Reward) error {
	res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"experience": gorm.Expr("experience + ?", delta.XP),
		"gold":       gorm.Expr("gold + ?", delta.Gold),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	var user models.User
	if err := tx.Select("experience", "level").First(&user, userID).Error; err != nil {
		return err
	}
	if level := LevelForExperience(user.Experience); level > user.Level {
		// The level < ? guard keeps the raise monotonic under races.
		return tx.Model(&models.User{}).
			Where("id = ? AND level < ?", userID, level).
			Update("level", level).Error
	}
	return nil
}

// ReverseDelta subtracts a previously granted reward, clamping at zero.
// Level is deliberately not recomputed downward.
func (a *ProgressionAggregator) ReverseDelta(tx *gorm.DB, userID uint, delta Reward) error {
	return tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"experience": gorm.Expr("CASE WHEN experience >= ? THEN experience - ? ELSE 0 END", delta.XP, delta.XP),
		"gold":       gorm.Expr("CASE WHEN gold >= ? THEN gold - ? ELSE 0 END", delta.Gold, delta.Gold),
	}).Error
}

// xpForNextLevel returns the cost of advancing from level to level+1.
func xpForNextLevel(level int) int {
	return int(100 * math.Pow(float64(level), 1.5))
}

// LevelForExperience derives the level a cumulative experience total earns,
// starting from level 1.
func LevelForExperience(totalXP int) int {
	level := 1
	remaining := totalXP
	for {
		cost := xpForNextLevel(level)
		if remaining < cost {
			return level
		}
		remaining -= cost
		level++
	}
}

// LevelProgress returns the experience accumulated inside the current level
// and the cost of the next one, for progress displays.
func LevelProgress(totalXP int) (into int, next int) {
	level := 1
	remaining := totalXP
	for {
		cost := xpForNextLevel(level)
		if remaining < cost {
			return remaining, cost
		}
		remaining -= cost
		level++
	}
}
