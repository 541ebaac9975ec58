// models/fate.go - Daily Fate Bonus
package models

// Fate effect types. The three boost types apply to every reward; a
// category boost applies only when the reward's category matches.
const (
	FateXPBoost       = "xp_boost"
	FateGoldBoost     = "gold_boost"
	FateMixed         = "mixed"
	FateCategoryBoost = "category_boost"
)

// FateEffect describes a reward multiplier. Absent multipliers leave the
// corresponding amount untouched.
type FateEffect struct {
	Type           string   `json:"type"`
	Category       string   `json:"category,omitempty"`
	XPMultiplier   *float64 `json:"xp_multiplier,omitempty"`
	GoldMultiplier *float64 `json:"gold_multiplier,omitempty"`
}

// DailyFate is the JSON shape of users.daily_fate. The effect counts only
// while Date equals the current UTC calendar day.
type DailyFate struct {
	Date   string     `json:"date"`
	Effect FateEffect `json:"effect"`
}
