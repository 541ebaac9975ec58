// models/completion.go - Completion Ledger Record
package models

import (
	"time"
)

// QuestCompletion is the per-(user, quest) ledger record. XPEarned/GoldEarned
// snapshot exactly what was added to the user's aggregate at grant time; a
// revoke reverses that snapshot and deletes the row, so it must never drift.
type QuestCompletion struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_completions_user_quest"`
	User        *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	QuestID     string    `json:"quest_id" gorm:"not null;size:100;uniqueIndex:idx_completions_user_quest"`
	Completed   bool      `json:"completed" gorm:"default:true"`
	CompletedAt time.Time `json:"completed_at"`
	XPEarned    int       `json:"xp_earned" gorm:"default:0"`
	GoldEarned  int       `json:"gold_earned" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (QuestCompletion) TableName() string {
	return "quest_completions"
}
