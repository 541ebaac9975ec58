// models/quest.go - Quest & Challenge Catalogs
package models

import (
	"time"
)

// Quest is a completable task definition with a fixed base reward. IDs are
// human-readable slugs ("morning-training") generated from the title on create.
type Quest struct {
	ID          string    `json:"id" gorm:"primaryKey;size:100"`
	Title       string    `json:"title" gorm:"not null;size:100"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"size:50;default:'general';index"`
	XPReward    int       `json:"xp_reward" gorm:"default:0"`
	GoldReward  int       `json:"gold_reward" gorm:"default:0"`
	Icon        string    `json:"icon" gorm:"size:50"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedBy   *uint     `json:"created_by" gorm:"index"`
	Creator     *User     `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Challenge is a second reward catalog for larger, usually time-bounded tasks.
// Completion lookups try quests first, then challenges.
type Challenge struct {
	ID          string     `json:"id" gorm:"primaryKey;size:100"`
	Title       string     `json:"title" gorm:"not null;size:100"`
	Description string     `json:"description" gorm:"type:text"`
	Category    string     `json:"category" gorm:"size:50;default:'general';index"`
	XPReward    int        `json:"xp_reward" gorm:"default:0"`
	GoldReward  int        `json:"gold_reward" gorm:"default:0"`
	Icon        string     `json:"icon" gorm:"size:50"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CreatedBy   *uint      `json:"created_by" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Quest) TableName() string {
	return "quests"
}

func (Challenge) TableName() string {
	return "challenges"
}
