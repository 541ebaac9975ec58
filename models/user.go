// models/user.go
package models

import (
	"time"
)

type User struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Username    string  `gorm:"uniqueIndex;not null" json:"username"`
	Email       *string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password    string  `gorm:"not null" json:"-"`
	DisplayName string  `json:"display_name"`
	IsGuest     bool    `gorm:"default:false" json:"is_guest"`
	IsAdmin     bool    `gorm:"default:false" json:"is_admin"`
	IsBanned    bool    `gorm:"default:false" json:"is_banned"`

	// Progression aggregate. Experience and Gold are running totals that only
	// the completion service mutates; Level never decreases.
	Experience int `gorm:"default:0" json:"experience"`
	Gold       int `gorm:"default:0" json:"gold"`
	Level      int `gorm:"default:1" json:"level"`

	// Today's fate effect, stored as a JSON blob:
	// {"date":"YYYY-MM-DD","effect":{...}}. Empty when the user never rolled.
	DailyFate string `gorm:"type:text" json:"-"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	LastLogin time.Time `json:"last_login"`

	// Relationships
	Completions []QuestCompletion `gorm:"foreignKey:UserID" json:"completions,omitempty"`
}
