package model

import "time"

// User stores Telegram user metadata and the profile the user edits.
type User struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	ChatID     int64
	FirstName  string
	Username   string
	LastSeenAt time.Time
	Profile    Profile `gorm:"embedded;embeddedPrefix:profile_"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Activities []Activity      `gorm:"foreignKey:UserID"`
	Apps       []AppConnection `gorm:"foreignKey:UserID"`
}
