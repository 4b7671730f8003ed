package model

import "time"

// Activity is one logged workout.
type Activity struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index"`
	Date        time.Time `gorm:"index"`
	Type        string
	DurationMin int
	Calories    int
	Steps       int
	DistanceKm  float64
	Notes       string
	CreatedAt   time.Time
}
