package models

import "time"

// DefaultUserID is used when a caller does not identify itself.
const DefaultUserID = "default"

// MoodEntry represents a single logged mood observation using GORM.
// It corresponds to the 'mood_entries' table. Entries are append-only:
// nothing in the core updates or deletes a stored row, so ids double as
// insertion order.
type MoodEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"not null;index;default:default" json:"user_id"`
	Emotion   string    `gorm:"not null" json:"emotion"`
	Intensity int       `gorm:"not null" json:"intensity"`
	Notes     *string   `json:"notes,omitempty"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

// TableName explicitly sets the table name for GORM.
func (MoodEntry) TableName() string {
	return "mood_entries"
}
