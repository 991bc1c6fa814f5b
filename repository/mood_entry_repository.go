package repository

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/camden-git/mindwellbackend/models"
)

// MoodEntryRepository handles database operations for MoodEntry entities
type MoodEntryRepository struct {
	DB *gorm.DB
}

// NewMoodEntryRepository creates a new instance of MoodEntryRepository
func NewMoodEntryRepository(db *gorm.DB) *MoodEntryRepository {
	return &MoodEntryRepository{DB: db}
}

// Create appends a new mood entry. The submission time is stamped here when
// the caller did not supply one, and an empty user id falls back to the
// default identity.
func (r *MoodEntryRepository) Create(entry *models.MoodEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if strings.TrimSpace(entry.UserID) == "" {
		entry.UserID = models.DefaultUserID
	}

	err := r.DB.Create(entry).Error
	if err != nil {
		return fmt.Errorf("failed to create mood entry for user %s: %w", entry.UserID, err)
	}
	return nil
}

// ListByUserID retrieves all entries for a user in insertion order
func (r *MoodEntryRepository) ListByUserID(userID string) ([]models.MoodEntry, error) {
	if strings.TrimSpace(userID) == "" {
		userID = models.DefaultUserID
	}
	var entries []models.MoodEntry
	err := r.DB.Where("user_id = ?", userID).Order("id ASC").Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries for user %s: %w", userID, err)
	}
	return entries, nil
}

// CountByUserID returns the number of entries stored for a user
func (r *MoodEntryRepository) CountByUserID(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.MoodEntry{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count mood entries for user %s: %w", userID, err)
	}
	return count, nil
}
