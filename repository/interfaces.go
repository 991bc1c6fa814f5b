package repository

import (
	"github.com/camden-git/mindwellbackend/models"
)

// MoodEntryRepositoryInterface defines the methods for mood entry data
// operations. The log is append-only: once Create returns, the entry is
// visible to every subsequent ListByUserID and is never mutated.
type MoodEntryRepositoryInterface interface {
	Create(entry *models.MoodEntry) error
	ListByUserID(userID string) ([]models.MoodEntry, error)
	CountByUserID(userID string) (int64, error)
}
