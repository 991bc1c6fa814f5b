package database

import (
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/camden-git/mindwellbackend/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Querier abstracts *sql.DB and *sql.Tx for the raw SQL helpers below
type Querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// ListEntriesSince retrieves mood entries for a user, optionally restricted
// to entries at or after 'since', newest first. limit of 0 means no limit.
// It queries the same mood_entries table GORM migrates; the repository owns
// the append path, this is a read-only listing helper for the API surface.
func ListEntriesSince(db Querier, userID string, since *time.Time, limit uint64) ([]models.MoodEntry, error) {
	queryBuilder := psql.Select(
		"id", "user_id", "emotion", "intensity", "notes", "timestamp",
	).From("mood_entries").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id DESC")

	if since != nil {
		queryBuilder = queryBuilder.Where(sq.GtOrEq{"timestamp": *since})
	}
	if limit > 0 {
		queryBuilder = queryBuilder.Limit(limit)
	}

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for ListEntriesSince: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood entries for user %s: %w", userID, err)
	}
	defer rows.Close()

	entries := []models.MoodEntry{}
	for rows.Next() {
		var entry models.MoodEntry
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Emotion, &entry.Intensity, &entry.Notes, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mood entry rows: %w", err)
	}
	return entries, nil
}

// CountEntriesByUser returns the number of stored entries for a user
func CountEntriesByUser(db Querier, userID string) (int64, error) {
	sqlStr, args, err := psql.Select("COUNT(*)").
		From("mood_entries").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL query for CountEntriesByUser: %w", err)
	}

	var count int64
	if err := db.QueryRow(sqlStr, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count mood entries for user %s: %w", userID, err)
	}
	return count, nil
}
