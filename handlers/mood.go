package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/mindwellbackend/analytics"
	"github.com/camden-git/mindwellbackend/database"
	"github.com/camden-git/mindwellbackend/models"
	"github.com/camden-git/mindwellbackend/realtime"
	"github.com/camden-git/mindwellbackend/repository"
)

type MoodHandler struct {
	Repo repository.MoodEntryRepositoryInterface
	SQL  database.Querier
	Hub  *realtime.Hub
}

type moodEntryRequest struct {
	Emotion   string  `json:"emotion"`
	Intensity int     `json:"intensity"`
	Notes     *string `json:"notes,omitempty"`
	Timestamp *string `json:"timestamp,omitempty"`
	UserID    string  `json:"user_id"`
}

// CreateMoodEntry appends a mood entry to the user's log. The timestamp is
// optional; entries without one are stamped at submission time.
func (mh *MoodHandler) CreateMoodEntry(w http.ResponseWriter, r *http.Request) {
	var req moodEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Emotion) == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_field", "Missing required field: emotion")
		return
	}
	if req.Intensity < 1 || req.Intensity > 10 {
		WriteAPIError(w, http.StatusBadRequest, "invalid_field", "intensity must be between 1 and 10")
		return
	}

	entry := models.MoodEntry{
		UserID:    req.UserID,
		Emotion:   req.Emotion,
		Intensity: req.Intensity,
		Notes:     req.Notes,
	}
	if req.Timestamp != nil && *req.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339, *req.Timestamp)
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, "invalid_field", "timestamp must be RFC 3339: "+err.Error())
			return
		}
		entry.Timestamp = ts
	}

	if err := mh.Repo.Create(&entry); err != nil {
		log.Printf("Error creating mood entry for user '%s': %v", req.UserID, err)
		WriteAPIError(w, http.StatusInternalServerError, "storage_error", "Failed to save mood entry")
		return
	}

	if mh.Hub != nil {
		mh.Hub.Broadcast(realtime.Event{
			Type:      "mood_entry",
			UserID:    entry.UserID,
			Emotion:   entry.Emotion,
			Intensity: entry.Intensity,
			EntryID:   entry.ID,
			Timestamp: time.Now().Unix(),
		})
	}

	resp := map[string]interface{}{
		"status": "success",
		"entry":  entry,
	}
	if total, err := mh.Repo.CountByUserID(entry.UserID); err != nil {
		log.Printf("Error counting mood entries for user '%s': %v", entry.UserID, err)
	} else {
		resp["total_entries"] = total
	}
	writeJSON(w, http.StatusCreated, resp)
}

// ListMoodEntries returns recent entries for a user, newest first.
// Supported query parameters: user_id, since (RFC 3339), limit.
func (mh *MoodHandler) ListMoodEntries(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = models.DefaultUserID
	}

	var since *time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, "invalid_field", "since must be RFC 3339: "+err.Error())
			return
		}
		since = &ts
	}

	var limit uint64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, "invalid_field", "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	entries, err := database.ListEntriesSince(mh.SQL, userID, since, limit)
	if err != nil {
		log.Printf("Error listing mood entries for user '%s': %v", userID, err)
		WriteAPIError(w, http.StatusInternalServerError, "storage_error", "Failed to list mood entries")
		return
	}
	total, err := database.CountEntriesByUser(mh.SQL, userID)
	if err != nil {
		log.Printf("Error counting mood entries for user '%s': %v", userID, err)
		WriteAPIError(w, http.StatusInternalServerError, "storage_error", "Failed to count mood entries")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"total":   total,
	})
}

// GetMoodAnalytics recomputes the analytics report for a user from their
// full entry log.
func (mh *MoodHandler) GetMoodAnalytics(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	entries, err := mh.Repo.ListByUserID(userID)
	if err != nil {
		log.Printf("Error loading mood entries for analytics, user '%s': %v", userID, err)
		WriteAPIError(w, http.StatusInternalServerError, "storage_error", "Failed to load mood entries")
		return
	}

	writeJSON(w, http.StatusOK, analytics.Analyze(entries))
}
