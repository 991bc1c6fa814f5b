package analytics

import (
	"time"

	"github.com/camden-git/mindwellbackend/models"
)

// Report is the full analytics output for one user's entry log. It is
// derived on every request and never persisted. Optional sections use
// pointers so sparse-data outcomes serialize as flags instead of zeroed
// numbers.
type Report struct {
	Message         string             `json:"message,omitempty"`
	Summary         *Summary           `json:"summary,omitempty"`
	Trends          *Trends            `json:"trends,omitempty"`
	Patterns        *Patterns          `json:"patterns,omitempty"`
	Recommendations []string           `json:"recommendations,omitempty"`
	RecentEntries   []models.MoodEntry `json:"recent_entries,omitempty"`
}

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type Summary struct {
	TotalEntries        int            `json:"total_entries"`
	DateRange           DateRange      `json:"date_range"`
	MostCommonEmotion   string         `json:"most_common_emotion"`
	EmotionDistribution map[string]int `json:"emotion_distribution"`
}

// Trends holds valence-score aggregates over time. Daily trends are keyed
// by calendar date (YYYY-MM-DD), weekly trends by ISO week number.
type Trends struct {
	Message        string             `json:"message,omitempty"`
	DailyTrends    map[string]float64 `json:"daily_trends,omitempty"`
	WeeklyTrends   map[string]float64 `json:"weekly_trends,omitempty"`
	TrendDirection string             `json:"trend_direction,omitempty"`
	AverageScore   *float64           `json:"average_score,omitempty"`
	ScoreStd       *float64           `json:"score_std,omitempty"`
}

// Patterns holds per-bucket summaries of the entry log. Hourly patterns
// are keyed by hour of day (0-23), daily patterns by weekday name.
type Patterns struct {
	Message          string            `json:"message,omitempty"`
	HourlyPatterns   map[int]string    `json:"hourly_patterns,omitempty"`
	DailyPatterns    map[string]string `json:"daily_patterns,omitempty"`
	MoodStability    *float64          `json:"mood_stability,omitempty"`
	NotesAnalysis    *NotesAnalysis    `json:"notes_analysis,omitempty"`
	EmotionalVariety int               `json:"emotional_variety,omitempty"`
}

type NotesAnalysis struct {
	Message                string         `json:"message,omitempty"`
	KeywordMatches         map[string]int `json:"keyword_matches,omitempty"`
	EmotionNoteCorrelation map[string]int `json:"emotion_note_correlation,omitempty"`
	TotalNotesAnalyzed     int            `json:"total_notes_analyzed,omitempty"`
}
