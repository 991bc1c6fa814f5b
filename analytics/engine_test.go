package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/mindwellbackend/models"
)

var baseTime = time.Date(2025, 6, 2, 14, 30, 0, 0, time.UTC) // a Monday

func entry(emotion string, ts time.Time) models.MoodEntry {
	return models.MoodEntry{UserID: "u", Emotion: emotion, Intensity: 5, Timestamp: ts}
}

func entryWithNote(emotion, note string, ts time.Time) models.MoodEntry {
	e := entry(emotion, ts)
	e.Notes = &note
	return e
}

func TestAnalyzeEmptyLog(t *testing.T) {
	report := Analyze(nil)

	assert.Equal(t, "No mood data available", report.Message)
	assert.Nil(t, report.Summary)
	assert.Nil(t, report.Trends)
	assert.Nil(t, report.Patterns)
	assert.Empty(t, report.Recommendations)
}

func TestAnalyzeSingleEntryOmitsTrends(t *testing.T) {
	report := Analyze([]models.MoodEntry{entry("Happy", baseTime)})

	require.NotNil(t, report.Summary)
	assert.Equal(t, 1, report.Summary.TotalEntries)

	require.NotNil(t, report.Trends)
	assert.Equal(t, "Not enough data for trends", report.Trends.Message)
	assert.Empty(t, report.Trends.DailyTrends)

	require.NotNil(t, report.Patterns)
	assert.Equal(t, "Not enough data for pattern analysis", report.Patterns.Message)
}

func TestAnalyzeTwoEntriesComputesTrendsButNotPatterns(t *testing.T) {
	report := Analyze([]models.MoodEntry{
		entry("Sad", baseTime),
		entry("Happy", baseTime.Add(24*time.Hour)),
	})

	require.NotNil(t, report.Trends)
	assert.Empty(t, report.Trends.Message)
	assert.Len(t, report.Trends.DailyTrends, 2)
	assert.Equal(t, "improving", report.Trends.TrendDirection)

	require.NotNil(t, report.Patterns)
	assert.Equal(t, "Not enough data for pattern analysis", report.Patterns.Message)
	assert.Nil(t, report.Patterns.MoodStability)
}

func TestAnalyzeThreeEntriesComputesBoth(t *testing.T) {
	report := Analyze([]models.MoodEntry{
		entry("Happy", baseTime),
		entry("Happy", baseTime.Add(time.Hour)),
		entry("Sad", baseTime.Add(2*time.Hour)),
	})

	require.NotNil(t, report.Trends)
	assert.Empty(t, report.Trends.Message)
	require.NotNil(t, report.Patterns)
	assert.Empty(t, report.Patterns.Message)

	require.NotNil(t, report.Summary)
	assert.Equal(t, "Happy", report.Summary.MostCommonEmotion)
	assert.Equal(t, map[string]int{"Happy": 2, "Sad": 1}, report.Summary.EmotionDistribution)
}

func TestMostCommonEmotionTieBrokenByInsertionOrder(t *testing.T) {
	entries := []models.MoodEntry{
		entry("Sad", baseTime),
		entry("Happy", baseTime.Add(time.Hour)),
		entry("Sad", baseTime.Add(2*time.Hour)),
		entry("Happy", baseTime.Add(3*time.Hour)),
	}
	assert.Equal(t, "Sad", mostCommonEmotion(entries))
}

func TestTrendDirectionDeclining(t *testing.T) {
	// daily means 5,5,5,2,2,1 over six days: last <= first -> declining
	emotions := []string{"Happy", "Happy", "Happy", "Sad", "Sad", "Angry"}
	entries := make([]models.MoodEntry, len(emotions))
	for i, emotion := range emotions {
		entries[i] = entry(emotion, baseTime.Add(time.Duration(i)*24*time.Hour))
	}

	report := Analyze(entries)
	require.NotNil(t, report.Trends)
	assert.Equal(t, "declining", report.Trends.TrendDirection)
	assert.Len(t, report.Trends.DailyTrends, 6)
	assert.Equal(t, 5.0, report.Trends.DailyTrends[baseTime.Format("2006-01-02")])
}

func TestTrendAverageAndStd(t *testing.T) {
	report := Analyze([]models.MoodEntry{
		entry("Happy", baseTime),
		entry("Sad", baseTime.Add(time.Hour)),
	})

	require.NotNil(t, report.Trends.AverageScore)
	assert.InDelta(t, 3.5, *report.Trends.AverageScore, 1e-9)
	require.NotNil(t, report.Trends.ScoreStd)
	assert.InDelta(t, math.Sqrt(4.5), *report.Trends.ScoreStd, 1e-9)
}

func TestMoodStability(t *testing.T) {
	entries := []models.MoodEntry{
		entry("Happy", baseTime),
		entry("Happy", baseTime.Add(time.Hour)),
		entry("Sad", baseTime.Add(2*time.Hour)),
		entry("Sad", baseTime.Add(3*time.Hour)),
	}

	report := Analyze(entries)
	require.NotNil(t, report.Patterns.MoodStability)
	assert.InDelta(t, 0.75, *report.Patterns.MoodStability, 1e-9)
}

func TestHourlyAndWeekdayPatterns(t *testing.T) {
	entries := []models.MoodEntry{
		entry("Happy", baseTime),                     // Monday 14:xx
		entry("Happy", baseTime.Add(10*time.Minute)), // same hour
		entry("Sad", baseTime.Add(24*time.Hour)),     // Tuesday 14:xx
	}

	report := Analyze(entries)
	require.NotNil(t, report.Patterns)
	assert.Equal(t, "Happy", report.Patterns.HourlyPatterns[14])
	assert.Equal(t, "Happy", report.Patterns.DailyPatterns["Monday"])
	assert.Equal(t, "Sad", report.Patterns.DailyPatterns["Tuesday"])
	assert.Equal(t, 2, report.Patterns.EmotionalVariety)
}

func TestModeTieBreaksAlphabeticallyAndEmptyDefaultsNeutral(t *testing.T) {
	assert.Equal(t, "Neutral", mode(nil))
	assert.Equal(t, "Happy", mode([]string{"Sad", "Happy"}))
	assert.Equal(t, "Sad", mode([]string{"Sad", "Happy", "Sad"}))
}

func TestNoteTriggerAnalysis(t *testing.T) {
	entries := []models.MoodEntry{
		entryWithNote("Angry", "stressed about work deadline", baseTime),
		entry("Happy", baseTime.Add(time.Hour)),
		entryWithNote("Sad", "slept badly, so tired", baseTime.Add(2*time.Hour)),
	}

	report := Analyze(entries)
	require.NotNil(t, report.Patterns)
	notes := report.Patterns.NotesAnalysis
	require.NotNil(t, notes)

	assert.Equal(t, 1, notes.KeywordMatches["work"])
	assert.Equal(t, 1, notes.KeywordMatches["stress"])
	assert.Equal(t, 1, notes.KeywordMatches["health"])
	assert.Equal(t, 0, notes.KeywordMatches["relationship"])
	assert.Equal(t, 2, notes.TotalNotesAnalyzed)
	assert.Equal(t, map[string]int{"Angry": 1, "Sad": 1}, notes.EmotionNoteCorrelation)
}

func TestNotesAnalysisWithoutNotes(t *testing.T) {
	entries := []models.MoodEntry{
		entry("Happy", baseTime),
		entry("Happy", baseTime.Add(time.Hour)),
		entry("Happy", baseTime.Add(2*time.Hour)),
	}

	report := Analyze(entries)
	require.NotNil(t, report.Patterns.NotesAnalysis)
	assert.Equal(t, "No notes available for analysis", report.Patterns.NotesAnalysis.Message)
}

func TestRecommendationBranches(t *testing.T) {
	negative := Analyze([]models.MoodEntry{entry("Sad", baseTime)})
	positive := Analyze([]models.MoodEntry{entry("Happy", baseTime)})

	require.NotEmpty(t, negative.Recommendations)
	require.NotEmpty(t, positive.Recommendations)
	assert.NotEqual(t, negative.Recommendations, positive.Recommendations)
	assert.Contains(t, negative.Recommendations[0], "mindfulness")
}

func TestRecentEntriesCappedAtFive(t *testing.T) {
	entries := make([]models.MoodEntry, 8)
	for i := range entries {
		entries[i] = entry("Neutral", baseTime.Add(time.Duration(i)*time.Hour))
	}

	report := Analyze(entries)
	require.Len(t, report.RecentEntries, 5)
	assert.True(t, report.RecentEntries[0].Timestamp.Equal(baseTime.Add(3*time.Hour)))
}
