package analytics

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/camden-git/mindwellbackend/models"
)

// valenceScores maps each emotion label to a fixed mood-positivity value
// used for trend math. Unscored labels are skipped, not defaulted.
var valenceScores = map[string]int{
	"Happy":    5,
	"Surprise": 4,
	"Neutral":  3,
	"Sad":      2,
	"Fear":     1,
	"Angry":    1,
	"Disgust":  1,
}

const (
	msgNoData          = "No mood data available"
	msgNoTrends        = "Not enough data for trends"
	msgNoPatterns      = "Not enough data for pattern analysis"
	msgNoNotes         = "No notes available for analysis"
	recentEntriesLimit = 5
)

// triggerKeywords buckets free-text notes into fixed categories by
// case-insensitive substring match.
var triggerKeywords = map[string][]string{
	"work":         {"work", "job", "office", "meeting", "project"},
	"relationship": {"friend", "family", "love", "partner", "relationship"},
	"health":       {"tired", "sick", "pain", "exercise", "sleep"},
	"stress":       {"stress", "anxious", "worried", "overwhelmed", "pressure"},
}

// Analyze computes the full analytics report for one user's entries. It is
// a pure function of the entry sequence, which must be in insertion order.
func Analyze(entries []models.MoodEntry) Report {
	if len(entries) == 0 {
		return Report{Message: msgNoData}
	}

	report := Report{
		Summary:         summarize(entries),
		Trends:          calculateTrends(entries),
		Patterns:        analyzePatterns(entries),
		Recommendations: generateRecommendations(entries),
	}

	recent := entries
	if len(recent) > recentEntriesLimit {
		recent = recent[len(recent)-recentEntriesLimit:]
	}
	report.RecentEntries = recent
	return report
}

// mostCommonEmotion picks the label with the highest count; ties go to the
// label encountered first in insertion order.
func mostCommonEmotion(entries []models.MoodEntry) string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, entry := range entries {
		if _, seen := firstSeen[entry.Emotion]; !seen {
			firstSeen[entry.Emotion] = i
		}
		counts[entry.Emotion]++
	}

	best := ""
	for emotion, count := range counts {
		if best == "" ||
			count > counts[best] ||
			(count == counts[best] && firstSeen[emotion] < firstSeen[best]) {
			best = emotion
		}
	}
	return best
}

func summarize(entries []models.MoodEntry) *Summary {
	distribution := make(map[string]int)
	dateRange := DateRange{Start: entries[0].Timestamp, End: entries[0].Timestamp}
	for _, entry := range entries {
		distribution[entry.Emotion]++
		if entry.Timestamp.Before(dateRange.Start) {
			dateRange.Start = entry.Timestamp
		}
		if entry.Timestamp.After(dateRange.End) {
			dateRange.End = entry.Timestamp
		}
	}

	return &Summary{
		TotalEntries:        len(entries),
		DateRange:           dateRange,
		MostCommonEmotion:   mostCommonEmotion(entries),
		EmotionDistribution: distribution,
	}
}

func calculateTrends(entries []models.MoodEntry) *Trends {
	if len(entries) < 2 {
		return &Trends{Message: msgNoTrends}
	}

	var scores []float64
	dailySum := make(map[string]float64)
	dailyCount := make(map[string]int)
	weeklySum := make(map[string]float64)
	weeklyCount := make(map[string]int)

	for _, entry := range entries {
		score, ok := valenceScores[entry.Emotion]
		if !ok {
			continue
		}
		scores = append(scores, float64(score))

		day := entry.Timestamp.Format("2006-01-02")
		dailySum[day] += float64(score)
		dailyCount[day]++

		_, isoWeek := entry.Timestamp.ISOWeek()
		week := strconv.Itoa(isoWeek)
		weeklySum[week] += float64(score)
		weeklyCount[week]++
	}

	daily := make(map[string]float64, len(dailySum))
	for day, sum := range dailySum {
		daily[day] = sum / float64(dailyCount[day])
	}
	weekly := make(map[string]float64, len(weeklySum))
	for week, sum := range weeklySum {
		weekly[week] = sum / float64(weeklyCount[week])
	}

	trends := &Trends{
		DailyTrends:    daily,
		WeeklyTrends:   weekly,
		TrendDirection: trendDirection(daily),
	}

	if len(scores) > 0 {
		avg := mean(scores)
		trends.AverageScore = &avg
	}
	if len(scores) > 1 {
		std := sampleStd(scores)
		trends.ScoreStd = &std
	}
	return trends
}

// trendDirection compares the first and last of the most recent (at most
// seven) daily means: improving when the last is strictly greater,
// declining otherwise as long as more than one point exists.
func trendDirection(daily map[string]float64) string {
	if len(daily) <= 1 {
		return "insufficient_data"
	}

	days := make([]string, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) > 7 {
		days = days[len(days)-7:]
	}

	if len(days) < 2 {
		return "stable"
	}
	if daily[days[len(days)-1]] > daily[days[0]] {
		return "improving"
	}
	return "declining"
}

func analyzePatterns(entries []models.MoodEntry) *Patterns {
	if len(entries) < 3 {
		return &Patterns{Message: msgNoPatterns}
	}

	hourly := make(map[int][]string)
	weekday := make(map[string][]string)
	distinct := make(map[string]struct{})
	changes := 0

	for i, entry := range entries {
		hourly[entry.Timestamp.Hour()] = append(hourly[entry.Timestamp.Hour()], entry.Emotion)
		name := entry.Timestamp.Weekday().String()
		weekday[name] = append(weekday[name], entry.Emotion)
		distinct[entry.Emotion] = struct{}{}
		if i > 0 && entry.Emotion != entries[i-1].Emotion {
			changes++
		}
	}

	hourlyModes := make(map[int]string, len(hourly))
	for hour, emotions := range hourly {
		hourlyModes[hour] = mode(emotions)
	}
	weekdayModes := make(map[string]string, len(weekday))
	for name, emotions := range weekday {
		weekdayModes[name] = mode(emotions)
	}

	stability := 1.0 - float64(changes)/float64(len(entries))

	return &Patterns{
		HourlyPatterns:   hourlyModes,
		DailyPatterns:    weekdayModes,
		MoodStability:    &stability,
		NotesAnalysis:    analyzeNotes(entries),
		EmotionalVariety: len(distinct),
	}
}

// mode returns the most frequent value; ties resolve to the
// lexicographically smallest of the tied values. An empty bucket defaults
// to Neutral.
func mode(values []string) string {
	if len(values) == 0 {
		return "Neutral"
	}
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	best := ""
	for v, count := range counts {
		if best == "" || count > counts[best] || (count == counts[best] && v < best) {
			best = v
		}
	}
	return best
}

func analyzeNotes(entries []models.MoodEntry) *NotesAnalysis {
	type note struct {
		emotion string
		text    string
	}
	var notes []note
	for _, entry := range entries {
		if entry.Notes == nil || strings.TrimSpace(*entry.Notes) == "" {
			continue
		}
		notes = append(notes, note{emotion: entry.Emotion, text: strings.ToLower(*entry.Notes)})
	}
	if len(notes) == 0 {
		return &NotesAnalysis{Message: msgNoNotes}
	}

	matches := make(map[string]int, len(triggerKeywords))
	for category, words := range triggerKeywords {
		count := 0
		for _, n := range notes {
			for _, word := range words {
				if strings.Contains(n.text, word) {
					count++
					break
				}
			}
		}
		matches[category] = count
	}

	perEmotion := make(map[string]int)
	for _, n := range notes {
		perEmotion[n.emotion]++
	}

	return &NotesAnalysis{
		KeywordMatches:         matches,
		EmotionNoteCorrelation: perEmotion,
		TotalNotesAnalyzed:     len(notes),
	}
}

func generateRecommendations(entries []models.MoodEntry) []string {
	switch mostCommonEmotion(entries) {
	case "Sad", "Angry", "Fear":
		return []string{
			"Consider daily mindfulness practice for emotional regulation",
			"Try journaling your feelings to process difficult emotions",
			"Reach out to a friend or loved one - connection helps",
			"Take a short walk outside - movement can shift your mood",
		}
	default:
		return []string{
			"Keep nurturing the habits that support your positive state",
			"Practice gratitude journaling to maintain this momentum",
			"Share your energy with others - it multiplies",
		}
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStd is the n-1 standard deviation, matching the reference
// analytics output.
func sampleStd(values []float64) float64 {
	m := mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
