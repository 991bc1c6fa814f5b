package chatbot

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const historyLimit = 10

// Message is one turn of a conversation.
type Message struct {
	Role      string    `json:"role"` // "user" or "bot"
	Text      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Bot serves canned wellness responses routed by message keywords and
// keeps a bounded per-user conversation history. The history lives on the
// Bot instance so its lifecycle is the process, not a package global;
// construct one at startup and inject it where needed.
type Bot struct {
	mu      sync.Mutex
	history map[string][]Message
	rng     *rand.Rand
}

func New() *Bot {
	return &Bot{
		history: make(map[string][]Message),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Respond generates a reply for a user message and records both sides of
// the exchange in the user's history.
func (b *Bot) Respond(message, userID string) string {
	if userID == "" {
		userID = "default"
	}

	response := b.routeMessage(strings.ToLower(message))

	b.mu.Lock()
	defer b.mu.Unlock()
	now := time.Now()
	turns := append(b.history[userID],
		Message{Role: "user", Text: message, Timestamp: now},
		Message{Role: "bot", Text: response, Timestamp: now},
	)
	if len(turns) > historyLimit {
		turns = turns[len(turns)-historyLimit:]
	}
	b.history[userID] = turns

	return response
}

// History returns a copy of the recorded conversation for a user.
func (b *Bot) History(userID string) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	turns := b.history[userID]
	out := make([]Message, len(turns))
	copy(out, turns)
	return out
}

func (b *Bot) routeMessage(message string) string {
	for _, trigger := range meditationTriggers {
		if strings.Contains(message, trigger) {
			return b.meditationGuide()
		}
	}
	for _, trigger := range tipTriggers {
		if strings.Contains(message, trigger) {
			return b.pick(wellnessTips)
		}
	}
	for _, ke := range messageEmotions {
		if strings.Contains(message, ke.Keyword) {
			return b.pick(emotionResponses[ke.Emotion].Responses)
		}
	}
	return b.pick(defaultResponses)
}

func (b *Bot) meditationGuide() string {
	b.mu.Lock()
	guide := meditationGuides[b.rng.Intn(len(meditationGuides))]
	b.mu.Unlock()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Let's try: %s\n", guide.Title)
	for i, step := range guide.Steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}
	return sb.String()
}

func (b *Bot) pick(options []string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return options[b.rng.Intn(len(options))]
}

// Recommendations returns the suggestion list for an emotion label,
// falling back to general suggestions for unknown labels.
func Recommendations(emotion string) []string {
	if content, ok := emotionResponses[emotion]; ok {
		return content.Recommendations
	}
	return defaultRecommendations
}
