package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/camden-git/mindwellbackend/chatbot"
)

type ChatHandler struct {
	Bot *chatbot.Bot
}

type chatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// Chat returns the wellness assistant's canned reply to a user message
func (ch *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_body", "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		WriteAPIError(w, http.StatusBadRequest, "missing_field", "Missing required field: message")
		return
	}

	response := ch.Bot.Respond(req.Message, req.UserID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"response":  response,
		"timestamp": time.Now(),
	})
}

// GetChatHistory returns the recorded conversation for a user
func (ch *ChatHandler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": ch.Bot.History(userID),
	})
}

// GetRecommendations returns the suggestion list for an emotion label
func (ch *ChatHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	emotion := chi.URLParam(r, "emotion")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": chatbot.Recommendations(emotion),
	})
}
