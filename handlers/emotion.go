package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/camden-git/mindwellbackend/config"
	"github.com/camden-git/mindwellbackend/emotion"
	"github.com/camden-git/mindwellbackend/vision"
)

type EmotionHandler struct {
	Session *emotion.Session
	Cfg     config.Config
}

type emotionResponse struct {
	emotion.Prediction
	Timestamp time.Time `json:"timestamp"`
}

// AnalyzeEmotion handles a one-shot image upload and returns the predicted
// emotion with its confidence. Pipeline failures surface as sentinel
// predictions, not transport errors; only a broken upload is a 400.
func (eh *EmotionHandler) AnalyzeEmotion(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, int64(eh.Cfg.MaxFrameBytes))

	file, _, err := r.FormFile("file")
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_upload", "Missing or invalid 'file' form field: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, "invalid_upload", "Failed to read uploaded file: "+err.Error())
		return
	}

	data = vision.NormalizeOrientation(data)
	pred := eh.Session.Predict(data)

	writeJSON(w, http.StatusOK, emotionResponse{Prediction: pred, Timestamp: time.Now()})
}

var streamUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type streamFrame struct {
	Type string `json:"type"`
	Data string `json:"data"`
}

type streamEvent struct {
	Type string `json:"type"`
	emotion.Prediction
	Timestamp time.Time `json:"timestamp"`
}

// StreamEmotion serves a continuous per-frame prediction loop over a
// websocket. Frames arrive as JSON messages carrying a base64 (optionally
// data-URL prefixed) encoded image; each one gets exactly one prediction
// reply. A malformed frame produces an Error prediction and the loop keeps
// going; the connection only ends when the client goes away.
func (eh *EmotionHandler) StreamEmotion(w http.ResponseWriter, r *http.Request) {
	conn, err := streamUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("emotion(stream): websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	conn.SetReadLimit(int64(eh.Cfg.MaxFrameBytes))
	log.Printf("emotion(stream): client %s connected", connID)

	for {
		var frame streamFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("emotion(stream): client %s read error: %v", connID, err)
			}
			break
		}
		if frame.Type != "frame" {
			continue
		}

		pred := eh.predictEncodedFrame(frame.Data)
		event := streamEvent{Type: "emotion", Prediction: pred, Timestamp: time.Now()}
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("emotion(stream): client %s write error: %v", connID, err)
			break
		}
	}
	log.Printf("emotion(stream): client %s disconnected", connID)
}

func (eh *EmotionHandler) predictEncodedFrame(payload string) emotion.Prediction {
	// browsers send data URLs; the image bytes follow the first comma
	if idx := strings.IndexByte(payload, ','); idx >= 0 {
		payload = payload[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return emotion.Prediction{
			Label:      emotion.LabelError,
			Confidence: 0.0,
			Reason:     fmt.Sprintf("invalid base64 frame: %v", err),
		}
	}
	return eh.Session.Predict(data)
}
