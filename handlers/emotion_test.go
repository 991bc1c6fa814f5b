package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camden-git/mindwellbackend/config"
	"github.com/camden-git/mindwellbackend/emotion"
)

type stubLocator struct {
	face  image.Image
	found bool
}

func (s *stubLocator) LargestFace(frame []byte) (image.Image, image.Rectangle, bool, error) {
	if !s.found {
		return nil, image.Rectangle{}, false, nil
	}
	return s.face, s.face.Bounds(), true, nil
}

func stubFace() image.Image {
	img := image.NewGray(image.Rect(0, 0, 96, 96))
	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x * y) % 256)})
		}
	}
	return img
}

func newEmotionHandler(found bool) *EmotionHandler {
	locator := &stubLocator{found: found}
	if found {
		locator.face = stubFace()
	}
	return &EmotionHandler{
		Session: emotion.NewSession(locator, emotion.NewClassifier()),
		Cfg:     config.Config{MaxFrameBytes: 1 << 20},
	}
}

func uploadFrame(t *testing.T, handler http.HandlerFunc, payload []byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "frame.jpg")
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze-emotion", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAnalyzeEmotionReturnsPrediction(t *testing.T) {
	eh := newEmotionHandler(true)

	rec := uploadFrame(t, eh.AnalyzeEmotion, []byte("not-a-real-jpeg"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Emotion    string    `json:"emotion"`
		Confidence float64   `json:"confidence"`
		Timestamp  time.Time `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, emotion.IsKnownLabel(resp.Emotion))
	assert.Greater(t, resp.Confidence, 0.0)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestAnalyzeEmotionNoFaceIsASentinelNotAnError(t *testing.T) {
	eh := newEmotionHandler(false)

	rec := uploadFrame(t, eh.AnalyzeEmotion, []byte("frame"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Emotion    string  `json:"emotion"`
		Confidence float64 `json:"confidence"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, emotion.LabelNoFace, resp.Emotion)
	assert.Equal(t, 0.0, resp.Confidence)
}

func TestAnalyzeEmotionMissingFileField(t *testing.T) {
	eh := newEmotionHandler(true)

	req := httptest.NewRequest(http.MethodPost, "/analyze-emotion", strings.NewReader("plain body"))
	rec := httptest.NewRecorder()
	eh.AnalyzeEmotion(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func dialStream(t *testing.T, eh *EmotionHandler) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(eh.StreamEmotion))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestStreamEmotionRepliesPerFrame(t *testing.T) {
	eh := newEmotionHandler(true)
	conn := dialStream(t, eh)

	frame := base64.StdEncoding.EncodeToString([]byte("frame-bytes"))
	require.NoError(t, conn.WriteJSON(map[string]string{
		"type": "frame",
		"data": "data:image/jpeg;base64," + frame,
	}))

	var event struct {
		Type       string  `json:"type"`
		Emotion    string  `json:"emotion"`
		Confidence float64 `json:"confidence"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "emotion", event.Type)
	assert.True(t, emotion.IsKnownLabel(event.Emotion))
	assert.Greater(t, event.Confidence, 0.0)
}

func TestStreamEmotionSurvivesBadFrames(t *testing.T) {
	eh := newEmotionHandler(true)
	conn := dialStream(t, eh)

	// non-frame messages are skipped without a reply
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))

	// a frame that is not valid base64 gets the Error sentinel
	require.NoError(t, conn.WriteJSON(map[string]string{
		"type": "frame",
		"data": "!!not-base64!!",
	}))

	var event struct {
		Type       string  `json:"type"`
		Emotion    string  `json:"emotion"`
		Confidence float64 `json:"confidence"`
		Reason     string  `json:"reason"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, emotion.LabelError, event.Emotion)
	assert.Equal(t, 0.0, event.Confidence)
	assert.Contains(t, event.Reason, "base64")

	// the loop keeps serving after the bad frame
	good := base64.StdEncoding.EncodeToString([]byte("frame-bytes"))
	require.NoError(t, conn.WriteJSON(map[string]string{"type": "frame", "data": good}))
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "emotion", event.Type)
	assert.True(t, emotion.IsKnownLabel(event.Emotion))
}
