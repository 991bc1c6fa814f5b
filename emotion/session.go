package emotion

import (
	"fmt"
	"image"
	"log"

	"github.com/camden-git/mindwellbackend/vision"
)

// FaceLocator yields the largest detected face crop from a raw encoded
// frame. found is false when the frame is valid but contains no face.
type FaceLocator interface {
	LargestFace(frame []byte) (face image.Image, region image.Rectangle, found bool, err error)
}

// Prediction is the outcome of a single inference. Confidence is exactly
// 0.0 for the No Face and Error sentinel labels; otherwise it equals the
// classifier's maximum softmax probability. Reason carries the failure
// cause for sentinel outcomes so it stays inspectable instead of being
// collapsed into the label string.
type Prediction struct {
	Label      string  `json:"emotion"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason,omitempty"`
}

// Session runs locator -> preprocessor -> classifier for one frame at a
// time. It holds no mutable state beyond the loaded weights, so concurrent
// Predict calls are safe and an abandoned streaming caller needs no
// cleanup.
type Session struct {
	locator    FaceLocator
	classifier *Classifier
}

func NewSession(locator FaceLocator, classifier *Classifier) *Session {
	return &Session{locator: locator, classifier: classifier}
}

// Predict runs the full pipeline on a raw frame. It never returns an
// error: every failure mode is folded into a sentinel prediction so a
// streaming loop can keep invoking it unconditionally.
func (s *Session) Predict(frame []byte) (pred Prediction) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("session: recovered from panic during inference: %v", r)
			pred = errorPrediction(fmt.Sprintf("internal error: %v", r))
		}
	}()

	face, _, found, err := s.locator.LargestFace(frame)
	if err != nil {
		return errorPrediction(err.Error())
	}
	if !found {
		return Prediction{Label: LabelNoFace, Confidence: 0.0}
	}

	probs, err := s.classifier.Predict(vision.PreprocessFace(face))
	if err != nil {
		return errorPrediction(err.Error())
	}

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return Prediction{Label: Labels[best], Confidence: float64(probs[best])}
}

func errorPrediction(reason string) Prediction {
	return Prediction{Label: LabelError, Confidence: 0.0, Reason: reason}
}
