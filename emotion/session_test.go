package emotion

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/camden-git/mindwellbackend/vision"
)

type fakeLocator struct {
	face  image.Image
	found bool
	err   error
}

func (f *fakeLocator) LargestFace(frame []byte) (image.Image, image.Rectangle, bool, error) {
	if f.err != nil {
		return nil, image.Rectangle{}, false, f.err
	}
	if !f.found {
		return nil, image.Rectangle{}, false, nil
	}
	return f.face, f.face.Bounds(), true, nil
}

func testFace() image.Image {
	img := image.NewGray(image.Rect(0, 0, 96, 96))
	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8((x + y) % 256)})
		}
	}
	return img
}

func TestPredictNoFace(t *testing.T) {
	session := NewSession(&fakeLocator{found: false}, NewClassifier())

	pred := session.Predict([]byte("frame"))
	require.Equal(t, LabelNoFace, pred.Label)
	require.Equal(t, 0.0, pred.Confidence)
}

func TestPredictLocatorErrorMapsToErrorSentinel(t *testing.T) {
	session := NewSession(&fakeLocator{err: errors.New("failed to decode frame")}, NewClassifier())

	pred := session.Predict([]byte("garbage"))
	require.Equal(t, LabelError, pred.Label)
	require.Equal(t, 0.0, pred.Confidence)
	require.Contains(t, pred.Reason, "decode")
}

func TestPredictConfidenceMatchesMaxProbability(t *testing.T) {
	classifier := NewClassifier()
	face := testFace()
	session := NewSession(&fakeLocator{face: face, found: true}, classifier)

	pred := session.Predict([]byte("frame"))
	require.True(t, IsKnownLabel(pred.Label))

	probs, err := classifier.Predict(vision.PreprocessFace(face))
	require.NoError(t, err)

	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	require.Equal(t, Labels[best], pred.Label)
	require.Equal(t, float64(probs[best]), pred.Confidence)
}
