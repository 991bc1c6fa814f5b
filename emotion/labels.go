package emotion

// Labels is the fixed ordered label set of the classifier output; index i
// of the probability vector corresponds to Labels[i].
var Labels = []string{"Angry", "Disgust", "Fear", "Happy", "Sad", "Surprise", "Neutral"}

// Sentinel outcomes of the inference pipeline. These are never produced by
// the classifier itself.
const (
	LabelNoFace = "No Face"
	LabelError  = "Error"
)

// IsKnownLabel reports whether s is one of the seven classifier labels.
func IsKnownLabel(s string) bool {
	for _, label := range Labels {
		if label == s {
			return true
		}
	}
	return false
}
