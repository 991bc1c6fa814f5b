package emotion

import (
	"encoding/gob"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/camden-git/mindwellbackend/vision"
)

// ConvLayer is a 2D convolution with a square kernel, valid padding,
// stride 1 and a ReLU activation. Weights are laid out
// [ky][kx][inChannel][outChannel], inputs and outputs [y][x][channel],
// both row-major.
type ConvLayer struct {
	InChannels  int
	OutChannels int
	Kernel      int
	Weights     []float32
	Biases      []float32
}

// DenseLayer is a fully connected layer. Weights are laid out [in][out].
type DenseLayer struct {
	In      int
	Out     int
	Weights []float32
	Biases  []float32
}

// Classifier maps a normalized face tensor to a probability distribution
// over the seven emotion labels. The architecture mirrors the trained
// emotion model: two conv layers into a pool, two more conv layers each
// followed by a pool, then a 1024-unit dense layer into a 7-way softmax.
// Dropout layers in the trained graph are identity at inference time and
// carry no weights, so they do not appear here.
//
// Weights are immutable after construction; concurrent Predict calls are
// safe.
type Classifier struct {
	Conv1 ConvLayer // 1 -> 32, 3x3
	Conv2 ConvLayer // 32 -> 64, 3x3
	Conv3 ConvLayer // 64 -> 128, 3x3
	Conv4 ConvLayer // 128 -> 128, 3x3
	FC1   DenseLayer
	FC2   DenseLayer

	// Trained is false for freshly initialized weights; callers should
	// treat prediction quality as undefined until a trained artifact is
	// installed.
	Trained bool
}

const (
	flattenedSize = 4 * 4 * 128 // after three 2x2 pools over 48x48 valid convs
	hiddenUnits   = 1024
)

// NewClassifier constructs the architecture with Glorot-uniform random
// weights. The result is a valid, loadable model whose predictions are
// meaningless until trained.
func NewClassifier() *Classifier {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Classifier{
		Conv1:   newConvLayer(rng, 1, 32, 3),
		Conv2:   newConvLayer(rng, 32, 64, 3),
		Conv3:   newConvLayer(rng, 64, 128, 3),
		Conv4:   newConvLayer(rng, 128, 128, 3),
		FC1:     newDenseLayer(rng, flattenedSize, hiddenUnits),
		FC2:     newDenseLayer(rng, hiddenUnits, len(Labels)),
		Trained: false,
	}
}

func newConvLayer(rng *rand.Rand, inC, outC, kernel int) ConvLayer {
	fanIn := kernel * kernel * inC
	fanOut := kernel * kernel * outC
	limit := float32(math.Sqrt(6.0 / float64(fanIn+fanOut)))

	weights := make([]float32, kernel*kernel*inC*outC)
	for i := range weights {
		weights[i] = (rng.Float32()*2 - 1) * limit
	}
	return ConvLayer{
		InChannels:  inC,
		OutChannels: outC,
		Kernel:      kernel,
		Weights:     weights,
		Biases:      make([]float32, outC),
	}
}

func newDenseLayer(rng *rand.Rand, in, out int) DenseLayer {
	limit := float32(math.Sqrt(6.0 / float64(in+out)))
	weights := make([]float32, in*out)
	for i := range weights {
		weights[i] = (rng.Float32()*2 - 1) * limit
	}
	return DenseLayer{
		In:      in,
		Out:     out,
		Weights: weights,
		Biases:  make([]float32, out),
	}
}

// Predict runs the forward pass and returns the softmax-normalized
// probability vector over Labels.
func (c *Classifier) Predict(tensor vision.FaceTensor) ([]float32, error) {
	expected := vision.TensorSize * vision.TensorSize
	if len(tensor.Data) != expected {
		return nil, fmt.Errorf("classifier: tensor has %d values, expected %d", len(tensor.Data), expected)
	}

	act, h, w := c.Conv1.forward(tensor.Data, vision.TensorSize, vision.TensorSize)
	act, h, w = c.Conv2.forward(act, h, w)
	act, h, w = maxPool2(act, h, w, c.Conv2.OutChannels)
	act, h, w = c.Conv3.forward(act, h, w)
	act, h, w = maxPool2(act, h, w, c.Conv3.OutChannels)
	act, h, w = c.Conv4.forward(act, h, w)
	act, h, w = maxPool2(act, h, w, c.Conv4.OutChannels)

	if h*w*c.Conv4.OutChannels != flattenedSize {
		return nil, fmt.Errorf("classifier: flatten shape mismatch: %dx%dx%d", h, w, c.Conv4.OutChannels)
	}

	act = c.FC1.forward(act, true)
	logits := c.FC2.forward(act, false)
	return softmax(logits), nil
}

func (l *ConvLayer) forward(in []float32, h, w int) ([]float32, int, int) {
	outH := h - l.Kernel + 1
	outW := w - l.Kernel + 1
	out := make([]float32, outH*outW*l.OutChannels)
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			base := (y*outW + x) * l.OutChannels
			for oc := 0; oc < l.OutChannels; oc++ {
				sum := l.Biases[oc]
				for ky := 0; ky < l.Kernel; ky++ {
					for kx := 0; kx < l.Kernel; kx++ {
						inBase := ((y+ky)*w + (x + kx)) * l.InChannels
						wBase := ((ky*l.Kernel + kx) * l.InChannels) * l.OutChannels
						for ic := 0; ic < l.InChannels; ic++ {
							sum += in[inBase+ic] * l.Weights[wBase+ic*l.OutChannels+oc]
						}
					}
				}
				if sum < 0 {
					sum = 0 // ReLU
				}
				out[base+oc] = sum
			}
		}
	}
	return out, outH, outW
}

func maxPool2(in []float32, h, w, channels int) ([]float32, int, int) {
	outH := h / 2
	outW := w / 2
	out := make([]float32, outH*outW*channels)
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			for ch := 0; ch < channels; ch++ {
				m := in[((2*y)*w+2*x)*channels+ch]
				if v := in[((2*y)*w+2*x+1)*channels+ch]; v > m {
					m = v
				}
				if v := in[((2*y+1)*w+2*x)*channels+ch]; v > m {
					m = v
				}
				if v := in[((2*y+1)*w+2*x+1)*channels+ch]; v > m {
					m = v
				}
				out[(y*outW+x)*channels+ch] = m
			}
		}
	}
	return out, outH, outW
}

func (l *DenseLayer) forward(in []float32, relu bool) []float32 {
	out := make([]float32, l.Out)
	copy(out, l.Biases)
	for i := 0; i < l.In; i++ {
		v := in[i]
		if v == 0 {
			continue
		}
		wBase := i * l.Out
		for o := 0; o < l.Out; o++ {
			out[o] += v * l.Weights[wBase+o]
		}
	}
	if relu {
		for o := range out {
			if out[o] < 0 {
				out[o] = 0
			}
		}
	}
	return out
}

// softmax normalizes logits into a probability distribution, shifting by
// the maximum for numeric stability.
func softmax(logits []float32) []float32 {
	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}
	var sum float64
	probs := make([]float32, len(logits))
	for i, v := range logits {
		e := math.Exp(float64(v - maxLogit))
		probs[i] = float32(e)
		sum += e
	}
	for i := range probs {
		probs[i] = float32(float64(probs[i]) / sum)
	}
	return probs
}

// Save persists the classifier weights as a gob artifact
func (c *Classifier) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("classifier: failed to create model directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("classifier: failed to create model artifact %s: %w", path, err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("classifier: failed to encode model artifact: %w", err)
	}
	return nil
}

// Load reads a classifier artifact and validates its shapes against the
// expected architecture. A shape mismatch means the artifact is corrupt or
// from an incompatible model version.
func Load(path string) (*Classifier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("classifier: failed to open model artifact %s: %w", path, err)
	}
	defer f.Close()

	var c Classifier
	if err := gob.NewDecoder(f).Decode(&c); err != nil {
		return nil, fmt.Errorf("classifier: failed to decode model artifact %s: %w", path, err)
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("classifier: artifact %s is incompatible: %w", path, err)
	}
	return &c, nil
}

func (c *Classifier) validate() error {
	convs := []struct {
		name         string
		layer        *ConvLayer
		inC, outC, k int
	}{
		{"conv1", &c.Conv1, 1, 32, 3},
		{"conv2", &c.Conv2, 32, 64, 3},
		{"conv3", &c.Conv3, 64, 128, 3},
		{"conv4", &c.Conv4, 128, 128, 3},
	}
	for _, cv := range convs {
		l := cv.layer
		if l.InChannels != cv.inC || l.OutChannels != cv.outC || l.Kernel != cv.k {
			return fmt.Errorf("%s has shape %dx%d k=%d, expected %dx%d k=%d",
				cv.name, l.InChannels, l.OutChannels, l.Kernel, cv.inC, cv.outC, cv.k)
		}
		if len(l.Weights) != cv.k*cv.k*cv.inC*cv.outC || len(l.Biases) != cv.outC {
			return fmt.Errorf("%s weight buffers have wrong length", cv.name)
		}
	}
	if c.FC1.In != flattenedSize || c.FC1.Out != hiddenUnits {
		return fmt.Errorf("fc1 has shape %dx%d, expected %dx%d", c.FC1.In, c.FC1.Out, flattenedSize, hiddenUnits)
	}
	if c.FC2.In != hiddenUnits || c.FC2.Out != len(Labels) {
		return fmt.Errorf("fc2 has shape %dx%d, expected %dx%d", c.FC2.In, c.FC2.Out, hiddenUnits, len(Labels))
	}
	if len(c.FC1.Weights) != c.FC1.In*c.FC1.Out || len(c.FC2.Weights) != c.FC2.In*c.FC2.Out {
		return fmt.Errorf("dense weight buffers have wrong length")
	}
	return nil
}

// LoadOrCreate loads the model artifact at path, falling back to a freshly
// initialized architecture when the artifact is missing, corrupt or
// incompatible. The fallback is persisted and logged; the service stays
// available with undefined prediction quality.
func LoadOrCreate(path string) *Classifier {
	c, err := Load(path)
	if err == nil {
		log.Printf("classifier: loaded model artifact from %s (trained=%v)", path, c.Trained)
		if !c.Trained {
			log.Printf("classifier: WARNING - loaded model is untrained, prediction quality is undefined")
		}
		return c
	}

	log.Printf("classifier: %v", err)
	log.Printf("classifier: creating new untrained model; prediction quality is undefined until a trained artifact is installed")
	c = NewClassifier()
	if saveErr := c.Save(path); saveErr != nil {
		log.Printf("classifier: warning: failed to persist new model: %v", saveErr)
	} else {
		log.Printf("classifier: persisted new model artifact at %s", path)
	}
	return c
}
