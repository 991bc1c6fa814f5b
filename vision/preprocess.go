package vision

import (
	"image"

	"github.com/disintegration/imaging"
)

// TensorSize is the side length of the classifier input
const TensorSize = 48

// FaceTensor is the normalized single-sample, single-channel input tensor
// the classifier consumes: TensorSize x TensorSize intensities in [0, 1],
// row-major.
type FaceTensor struct {
	Data []float32
}

// PreprocessFace converts an arbitrary face crop into a FaceTensor. The
// crop is grayscaled, resized to exactly TensorSize x TensorSize and its
// intensities scaled linearly from [0,255] to [0,1]. Deterministic, no side
// effects.
func PreprocessFace(face image.Image) FaceTensor {
	gray := imaging.Grayscale(face)
	resized := imaging.Resize(gray, TensorSize, TensorSize, imaging.Lanczos)

	data := make([]float32, TensorSize*TensorSize)
	for y := 0; y < TensorSize; y++ {
		for x := 0; x < TensorSize; x++ {
			// channels are equal after Grayscale, red carries the intensity
			data[y*TensorSize+x] = float32(resized.NRGBAAt(x, y).R) / 255.0
		}
	}
	return FaceTensor{Data: data}
}
