package vision

import (
	"fmt"
	"image"
	"log"
	"os"

	"gocv.io/x/gocv"
)

// CascadeDetector finds frontal faces in decoded frames using a pretrained
// Haar cascade. The cascade operates on a grayscale derivative of the frame.
type CascadeDetector struct {
	classifier   gocv.CascadeClassifier
	scaleFactor  float64
	minNeighbors int
}

// NewCascadeDetector loads the cascade model. A missing or unloadable
// cascade file is an initialization error; per-frame detection never fails
// once the detector is constructed.
func NewCascadeDetector(cascadePath string, scaleFactor float64, minNeighbors int) (*CascadeDetector, error) {
	if cascadePath == "" {
		return nil, fmt.Errorf("detection(cascade): cascade path is empty")
	}
	if _, err := os.Stat(cascadePath); err != nil {
		return nil, fmt.Errorf("detection(cascade): cascade file not accessible at %s: %w", cascadePath, err)
	}

	classifier := gocv.NewCascadeClassifier()
	if !classifier.Load(cascadePath) {
		classifier.Close()
		return nil, fmt.Errorf("detection(cascade): failed to load cascade from %s", cascadePath)
	}
	log.Printf("detection(cascade): loaded frontal face cascade from %s", cascadePath)

	if scaleFactor <= 1.0 {
		scaleFactor = 1.3
	}
	if minNeighbors <= 0 {
		minNeighbors = 5
	}

	return &CascadeDetector{
		classifier:   classifier,
		scaleFactor:  scaleFactor,
		minNeighbors: minNeighbors,
	}, nil
}

func (d *CascadeDetector) Close() {
	if d != nil {
		d.classifier.Close()
		log.Println("detection(cascade): closed classifier")
	}
}

// DetectFaces runs the cascade over a grayscale Mat and returns all
// candidate face rectangles. Zero results is a normal outcome.
func (d *CascadeDetector) DetectFaces(gray gocv.Mat) []image.Rectangle {
	if gray.Empty() {
		return nil
	}
	return d.classifier.DetectMultiScaleWithParams(
		gray, d.scaleFactor, d.minNeighbors, 0,
		image.Pt(0, 0), image.Pt(0, 0),
	)
}

// LargestFace decodes a raw frame, detects faces on its grayscale version
// and returns the crop of the largest region by area. found is false when
// the frame decodes fine but contains no detectable face.
func (d *CascadeDetector) LargestFace(frame []byte) (face image.Image, region image.Rectangle, found bool, err error) {
	img, err := gocv.IMDecode(frame, gocv.IMReadColor)
	if err != nil {
		return nil, image.Rectangle{}, false, fmt.Errorf("failed to decode frame: %w", err)
	}
	defer img.Close()
	if img.Empty() {
		return nil, image.Rectangle{}, false, fmt.Errorf("decoded frame is empty")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	rects := d.DetectFaces(gray)
	if len(rects) == 0 {
		return nil, image.Rectangle{}, false, nil
	}

	largest := rects[0]
	for _, r := range rects[1:] {
		if r.Dx()*r.Dy() > largest.Dx()*largest.Dy() {
			largest = r
		}
	}

	bounds := image.Rect(0, 0, gray.Cols(), gray.Rows())
	largest = largest.Intersect(bounds)
	if largest.Empty() {
		return nil, image.Rectangle{}, false, fmt.Errorf("face region %v falls outside frame bounds %v", largest, bounds)
	}

	roi := gray.Region(largest)
	defer roi.Close()

	cropped, err := roi.ToImage()
	if err != nil {
		return nil, image.Rectangle{}, false, fmt.Errorf("failed to convert face region to image: %w", err)
	}
	return cropped, largest, true, nil
}
