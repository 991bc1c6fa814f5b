package vision

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// NormalizeOrientation applies the EXIF orientation tag to an uploaded
// frame so the cascade sees the pixels upright; phone cameras routinely
// store rotated JPEGs. The input is returned unchanged when there is no
// EXIF block, the orientation is already top-left, or anything about the
// re-encode fails.
func NormalizeOrientation(data []byte) []byte {
	exifData, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	tag, err := exifData.Get(exif.Orientation)
	if err != nil {
		return data
	}
	orientation, err := tag.Int(0)
	if err != nil || orientation <= 1 || orientation > 8 {
		return data
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	var upright image.Image
	switch orientation {
	case 2:
		upright = imaging.FlipH(img)
	case 3:
		upright = imaging.Rotate180(img)
	case 4:
		upright = imaging.FlipV(img)
	case 5:
		upright = imaging.Transpose(img)
	case 6:
		upright = imaging.Rotate270(img)
	case 7:
		upright = imaging.Transverse(img)
	case 8:
		upright = imaging.Rotate90(img)
	default:
		return data
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, upright, imaging.JPEG, imaging.JPEGQuality(92)); err != nil {
		return data
	}
	return buf.Bytes()
}
