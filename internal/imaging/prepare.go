package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// WorkingSize is the side length every image is resized to before analysis.
const WorkingSize = 128

// resampleFilter is the interpolation kernel used for the working resize.
// Changing it changes absolute feature values.
var resampleFilter = imaging.Linear

// Prepared holds the four read-only representations of one resized image.
//
// All rasters are WorkingSize x WorkingSize. A Prepared value is created per
// extraction call and may be shared between goroutines as long as nobody
// writes to it.
type Prepared struct {
	RGB  *Raster
	HSV  *Raster
	Lab  *Raster
	Gray *image.Gray
}

// Prepare validates img, resizes it to WorkingSize x WorkingSize with the
// bilinear kernel, and derives the HSV, Lab and grayscale representations.
//
// Any alpha channel is dropped: the color channels are used as stored.
//
// # Errors
//
//   - ErrNilImage if img is nil
//   - ErrEmptyImage if img has zero width or height
func Prepare(img image.Image) (*Prepared, error) {
	if err := Validate(img); err != nil {
		return nil, err
	}

	resized := imaging.Resize(img, WorkingSize, WorkingSize, resampleFilter)

	n := WorkingSize * WorkingSize
	rgb := make([]uint8, n*3)
	hsv := make([]uint8, n*3)
	lab := make([]uint8, n*3)
	gray := image.NewGray(image.Rect(0, 0, WorkingSize, WorkingSize))

	for y := 0; y < WorkingSize; y++ {
		row := resized.Pix[y*resized.Stride:]
		for x := 0; x < WorkingSize; x++ {
			r, g, b := row[x*4], row[x*4+1], row[x*4+2]
			i := (y*WorkingSize + x) * 3

			rgb[i], rgb[i+1], rgb[i+2] = r, g, b
			hsv[i], hsv[i+1], hsv[i+2] = rgbToHSV(r, g, b)
			lab[i], lab[i+1], lab[i+2] = rgbToLab(r, g, b)
			gray.Pix[y*gray.Stride+x] = luma(r, g, b)
		}
	}

	return &Prepared{
		RGB:  newRaster(WorkingSize, WorkingSize, SpaceRGB, rgb),
		HSV:  newRaster(WorkingSize, WorkingSize, SpaceHSV, hsv),
		Lab:  newRaster(WorkingSize, WorkingSize, SpaceLab, lab),
		Gray: gray,
	}, nil
}
